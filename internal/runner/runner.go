// Package runner implements the driver loop that paces a CHIP-8 machine and
// connects it to its input, presentation and audio collaborators.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// ErrQuit is returned by an Input to request the end of the run.
var ErrQuit = errors.New("quit requested")

// ErrTickLimit is returned by Tick once the configured number of ticks ran.
var ErrTickLimit = errors.New("tick limit reached")

// Input delivers the state of the 16 logical keys. Poll updates the passed
// key states in place and returns ErrQuit if the user asked to exit.
type Input interface {
	Poll(keys *[chip8.KeyCount]bool) error
}

// Renderer presents a display snapshot.
type Renderer interface {
	Render(snapshot chip8.Snapshot) error
}

// Config controls the pacing of the driver loop.
type Config struct {
	TickRate     int // ticks per second
	StepsPerTick int // instructions executed per tick
	MaxTicks     int // stop after this many ticks, 0 for no limit
}

// DefaultConfig returns the reference pacing of one instruction and one
// timer decrement per tick at 60 Hz.
func DefaultConfig() Config {
	return Config{
		TickRate:     60,
		StepsPerTick: 1,
	}
}

// Runner drives a machine one tick at a time.
type Runner struct {
	logger   *log.Logger
	machine  *chip8.Machine
	input    Input
	renderer Renderer
	cfg      Config

	keys  [chip8.KeyCount]bool
	ticks int
}

// New returns a runner for the machine. Input and renderer are optional.
func New(logger *log.Logger, machine *chip8.Machine, input Input, renderer Renderer, cfg Config) (*Runner, error) {
	if cfg.TickRate <= 0 {
		return nil, fmt.Errorf("invalid tick rate %d", cfg.TickRate)
	}
	if cfg.StepsPerTick <= 0 {
		return nil, fmt.Errorf("invalid steps per tick %d", cfg.StepsPerTick)
	}
	if cfg.MaxTicks < 0 {
		return nil, fmt.Errorf("invalid tick limit %d", cfg.MaxTicks)
	}

	return &Runner{
		logger:   logger,
		machine:  machine,
		input:    input,
		renderer: renderer,
		cfg:      cfg,
	}, nil
}

// Ticks returns the number of completed ticks.
func (r *Runner) Ticks() int {
	return r.ticks
}

// Tick runs one driver cycle: poll the input, step the machine, present the
// display and decrement the timers.
func (r *Runner) Tick() error {
	if r.cfg.MaxTicks > 0 && r.ticks >= r.cfg.MaxTicks {
		return ErrTickLimit
	}

	if err := r.pollInput(); err != nil {
		return err
	}

	for range r.cfg.StepsPerTick {
		status, err := r.machine.Step()
		if err != nil {
			return fmt.Errorf("stepping machine: %w", err)
		}
		if status == chip8.StatusAwaitingKey {
			break
		}
	}

	if r.renderer != nil {
		if err := r.renderer.Render(r.machine.Snapshot()); err != nil {
			return fmt.Errorf("rendering frame: %w", err)
		}
	}

	r.machine.TickTimers()
	r.ticks++
	return nil
}

func (r *Runner) pollInput() error {
	if r.input == nil {
		return nil
	}

	keys := r.keys
	if err := r.input.Poll(&keys); err != nil {
		return err
	}

	for key, pressed := range keys {
		if pressed == r.keys[key] {
			continue
		}
		if err := r.machine.SetKey(key, pressed); err != nil {
			return fmt.Errorf("updating key state: %w", err)
		}
	}
	r.keys = keys
	return nil
}

// Run calls Tick at the configured rate until the context is cancelled, the
// input requests to quit, the tick limit is reached or the machine halts.
// Only a machine or collaborator failure is returned as error.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(r.cfg.TickRate))
	defer ticker.Stop()

	r.logger.Debug("Starting driver loop",
		log.Int("tick_rate", r.cfg.TickRate),
		log.Int("steps_per_tick", r.cfg.StepsPerTick))

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("Driver loop cancelled", log.Int("ticks", r.ticks))
			return nil

		case <-ticker.C:
			err := r.Tick()
			switch {
			case err == nil:
			case errors.Is(err, ErrQuit), errors.Is(err, ErrTickLimit):
				r.logger.Debug("Driver loop finished", log.Int("ticks", r.ticks), log.Err(err))
				return nil
			default:
				return err
			}
		}
	}
}
