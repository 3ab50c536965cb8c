// Package pipeline orchestrates loading a program and running it in a frontend.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/frontend/audio"
	"github.com/retroenv/retrochip8/internal/frontend/headless"
	"github.com/retroenv/retrochip8/internal/frontend/terminal"
	"github.com/retroenv/retrochip8/internal/frontend/window"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete emulation workflow.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
}

// New creates a new emulation pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(),
	}
}

// Execute loads the program file of the options and runs it. The headless
// frontend writes the final display frame to the writer.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, writer io.Writer) error {
	program, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	return p.ExecuteWithProgram(ctx, program, opts, writer)
}

// ExecuteWithProgram runs a program image that is already in memory.
func (p *Pipeline) ExecuteWithProgram(ctx context.Context, program []byte, opts options.Program, writer io.Writer) error {
	beeper, closeBeeper := p.createBeeper(opts)
	defer closeBeeper()

	machine, err := p.createMachine(program, opts, beeper)
	if err != nil {
		return fmt.Errorf("creating machine: %w", err)
	}

	p.printInfo(opts, program)

	switch opts.Frontend {
	case options.FrontendHeadless:
		err = p.runHeadless(ctx, machine, opts, writer)
	case options.FrontendTerminal:
		err = p.runTerminal(ctx, machine, opts)
	case options.FrontendWindow:
		err = p.runWindow(ctx, machine, opts)
	default:
		err = fmt.Errorf("unsupported frontend: %s", opts.Frontend)
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// createMachine creates the machine and loads the program into it.
func (p *Pipeline) createMachine(program []byte, opts options.Program, beeper chip8.Beeper) (*chip8.Machine, error) {
	machineOpts := []chip8.Option{
		chip8.WithLogger(p.logger),
		chip8.WithTrace(opts.Trace),
	}
	if opts.Seed != 0 {
		machineOpts = append(machineOpts, chip8.WithSeed(opts.Seed))
	}
	if beeper != nil {
		machineOpts = append(machineOpts, chip8.WithBeeper(beeper))
	}

	machine := chip8.New(machineOpts...)
	if err := machine.Load(program); err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}
	return machine, nil
}

// createBeeper returns the audio collaborator for the options and a function
// that releases it. Audio failures are not fatal, the program runs silently.
func (p *Pipeline) createBeeper(opts options.Program) (chip8.Beeper, func()) {
	noop := func() {}

	switch {
	case opts.Mute:
		return nil, noop
	case opts.Frontend == options.FrontendHeadless:
		return logBeeper{logger: p.logger}, noop
	}

	sample := audio.DefaultTone()
	if opts.Beep != "" {
		custom, err := p.loader.LoadBeep(opts.Beep)
		if err != nil {
			p.logger.Warn("Using built-in beep tone", log.Err(err))
		} else {
			sample = custom
		}
	}

	player, err := audio.New(p.logger, sample)
	if err != nil {
		p.logger.Warn("Audio output disabled", log.Err(err))
		return nil, noop
	}
	return player, func() { _ = player.Close() }
}

func (p *Pipeline) runHeadless(ctx context.Context, machine *chip8.Machine, opts options.Program, writer io.Writer) error {
	display := headless.New()
	r, err := runner.New(p.logger, machine, display, display, config.RunnerConfig(opts))
	if err != nil {
		return fmt.Errorf("creating runner: %w", err)
	}

	runErr := r.Run(ctx)

	p.logger.Info("Run finished",
		log.Int("ticks", r.Ticks()),
		log.Int("frames", display.Frames()),
		log.Int("changes", display.Changes()),
		log.Stringer("status", machine.Status()),
	)
	if _, err := io.WriteString(writer, machine.Snapshot().String()); err != nil {
		return errors.Join(runErr, fmt.Errorf("writing final frame: %w", err))
	}
	return runErr
}

func (p *Pipeline) runTerminal(ctx context.Context, machine *chip8.Machine, opts options.Program) error {
	term := terminal.New(os.Stdin, os.Stdout, terminal.DefaultHoldTicks)
	r, err := runner.New(p.logger, machine, term, term, config.RunnerConfig(opts))
	if err != nil {
		return fmt.Errorf("creating runner: %w", err)
	}

	if err := term.Open(); err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	runErr := r.Run(ctx)
	if err := term.Close(); err != nil {
		return errors.Join(runErr, fmt.Errorf("closing terminal: %w", err))
	}
	return runErr
}

func (p *Pipeline) runWindow(ctx context.Context, machine *chip8.Machine, opts options.Program) error {
	w := window.New(window.Options{
		Title: "retrochip8 - " + filepath.Base(opts.Input),
		Scale: opts.Scale,
	})
	r, err := runner.New(p.logger, machine, w, w, config.RunnerConfig(opts))
	if err != nil {
		return fmt.Errorf("creating runner: %w", err)
	}

	return w.Run(ctx, r, opts.TickRate)
}

// printInfo prints information about the program being run.
func (p *Pipeline) printInfo(opts options.Program, program []byte) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Running CHIP-8 program",
		log.String("file", opts.Input),
		log.Int("size", len(program)),
		log.String("frontend", opts.Frontend),
		log.Int("hz", opts.TickRate),
		log.Int("steps", opts.StepsPerTick),
	)
}

// logBeeper reports the tone in the log instead of playing it.
type logBeeper struct {
	logger *log.Logger
}

func (b logBeeper) PlayTone() {
	b.logger.Debug("Beep")
}
