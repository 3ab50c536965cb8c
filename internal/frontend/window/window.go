//go:build !headless

// Package window presents the display in a desktop window and reads the
// keypad from the keyboard.
package window

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/runner"
)

// DefaultScale is the window pixels per display pixel.
const DefaultScale = 10

// Default pixel colors.
var (
	DefaultForeground = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	DefaultBackground = color.RGBA{A: 0xFF}
)

// Options configures the window.
type Options struct {
	Title      string
	Scale      int
	Foreground color.RGBA
	Background color.RGBA
}

// Window is an ebiten game that drives a runner. It acts as the input and the
// renderer of that runner.
type Window struct {
	opts   Options
	pixels []byte

	ctx    context.Context
	runner *runner.Runner
}

// New returns a window, zero option values are replaced by defaults.
func New(opts Options) *Window {
	if opts.Scale <= 0 {
		opts.Scale = DefaultScale
	}
	if opts.Foreground == (color.RGBA{}) {
		opts.Foreground = DefaultForeground
	}
	if opts.Background == (color.RGBA{}) {
		opts.Background = DefaultBackground
	}

	w := &Window{
		opts:   opts,
		pixels: make([]byte, chip8.Width*chip8.Height*4),
	}
	fillPixels(w.pixels, chip8.Snapshot{}, opts.Foreground, opts.Background)
	return w
}

// Run opens the window and ticks the runner at the given rate until the
// window is closed, the context is cancelled or the runner stops.
func (w *Window) Run(ctx context.Context, r *runner.Runner, tickRate int) error {
	w.ctx = ctx
	w.runner = r

	ebiten.SetTPS(tickRate)
	ebiten.SetWindowSize(chip8.Width*w.opts.Scale, chip8.Height*w.opts.Scale)
	ebiten.SetWindowTitle(w.opts.Title)
	ebiten.SetWindowResizable(true)

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	if ebiten.IsWindowBeingClosed() || w.ctx.Err() != nil {
		return ebiten.Termination
	}

	err := w.runner.Tick()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, runner.ErrQuit), errors.Is(err, runner.ErrTickLimit):
		return ebiten.Termination
	default:
		return err
	}
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.WritePixels(w.pixels)
}

// Layout implements ebiten.Game, the logical screen is the display size.
func (w *Window) Layout(_, _ int) (int, int) {
	return chip8.Width, chip8.Height
}

// Poll reads the keypad state from the keyboard. Escape quits.
func (w *Window) Poll(keys *[chip8.KeyCount]bool) error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return runner.ErrQuit
	}
	for i, r := range keymap.Layout {
		key, _ := keymap.Key(r)
		keys[key] = ebiten.IsKeyPressed(keyboardKeys[i])
	}
	return nil
}

// Render stores the snapshot as RGBA pixels for the next Draw.
func (w *Window) Render(snapshot chip8.Snapshot) error {
	fillPixels(w.pixels, snapshot, w.opts.Foreground, w.opts.Background)
	return nil
}

// keyboardKeys lists the ebiten key of each keymap.Layout entry.
var keyboardKeys = [len(keymap.Layout)]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyQ, ebiten.KeyW, ebiten.KeyE, ebiten.KeyR,
	ebiten.KeyA, ebiten.KeyS, ebiten.KeyD, ebiten.KeyF,
	ebiten.KeyZ, ebiten.KeyX, ebiten.KeyC, ebiten.KeyV,
}

func fillPixels(pixels []byte, snapshot chip8.Snapshot, fg, bg color.RGBA) {
	for y := range chip8.Height {
		for x := range chip8.Width {
			c := bg
			if snapshot[y][x] {
				c = fg
			}
			offset := (y*chip8.Width + x) * 4
			pixels[offset] = c.R
			pixels[offset+1] = c.G
			pixels[offset+2] = c.B
			pixels[offset+3] = c.A
		}
	}
}
