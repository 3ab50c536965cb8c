//go:build headless

package window

import (
	"context"
	"errors"
	"image/color"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/runner"
)

// DefaultScale is the window pixels per display pixel.
const DefaultScale = 10

// ErrUnavailable is returned by Run in builds without window support.
var ErrUnavailable = errors.New("window frontend not available in headless build")

// Options configures the window.
type Options struct {
	Title      string
	Scale      int
	Foreground color.RGBA
	Background color.RGBA
}

// Window is a placeholder in builds without window support.
type Window struct{}

// New returns the placeholder window.
func New(_ Options) *Window {
	return &Window{}
}

// Run reports that no window can be opened.
func (w *Window) Run(_ context.Context, _ *runner.Runner, _ int) error {
	return ErrUnavailable
}

// Poll reports all keys as released.
func (w *Window) Poll(keys *[chip8.KeyCount]bool) error {
	clear(keys[:])
	return nil
}

// Render discards the snapshot.
func (w *Window) Render(_ chip8.Snapshot) error {
	return nil
}
