// Package headless implements a frontend without any presentation, used for
// scripted runs and automated tests of program images.
package headless

import (
	"github.com/retroenv/retrochip8/internal/chip8"
)

// Display records the presented frames without showing them.
type Display struct {
	frames  int
	changes int
	last    chip8.Snapshot
}

// New returns a headless display.
func New() *Display {
	return &Display{}
}

// Render records the snapshot.
func (d *Display) Render(snapshot chip8.Snapshot) error {
	if d.frames == 0 || snapshot != d.last {
		d.changes++
	}
	d.frames++
	d.last = snapshot
	return nil
}

// Poll reports all keys as released.
func (d *Display) Poll(keys *[chip8.KeyCount]bool) error {
	*keys = [chip8.KeyCount]bool{}
	return nil
}

// Frames returns the number of rendered frames.
func (d *Display) Frames() int {
	return d.frames
}

// Changes returns the number of rendered frames that differed from their
// predecessor.
func (d *Display) Changes() int {
	return d.changes
}

// Last returns the last rendered snapshot.
func (d *Display) Last() chip8.Snapshot {
	return d.last
}
