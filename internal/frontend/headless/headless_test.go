package headless

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDisplay_Render(t *testing.T) {
	d := New()
	var snapshot chip8.Snapshot

	assert.NoError(t, d.Render(snapshot))
	assert.NoError(t, d.Render(snapshot))
	snapshot[3][4] = true
	assert.NoError(t, d.Render(snapshot))

	assert.Equal(t, 3, d.Frames())
	assert.Equal(t, 2, d.Changes())
	assert.Equal(t, snapshot, d.Last())
}

func TestDisplay_Poll(t *testing.T) {
	d := New()
	keys := [chip8.KeyCount]bool{true, true}

	assert.NoError(t, d.Poll(&keys))
	assert.Equal(t, [chip8.KeyCount]bool{}, keys)
}
