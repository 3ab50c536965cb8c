package terminal

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/assert"
)

func TestPoll_HoldsKeys(t *testing.T) {
	term := New(os.Stdin, &bytes.Buffer{}, 2)
	term.input <- 'w'
	term.input <- 'p'

	var keys [chip8.KeyCount]bool
	assert.NoError(t, term.Poll(&keys))
	assert.True(t, keys[0x5])
	assert.False(t, keys[0x0])

	assert.NoError(t, term.Poll(&keys))
	assert.True(t, keys[0x5])

	assert.NoError(t, term.Poll(&keys))
	assert.False(t, keys[0x5])
}

func TestPoll_Quit(t *testing.T) {
	for _, b := range []byte{keyEscape, keyCtrlC} {
		term := New(os.Stdin, &bytes.Buffer{}, 0)
		term.input <- b

		var keys [chip8.KeyCount]bool
		err := term.Poll(&keys)
		assert.True(t, errors.Is(err, runner.ErrQuit))
	}
}

func TestRender(t *testing.T) {
	out := &bytes.Buffer{}
	term := New(os.Stdin, out, 0)

	var snapshot chip8.Snapshot
	snapshot[0][0] = true
	snapshot[1][0] = true
	snapshot[0][1] = true
	snapshot[1][2] = true

	assert.NoError(t, term.Render(snapshot))

	text := strings.TrimPrefix(out.String(), cursorHome)
	lines := strings.Split(strings.TrimSuffix(text, "\r\n"), "\r\n")
	assert.Len(t, lines, chip8.Height/2)
	assert.True(t, strings.HasPrefix(lines[0], "█▀▄ "))
	assert.Equal(t, strings.Repeat(" ", chip8.Width), lines[1])
}

func TestRender_SkipsUnchangedFrames(t *testing.T) {
	out := &bytes.Buffer{}
	term := New(os.Stdin, out, 0)
	var snapshot chip8.Snapshot

	assert.NoError(t, term.Render(snapshot))
	written := out.Len()
	assert.NoError(t, term.Render(snapshot))
	assert.Equal(t, written, out.Len())

	snapshot[5][5] = true
	assert.NoError(t, term.Render(snapshot))
	assert.True(t, out.Len() > written)
}

func TestClose_WithoutOpen(t *testing.T) {
	term := New(os.Stdin, &bytes.Buffer{}, 0)
	assert.NoError(t, term.Close())
}
