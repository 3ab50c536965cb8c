// Package terminal implements a text mode frontend that renders the display
// with block characters and reads the keypad from the keyboard.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/runner"
	"golang.org/x/term"
)

// DefaultHoldTicks is the number of ticks a key stays pressed after its
// character was received. Terminals do not report key releases, holding a
// key down is seen as the repeated characters of the keyboard auto repeat.
const DefaultHoldTicks = 8

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b

	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// ErrNotATerminal is returned by Open if the input is not a terminal.
var ErrNotATerminal = errors.New("input is not a terminal")

// Terminal is a frontend for ANSI terminals. It implements the runner
// Input and Renderer interfaces.
type Terminal struct {
	in        *os.File
	out       io.Writer
	holdTicks int

	state *term.State
	input chan byte

	held  [chip8.KeyCount]int
	last  chip8.Snapshot
	drawn bool
}

// New returns a terminal frontend reading from in and writing to out.
func New(in *os.File, out io.Writer, holdTicks int) *Terminal {
	if holdTicks <= 0 {
		holdTicks = DefaultHoldTicks
	}
	return &Terminal{
		in:        in,
		out:       out,
		holdTicks: holdTicks,
		input:     make(chan byte, 64),
	}
}

// Open switches the terminal into raw mode and starts reading keys.
func (t *Terminal) Open() error {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotATerminal
	}

	width, height, err := term.GetSize(fd)
	if err == nil && (width < chip8.Width || height < chip8.Height/2) {
		return fmt.Errorf("terminal size %dx%d is smaller than the required %dx%d",
			width, height, chip8.Width, chip8.Height/2)
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enabling raw mode: %w", err)
	}
	t.state = state

	if _, err := io.WriteString(t.out, hideCursor+clearScreen); err != nil {
		return fmt.Errorf("preparing screen: %w", err)
	}

	go t.readKeys()
	return nil
}

// Close restores the terminal state.
func (t *Terminal) Close() error {
	if t.state == nil {
		return nil
	}
	_, _ = io.WriteString(t.out, showCursor+"\r\n")
	err := term.Restore(int(t.in.Fd()), t.state)
	t.state = nil
	if err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return nil
}

func (t *Terminal) readKeys() {
	buf := make([]byte, 16)
	for {
		n, err := t.in.Read(buf)
		for _, b := range buf[:n] {
			t.input <- b
		}
		if err != nil {
			return
		}
	}
}

// Poll applies all received characters to the key states.
func (t *Terminal) Poll(keys *[chip8.KeyCount]bool) error {
drain:
	for {
		select {
		case b := <-t.input:
			if b == keyCtrlC || b == keyEscape {
				return runner.ErrQuit
			}
			if key, ok := keymap.Key(rune(b)); ok {
				t.held[key] = t.holdTicks
			}
		default:
			break drain
		}
	}

	for key := range t.held {
		keys[key] = t.held[key] > 0
		if t.held[key] > 0 {
			t.held[key]--
		}
	}
	return nil
}

// Render draws the snapshot using half block characters, two display rows
// per text line. Unchanged frames are skipped.
func (t *Terminal) Render(snapshot chip8.Snapshot) error {
	if t.drawn && snapshot == t.last {
		return nil
	}

	if _, err := io.WriteString(t.out, cursorHome+renderText(snapshot)); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	t.last = snapshot
	t.drawn = true
	return nil
}

func renderText(snapshot chip8.Snapshot) string {
	var sb strings.Builder
	for y := 0; y < chip8.Height; y += 2 {
		for x := range chip8.Width {
			top, bottom := snapshot[y][x], snapshot[y+1][x]
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}
	return sb.String()
}
