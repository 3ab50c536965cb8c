//go:build headless

package audio

import (
	"errors"

	"github.com/retroenv/retrogolib/log"
)

// ErrUnavailable is returned by New in builds without audio support.
var ErrUnavailable = errors.New("audio output not available in headless build")

// Player is a silent placeholder in builds without audio support.
type Player struct{}

// New reports that audio output is unavailable.
func New(_ *log.Logger, _ Sample) (*Player, error) {
	return nil, ErrUnavailable
}

// PlayTone does nothing.
func (p *Player) PlayTone() {}

// Close does nothing.
func (p *Player) Close() error { return nil }
