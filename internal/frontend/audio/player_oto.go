//go:build !headless

package audio

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/retroenv/retrogolib/log"
)

// Player plays the beep sample on the default audio device.
type Player struct {
	logger *log.Logger
	ctx    *oto.Context
	data   []byte

	mu      sync.Mutex
	current *oto.Player
}

// New opens the audio device at the sample rate of the given sample.
func New(logger *log.Logger, sample Sample) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sample.Rate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	return &Player{
		logger: logger,
		ctx:    ctx,
		data:   encodeFloat32LE(sample.Data),
	}, nil
}

// PlayTone starts the beep, a still playing beep is stopped first.
func (p *Player) PlayTone() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closeCurrent()
	p.current = p.ctx.NewPlayer(bytes.NewReader(p.data))
	p.current.Play()
}

// Close stops any playing beep.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closeCurrent()
	return nil
}

func (p *Player) closeCurrent() {
	if p.current == nil {
		return
	}
	if err := p.current.Close(); err != nil {
		p.logger.Warn("Closing audio player failed", log.Err(err))
	}
	p.current = nil
}
