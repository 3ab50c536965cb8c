package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type scriptedInput struct {
	frames [][]int // pressed keys per poll
	polls  int
	quitAt int
}

func (s *scriptedInput) Poll(keys *[chip8.KeyCount]bool) error {
	s.polls++
	if s.quitAt > 0 && s.polls >= s.quitAt {
		return ErrQuit
	}
	*keys = [chip8.KeyCount]bool{}
	if s.polls <= len(s.frames) {
		for _, key := range s.frames[s.polls-1] {
			keys[key] = true
		}
	}
	return nil
}

type recordingRenderer struct {
	frames []chip8.Snapshot
	err    error
}

func (r *recordingRenderer) Render(snapshot chip8.Snapshot) error {
	r.frames = append(r.frames, snapshot)
	return r.err
}

type countingBeeper struct {
	plays int
}

func (b *countingBeeper) PlayTone() {
	b.plays++
}

func newMachine(t *testing.T, program []byte, opts ...chip8.Option) *chip8.Machine {
	t.Helper()

	m := chip8.New(append([]chip8.Option{chip8.WithSeed(1)}, opts...)...)
	assert.NoError(t, m.Load(program))
	return m
}

func TestNew_InvalidConfig(t *testing.T) {
	logger := log.NewTestLogger(t)
	m := chip8.New()

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero tick rate", Config{TickRate: 0, StepsPerTick: 1}},
		{"zero steps", Config{TickRate: 60, StepsPerTick: 0}},
		{"negative tick limit", Config{TickRate: 60, StepsPerTick: 1, MaxTicks: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(logger, m, nil, nil, tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestTick_StepsRendersAndTicksTimers(t *testing.T) {
	beeper := &countingBeeper{}
	// ld V0, 2; ld ST, V0; ld I, font 0; drw V1, V1, 5; jp self
	m := newMachine(t, []byte{0x60, 0x02, 0xF0, 0x18, 0xA0, 0x00, 0xD1, 0x15, 0x12, 0x08},
		chip8.WithBeeper(beeper))
	renderer := &recordingRenderer{}

	r, err := New(log.NewTestLogger(t), m, nil, renderer, DefaultConfig())
	assert.NoError(t, err)

	for range 4 {
		assert.NoError(t, r.Tick())
	}

	assert.Equal(t, 4, r.Ticks())
	assert.Len(t, renderer.frames, 4)
	assert.False(t, renderer.frames[2][0][0])
	assert.True(t, renderer.frames[3][0][0])
	assert.Equal(t, 1, beeper.plays)
	assert.Equal(t, uint8(0), m.SoundTimer())
}

func TestTick_StepsPerTick(t *testing.T) {
	m := newMachine(t, []byte{0x60, 0x01, 0x61, 0x02, 0x62, 0x03})
	cfg := DefaultConfig()
	cfg.StepsPerTick = 3

	r, err := New(log.NewTestLogger(t), m, nil, nil, cfg)
	assert.NoError(t, err)
	assert.NoError(t, r.Tick())

	assert.Equal(t, uint16(chip8.ProgramStart+6), m.PC())
	assert.Equal(t, uint8(3), m.V(2))
}

func TestTick_WaitForKeyServicesInput(t *testing.T) {
	// ld V5, K; ld V6, 1
	m := newMachine(t, []byte{0xF5, 0x0A, 0x66, 0x01})
	input := &scriptedInput{frames: [][]int{{}, {}, {0xB}}}
	cfg := DefaultConfig()
	cfg.StepsPerTick = 10

	r, err := New(log.NewTestLogger(t), m, input, nil, cfg)
	assert.NoError(t, err)

	assert.NoError(t, r.Tick())
	assert.NoError(t, r.Tick())
	assert.Equal(t, chip8.StatusAwaitingKey, m.Status())
	assert.Equal(t, uint16(chip8.ProgramStart), m.PC())

	assert.NoError(t, r.Tick())
	assert.Equal(t, 3, input.polls)
	assert.Equal(t, uint8(0xB), m.V(5))
	assert.Equal(t, uint8(1), m.V(6))
}

func TestTick_KeyRelease(t *testing.T) {
	m := newMachine(t, []byte{0x12, 0x00})
	input := &scriptedInput{frames: [][]int{{3}, {}}}

	r, err := New(log.NewTestLogger(t), m, input, nil, DefaultConfig())
	assert.NoError(t, err)

	assert.NoError(t, r.Tick())
	assert.True(t, m.Keys()[3])

	assert.NoError(t, r.Tick())
	assert.False(t, m.Keys()[3])
}

func TestTick_MachineError(t *testing.T) {
	m := newMachine(t, []byte{0xFF, 0xFF})

	r, err := New(log.NewTestLogger(t), m, nil, nil, DefaultConfig())
	assert.NoError(t, err)

	err = r.Tick()
	assert.True(t, errors.Is(err, chip8.ErrInvalidOpcode))
	assert.Equal(t, 0, r.Ticks())
}

func TestTick_RendererError(t *testing.T) {
	m := newMachine(t, []byte{0x12, 0x00})
	renderer := &recordingRenderer{err: errors.New("display lost")}

	r, err := New(log.NewTestLogger(t), m, nil, renderer, DefaultConfig())
	assert.NoError(t, err)

	err = r.Tick()
	assert.ErrorContains(t, err, "display lost")
}

func TestRun_StopsAtTickLimit(t *testing.T) {
	m := newMachine(t, []byte{0x12, 0x00})
	cfg := Config{TickRate: 1000, StepsPerTick: 1, MaxTicks: 5}

	r, err := New(log.NewTestLogger(t), m, nil, nil, cfg)
	assert.NoError(t, err)

	assert.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 5, r.Ticks())
}

func TestRun_StopsOnQuit(t *testing.T) {
	m := newMachine(t, []byte{0x12, 0x00})
	input := &scriptedInput{quitAt: 3}
	cfg := Config{TickRate: 1000, StepsPerTick: 1}

	r, err := New(log.NewTestLogger(t), m, input, nil, cfg)
	assert.NoError(t, err)

	assert.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 2, r.Ticks())
}

func TestRun_StopsOnCancel(t *testing.T) {
	m := newMachine(t, []byte{0x12, 0x00})
	cfg := Config{TickRate: 1000, StepsPerTick: 1}

	r, err := New(log.NewTestLogger(t), m, nil, nil, cfg)
	assert.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.NoError(t, r.Run(ctx))
}

func TestRun_ReturnsMachineError(t *testing.T) {
	m := newMachine(t, []byte{0x00, 0xEE})
	cfg := Config{TickRate: 1000, StepsPerTick: 1}

	r, err := New(log.NewTestLogger(t), m, nil, nil, cfg)
	assert.NoError(t, err)

	err = r.Run(context.Background())
	assert.True(t, errors.Is(err, chip8.ErrStackUnderflow))
}
