package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "default flags",
			args: []string{"pong.ch8"},
			want: options.Program{
				Parameters:   options.Parameters{Input: "pong.ch8"},
				Flags:        options.Flags{Frontend: options.FrontendWindow},
				MachineFlags: options.MachineFlags{TickRate: 60, StepsPerTick: 1, Scale: 10},
			},
		},
		{
			name: "headless run",
			args: []string{"-f", "HEADLESS", "-ticks", "120", "-steps", "10", "-seed", "7", "-trace", "pong.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "pong.ch8"},
				Flags:      options.Flags{Frontend: options.FrontendHeadless, Debug: true, Trace: true},
				MachineFlags: options.MachineFlags{
					TickRate: 60, StepsPerTick: 10, MaxTicks: 120, Scale: 10, Seed: 7,
				},
			},
		},
		{
			name: "terminal with custom beep",
			args: []string{"-f", "terminal", "-beep", "beep.wav", "-hz", "30", "-q", "pong.ch8"},
			want: options.Program{
				Parameters:   options.Parameters{Input: "pong.ch8", Beep: "beep.wav"},
				Flags:        options.Flags{Frontend: options.FrontendTerminal, Quiet: true},
				MachineFlags: options.MachineFlags{TickRate: 30, StepsPerTick: 1, Scale: 10},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse("retrochip8", tt.args)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		usage bool
	}{
		{name: "missing ROM", args: []string{"-q"}, usage: true},
		{name: "flag after ROM", args: []string{"pong.ch8", "-q"}, usage: true},
		{name: "two ROMs", args: []string{"pong.ch8", "tetris.ch8"}, usage: true},
		{name: "unknown flag", args: []string{"-unknown", "pong.ch8"}, usage: true},
		{name: "unsupported frontend", args: []string{"-f", "sdl", "pong.ch8"}},
		{name: "zero tick rate", args: []string{"-hz", "0", "pong.ch8"}},
		{name: "zero steps", args: []string{"-steps", "0", "pong.ch8"}},
		{name: "negative tick limit", args: []string{"-ticks", "-1", "pong.ch8"}},
		{name: "zero scale", args: []string{"-scale", "0", "pong.ch8"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("retrochip8", tt.args)
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.usage, errors.As(err, &usageErr))
		})
	}
}

func TestParseFlags(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"retrochip8", "-f", "headless", "pong.ch8"}

	opts, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, "pong.ch8", opts.Input)
	assert.Equal(t, options.FrontendHeadless, opts.Frontend)
}
