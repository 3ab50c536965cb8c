// Package options contains the program options.
package options

// Frontend names.
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Frontends lists all supported frontend names.
var Frontends = []string{FrontendWindow, FrontendTerminal, FrontendHeadless}

// Parameters contains file path options.
type Parameters struct {
	Input string `arg:"positional" usage:"ROM file to run"`
	Beep  string `flag:"beep" usage:"WAV file to play as beep tone"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend string `flag:"f" usage:"frontend: window, terminal, headless" default:"window"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
	Trace    bool   `flag:"trace" usage:"log every executed instruction"`
	Mute     bool   `flag:"mute" usage:"disable the beep tone"`
}

// MachineFlags contains emulation options.
type MachineFlags struct {
	TickRate     int    `flag:"hz" usage:"driver ticks per second" default:"60"`
	StepsPerTick int    `flag:"steps" usage:"instructions executed per tick" default:"1"`
	MaxTicks     int    `flag:"ticks" usage:"stop after this many ticks, 0 for no limit"`
	Scale        int    `flag:"scale" usage:"window pixels per display pixel" default:"10"`
	Seed         uint64 `flag:"seed" usage:"random generator seed, 0 for a random seed"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	MachineFlags
}
