// Package loader handles ROM and sound file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/frontend/audio"
)

// Loader handles loading files from disk.
type Loader struct{}

// New creates a new loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a program image file. Images that do not fit into the program
// area of the machine memory are rejected.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	// read one byte more than allowed to detect oversized images
	data, err := io.ReadAll(io.LimitReader(file, chip8.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	if len(data) > chip8.MaxProgramSize {
		return nil, fmt.Errorf("loading file %s: %w", path, chip8.ErrProgramTooLarge)
	}
	return data, nil
}

// LoadBeep reads a WAV file to use as beep tone.
func (l *Loader) LoadBeep(path string) (audio.Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return audio.Sample{}, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	sample, err := audio.LoadWAV(file)
	if err != nil {
		return audio.Sample{}, fmt.Errorf("loading beep %s: %w", path, err)
	}
	return sample, nil
}
