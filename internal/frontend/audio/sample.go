// Package audio plays the beep tone of the sound timer.
package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Default tone parameters.
const (
	DefaultSampleRate = 44100
	DefaultFrequency  = 440.0
	DefaultDuration   = 150 * time.Millisecond
	DefaultVolume     = 0.25
)

// ErrInvalidWAV is returned for input that is not a usable WAV file.
var ErrInvalidWAV = errors.New("invalid wav file")

// Sample is a mono PCM sound with samples in the range [-1, 1].
type Sample struct {
	Rate int
	Data []float32
}

// Duration returns the play time of the sample.
func (s Sample) Duration() time.Duration {
	if s.Rate <= 0 {
		return 0
	}
	return time.Duration(len(s.Data)) * time.Second / time.Duration(s.Rate)
}

// SquareWave synthesizes a square wave tone.
func SquareWave(rate int, frequency float64, duration time.Duration, volume float32) Sample {
	count := int(int64(rate) * int64(duration) / int64(time.Second))
	data := make([]float32, count)
	period := float64(rate) / frequency

	for i := range data {
		if math.Mod(float64(i), period) < period/2 {
			data[i] = volume
		} else {
			data[i] = -volume
		}
	}
	return Sample{Rate: rate, Data: data}
}

// DefaultTone returns the built-in beep tone.
func DefaultTone() Sample {
	return SquareWave(DefaultSampleRate, DefaultFrequency, DefaultDuration, DefaultVolume)
}

// LoadWAV decodes a PCM WAV file. Multi channel files are reduced to their
// first channel.
func LoadWAV(r io.ReadSeeker) (Sample, error) {
	dec := wav.NewDecoder(r)
	if dec == nil || !dec.IsValidFile() {
		return Sample{}, ErrInvalidWAV
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Sample{}, fmt.Errorf("decoding wav: %w", err)
	}
	if dec.NumChans == 0 || dec.BitDepth == 0 {
		return Sample{}, fmt.Errorf("%w: %d channels with %d bits", ErrInvalidWAV, dec.NumChans, dec.BitDepth)
	}

	return Sample{
		Rate: int(dec.SampleRate),
		Data: firstChannel(buf, int(dec.NumChans), int(dec.BitDepth)),
	}, nil
}

// firstChannel extracts the first channel of the interleaved buffer and
// scales it to [-1, 1].
func firstChannel(buf *goaudio.IntBuffer, channels, bitDepth int) []float32 {
	scale := float32(int(1) << (bitDepth - 1))
	data := make([]float32, 0, len(buf.Data)/channels)
	for i := 0; i < len(buf.Data); i += channels {
		v := buf.Data[i]
		if bitDepth == 8 {
			// 8 bit WAV data is unsigned
			v -= 128
		}
		data = append(data, float32(v)/scale)
	}
	return data
}

// encodeFloat32LE returns the samples in little endian 32 bit float format.
func encodeFloat32LE(samples []float32) []byte {
	b := make([]byte, 4*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(s))
	}
	return b
}
