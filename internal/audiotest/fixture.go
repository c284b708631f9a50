// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Fixture describes a PCM WAV file to write for a test.
type Fixture struct {
	SampleRate int
	BitDepth   int
	Channels   int
	// Samples are interleaved floats in [-1, 1].
	Samples []float64
}

// Tone is a convenience fixture holding a 440 Hz sine of the given length.
func Tone(sampleRate, bitDepth, channels, frames int) Fixture {
	return Fixture{
		SampleRate: sampleRate,
		BitDepth:   bitDepth,
		Channels:   channels,
		Samples:    Sine(sampleRate, channels, frames, 440, 0.5),
	}
}

// EncodeWAV writes f as integer PCM to path through the go-audio encoder.
// Supported bit depths are 16, 24 and 32.
func EncodeWAV(path string, f Fixture) error {
	var scale float64
	switch f.BitDepth {
	case 16:
		scale = 32767
	case 24:
		scale = 8388607
	case 32:
		scale = 2147483647
	default:
		return fmt.Errorf("audiotest: unsupported bit depth %d", f.BitDepth)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	data := make([]int, len(f.Samples))
	for i, v := range f.Samples {
		v = max(-1, min(1, v))
		data[i] = int(v * scale)
	}

	enc := wav.NewEncoder(out, f.SampleRate, f.BitDepth, f.Channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: f.Channels, SampleRate: f.SampleRate},
		Data:           data,
		SourceBitDepth: f.BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}

// WriteWAV writes f to dir/name and fails the test on error. It returns
// the full path.
func WriteWAV(tb testing.TB, dir, name string, f Fixture) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	if err := EncodeWAV(path, f); err != nil {
		tb.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}

// WriteTone writes a 440 Hz tone fixture to dir/name.
func WriteTone(tb testing.TB, dir, name string, sampleRate, bitDepth, channels, frames int) string {
	tb.Helper()
	return WriteWAV(tb, dir, name, Tone(sampleRate, bitDepth, channels, frames))
}
