// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/samplechain/audio"
	"github.com/ik5/samplechain/utils"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

const readChunk = 4096

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (*audio.Buffer, audio.Format, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, audio.Format{}, ErrNotAiffFile
	}
	dec.ReadInfo()

	return readAll(dec, int(dec.BitDepth))
}

// Probe reads the COMM chunk and derives the frame count from the
// reported duration.
func (Decoder) Probe(r io.ReadSeeker) (audio.Info, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return audio.Info{}, ErrNotAiffFile
	}
	dec.ReadInfo()

	f := dec.Format()
	if f == nil || f.SampleRate <= 0 {
		return audio.Info{}, ErrUnsupportedAiffLayout
	}
	dur, err := dec.Duration()
	if err != nil {
		return audio.Info{}, fmt.Errorf("reading aiff duration: %w", err)
	}

	frames := int64(math.Round(dur.Seconds() * float64(f.SampleRate)))
	return audio.Info{
		Format:   audio.Format{SampleRate: f.SampleRate, BitDepth: int(dec.BitDepth), Channels: f.NumChannels},
		Frames:   frames,
		Duration: float64(frames) / float64(f.SampleRate),
	}, nil
}

// readAll drains dec and scales the integer samples into [-1, 1].
func readAll(dec aiffReader, bits int) (*audio.Buffer, audio.Format, error) {
	if _, ok := utils.FullScale(bits); !ok {
		return nil, audio.Format{}, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits)
	}
	f := dec.Format()
	if f == nil || f.NumChannels < 1 || f.SampleRate <= 0 {
		return nil, audio.Format{}, ErrUnsupportedAiffLayout
	}
	src := audio.Format{SampleRate: f.SampleRate, BitDepth: bits, Channels: f.NumChannels}

	chunk := &goaudio.IntBuffer{Data: make([]int, readChunk*f.NumChannels), Format: f}
	var samples []float64
	for {
		n, err := dec.PCMBuffer(chunk)
		for _, v := range chunk.Data[:n] {
			// AIFF stores 8-bit samples signed; the PCM convention here is
			// unsigned, centred on 128.
			if bits == 8 {
				v += 128
			}
			samples = append(samples, float64(v))
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, audio.Format{}, fmt.Errorf("reading aiff data: %w", err)
		}
		if err != nil || n == 0 {
			break
		}
	}

	// Drop a trailing partial frame.
	samples = samples[:len(samples)-len(samples)%src.Channels]
	raw := &audio.Buffer{Format: src, Encoding: audio.PCM, Samples: samples}
	return raw.Float(), src, nil
}
