// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/samplechain/audio"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

// frameReader is an interface for flac.Stream to allow testing
type frameReader interface {
	ParseNext() (*frame.Frame, error)
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (*audio.Buffer, audio.Format, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, audio.Format{}, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}
	defer stream.Close()

	info := stream.Info
	src := audio.Format{
		SampleRate: int(info.SampleRate),
		BitDepth:   int(info.BitsPerSample),
		Channels:   int(info.NChannels),
	}
	return readAll(stream, src, int(info.NSamples))
}

// Probe reads the STREAMINFO block only.
func (Decoder) Probe(r io.ReadSeeker) (audio.Info, error) {
	stream, err := flac.New(r)
	if err != nil {
		return audio.Info{}, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}
	defer stream.Close()

	info := stream.Info
	if info.SampleRate == 0 || info.NChannels == 0 {
		return audio.Info{}, ErrNotFlacFile
	}
	frames := int64(info.NSamples)
	return audio.Info{
		Format: audio.Format{
			SampleRate: int(info.SampleRate),
			BitDepth:   int(info.BitsPerSample),
			Channels:   int(info.NChannels),
		},
		Frames:   frames,
		Duration: float64(frames) / float64(info.SampleRate),
	}, nil
}

// readAll decodes every frame, scaling samples of src.BitDepth bits into
// [-1, 1]. hint is the expected frame count, zero when unknown.
func readAll(stream frameReader, src audio.Format, hint int) (*audio.Buffer, audio.Format, error) {
	if src.BitDepth < 4 || src.BitDepth > 32 {
		return nil, audio.Format{}, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, src.BitDepth)
	}
	if src.Channels < 1 || src.SampleRate <= 0 {
		return nil, audio.Format{}, ErrNotFlacFile
	}

	// FLAC samples are signed at any width; scale by 2^(bits-1).
	scale := math.Ldexp(1, src.BitDepth-1)
	samples := make([]float64, 0, hint*src.Channels)

	for {
		f, err := stream.ParseNext()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, audio.Format{}, fmt.Errorf("reading flac frame: %w", err)
		}
		if len(f.Subframes) < src.Channels {
			return nil, audio.Format{}, fmt.Errorf("%w: frame has %d channels, want %d",
				ErrNotFlacFile, len(f.Subframes), src.Channels)
		}

		n := len(f.Subframes[0].Samples)
		for i := range n {
			for ch := range src.Channels {
				samples = append(samples, float64(f.Subframes[ch].Samples[i])/scale)
			}
		}
	}

	return audio.NewFloatBuffer(src.SampleRate, src.Channels, samples), src, nil
}
