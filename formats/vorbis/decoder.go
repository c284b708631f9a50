// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/samplechain/audio"
	"github.com/jfreymuth/oggvorbis"
)

// Vorbis decodes to float; the source format reports 32 bits.
const bitDepth = 32

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (*audio.Buffer, audio.Format, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, audio.Format{}, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}
	return readAll(dec)
}

func (Decoder) Probe(r io.ReadSeeker) (audio.Info, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return audio.Info{}, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}

	rate := dec.SampleRate()
	if rate <= 0 || dec.Channels() < 1 {
		return audio.Info{}, ErrNotVorbisFile
	}
	frames := max(dec.Length(), 0)

	return audio.Info{
		Format:   audio.Format{SampleRate: rate, BitDepth: bitDepth, Channels: dec.Channels()},
		Frames:   frames,
		Duration: float64(frames) / float64(rate),
	}, nil
}

func readAll(dec oggReader) (*audio.Buffer, audio.Format, error) {
	src := audio.Format{SampleRate: dec.SampleRate(), BitDepth: bitDepth, Channels: dec.Channels()}
	if src.Channels < 1 {
		return nil, audio.Format{}, ErrNotVorbisFile
	}

	samples := []float64{}
	frameBuf := make([]float32, 4096*src.Channels)
	for {
		// Read returns a sample count that is always a whole number of frames.
		n, err := dec.Read(frameBuf)
		for _, v := range frameBuf[:n] {
			samples = append(samples, float64(v))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, audio.Format{}, fmt.Errorf("reading vorbis data: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return audio.NewFloatBuffer(src.SampleRate, src.Channels, samples), src, nil
}
