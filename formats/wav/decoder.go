// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"math"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/samplechain/audio"
	"github.com/ik5/samplechain/utils"
)

// WAVE format tags found in the fmt chunk.
const (
	formatPCM        = 1
	formatIEEEFloat  = 3
	formatExtensible = 0xFFFE
)

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (*audio.Buffer, audio.Format, error) {
	dec := gowav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, audio.Format{}, ErrNotWavFile
	}

	src := audio.Format{
		SampleRate: int(dec.SampleRate),
		BitDepth:   int(dec.BitDepth),
		Channels:   int(dec.NumChans),
	}
	isFloat, err := sampleKind(dec.WavAudioFormat, src.BitDepth)
	if err != nil {
		return nil, audio.Format{}, err
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, audio.Format{}, fmt.Errorf("reading wav data: %w", err)
	}

	samples := make([]float64, len(pcm.Data))
	if isFloat {
		for i, v := range pcm.Data {
			samples[i] = float64(math.Float32frombits(uint32(int32(v))))
		}
		return audio.NewFloatBuffer(src.SampleRate, src.Channels, samples), src, nil
	}

	for i, v := range pcm.Data {
		samples[i] = float64(v)
	}
	raw := &audio.Buffer{Format: src, Encoding: audio.PCM, Samples: samples}
	return raw.Float(), src, nil
}

// Probe reads the chunk headers up to the start of the data chunk.
func (Decoder) Probe(r io.ReadSeeker) (audio.Info, error) {
	dec := gowav.NewDecoder(r)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return audio.Info{}, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if dec.NumChans == 0 || dec.SampleRate == 0 {
		return audio.Info{}, ErrNotWavFile
	}

	format := audio.Format{
		SampleRate: int(dec.SampleRate),
		BitDepth:   int(dec.BitDepth),
		Channels:   int(dec.NumChans),
	}

	if err := dec.FwdToPCM(); err != nil {
		return audio.Info{}, fmt.Errorf("seeking wav data: %w", err)
	}

	var frames int64
	if block := int64(format.Channels * format.BitDepth / 8); block > 0 && dec.PCMLen() > 0 {
		frames = dec.PCMLen() / block
	} else {
		dur, err := dec.Duration()
		if err != nil {
			return audio.Info{}, fmt.Errorf("reading wav duration: %w", err)
		}
		frames = int64(math.Round(dur.Seconds() * float64(format.SampleRate)))
	}

	return audio.Info{
		Format:   format,
		Frames:   frames,
		Duration: float64(frames) / float64(format.SampleRate),
	}, nil
}

// sampleKind tells whether samples are IEEE float and rejects layouts the
// decoder cannot map to [-1, 1].
func sampleKind(tag uint16, bits int) (bool, error) {
	switch tag {
	case formatIEEEFloat:
		if bits != 32 {
			return false, fmt.Errorf("%w: %d-bit float", ErrUnsupportedWavLayout, bits)
		}
		return true, nil
	case formatPCM, formatExtensible:
		if _, ok := utils.FullScale(bits); !ok {
			return false, fmt.Errorf("%w: %d-bit PCM", ErrUnsupportedWavLayout, bits)
		}
		return false, nil
	default:
		return false, fmt.Errorf("%w: format tag %#x", ErrUnsupportedWavLayout, tag)
	}
}
