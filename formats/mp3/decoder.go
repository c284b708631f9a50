// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/samplechain/audio"
)

// go-mp3 always produces 16-bit little-endian stereo.
const (
	channels      = 2
	bitDepth      = 16
	bytesPerFrame = channels * bitDepth / 8
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (*audio.Buffer, audio.Format, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, audio.Format{}, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}
	return readAll(dec)
}

// Probe uses the decoder's length, which go-mp3 computes by scanning frame
// headers when the input is seekable.
func (Decoder) Probe(r io.ReadSeeker) (audio.Info, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return audio.Info{}, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	rate := dec.SampleRate()
	if rate <= 0 {
		return audio.Info{}, ErrNotMP3File
	}
	frames := max(dec.Length()/bytesPerFrame, 0)

	return audio.Info{
		Format:   audio.Format{SampleRate: rate, BitDepth: bitDepth, Channels: channels},
		Frames:   frames,
		Duration: float64(frames) / float64(rate),
	}, nil
}

func readAll(dec mp3Reader) (*audio.Buffer, audio.Format, error) {
	src := audio.Format{SampleRate: dec.SampleRate(), BitDepth: bitDepth, Channels: channels}

	var samples []float64
	buf := make([]byte, 8192)
	for {
		n, err := dec.Read(buf)
		// Each sample is 2 bytes (int16 little-endian)
		for i := 0; i+1 < n; i += 2 {
			v := int16(binary.LittleEndian.Uint16(buf[i:]))
			samples = append(samples, float64(v)/32768.0)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, audio.Format{}, fmt.Errorf("reading mp3 data: %w", err)
		}
		if n == 0 {
			break
		}
	}

	samples = samples[:len(samples)-len(samples)%channels]
	if samples == nil {
		samples = []float64{}
	}
	return audio.NewFloatBuffer(src.SampleRate, channels, samples), src, nil
}
