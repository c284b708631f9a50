// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ConvertChannels remixes buf to target channels.
//
//   - same count: copy
//   - any count to mono: arithmetic mean of all channels
//   - mono to stereo: the channel is duplicated
//   - more than two to stereo: the first two channels are kept
//
// Any other target fails with ErrUnsupportedFormat.
func (c *Converter) ConvertChannels(buf *Buffer, target int) (*Buffer, error) {
	channels := buf.Format.Channels
	if channels == target {
		return buf.Clone(), nil
	}
	if channels < 1 || len(buf.Samples)%channels != 0 {
		return nil, ErrChannelMismatch
	}

	frames := buf.Frames()
	out := &Buffer{
		Format:   buf.Format,
		Encoding: buf.Encoding,
		Samples:  make([]float64, frames*target),
	}
	out.Format.Channels = target
	in := buf.Samples

	switch {
	case target == 1:
		downmix(out.Samples, in, channels)

	case target == 2 && channels == 1:
		for i, v := range in {
			out.Samples[2*i] = v
			out.Samples[2*i+1] = v
		}

	case target == 2 && channels > 2:
		for i := range frames {
			out.Samples[2*i] = in[i*channels]
			out.Samples[2*i+1] = in[i*channels+1]
		}

	default:
		return nil, fmt.Errorf("%w: %d to %d channels", ErrUnsupportedFormat, channels, target)
	}

	return out, nil
}

// downmix averages interleaved frames into dst. Stereo and quad layouts are
// unrolled because they are by far the most common inputs.
func downmix(dst, in []float64, channels int) {
	switch channels {
	case 2:
		for i := range dst {
			j := i * 2
			dst[i] = (in[j] + in[j+1]) * 0.5
		}

	case 4:
		for i := range dst {
			j := i * 4
			dst[i] = (in[j] + in[j+1] + in[j+2] + in[j+3]) * 0.25
		}

	default:
		inv := 1.0 / float64(channels)
		for i := range dst {
			j := i * channels
			var sum float64
			for c := range channels {
				sum += in[j+c]
			}
			dst[i] = sum * inv
		}
	}
}
