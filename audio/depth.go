// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"

	"github.com/ik5/samplechain/utils"
)

// pcmScale returns the divisor and centre offset for integer samples.
// 8-bit PCM is unsigned and centred on 128.
func pcmScale(bits int) (scale, offset float64) {
	scale, ok := utils.FullScale(bits)
	if !ok {
		return 1, 0
	}
	if bits == 8 {
		return scale, 128
	}
	return scale, 0
}

func encodingFor(bits int) Encoding {
	if bits == 32 {
		return Float
	}
	return PCM
}

// ConvertBitDepth requantizes buf to targetBits. 16 and 24 produce PCM
// buffers holding the integer codes; 32 produces float samples rounded to
// single precision. Other depths fail with ErrUnsupportedFormat.
func (c *Converter) ConvertBitDepth(buf *Buffer, targetBits int) (*Buffer, error) {
	var quantize func(float64) float64
	switch targetBits {
	case 16:
		quantize = func(x float64) float64 { return float64(utils.FloatToInt16(x)) }
	case 24:
		quantize = func(x float64) float64 { return float64(utils.FloatToInt24(x)) }
	case 32:
		quantize = func(x float64) float64 { return float64(utils.FloatToFloat32(x)) }
	default:
		return nil, fmt.Errorf("%w: target bit depth %d", ErrUnsupportedFormat, targetBits)
	}

	if targetBits != 32 && buf.Format.BitDepth == targetBits && buf.Encoding == PCM {
		return buf.Clone(), nil
	}

	src := buf
	if buf.Encoding == PCM {
		src = buf.Float()
	}
	sourceBits := buf.Format.BitDepth

	out := &Buffer{
		Format:   Format{SampleRate: buf.Format.SampleRate, BitDepth: targetBits, Channels: buf.Format.Channels},
		Encoding: encodingFor(targetBits),
		Samples:  make([]float64, len(src.Samples)),
	}

	dither := c.dithering && targetBits < sourceBits
	step := math.Ldexp(1, -targetBits)
	for i, v := range src.Samples {
		if dither {
			v += c.triangular() * step
		}
		out.Samples[i] = quantize(v)
	}

	return out, nil
}
