// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"

	"github.com/ik5/samplechain/utils"
)

// RMS is the root mean square over every sample of buf.
func RMS(buf *Buffer) float64 {
	if len(buf.Samples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range buf.Samples {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(buf.Samples)))
}

// Normalize scales buf so its RMS level hits targetDB (dBFS), hard
// clipping the result to [-1, 1]. Silent buffers come back unchanged.
// PCM input is brought to float first.
func (c *Converter) Normalize(buf *Buffer, targetDB float64) *Buffer {
	out := buf.Float()
	rms := RMS(out)
	if rms == 0 {
		if buf.Encoding == Float {
			return out
		}
		return buf.Clone()
	}

	gain := math.Pow(10, targetDB/20) / rms
	for i, v := range out.Samples {
		out.Samples[i] = utils.Clamp(v * gain)
	}
	return out
}
