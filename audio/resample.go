// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"
	"strings"

	"github.com/ik5/samplechain/utils"
)

// Resampling algorithm names accepted by ConverterOptions.
const (
	AlgorithmSinc       = "sinc"
	AlgorithmKaiserBest = "kaiser_best"
	AlgorithmKaiserFast = "kaiser_fast"
	AlgorithmPolyphase  = "polyphase"
	AlgorithmFFT        = "fft"
	AlgorithmCubic      = "cubic"
	AlgorithmLinear     = "linear"
)

// resampleFunc maps one channel of n input samples to outLen samples.
// step is the input distance between two output samples.
type resampleFunc func(in []float64, outLen int, step float64) []float64

// ResolveAlgorithm returns the canonical algorithm for name and whether
// name was recognised. Unknown names resolve to the sinc resampler.
func ResolveAlgorithm(name string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", AlgorithmSinc, AlgorithmKaiserBest, AlgorithmPolyphase, AlgorithmFFT:
		return AlgorithmKaiserBest, true
	case AlgorithmKaiserFast:
		return AlgorithmKaiserFast, true
	case AlgorithmCubic, "catmull-rom":
		return AlgorithmCubic, true
	case AlgorithmLinear:
		return AlgorithmLinear, true
	default:
		return AlgorithmKaiserBest, false
	}
}

func resamplerFor(algorithm string) resampleFunc {
	switch algorithm {
	case AlgorithmKaiserFast:
		return kaiserFast.resample
	case AlgorithmCubic:
		return resampleCubic
	case AlgorithmLinear:
		return resampleLinear
	default:
		return kaiserBest.resample
	}
}

// ResampledLength is the frame count after converting frames from one rate
// to another: round(frames * to / from).
func ResampledLength(frames, from, to int) int {
	if from <= 0 {
		return frames
	}
	return int(math.Round(float64(frames) * float64(to) / float64(from)))
}

// ConvertSampleRate resamples every channel of buf to targetRate. When the
// rates already match a copy is returned.
func (c *Converter) ConvertSampleRate(buf *Buffer, targetRate int) *Buffer {
	srcRate := buf.Format.SampleRate
	if srcRate == targetRate || srcRate <= 0 || targetRate <= 0 {
		return buf.Clone()
	}

	outLen := ResampledLength(buf.Frames(), srcRate, targetRate)
	step := float64(srcRate) / float64(targetRate)

	channels := make([][]float64, buf.Format.Channels)
	for ch := range channels {
		channels[ch] = c.resample(buf.Channel(ch), outLen, step)
	}

	out := &Buffer{
		Format:   buf.Format,
		Encoding: buf.Encoding,
		Samples:  interleave(channels),
	}
	out.Format.SampleRate = targetRate
	if out.Samples == nil {
		out.Samples = []float64{}
	}
	return out
}

// resampleCubic is Catmull-Rom interpolation; samples beyond either edge
// repeat the edge sample.
func resampleCubic(in []float64, outLen int, step float64) []float64 {
	out := make([]float64, outLen)
	n := len(in)
	if n == 0 {
		return out
	}
	at := func(i int) float64 {
		if i < 0 {
			return in[0]
		}
		if i >= n {
			return in[n-1]
		}
		return in[i]
	}

	for i := range out {
		pos := float64(i) * step
		idx := int(pos)
		frac := pos - float64(idx)
		out[i] = utils.CubicInterpolate(at(idx-1), at(idx), at(idx+1), at(idx+2), frac)
	}
	return out
}

// resampleLinear spreads outLen points evenly from the first to the last
// input sample and interpolates between neighbours.
func resampleLinear(in []float64, outLen int, _ float64) []float64 {
	out := make([]float64, outLen)
	n := len(in)
	if n == 0 || outLen == 0 {
		return out
	}
	if n == 1 || outLen == 1 {
		for i := range out {
			out[i] = in[0]
		}
		return out
	}

	span := float64(n-1) / float64(outLen-1)
	for i := range out {
		pos := float64(i) * span
		idx := int(pos)
		if idx >= n-1 {
			out[i] = in[n-1]
			continue
		}
		out[i] = utils.LinearInterpolate(in[idx], in[idx+1], pos-float64(idx))
	}
	return out
}

// sincKernel is a Kaiser-windowed sinc low-pass filter. The kernel is
// tabulated at tableResolution points per input sample and read back with
// linear interpolation.
type sincKernel struct {
	zeroCrossings int
	beta          float64
}

const tableResolution = 512

var (
	kaiserBest = sincKernel{zeroCrossings: 32, beta: 9.0}
	kaiserFast = sincKernel{zeroCrossings: 12, beta: 6.0}
)

func (k sincKernel) table(cutoff, halfWidth float64) []float64 {
	size := int(math.Ceil(halfWidth*tableResolution)) + 2
	tab := make([]float64, size)
	for i := range tab {
		d := float64(i) / tableResolution
		tab[i] = cutoff * utils.Sinc(cutoff*d) * utils.KaiserWindow(d, halfWidth, k.beta)
	}
	return tab
}

func (k sincKernel) resample(in []float64, outLen int, step float64) []float64 {
	out := make([]float64, outLen)
	n := len(in)
	if n == 0 {
		return out
	}

	// Downsampling moves the cutoff to the target Nyquist and widens the
	// kernel by the same factor.
	cutoff := 1.0
	if step > 1 {
		cutoff = 1 / step
	}
	halfWidth := float64(k.zeroCrossings) / cutoff
	tab := k.table(cutoff, halfWidth)

	lookup := func(d float64) float64 {
		pos := math.Abs(d) * tableResolution
		i := int(pos)
		if i+1 >= len(tab) {
			return 0
		}
		frac := pos - float64(i)
		return tab[i] + (tab[i+1]-tab[i])*frac
	}

	for i := range out {
		t := float64(i) * step
		lo := int(math.Ceil(t - halfWidth))
		hi := int(math.Floor(t + halfWidth))
		if lo < 0 {
			lo = 0
		}
		if hi > n-1 {
			hi = n - 1
		}
		var acc float64
		for j := lo; j <= hi; j++ {
			acc += in[j] * lookup(t-float64(j))
		}
		out[i] = acc
	}
	return out
}
