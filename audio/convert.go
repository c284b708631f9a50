// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math/rand/v2"
	"sync"
)

// ConverterOptions configures a Converter.
type ConverterOptions struct {
	// Resampler names the sample rate conversion algorithm. See
	// ResolveAlgorithm for accepted names.
	Resampler string
	// Dithering adds triangular noise before reducing bit depth.
	Dithering bool
	// Rand is the dither noise source. When nil the package level
	// generator of math/rand/v2 is used.
	Rand *rand.Rand
}

// Converter turns a Buffer of any supported shape into a target Format.
// It keeps no per-buffer state and may be shared between goroutines.
type Converter struct {
	algorithm string
	resample  resampleFunc
	dithering bool

	mtx *sync.Mutex
	rng *rand.Rand
}

func NewConverter(opts ConverterOptions) *Converter {
	algorithm, _ := ResolveAlgorithm(opts.Resampler)
	return &Converter{
		algorithm: algorithm,
		resample:  resamplerFor(algorithm),
		dithering: opts.Dithering,
		mtx:       &sync.Mutex{},
		rng:       opts.Rand,
	}
}

// Algorithm returns the canonical name of the resampler in use.
func (c *Converter) Algorithm() string {
	return c.algorithm
}

// Convert brings buf to target, applying sample rate, then channel count,
// then bit depth. The source format is the one carried by buf.
func (c *Converter) Convert(buf *Buffer, target Format) (*Buffer, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	out := c.ConvertSampleRate(buf, target.SampleRate)
	out, err := c.ConvertChannels(out, target.Channels)
	if err != nil {
		return nil, err
	}
	return c.ConvertBitDepth(out, target.BitDepth)
}

// triangular draws from a triangular distribution on (-1, 1) peaking at 0.
func (c *Converter) triangular() float64 {
	if c.rng == nil {
		return rand.Float64() + rand.Float64() - 1
	}
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.rng.Float64() + c.rng.Float64() - 1
}
