// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds signal generators and fixture writers shared by
// the package tests. It deliberately does not import the audio package so
// audio's own tests can use it.
package audiotest

import "math"

// Generate builds interleaved samples from a waveform function evaluated
// for every frame and channel.
func Generate(channels, frames int, waveform func(frame, ch int) float64) []float64 {
	out := make([]float64, frames*channels)
	for i := range frames {
		for ch := range channels {
			out[i*channels+ch] = waveform(i, ch)
		}
	}
	return out
}

// Sine generates a sine tone of the given frequency and amplitude on
// every channel.
func Sine(sampleRate, channels, frames int, frequency, amplitude float64) []float64 {
	return Generate(channels, frames, func(i, _ int) float64 {
		t := float64(i) / float64(sampleRate)
		return amplitude * math.Sin(2*math.Pi*frequency*t)
	})
}

// Constant fills every sample with value.
func Constant(channels, frames int, value float64) []float64 {
	return Generate(channels, frames, func(int, int) float64 { return value })
}

// Silence returns zeroed samples.
func Silence(channels, frames int) []float64 {
	return make([]float64, frames*channels)
}

// Ramp rises linearly from 0 towards 1 over frames; channel c is offset by
// -c/10 so channels can be told apart.
func Ramp(channels, frames int) []float64 {
	return Generate(channels, frames, func(i, ch int) float64 {
		return float64(i)/float64(frames) - float64(ch)/10
	})
}

// MaxAbsDiff returns the largest absolute difference between a and b over
// their common length.
func MaxAbsDiff(a, b []float64) float64 {
	n := min(len(a), len(b))
	var worst float64
	for i := range n {
		if d := math.Abs(a[i] - b[i]); d > worst {
			worst = d
		}
	}
	return worst
}
