// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// CubicInterpolate performs Catmull-Rom interpolation.
// x is the fractional position between y1 and y2 (0 <= x <= 1);
// y0, y1, y2, y3 are four consecutive samples.
func CubicInterpolate(y0, y1, y2, y3, x float64) float64 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return ((a0*x+a1)*x+a2)*x + a3
}

// LinearInterpolate returns the point at fraction x between y0 and y1.
func LinearInterpolate(y0, y1, x float64) float64 {
	return y0 + (y1-y0)*x
}

// Sinc is the normalized sinc function sin(pi*x)/(pi*x).
func Sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// KaiserWindow evaluates a Kaiser window of the given half width at offset x.
// Offsets outside [-halfWidth, halfWidth] return 0.
func KaiserWindow(x, halfWidth, beta float64) float64 {
	if halfWidth <= 0 || x < -halfWidth || x > halfWidth {
		return 0
	}
	r := x / halfWidth
	return BesselI0(beta*math.Sqrt(1-r*r)) / BesselI0(beta)
}

// BesselI0 is the zeroth order modified Bessel function of the first kind,
// evaluated by its power series.
func BesselI0(x float64) float64 {
	sum := 1.0
	term := 1.0
	half := x / 2
	for k := 1; k < 64; k++ {
		f := half / float64(k)
		term *= f * f
		sum += term
		if term < sum*1e-17 {
			break
		}
	}
	return sum
}
