// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestCubicInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		y0, y1, y2, y3 float64
		x              float64
		want           float64
		tolerance      float64
	}{
		{name: "start returns y1", y0: 0, y1: 1, y2: 2, y3: 3, x: 0, want: 1, tolerance: 1e-12},
		{name: "end returns y2", y0: 0, y1: 1, y2: 2, y3: 3, x: 1, want: 2, tolerance: 1e-12},
		{name: "linear ramp midpoint", y0: 0, y1: 1, y2: 2, y3: 3, x: 0.5, want: 1.5, tolerance: 1e-12},
		{name: "linear ramp quarter", y0: 1, y1: 2, y2: 3, y3: 4, x: 0.25, want: 2.25, tolerance: 1e-12},
		{name: "symmetric zero crossing", y0: -1, y1: -0.5, y2: 0.5, y3: 1, x: 0.5, want: 0, tolerance: 1e-12},
		{name: "silence", y0: 0, y1: 0, y2: 0, y3: 0, x: 0.7, want: 0, tolerance: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CubicInterpolate(tt.y0, tt.y1, tt.y2, tt.y3, tt.x)
			if diff := math.Abs(got - tt.want); diff > tt.tolerance {
				t.Errorf("CubicInterpolate() = %v, want %v (diff %v)", got, tt.want, diff)
			}
		})
	}
}

func TestLinearInterpolate(t *testing.T) {
	t.Parallel()

	if got := LinearInterpolate(-1, 1, 0.25); got != -0.5 {
		t.Errorf("LinearInterpolate(-1, 1, 0.25) = %v, want -0.5", got)
	}
	if got := LinearInterpolate(3, 3, 0.9); got != 3 {
		t.Errorf("LinearInterpolate(3, 3, 0.9) = %v, want 3", got)
	}
}

func TestSinc(t *testing.T) {
	t.Parallel()

	if Sinc(0) != 1 {
		t.Errorf("Sinc(0) = %v, want 1", Sinc(0))
	}
	for _, x := range []float64{1, 2, -3, 7} {
		if got := Sinc(x); math.Abs(got) > 1e-15 {
			t.Errorf("Sinc(%v) = %v, want 0 at integer offsets", x, got)
		}
	}
	if got := Sinc(0.5); math.Abs(got-2/math.Pi) > 1e-15 {
		t.Errorf("Sinc(0.5) = %v, want %v", got, 2/math.Pi)
	}
}

func TestKaiserWindow(t *testing.T) {
	t.Parallel()

	if got := KaiserWindow(0, 8, 9); math.Abs(got-1) > 1e-12 {
		t.Errorf("KaiserWindow centre = %v, want 1", got)
	}
	if got := KaiserWindow(9, 8, 9); got != 0 {
		t.Errorf("KaiserWindow outside = %v, want 0", got)
	}
	left, right := KaiserWindow(-3, 8, 9), KaiserWindow(3, 8, 9)
	if math.Abs(left-right) > 1e-15 {
		t.Errorf("KaiserWindow not symmetric: %v vs %v", left, right)
	}
	if !(KaiserWindow(2, 8, 9) > KaiserWindow(6, 8, 9)) {
		t.Error("KaiserWindow should decay away from the centre")
	}
}

func TestBesselI0(t *testing.T) {
	t.Parallel()

	tests := []struct {
		x, want float64
	}{
		{0, 1},
		{1, 1.2660658777520082},
		{5, 27.239871823604442},
	}
	for _, tt := range tests {
		if got := BesselI0(tt.x); math.Abs(got-tt.want)/tt.want > 1e-12 {
			t.Errorf("BesselI0(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func BenchmarkCubicInterpolate(b *testing.B) {
	var result float64
	b.ReportAllocs()
	for i := range b.N {
		result = CubicInterpolate(0.5, 1.0, 0.8, 0.3, float64(i%100)/100)
	}
	_ = result
}

func TestCubicInterpolate_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	allocs := testing.AllocsPerRun(1000, func() {
		_ = CubicInterpolate(0.5, 1.0, 0.8, 0.3, 0.5)
	})
	if allocs > 0 {
		t.Errorf("CubicInterpolate allocated %v times, want 0", allocs)
	}
}
