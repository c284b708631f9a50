// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Full-scale divisors used to bring integer PCM into [-1, 1].
const (
	FullScale16 = 32768.0
	FullScale24 = 8388608.0
	FullScale32 = 2147483648.0
)

// Encoding multipliers used when quantizing [-1, 1] floats back to PCM.
// They are one step below full scale so +1.0 never overflows.
const (
	MaxInt16 = 32767.0
	MaxInt24 = 8388607.0
)

// FullScale returns the divisor for integer PCM of the given bit depth and
// false when the depth has no integer full-scale value.
func FullScale(bits int) (float64, bool) {
	switch bits {
	case 8:
		return 128.0, true
	case 16:
		return FullScale16, true
	case 24:
		return FullScale24, true
	case 32:
		return FullScale32, true
	default:
		return 0, false
	}
}

// Clamp limits x to [-1, 1].
func Clamp(x float64) float64 {
	if x > 1 {
		return 1
	} else if x < -1 {
		return -1
	}
	return x
}

// FloatToInt16 clamps x and scales it by 32767, truncating toward zero.
func FloatToInt16(x float64) int16 {
	return int16(Clamp(x) * MaxInt16)
}

// FloatToInt24 clamps x and scales it by 8388607 into an int32 container,
// truncating toward zero.
func FloatToInt24(x float64) int32 {
	return int32(Clamp(x) * MaxInt24)
}

// FloatToFloat32 clamps x and rounds it to single precision.
func FloatToFloat32(x float64) float32 {
	return float32(Clamp(x))
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
