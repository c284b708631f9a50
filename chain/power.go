// SPDX-License-Identifier: EPL-2.0

package chain

// IsPowerOfTwo reports whether n is 1, 2, 4, 8, ...
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPowerOfTwo returns the smallest power of two >= n, and 1 for n <= 0.
func NextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// TargetSlotCount is the slot count a chain of n files ends up with. When
// enforcing, it is the next power of two capped at maxSamples; otherwise n.
func TargetSlotCount(n, maxSamples int, enforce bool) int {
	if !enforce {
		return n
	}
	return min(NextPowerOfTwo(n), maxSamples)
}
