// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 converts a float32 sample in [-1,1] to a 16-bit PCM sample.
// Values outside the range are clamped.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}
