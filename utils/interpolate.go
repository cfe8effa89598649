// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate performs Catmull-Rom cubic interpolation.
// x is the fractional position between y1 and y2 (0 <= x <= 1),
// y0..y3 are four consecutive samples.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return a0*x*x*x + a1*x*x + a2*x + a3
}

// LinearInterpolate interpolates between y0 and y1 at fractional position x.
// The granular engine uses linear interpolation inside grains: integral-period
// grains keep the error inaudible and the per-sample cost minimal.
func LinearInterpolate(y0, y1 float32, x float64) float32 {
	return float32((1-x)*float64(y0) + x*float64(y1))
}
