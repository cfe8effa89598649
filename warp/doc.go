// SPDX-License-Identifier: EPL-2.0

// Package warp implements the marker-driven nonlinear time-warp and
// pitch-bend mapping between raw buffer positions and performance time.
package warp
