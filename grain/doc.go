// SPDX-License-Identifier: EPL-2.0

// Package grain segments a sample buffer into zero-crossing-aligned grains,
// the atomic units of granular resynthesis.
package grain
