// SPDX-License-Identifier: EPL-2.0

// Package analysis provides FFT-based dominant-frequency detection used to
// size grains to whole pitch periods.
package analysis
