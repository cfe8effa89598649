// SPDX-License-Identifier: EPL-2.0

// Package engine is the real-time granular resynthesis engine. It ties the
// grain table, time-warp map and waveform pyramid to a pull-based playback
// transport driven from an audio callback.
package engine
