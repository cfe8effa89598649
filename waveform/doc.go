// SPDX-License-Identifier: EPL-2.0

// Package waveform maintains a multi-resolution min/max summary of a sample
// buffer for rendering arbitrary zoom levels in real time.
package waveform
