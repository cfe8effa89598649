// SPDX-License-Identifier: EPL-2.0

// Package playback streams pull-based sample sources to the audio device.
package playback
