// SPDX-License-Identifier: EPL-2.0

// Package wav decodes PCM WAV files into audio.Source streams using
// github.com/go-audio/wav, and writes mono 16-bit PCM WAV output.
package wav
