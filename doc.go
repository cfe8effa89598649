// SPDX-License-Identifier: EPL-2.0

// Package melonix is a granular time-stretching and pitch-shifting audio
// engine with marker-driven warping, built for interactive editors.
//
// A loaded buffer is segmented into grains bounded by zero crossings, sized
// to whole pitch periods detected by FFT analysis. Playback resynthesizes the
// grains in real time: markers stretch or compress time per segment and bend
// pitch, independently of each other.
//
// # Quick Start
//
// Decode a file, load it into an engine and stream it to the audio device:
//
//	data, rate, _ := melonix.DecodeFile("loop.wav")
//
//	eng := engine.New()
//	eng.Load(data, rate)
//
//	player, _ := playback.NewPlayer(eng, rate)
//	player.Start()
//	eng.Play()
//
// # Warping
//
// Markers anchor raw sample positions to performance-time adjustments:
//
//	eng.AddMarker(warp.Marker{Sample: 22050, Note: 60, DTime: 0.5})
//	eng.MoveMarker(22050, 0, 2) // bend up two semitones
//
// The engine re-splices grains on the fly, so edits are audible immediately.
//
// # Supported Formats
//
// Decoding goes through the format registry:
//   - WAV (PCM 16-bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM 16-bit) via formats/aiff
//
// # Projects
//
// Marker arrangements persist as YAML project files:
//
//	melonix.SaveProject("session.yml", "loop.wav", eng)
//	eng, proj, _ := melonix.OpenProject("session.yml")
//
// # Waveform Display
//
// Engine.RangeMinMax serves waveform rendering at any zoom level from a
// precomputed min/max pyramid, so a display never scans raw samples.
//
// See the individual subpackages for more detailed documentation.
package melonix
