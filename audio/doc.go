// SPDX-License-Identifier: EPL-2.0

// Package audio defines the pull-based Source interface shared by all format
// decoders, plus the processing stages used when loading audio into a
// session: MonoMixer (channel fold-down), Resampler (cubic rate conversion)
// and the CollectMono helpers that drain a pipeline into a single buffer.
//
// Sources deliver interleaved float32 samples in [-1,1] and signal end of
// stream with io.EOF, mirroring the io.Reader contract.
package audio
