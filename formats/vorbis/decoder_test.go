// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"io"
	"testing"
)

// fakeOgg serves canned interleaved float32 samples.
type fakeOgg struct {
	sampleRate int
	channels   int
	data       []float32
	pos        int
}

func (f *fakeOgg) SampleRate() int { return f.sampleRate }
func (f *fakeOgg) Channels() int   { return f.channels }

func (f *fakeOgg) Read(p []float32) (int, error) {
	if f.pos >= len(f.data) {
		return 0, io.EOF
	}
	n := copy(p, f.data[f.pos:])
	f.pos += n
	return n, nil
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	data := []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}
	src := &source{dec: &fakeOgg{sampleRate: 48000, channels: 2, data: data}, sampleRate: 48000, channels: 2}

	dst := make([]float32, 6)
	n, err := src.ReadSamples(dst)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 6 {
		t.Fatalf("ReadSamples() n = %d, want 6", n)
	}
	for i := range data {
		if dst[i] != data[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], data[i])
		}
	}

	// Next read hits EOF.
	if _, err := src.ReadSamples(dst); err != io.EOF {
		t.Errorf("ReadSamples() error = %v, want io.EOF", err)
	}
}

func TestSource_WholeFramesOnly(t *testing.T) {
	t.Parallel()

	data := []float32{0.1, -0.1, 0.2, -0.2}
	src := &source{dec: &fakeOgg{sampleRate: 48000, channels: 2, data: data}, sampleRate: 48000, channels: 2}

	// Odd-sized dst must not split a stereo frame.
	dst := make([]float32, 3)
	n, err := src.ReadSamples(dst)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 2 {
		t.Errorf("ReadSamples() n = %d, want 2", n)
	}
}

func TestDecode_InvalidStream(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("not an ogg"))); err == nil {
		t.Fatal("Decode() expected an error for garbage input")
	}
}
