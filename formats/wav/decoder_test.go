// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"io"
	"math"
	"testing"
)

func TestDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	// Write a WAV with WriteWAV16 and decode it back.
	samples := make([]int16, 2000)
	for i := range samples {
		samples[i] = int16(10000 * math.Sin(2*math.Pi*440*float64(i)/44100))
	}
	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 44100, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	src, err := Decoder{}.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", src.Channels())
	}

	var got []float32
	tmp := make([]float32, 512)
	for {
		n, err := src.ReadSamples(tmp)
		got = append(got, tmp[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if len(got) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(got), len(samples))
	}
	for i := range got {
		want := float32(samples[i]) / 32768.0
		if math.Abs(float64(got[i]-want)) > 1e-4 {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], want)
		}
	}
}

func TestDecode_NotWav(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("definitely not a RIFF file")))
	if err == nil {
		t.Fatal("Decode() expected an error for non-WAV input")
	}
}

func TestDecode_NonSeekableReader(t *testing.T) {
	t.Parallel()

	samples := []int16{100, -100, 200, -200}
	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 8000, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	// io.LimitReader strips the Seek method.
	src, err := Decoder{}.Decode(io.LimitReader(&buf, int64(buf.Len())))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}
}

func TestPCMScale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bitDepth int
		want     float32
	}{
		{8, 128},
		{16, 32768},
		{24, 8388608},
		{32, 2147483648},
		{0, 32768}, // unknown depth falls back to 16-bit
	}
	for _, tt := range tests {
		if got := pcmScale(tt.bitDepth); got != tt.want {
			t.Errorf("pcmScale(%d) = %v, want %v", tt.bitDepth, got, tt.want)
		}
	}
}
