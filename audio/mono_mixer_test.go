// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"
	"testing"
)

func TestMonoMixer_MonoPassthrough(t *testing.T) {
	t.Parallel()

	src := newConstantSource(44100, 1, 100, 0.5)
	mixer := NewMonoMixer(src)

	if mixer.Channels() != 1 {
		t.Errorf("MonoMixer.Channels() = %d, want 1", mixer.Channels())
	}
	if mixer.SampleRate() != 44100 {
		t.Errorf("MonoMixer.SampleRate() = %d, want 44100", mixer.SampleRate())
	}

	buf := make([]float32, 10)
	n, err := mixer.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 10 {
		t.Errorf("ReadSamples() n = %d, want 10", n)
	}
	for i := 0; i < n; i++ {
		if buf[i] != 0.5 {
			t.Errorf("buf[%d] = %v, want 0.5", i, buf[i])
		}
	}
}

func TestMonoMixer_StereoToMono(t *testing.T) {
	t.Parallel()

	src := newMockSource(44100, 2, 100, func(sample, channel int) float32 {
		if channel == 0 {
			return 0.4
		}
		return 0.6
	})
	mixer := NewMonoMixer(src)

	buf := make([]float32, 10)
	n, err := mixer.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 10 {
		t.Errorf("ReadSamples() n = %d, want 10", n)
	}
	for i := 0; i < n; i++ {
		if math.Abs(float64(buf[i]-0.5)) > 0.001 {
			t.Errorf("buf[%d] = %v, want 0.5", i, buf[i])
		}
	}
}

func TestMonoMixer_QuadToMono(t *testing.T) {
	t.Parallel()

	src := newMockSource(48000, 4, 50, func(sample, channel int) float32 {
		return float32(channel) * 0.2 // 0, 0.2, 0.4, 0.6 -> avg 0.3
	})
	mixer := NewMonoMixer(src)

	buf := make([]float32, 50)
	n, _ := mixer.ReadSamples(buf)
	if n != 50 {
		t.Fatalf("ReadSamples() n = %d, want 50", n)
	}
	for i := 0; i < n; i++ {
		if math.Abs(float64(buf[i]-0.3)) > 0.001 {
			t.Errorf("buf[%d] = %v, want 0.3", i, buf[i])
		}
	}
}

func TestMonoMixer_ClosePropagates(t *testing.T) {
	t.Parallel()

	src := newConstantSource(8000, 2, 10, 0)
	mixer := NewMonoMixer(src)
	if err := mixer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.closed {
		t.Error("Close() did not close the underlying source")
	}
}
