// SPDX-License-Identifier: EPL-2.0

package warp

import (
	"math"
	"testing"
)

func TestMap_NoMarkers(t *testing.T) {
	t.Parallel()

	// 1 second of audio at 44100 Hz, no markers.
	m := NewMap(44100, 44100)

	// Duration is measured to the last sample index, one sample under 1s.
	if d := m.Duration(); math.Abs(d-1.0) > 1e-4 {
		t.Errorf("Duration() = %v, want ~1.0", d)
	}
	if s := m.Time2Sample(0.5); s != 22050 {
		t.Errorf("Time2Sample(0.5) = %d, want 22050", s)
	}
	if tt := m.Sample2Time(22050); math.Abs(tt-0.5) > 1e-9 {
		t.Errorf("Sample2Time(22050) = %v, want 0.5", tt)
	}
	// Negative values extrapolate linearly.
	if tt := m.Sample2Time(-44100); math.Abs(tt+1.0) > 1e-9 {
		t.Errorf("Sample2Time(-44100) = %v, want -1.0", tt)
	}
}

func TestMap_SingleMarkerStretch(t *testing.T) {
	t.Parallel()

	m := NewMap(44100, 44100)
	m.Add(Marker{Sample: 22050, Note: 60, DTime: 0.5, PitchBend: 0})

	// The first half now takes 0.5s natural + 0.5s inserted = 1.0s.
	if tt := m.Sample2Time(22050); math.Abs(tt-1.0) > 1e-9 {
		t.Errorf("Sample2Time(22050) = %v, want 1.0", tt)
	}
	if s := m.Time2Sample(1.0); s != 22050 {
		t.Errorf("Time2Sample(1.0) = %d, want 22050", s)
	}
	// Past the marker, time advances at the natural rate again.
	if d := m.Duration(); math.Abs(d-1.5) > 1e-4 {
		t.Errorf("Duration() = %v, want ~1.5", d)
	}
}

func TestMap_RoundTrip(t *testing.T) {
	t.Parallel()

	m := NewMap(44100, 44100*4)
	m.SetMarkers([]Marker{
		{Sample: 10000, DTime: 0.25, PitchBend: 2},
		{Sample: 50000, DTime: -0.1, PitchBend: -1},
		{Sample: 120000, DTime: 1.0, PitchBend: 0.5},
	})

	for _, s := range []int{1, 500, 9999, 10000, 10001, 30000, 50000, 99999, 120000, 150000} {
		got := m.Time2Sample(m.Sample2Time(s))
		if d := got - s; d < -1 || d > 1 {
			t.Errorf("Time2Sample(Sample2Time(%d)) = %d", s, got)
		}
	}
}

func TestMap_PitchBendPinning(t *testing.T) {
	t.Parallel()

	m := NewMap(44100, 44100*2)
	m.SetMarkers([]Marker{
		{Sample: 30000, PitchBend: 3},
		{Sample: 60000, PitchBend: -2},
	})

	if b := m.Time2PitchBend(0); b != 0 {
		t.Errorf("Time2PitchBend(0) = %v, want 0", b)
	}
	if b := m.Time2PitchBend(-1); b != 0 {
		t.Errorf("Time2PitchBend(-1) = %v, want 0", b)
	}
	if b := m.Time2PitchBend(m.Duration()); math.Abs(b) > 1e-9 {
		t.Errorf("Time2PitchBend(Duration()) = %v, want 0", b)
	}
	if b := m.Time2PitchBend(m.Duration() + 1); b != 0 {
		t.Errorf("Time2PitchBend(past end) = %v, want 0", b)
	}

	// Bend interpolates to the marker values at the marker times.
	t1 := m.Sample2Time(30000)
	if b := m.Time2PitchBend(t1); math.Abs(b-3) > 1e-9 {
		t.Errorf("Time2PitchBend(marker 1) = %v, want 3", b)
	}
	t2 := m.Sample2Time(60000)
	if b := m.Time2PitchBend(t2); math.Abs(b+2) > 1e-9 {
		t.Errorf("Time2PitchBend(marker 2) = %v, want -2", b)
	}
	// Halfway between the markers the bend is halfway too.
	if b := m.Time2PitchBend((t1 + t2) / 2); math.Abs(b-0.5) > 1e-6 {
		t.Errorf("Time2PitchBend(midpoint) = %v, want 0.5", b)
	}
}

func TestMap_MarkerMutationsKeepOrderAndInvalidate(t *testing.T) {
	t.Parallel()

	m := NewMap(44100, 44100*4)
	m.Add(Marker{Sample: 90000})
	m.Add(Marker{Sample: 10000})
	m.Add(Marker{Sample: 50000})

	ms := m.Markers()
	for i := 1; i < len(ms); i++ {
		if ms[i-1].Sample > ms[i].Sample {
			t.Fatalf("markers not sorted: %+v", ms)
		}
	}

	// Warm the memo, then mutate and confirm the mapping changed.
	before := m.Sample2Time(50000)
	if !m.Move(10000, 1.0, 0) {
		t.Fatal("Move(10000) did not find the marker")
	}
	after := m.Sample2Time(50000)
	if math.Abs(after-before-1.0) > 1e-9 {
		t.Errorf("after Move: Sample2Time(50000) = %v, want %v", after, before+1.0)
	}

	if !m.Remove(10000) {
		t.Fatal("Remove(10000) did not find the marker")
	}
	if m.Remove(10000) {
		t.Error("Remove(10000) removed a marker twice")
	}
	reverted := m.Sample2Time(50000)
	if math.Abs(reverted-before) > 1e-9 {
		t.Errorf("after Remove: Sample2Time(50000) = %v, want %v", reverted, before)
	}
}

func TestMap_NegativeDTimeStaysMonotonic(t *testing.T) {
	t.Parallel()

	// A mild negative DTime compresses the first segment but keeps the
	// mapping invertible within it.
	m := NewMap(44100, 44100*2)
	m.Add(Marker{Sample: 44100, DTime: -0.5})

	if tt := m.Sample2Time(44100); math.Abs(tt-0.5) > 1e-9 {
		t.Errorf("Sample2Time(44100) = %v, want 0.5", tt)
	}
	if s := m.Time2Sample(0.25); s != 22050 {
		t.Errorf("Time2Sample(0.25) = %d, want 22050", s)
	}
}

func TestMap_EmptyBuffer(t *testing.T) {
	t.Parallel()

	m := NewMap(44100, 0)
	if d := m.Duration(); d != 0 {
		t.Errorf("Duration() = %v, want 0", d)
	}
}
