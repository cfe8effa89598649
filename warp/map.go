// SPDX-License-Identifier: EPL-2.0

package warp

import "math"

// Map is the marker-driven piecewise-linear mapping between raw sample
// positions and performance time, plus the pitch-bend curve over time.
//
// The sorted marker sequence partitions the timeline into segments: segment
// zero runs from (sample 0, time 0) to the first marker, each following
// segment runs marker to marker, and a virtual final segment extends past the
// last marker to the end of the buffer with pitch bend decaying linearly to
// zero. Each marker's DTime stretches the segment ending at it.
//
// Queries are memoized by integer sample (or time quantized to samples).
// Map is not safe for concurrent use; the engine serializes access.
type Map struct {
	sampleRate int
	lastSample int
	markers    []Marker

	sample2Time map[int]float64
	time2Sample map[int]int
	time2Bend   map[int]float64
}

// NewMap creates a mapping for a buffer of numSamples samples at sampleRate.
func NewMap(sampleRate, numSamples int) *Map {
	m := &Map{
		sampleRate: sampleRate,
		lastSample: numSamples - 1,
	}
	m.Invalidate()
	return m
}

// Markers returns a copy of the marker sequence in sample order.
func (m *Map) Markers() []Marker {
	out := make([]Marker, len(m.markers))
	copy(out, m.markers)
	return out
}

// SetMarkers replaces the marker sequence.
func (m *Map) SetMarkers(ms []Marker) {
	m.markers = make([]Marker, len(ms))
	copy(m.markers, ms)
	sortMarkers(m.markers)
	m.Invalidate()
}

// Add inserts a marker, keeping sample order.
func (m *Map) Add(mk Marker) {
	m.markers = append(m.markers, mk)
	sortMarkers(m.markers)
	m.Invalidate()
}

// Remove deletes the marker anchored at the given sample. It reports whether
// a marker was removed.
func (m *Map) Remove(sample int) bool {
	for i, mk := range m.markers {
		if mk.Sample == sample {
			m.markers = append(m.markers[:i], m.markers[i+1:]...)
			m.Invalidate()
			return true
		}
	}
	return false
}

// Move adjusts the DTime and PitchBend of the marker anchored at sample by
// the given deltas. It reports whether a marker was found.
func (m *Map) Move(sample int, dTime, pitchBend float64) bool {
	for i := range m.markers {
		if m.markers[i].Sample == sample {
			m.markers[i].DTime += dTime
			m.markers[i].PitchBend += pitchBend
			sortMarkers(m.markers)
			m.Invalidate()
			return true
		}
	}
	return false
}

// Invalidate clears all memo tables. Required after any marker change,
// buffer reload or sample-rate change.
func (m *Map) Invalidate() {
	m.sample2Time = make(map[int]float64)
	m.time2Sample = make(map[int]int)
	m.time2Bend = make(map[int]float64)
}

// Sample2Time maps a raw sample position to performance time in seconds.
func (m *Map) Sample2Time(val int) float64 {
	if val <= 0 {
		return float64(val) / float64(m.sampleRate)
	}
	if t, ok := m.sample2Time[val]; ok {
		return t
	}

	prevSample := 0
	prevTime := 0.0
	for _, mk := range m.markers {
		rightTime := prevTime + float64(mk.Sample-prevSample)/float64(m.sampleRate) + mk.DTime
		if val > prevSample && val <= mk.Sample {
			t := prevTime + float64(val-prevSample)*(rightTime-prevTime)/float64(mk.Sample-prevSample)
			m.sample2Time[val] = t
			return t
		}
		prevSample = mk.Sample
		prevTime = rightTime
	}

	// Past the last marker time advances linearly at the sample rate.
	t := prevTime + float64(val-prevSample)/float64(m.sampleRate)
	m.sample2Time[val] = t
	return t
}

// Time2Sample maps performance time in seconds to a raw sample position. It
// is the inverse walk over the same segments as Sample2Time.
func (m *Map) Time2Sample(val float64) int {
	if val <= 0 {
		return int(val * float64(m.sampleRate))
	}
	key := int(math.Round(val * float64(m.sampleRate)))
	if s, ok := m.time2Sample[key]; ok {
		return s
	}

	prevSample := 0
	prevTime := 0.0
	for _, mk := range m.markers {
		rightTime := prevTime + float64(mk.Sample-prevSample)/float64(m.sampleRate) + mk.DTime
		if val > prevTime && val <= rightTime {
			s := int(math.Round(float64(prevSample) + (val-prevTime)*float64(mk.Sample-prevSample)/(rightTime-prevTime)))
			m.time2Sample[key] = s
			return s
		}
		prevSample = mk.Sample
		prevTime = rightTime
	}

	s := int(math.Round(float64(prevSample) + (val-prevTime)*float64(m.sampleRate)))
	m.time2Sample[key] = s
	return s
}

// Time2PitchBend returns the pitch bend in semitones at performance time
// val. Bend is pinned to zero at t<=0 and decays linearly to zero between
// the last marker and Duration(); beyond that it is zero.
func (m *Map) Time2PitchBend(val float64) float64 {
	if val <= 0 {
		return 0
	}
	key := int(math.Round(val * float64(m.sampleRate)))
	if b, ok := m.time2Bend[key]; ok {
		return b
	}

	prevSample := 0
	prevTime := 0.0
	prevBend := 0.0
	for _, mk := range m.markers {
		rightTime := prevTime + float64(mk.Sample-prevSample)/float64(m.sampleRate) + mk.DTime
		if val > prevTime && val <= rightTime {
			b := prevBend + (val-prevTime)*(mk.PitchBend-prevBend)/(rightTime-prevTime)
			m.time2Bend[key] = b
			return b
		}
		prevSample = mk.Sample
		prevTime = rightTime
		prevBend = mk.PitchBend
	}

	dur := m.Duration()
	if val > dur {
		return 0
	}
	if dur == prevTime {
		return 0
	}

	b := prevBend + (val-prevTime)*(0-prevBend)/(dur-prevTime)
	m.time2Bend[key] = b
	return b
}

// Duration returns the warped duration of the whole buffer in seconds.
func (m *Map) Duration() float64 {
	if m.lastSample < 0 {
		return 0
	}
	return m.Sample2Time(m.lastSample)
}
