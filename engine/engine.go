// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/karlingen/melonix/analysis"
	"github.com/karlingen/melonix/grain"
	"github.com/karlingen/melonix/warp"
	"github.com/karlingen/melonix/waveform"
)

// Engine owns a loaded sample buffer together with everything derived from
// it: the grain table, the time-warp map, the waveform pyramid and the
// playback transport. It is the single context object shared by the control
// surface and the audio callback.
//
// One mutex guards all shared state. Control-side operations (marker edits,
// scrubbing, loads) and the audio callback both take it; every derived
// structure is rebuilt off-line and swapped in whole, so the callback only
// ever observes fully old or fully new state.
type Engine struct {
	mu sync.Mutex

	data       []float32
	sampleRate int

	estimator *analysis.PeriodEstimator
	grains    *grain.Table
	warpMap   *warp.Map
	pyramid   *waveform.Pyramid

	playing bool
	cursor  float64 // performance time in seconds

	// resynthesis state, owned by the pull path
	pending  []float32 // rendered samples not yet handed to the sink
	prevEnd  int       // one past the raw end of the last rendered grain
	havePrev bool
	bias     float64 // fractional resample phase carried across grains
	rng      *rand.Rand
}

func New() *Engine {
	return &Engine{
		warpMap: warp.NewMap(defaultSampleRate, 0),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

const defaultSampleRate = 44100

// Load installs a new mono buffer and rebuilds every derived structure.
// Markers are cleared: a fresh audio file starts a fresh arrangement. The
// rebuild happens before the lock is taken so the audio callback never sees
// a partially built table.
func (e *Engine) Load(samples []float32, sampleRate int) error {
	return e.load(samples, sampleRate, nil)
}

// LoadWithMarkers installs a buffer along with a marker sequence, e.g. when
// reopening a saved project.
func (e *Engine) LoadWithMarkers(samples []float32, sampleRate int, markers []warp.Marker) error {
	return e.load(samples, sampleRate, markers)
}

func (e *Engine) load(samples []float32, sampleRate int, markers []warp.Marker) error {
	if len(samples) == 0 {
		return ErrEmptyBuffer
	}
	if sampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	estimator := analysis.NewPeriodEstimator(samples, sampleRate)
	grains := grain.Build(samples, estimator)
	pyramid := waveform.Build(samples)
	warpMap := warp.NewMap(sampleRate, len(samples))
	warpMap.SetMarkers(markers)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.data = samples
	e.sampleRate = sampleRate
	e.estimator = estimator
	e.grains = grains
	e.pyramid = pyramid
	e.warpMap = warpMap
	e.resetTransportLocked()

	return nil
}

func (e *Engine) resetTransportLocked() {
	e.playing = false
	e.cursor = 0
	e.pending = e.pending[:0]
	e.havePrev = false
	e.bias = 0
}

// Loaded reports whether a buffer is installed.
func (e *Engine) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.data) > 0
}

// SampleRate returns the session sample rate, or 0 when nothing is loaded.
func (e *Engine) SampleRate() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sampleRate
}

// Len returns the number of samples in the loaded buffer.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.data)
}

// GrainCount returns the number of grains in the current table.
func (e *Engine) GrainCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.grains == nil {
		return 0
	}
	return e.grains.Len()
}

// Play starts playback from the current cursor.
func (e *Engine) Play() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.data) > 0 {
		e.playing = true
	}
}

// Stop halts playback. The next pull fades the pending tail to silence.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.playing = false
}

// Toggle flips between playing and stopped.
func (e *Engine) Toggle() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.playing && len(e.data) == 0 {
		return
	}
	e.playing = !e.playing
}

// Playing reports the transport state.
func (e *Engine) Playing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

// Cursor returns the playback position in performance time seconds.
func (e *Engine) Cursor() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor
}

// SetCursor scrubs the playback position, clamped to [0, Duration()].
func (e *Engine) SetCursor(sec float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	dur := e.warpMap.Duration()
	if sec < 0 {
		sec = 0
	} else if sec > dur {
		sec = dur
	}
	e.cursor = sec
	// A jump breaks grain continuity; the next grain splices in.
	e.havePrev = false
	e.bias = 0
	e.pending = e.pending[:0]
}

// Markers returns a copy of the marker sequence.
func (e *Engine) Markers() []warp.Marker {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.warpMap.Markers()
}

// AddMarker inserts a marker and invalidates the warp caches.
func (e *Engine) AddMarker(mk warp.Marker) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.warpMap.Add(mk)
}

// RemoveMarker deletes the marker anchored at sample, reporting whether one
// was found.
func (e *Engine) RemoveMarker(sample int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.warpMap.Remove(sample)
}

// MoveMarker adjusts the DTime and PitchBend of the marker anchored at
// sample by the given deltas.
func (e *Engine) MoveMarker(sample int, dTime, pitchBend float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.warpMap.Move(sample, dTime, pitchBend)
}

// SetMarkers replaces the whole marker sequence.
func (e *Engine) SetMarkers(ms []warp.Marker) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.warpMap.SetMarkers(ms)
}

// Sample2Time maps a raw sample position to performance time.
func (e *Engine) Sample2Time(sample int) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.warpMap.Sample2Time(sample)
}

// Time2Sample maps performance time to a raw sample position.
func (e *Engine) Time2Sample(sec float64) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.warpMap.Time2Sample(sec)
}

// Time2PitchBend returns the pitch bend in semitones at performance time.
func (e *Engine) Time2PitchBend(sec float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.warpMap.Time2PitchBend(sec)
}

// Duration returns the warped duration of the loaded buffer in seconds.
func (e *Engine) Duration() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.warpMap.Duration()
}

// RangeMinMax returns the waveform extrema of data[start:end).
func (e *Engine) RangeMinMax(start, end int) (float32, float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pyramid == nil {
		return 0, 0
	}
	return e.pyramid.RangeMinMax(start, end)
}
