// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
)

const (
	// WindowSize is the FFT analysis window in samples.
	WindowSize = 8192
	// TargetGrainSize is the nominal grain length the estimator rounds to
	// whole pitch periods.
	TargetGrainSize = 1500

	lowCutoffHz = 20
)

// PeriodEstimator detects the dominant frequency of a buffer region and
// derives a grain length that holds a whole number of pitch periods.
// Integral-period grains are what keeps pitch-shifted resampling click-free.
//
// The estimator owns its analysis window and is constructed once per loaded
// buffer, then reused for every estimate.
type PeriodEstimator struct {
	data       []float32
	sampleRate int
	window     []float64
}

func NewPeriodEstimator(data []float32, sampleRate int) *PeriodEstimator {
	return &PeriodEstimator{
		data:       data,
		sampleRate: sampleRate,
		window:     make([]float64, WindowSize),
	}
}

// DominantFreq returns the dominant frequency in Hz of the window starting at
// the given sample offset. The result is floored at 1 Hz.
//
// The peak search runs in two passes to dodge octave errors on musical
// material: pass one finds the raw magnitude peak between a 20 Hz cutoff and
// a quarter of the usable band, pass two refines inside the narrowed band
// around the fourth harmonic. Behavior on noise or silence is best-effort.
func (p *PeriodEstimator) DominantFreq(start int) float64 {
	if len(p.data) == 0 {
		return 1
	}

	// Window past the buffer end is clamp-padded with the last sample.
	last := len(p.data) - 1
	for i := range p.window {
		j := start + i
		if j > last {
			j = last
		}
		p.window[i] = float64(p.data[j])
	}

	spectrum := fft.FFTReal(p.window)

	peak := lowCutoffHz * WindowSize / p.sampleRate
	best := 0.0
	for i := peak; i < WindowSize/2/4; i++ {
		v := math.Abs(real(spectrum[i])) + math.Abs(imag(spectrum[i]))
		if v > best {
			best = v
			peak = i
		}
	}

	// Refine around the fourth harmonic of the pass-one peak.
	peak = peak*4 - peak/4
	best = 0
	for i := peak; i < WindowSize/2; i++ {
		v := math.Abs(real(spectrum[i])) + math.Abs(imag(spectrum[i]))
		if v > best {
			best = v
			peak = i
		}
	}

	freq := float64(peak) * float64(p.sampleRate) / WindowSize / 4
	if freq < 1 {
		freq = 1
	}
	return freq
}

// GrainLength returns the grain length in samples at the given offset: the
// whole number of detected pitch periods nearest above the nominal grain
// size.
func (p *PeriodEstimator) GrainLength(start int) int {
	if len(p.data) == 0 {
		return TargetGrainSize
	}

	freq := p.DominantFreq(start)
	periods := math.Ceil(TargetGrainSize * freq / float64(p.sampleRate))
	return int(periods * float64(p.sampleRate) / freq)
}
