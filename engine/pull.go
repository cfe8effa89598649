// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"math"

	"github.com/karlingen/melonix/analysis"
	"github.com/karlingen/melonix/grain"
	"github.com/karlingen/melonix/utils"
)

const (
	// lookahead is how far the pending queue is filled past a pull,
	// equal to the nominal grain size.
	lookahead = analysis.TargetGrainSize

	// stopFadeLen is the length of the fade applied to the pending tail
	// when playback stops mid-grain.
	stopFadeLen = 100
)

// Pull renders len(dst) samples of the performance into dst. It is the
// audio-callback entry point: it blocks only on the engine lock and never
// propagates errors. Running out of grains or an out-of-range cursor is
// normal end of content and flips the transport to stopped.
func (e *Engine) Pull(dst []float32) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cursor < 0 || e.cursor >= e.warpMap.Duration() {
		e.playing = false
	}

	if !e.playing {
		e.emitStopped(dst)
		return
	}

	e.refill(len(dst))

	n := min(len(dst), len(e.pending))
	copy(dst, e.pending[:n])
	copy(e.pending, e.pending[n:])
	e.pending = e.pending[:len(e.pending)-n]
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
	e.cursor += float64(n) / float64(e.sampleRate)
}

// emitStopped writes silence, easing the abandoned pending tail down across
// the leading samples so stopping mid-grain does not click.
func (e *Engine) emitStopped(dst []float32) {
	for i := range dst {
		dst[i] = 0
	}

	fade := min(stopFadeLen, len(dst), len(e.pending))
	for i := 0; i < fade; i++ {
		dst[i] = e.pending[i] * float32(stopFadeLen-i) / float32(stopFadeLen)
	}

	e.pending = e.pending[:0]
	e.havePrev = false
	e.bias = 0
}

// refill extends the pending queue until it holds dur plus one nominal grain
// of lookahead.
func (e *Engine) refill(dur int) {
	tmpCursor := e.cursor
	queueOffset := len(e.pending)

	for len(e.pending) < dur+lookahead {
		samplePos := e.warpMap.Time2Sample(tmpCursor) + queueOffset
		bend := e.warpMap.Time2PitchBend(tmpCursor)
		rate := math.Pow(2, bend/12)

		g, ok := e.grains.At(samplePos)
		if !ok {
			// ran past the last grain: end of content
			e.playing = false
			return
		}

		produced := e.renderGrain(g, rate, tmpCursor)
		if produced == 0 {
			e.playing = false
			return
		}
		tmpCursor += float64(produced) / float64(e.sampleRate)
	}
}

// renderGrain resamples one grain at the given rate onto the pending queue
// and returns the number of samples the queue grew by.
//
// A grain contiguous with the previously rendered one appends directly; the
// fractional phase carried in bias keeps the transition seamless. A
// discontinuous grain (a splice) crossfades over a randomized overlap of the
// queue tail with equal-power weights, which masks the periodicity a fixed
// overlap would expose.
func (e *Engine) renderGrain(g grain.Grain, rate, tmpCursor float64) int {
	startBias := e.bias

	// number of output samples this grain yields at the current rate
	outLen := 0
	for int(float64(outLen)*rate+startBias) < g.Length {
		outLen++
	}

	// Interpolating the final sample needs one sample past the grain end;
	// use the first sample of the grain playback moves to next.
	nextFirst := e.nextGrainFirstSample(tmpCursor, outLen)

	sampleAt := func(i int) float32 {
		pos := float64(i)*rate + startBias
		idx := int(pos)
		next := nextFirst
		if idx+1 < g.Length {
			next = e.data[g.Start+idx+1]
		}
		return utils.LinearInterpolate(e.data[g.Start+idx], next, pos-float64(idx))
	}

	contiguous := e.havePrev && g.Start == e.prevEnd
	e.prevEnd = g.End()
	e.havePrev = true
	e.bias = float64(outLen)*rate + startBias - float64(g.Length)

	if contiguous || len(e.pending) == 0 {
		for i := 0; i < outLen; i++ {
			e.pending = append(e.pending, sampleAt(i))
		}
		return outLen
	}

	// splice
	overlap := (float64(e.rng.Intn(200)) + 700) / 1000
	overlapSamples := int(float64(g.Length) / rate * overlap)
	wavIdx := 0
	if len(e.pending) > overlapSamples {
		wavIdx = len(e.pending) - overlapSamples
	}

	produced := 0
	for i := 0; i < outLen; i++ {
		v := sampleAt(i)
		if wavIdx >= len(e.pending) {
			e.pending = append(e.pending, 0)
			produced++
		}

		idx := int(float64(i)*rate + startBias)
		if float64(idx) > float64(g.Length)*overlap {
			e.pending[wavIdx] = v
		} else {
			k := float64(idx) / (float64(g.Length) * overlap)
			e.pending[wavIdx] = float32(math.Sin((1-k)*math.Pi/2))*e.pending[wavIdx] +
				float32(math.Sin(k*math.Pi/2))*v
		}
		wavIdx++
	}
	return produced
}

// nextGrainFirstSample returns the first raw sample of the grain playback
// reaches after the current one, or 0 at the end of the table.
func (e *Engine) nextGrainFirstSample(tmpCursor float64, outLen int) float32 {
	next := e.warpMap.Time2Sample(tmpCursor + float64(outLen)/float64(e.sampleRate))
	g, ok := e.grains.At(next)
	if !ok {
		return 0
	}
	return e.data[g.Start]
}
