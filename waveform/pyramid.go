// SPDX-License-Identifier: EPL-2.0

package waveform

import "math"

// Extent is the (min, max) pair of a range of samples.
type Extent struct {
	Min float32
	Max float32
}

func (e Extent) merge(o Extent) Extent {
	if o.Min < e.Min {
		e.Min = o.Min
	}
	if o.Max > e.Max {
		e.Max = o.Max
	}
	return e
}

// Pyramid is a bottom-up min/max reduction over a sample buffer. Level 0
// holds the (min,max) of adjacent sample pairs, each higher level the
// pairwise reduction of the one below, so level L summarizes runs of 2^(L+1)
// samples. Queries run in O(log n).
//
// The pyramid references the buffer it was built from and must be rebuilt
// whenever the buffer changes.
type Pyramid struct {
	data   []float32
	levels [][]Extent
}

// Build constructs the pyramid for data in O(n) total work.
func Build(data []float32) *Pyramid {
	p := &Pyramid{data: data}

	if len(data) <= 2 {
		return p
	}

	level := make([]Extent, 0, len(data)/2)
	for i := 0; i < len(data)/2; i++ {
		a, b := data[i*2], data[i*2+1]
		if a < b {
			level = append(level, Extent{Min: a, Max: b})
		} else {
			level = append(level, Extent{Min: b, Max: a})
		}
	}
	p.levels = append(p.levels, level)

	for lvl := 1; len(data) > 1<<(lvl+1); lvl++ {
		prev := p.levels[lvl-1]
		level := make([]Extent, 0, len(data)/(1<<(lvl+1)))
		for i := 0; i < len(data)/(1<<(lvl+1)); i++ {
			level = append(level, prev[i*2].merge(prev[i*2+1]))
		}
		p.levels = append(p.levels, level)
	}

	return p
}

// RangeMinMax returns the extrema of data[start:end). Out-of-bounds queries
// return (0,0); a degenerate range returns the single sample at start. The
// recursion seeds from the largest pyramid cell containing start, which may
// reach slightly left of start at the top level, then resolves the leftover
// partial ranges exactly.
func (p *Pyramid) RangeMinMax(start, end int) (float32, float32) {
	e := p.rangeExtent(start, end)
	return e.Min, e.Max
}

func (p *Pyramid) rangeExtent(start, end int) Extent {
	if start >= end {
		if start >= 0 && start < len(p.data) {
			return Extent{Min: p.data[start], Max: p.data[start]}
		}
		return Extent{}
	}
	if start < 0 || end < 0 || start >= len(p.data) || end > len(p.data) {
		return Extent{}
	}
	if end-start == 1 {
		return Extent{Min: p.data[start], Max: p.data[start]}
	}

	lvl := int(math.Log2(float64(end - start)))
	cell := start >> lvl

	var e Extent
	if lvl-1 < len(p.levels) && cell < len(p.levels[lvl-1]) {
		e = p.levels[lvl-1][cell]
	}

	if leftEnd := cell << lvl; leftEnd >= start {
		e = e.merge(p.rangeExtent(start, leftEnd))
	}
	if rightStart := (cell + 1) << lvl; rightStart < end {
		e = e.merge(p.rangeExtent(rightStart, end))
	}
	return e
}

// Len returns the number of pyramid levels.
func (p *Pyramid) Len() int { return len(p.levels) }
