// SPDX-License-Identifier: EPL-2.0

package grain

import "sort"

// estimateEvery is how far the build cursor advances before the grain length
// is re-estimated.
const estimateEvery = 8192

// Grain is a zero-crossing-bounded slice of the source buffer, addressed as
// indices into the shared immutable buffer rather than a copy. Drift is how
// far the terminating crossing landed from the estimated grain size.
type Grain struct {
	Start  int
	Length int
	Drift  int
}

// End returns the index one past the last sample of the grain.
func (g Grain) End() int { return g.Start + g.Length }

// LengthEstimator supplies the desired grain length at a buffer offset.
type LengthEstimator interface {
	GrainLength(start int) int
}

// Table holds the grains of a buffer in start order. Consecutive grains tile
// the covered region without gaps or overlaps; the buffer tail past the last
// usable zero crossing is left unsegmented.
type Table struct {
	grains []Grain
}

// Build segments data into grains. From each grain start it scans outward
// around start+grainSize for a negative-to-non-negative zero crossing,
// falling back to a linear forward scan from 1.5x the grain size. When
// neither scan finds a crossing the table ends; that is not an error.
func Build(data []float32, est LengthEstimator) *Table {
	t := &Table{}
	if len(data) == 0 {
		return t
	}

	start := 0
	grainSize := est.GrainLength(0)
	nextEstimation := estimateEvery

	for start < len(data)-grainSize-1 {
		found := false
		for i := 0; i < grainSize; i++ {
			off := i / 2
			if i%2 != 0 {
				off = -off
			}
			idx := start + grainSize + off
			if idx < 0 || idx+1 >= len(data) {
				continue
			}
			if data[idx] < 0 && data[idx+1] >= 0 {
				t.grains = append(t.grains, Grain{Start: start, Length: idx - start, Drift: idx - start - grainSize})
				start = idx
				found = true
				break
			}
		}
		if !found {
			for idx := start + grainSize + grainSize/2; idx+1 < len(data); idx++ {
				if data[idx] < 0 && data[idx+1] >= 0 {
					t.grains = append(t.grains, Grain{Start: start, Length: idx - start, Drift: idx - start - grainSize})
					start = idx
					found = true
					break
				}
			}
		}
		if !found {
			break
		}
		if start > nextEstimation {
			nextEstimation += estimateEvery
			grainSize = est.GrainLength(start)
		}
	}

	return t
}

// At returns the first grain whose start is at or after sample.
func (t *Table) At(sample int) (Grain, bool) {
	i := sort.Search(len(t.grains), func(i int) bool {
		return t.grains[i].Start >= sample
	})
	if i == len(t.grains) {
		return Grain{}, false
	}
	return t.grains[i], true
}

// Len returns the number of grains.
func (t *Table) Len() int { return len(t.grains) }

// Grains returns the grains in start order. The slice is shared; callers
// must not mutate it.
func (t *Table) Grains() []Grain { return t.grains }

// Covered returns the index one past the last segmented sample, i.e. the end
// of the last grain.
func (t *Table) Covered() int {
	if len(t.grains) == 0 {
		return 0
	}
	return t.grains[len(t.grains)-1].End()
}
