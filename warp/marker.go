// SPDX-License-Identifier: EPL-2.0

package warp

import "sort"

// Marker is a user-placed control point anchoring the time-warp and
// pitch-bend curves. Sample is the anchor position in the raw buffer, Note
// the display pitch, DTime the extra seconds inserted before the anchor and
// PitchBend the fractional-semitone offset at the anchor.
//
// The yaml tags define the project-file representation of a marker.
type Marker struct {
	Sample    int     `yaml:"sample"`
	Note      float64 `yaml:"note"`
	DTime     float64 `yaml:"dTime"`
	PitchBend float64 `yaml:"pitchBend"`
}

// sortMarkers orders markers ascending by sample position. Every mutation
// re-sorts before the memo tables are rebuilt.
func sortMarkers(ms []Marker) {
	sort.SliceStable(ms, func(i, j int) bool {
		return ms[i].Sample < ms[j].Sample
	})
}
