package portfolio

import "sort"

// DefaultRevealThreshold is the visible fraction that reveals a section.
const DefaultRevealThreshold = 0.15

// Fader remembers which sections have been revealed. Once revealed a
// section stays revealed.
type Fader struct {
	Threshold float64
	revealed  map[string]bool
}

// NewFader creates a fader. A non-positive threshold uses the default.
func NewFader(threshold float64) *Fader {
	if threshold <= 0 {
		threshold = DefaultRevealThreshold
	}
	return &Fader{Threshold: threshold, revealed: make(map[string]bool)}
}

// Observe records an intersection ratio for id and reports whether this
// observation revealed it.
func (f *Fader) Observe(id string, ratio float64) bool {
	if id == "" || f.revealed[id] || ratio < f.Threshold {
		return false
	}
	f.revealed[id] = true
	return true
}

// Revealed reports whether id has been revealed.
func (f *Fader) Revealed(id string) bool {
	return f.revealed[id]
}

// RevealedIDs returns the revealed ids, sorted.
func (f *Fader) RevealedIDs() []string {
	ids := make([]string, 0, len(f.revealed))
	for id := range f.revealed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
