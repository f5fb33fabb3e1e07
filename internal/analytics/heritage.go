package analytics

import (
	"cmp"
	"slices"

	"github.com/couchcryptid/heritage-explorer/internal/domain"
)

// Heritage index weights per counted item.
const (
	artWeight      = 0.3
	siteWeight     = 0.4
	festivalWeight = 0.3
	maxIndex       = 100
)

// StateIndex is one state's cultural heritage index.
type StateIndex struct {
	State     string  `json:"state"`
	ArtForms  int     `json:"art_forms"`
	Sites     int     `json:"sites"`
	Festivals int     `json:"festivals"`
	Index     float64 `json:"heritage_index"`
}

// HeritageIndex scores every state appearing in any of the three tables as
// min((arts·0.3 + sites·0.4 + festivals·0.3) / 3, 100). Rows are sorted by
// index descending, then state.
func HeritageIndex(arts []domain.ArtForm, sites []domain.HeritageSite, festivals []domain.Festival) []StateIndex {
	byState := map[string]*StateIndex{}
	row := func(state string) *StateIndex {
		r, ok := byState[state]
		if !ok {
			r = &StateIndex{State: state}
			byState[state] = r
		}
		return r
	}

	for _, a := range arts {
		row(a.State).ArtForms++
	}
	for _, s := range sites {
		row(s.State).Sites++
	}
	for _, f := range festivals {
		row(f.State).Festivals++
	}

	out := make([]StateIndex, 0, len(byState))
	for _, r := range byState {
		score := (float64(r.ArtForms)*artWeight + float64(r.Sites)*siteWeight + float64(r.Festivals)*festivalWeight) / 3
		r.Index = min(score, maxIndex)
		out = append(out, *r)
	}

	slices.SortFunc(out, func(a, b StateIndex) int {
		if c := cmp.Compare(b.Index, a.Index); c != 0 {
			return c
		}
		return cmp.Compare(a.State, b.State)
	})
	return out
}
