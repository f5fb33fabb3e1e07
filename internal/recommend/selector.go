package recommend

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/couchcryptid/heritage-explorer/internal/domain"
)

// Selector picks n sites from a filtered pool. Implementations must not
// modify pool.
type Selector interface {
	Select(pool []domain.HeritageSite, n int) []domain.HeritageSite
}

// TopAccessibility picks the n most accessible sites, ties broken by name.
type TopAccessibility struct{}

func (TopAccessibility) Select(pool []domain.HeritageSite, n int) []domain.HeritageSite {
	sorted := slices.Clone(pool)
	slices.SortFunc(sorted, func(a, b domain.HeritageSite) int {
		if c := cmp.Compare(b.AccessibilityScore, a.AccessibilityScore); c != 0 {
			return c
		}
		return cmp.Compare(a.SiteName, b.SiteName)
	})
	return sorted[:min(n, len(sorted))]
}

// RandomSample draws n sites uniformly without replacement. The same seed
// and pool always produce the same sample.
type RandomSample struct {
	Seed uint64
}

func (r RandomSample) Select(pool []domain.HeritageSite, n int) []domain.HeritageSite {
	rng := rand.New(rand.NewPCG(r.Seed, r.Seed))
	shuffled := slices.Clone(pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:min(n, len(shuffled))]
}

// Selection names a Selector for configuration and query parameters.
type Selection string

const (
	SelectionTop    Selection = "top"
	SelectionSample Selection = "sample"
)

// NewSelector maps a selection name to a Selector. Unknown names fall back
// to TopAccessibility.
func NewSelector(s Selection, seed uint64) Selector {
	if s == SelectionSample {
		return RandomSample{Seed: seed}
	}
	return TopAccessibility{}
}
