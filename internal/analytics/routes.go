package analytics

import (
	"cmp"
	"slices"

	"github.com/couchcryptid/heritage-explorer/internal/domain"
)

const (
	minCircuitSites   = 3
	circuitKeySites   = 3
	circuitArtForms   = 3
	circuitSeason     = "October to March"
	circuitDifficulty = "Moderate"
)

// CulturalRoute is a multi-state circuit through one region.
type CulturalRoute struct {
	Region       string   `json:"region"`
	Name         string   `json:"route_name"`
	DurationDays int      `json:"duration_days"`
	KeySites     []string `json:"key_sites"`
	ArtForms     []string `json:"art_forms"`
	BestSeason   string   `json:"best_season"`
	Difficulty   string   `json:"difficulty"`
}

// CulturalRoutes proposes one circuit for each region holding at least three
// sites. Key sites are the three most accessible; art forms are the first
// three distinct names in table order. A state listed in two regions
// contributes to both.
func CulturalRoutes(sites []domain.HeritageSite, arts []domain.ArtForm) []CulturalRoute {
	var routes []CulturalRoute
	for _, region := range domain.Regions {
		var regionSites []domain.HeritageSite
		for _, s := range sites {
			if slices.Contains(region.States, s.State) {
				regionSites = append(regionSites, s)
			}
		}
		if len(regionSites) < minCircuitSites {
			continue
		}

		slices.SortStableFunc(regionSites, func(a, b domain.HeritageSite) int {
			return cmp.Compare(b.AccessibilityScore, a.AccessibilityScore)
		})
		keySites := make([]string, 0, circuitKeySites)
		for _, s := range head(regionSites, circuitKeySites) {
			keySites = append(keySites, s.SiteName)
		}

		var artForms []string
		for _, a := range arts {
			if len(artForms) == circuitArtForms {
				break
			}
			if slices.Contains(region.States, a.State) && !slices.Contains(artForms, a.ArtForm) {
				artForms = append(artForms, a.ArtForm)
			}
		}

		routes = append(routes, CulturalRoute{
			Region:       region.Name,
			Name:         region.Name + " Cultural Circuit",
			DurationDays: len(region.States),
			KeySites:     keySites,
			ArtForms:     artForms,
			BestSeason:   circuitSeason,
			Difficulty:   circuitDifficulty,
		})
	}
	return routes
}
