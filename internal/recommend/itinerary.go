package recommend

import (
	"fmt"

	"github.com/couchcryptid/heritage-explorer/internal/domain"
)

const (
	costPerSite           = 2000
	shortTripDays         = 3
	shortTripAccess       = 0.7
	offbeatUtilization    = 0.5
	budgetMaintenance     = 1_000_000
	maxSpecialExperiences = 3
)

// fallbackState supplies the best travel time when nothing is selected.
const fallbackState = "Delhi"

// ItinerarySite is one stop on a generated itinerary.
type ItinerarySite struct {
	SiteName      string  `json:"site_name"`
	State         string  `json:"state"`
	Type          string  `json:"type"`
	Accessibility float64 `json:"accessibility_score"`
}

// Itinerary is a generated trip plan.
type Itinerary struct {
	Preferences        Preferences     `json:"preferences"`
	Sites              []ItinerarySite `json:"sites"`
	TotalDuration      int             `json:"total_duration"`
	EstimatedCost      float64         `json:"estimated_cost"`
	BestTime           string          `json:"best_time"`
	SpecialExperiences []string        `json:"special_experiences"`
}

// FilterSites applies the preference rule chain: short trips need
// accessibility above 0.7, UNESCO interest keeps Inscribed sites, off-beat
// interest keeps utilization below 0.5, and the Budget tier keeps annual
// maintenance cost below 1,000,000.
func FilterSites(p Preferences, sites []domain.HeritageSite) []domain.HeritageSite {
	var out []domain.HeritageSite
	for _, s := range sites {
		if p.Duration <= shortTripDays && s.AccessibilityScore <= shortTripAccess {
			continue
		}
		switch p.Interest {
		case InterestUNESCO:
			if s.UNESCOStatus != domain.UNESCOInscribed {
				continue
			}
		case InterestOffbeat:
			if s.CurrentUtilization >= offbeatUtilization {
				continue
			}
		}
		if p.Budget == BudgetLow && s.AnnualMaintenanceCost >= budgetMaintenance {
			continue
		}
		out = append(out, s)
	}
	return out
}

// EstimateCost is sites × 2000 × the budget multiplier.
func EstimateCost(sites int, budget BudgetTier) float64 {
	return float64(sites*costPerSite) * budget.Multiplier()
}

// GenerateItinerary validates preferences, filters sites, and selects up to
// Duration of them. An empty pool yields an empty, zero-cost itinerary.
func GenerateItinerary(p Preferences, sites []domain.HeritageSite, arts []domain.ArtForm, sel Selector) (Itinerary, error) {
	if err := p.Validate(); err != nil {
		return Itinerary{}, err
	}
	if sel == nil {
		sel = TopAccessibility{}
	}

	chosen := sel.Select(FilterSites(p, sites), p.Duration)

	it := Itinerary{
		Preferences:        p,
		Sites:              make([]ItinerarySite, 0, len(chosen)),
		TotalDuration:      p.Duration,
		EstimatedCost:      EstimateCost(len(chosen), p.Budget),
		SpecialExperiences: SpecialExperiences(chosen, arts),
	}
	for _, s := range chosen {
		it.Sites = append(it.Sites, ItinerarySite{
			SiteName:      s.SiteName,
			State:         s.State,
			Type:          s.Type,
			Accessibility: s.AccessibilityScore,
		})
	}

	bestState := fallbackState
	if len(chosen) > 0 {
		bestState = chosen[0].State
	}
	it.BestTime = domain.BestTravelTime(bestState)
	return it, nil
}

// SpecialExperiences suggests one performance per represented state in
// itinerary order, using the art form with the most practitioners, capped
// at three.
func SpecialExperiences(sites []domain.HeritageSite, arts []domain.ArtForm) []string {
	best := map[string]domain.ArtForm{}
	for _, a := range arts {
		cur, ok := best[a.State]
		if !ok || a.Practitioners > cur.Practitioners {
			best[a.State] = a
		}
	}

	out := []string{}
	seen := map[string]bool{}
	for _, s := range sites {
		if len(out) == maxSpecialExperiences {
			break
		}
		if seen[s.State] {
			continue
		}
		seen[s.State] = true
		if a, ok := best[s.State]; ok {
			out = append(out, fmt.Sprintf("%s performance in %s", a.ArtForm, s.State))
		}
	}
	return out
}
