package analytics

import (
	"cmp"
	"slices"

	"github.com/couchcryptid/heritage-explorer/internal/domain"
)

const (
	gemMinAccessibility = 0.6
	gemMaxUtilization   = 0.5
	gemLimit            = 10
)

// HiddenGem is a well-preserved, accessible, under-visited site.
type HiddenGem struct {
	SiteName           string                    `json:"site_name"`
	State              string                    `json:"state"`
	Type               string                    `json:"type"`
	ConservationStatus domain.ConservationStatus `json:"conservation_status"`
	Accessibility      float64                   `json:"accessibility_score"`
	Utilization        float64                   `json:"current_utilization"`
	DigitalPresence    float64                   `json:"digital_presence_score"`
	Visitors           int                       `json:"total_visitors"`
	VisitRank          int                       `json:"visit_rank"`
	Potential          float64                   `json:"potential_score"`
}

// GemPotential is 0.3·accessibility + 0.4·(1−utilization) + 0.3·digital.
func GemPotential(accessibility, utilization, digital float64) float64 {
	return 0.3*accessibility + 0.4*(1-utilization) + 0.3*digital
}

// HiddenGems filters sites in Excellent or Good condition with
// accessibility above 0.6 and utilization below 0.5, keeps only those with
// tourism rows, and returns the top 10 by potential. VisitRank is a dense
// rank over every tourism site's visitor total, 1 being the most visited.
func HiddenGems(sites []domain.HeritageSite, tourism []domain.TourismRecord) []HiddenGem {
	visitors := map[string]int{}
	for _, r := range tourism {
		visitors[r.Site] += r.TotalVisitors()
	}

	ranks := denseRank(visitors)

	var gems []HiddenGem
	for _, s := range sites {
		if !s.ConservationStatus.WellPreserved() ||
			s.AccessibilityScore <= gemMinAccessibility ||
			s.CurrentUtilization >= gemMaxUtilization {
			continue
		}
		total, ok := visitors[s.SiteName]
		if !ok {
			continue
		}
		digital := s.DigitalPresenceScore.Or(0)
		gems = append(gems, HiddenGem{
			SiteName:           s.SiteName,
			State:              s.State,
			Type:               s.Type,
			ConservationStatus: s.ConservationStatus,
			Accessibility:      s.AccessibilityScore,
			Utilization:        s.CurrentUtilization,
			DigitalPresence:    digital,
			Visitors:           total,
			VisitRank:          ranks[total],
			Potential:          GemPotential(s.AccessibilityScore, s.CurrentUtilization, digital),
		})
	}

	slices.SortFunc(gems, func(a, b HiddenGem) int {
		if c := cmp.Compare(b.Potential, a.Potential); c != 0 {
			return c
		}
		return cmp.Compare(a.SiteName, b.SiteName)
	})
	if len(gems) > gemLimit {
		gems = gems[:gemLimit]
	}
	return gems
}

// denseRank maps each distinct visitor total to its rank, highest first.
func denseRank(visitors map[string]int) map[int]int {
	totals := make([]int, 0, len(visitors))
	for _, v := range visitors {
		totals = append(totals, v)
	}
	slices.Sort(totals)
	totals = slices.Compact(totals)

	ranks := make(map[int]int, len(totals))
	for i, v := range totals {
		ranks[v] = len(totals) - i
	}
	return ranks
}
