package analytics

import (
	"cmp"
	"slices"

	"github.com/couchcryptid/heritage-explorer/internal/domain"
)

// revenuePerVisitorCeiling is the revenue per visitor that earns the full
// efficiency term.
const revenuePerVisitorCeiling = 200.0

// SiteSustainability aggregates a site's tourism rows.
type SiteSustainability struct {
	Site              string                   `json:"site"`
	State             string                   `json:"state"`
	Sustainability    float64                  `json:"sustainability_score"`
	Crowding          float64                  `json:"crowding_index"`
	Revenue           float64                  `json:"revenue"`
	Visitors          int                      `json:"total_visitors"`
	RevenuePerVisitor domain.Optional[float64] `json:"revenue_per_visitor"`
	Overall           float64                  `json:"overall_sustainability"`
}

// OverallSustainability combines the three components. A nil revenue per
// visitor contributes nothing. The result is clamped to [0,1].
func OverallSustainability(sustainability, crowding float64, revenuePerVisitor domain.Optional[float64]) float64 {
	efficiency := 0.0
	if revenuePerVisitor.Set {
		efficiency = clip(revenuePerVisitor.Value/revenuePerVisitorCeiling, 0, 1)
	}
	return clip(0.4*sustainability+0.3*(1-crowding)+0.3*efficiency, 0, 1)
}

// SustainabilityMetrics groups tourism rows by site. Sites with zero total
// visitors get no revenue per visitor. Output is sorted by site name.
func SustainabilityMetrics(tourism []domain.TourismRecord) []SiteSustainability {
	type acc struct {
		state       string
		sust, crowd float64
		n           int
		revenue     float64
		visitors    int
	}
	groups := map[string]*acc{}
	for _, r := range tourism {
		a, ok := groups[r.Site]
		if !ok {
			a = &acc{state: r.State}
			groups[r.Site] = a
		}
		a.sust += r.SustainabilityScore
		a.crowd += r.CrowdingIndex
		a.n++
		a.revenue += r.Revenue
		a.visitors += r.TotalVisitors()
	}

	out := make([]SiteSustainability, 0, len(groups))
	for site, a := range groups {
		s := SiteSustainability{
			Site:           site,
			State:          a.state,
			Sustainability: a.sust / float64(a.n),
			Crowding:       a.crowd / float64(a.n),
			Revenue:        a.revenue,
			Visitors:       a.visitors,
		}
		if a.visitors > 0 {
			s.RevenuePerVisitor = domain.Some(a.revenue / float64(a.visitors))
		}
		s.Overall = OverallSustainability(s.Sustainability, s.Crowding, s.RevenuePerVisitor)
		out = append(out, s)
	}

	slices.SortFunc(out, func(a, b SiteSustainability) int {
		return cmp.Compare(a.Site, b.Site)
	})
	return out
}

func clip(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
