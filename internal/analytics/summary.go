package analytics

import (
	"cmp"
	"slices"
	"time"

	"github.com/couchcryptid/heritage-explorer/internal/domain"
)

// QuickStats are the headline numbers of the dashboard.
type QuickStats struct {
	ArtForms              int     `json:"art_forms"`
	Sites                 int     `json:"heritage_sites"`
	TotalVisitors         int     `json:"total_visitors"`
	Festivals             int     `json:"festivals"`
	EndangeredArtForms    int     `json:"endangered_art_forms"`
	UNESCOSites           int     `json:"unesco_sites"`
	AverageSustainability float64 `json:"average_sustainability"`
	TotalRevenue          float64 `json:"total_revenue"`
}

// Count is a labelled tally.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// StateScore is a per-state mean.
type StateScore struct {
	State string  `json:"state"`
	Score float64 `json:"score"`
}

// Summary is the dashboard landing payload.
type Summary struct {
	Stats      QuickStats `json:"stats"`
	ByCategory []Count    `json:"art_forms_by_category"`
	ByRisk     []Count    `json:"art_forms_by_risk"`
}

// Summarize computes the quick stats and the two art form distributions.
// Festivals are counted by distinct name. Average sustainability is the mean
// of per-site means.
func Summarize(t domain.Tables) Summary {
	s := QuickStats{
		ArtForms: len(t.ArtForms),
		Sites:    len(t.Sites),
	}

	for _, a := range t.ArtForms {
		if a.RiskLevel == domain.RiskEndangered {
			s.EndangeredArtForms++
		}
	}
	for _, site := range t.Sites {
		if site.UNESCOStatus == domain.UNESCOInscribed {
			s.UNESCOSites++
		}
	}
	for _, r := range t.Tourism {
		s.TotalVisitors += r.TotalVisitors()
		s.TotalRevenue += r.Revenue
	}

	names := map[string]struct{}{}
	for _, f := range t.Festivals {
		names[f.Festival] = struct{}{}
	}
	s.Festivals = len(names)

	if metrics := SustainabilityMetrics(t.Tourism); len(metrics) > 0 {
		var sum float64
		for _, m := range metrics {
			sum += m.Sustainability
		}
		s.AverageSustainability = sum / float64(len(metrics))
	}

	return Summary{
		Stats:      s,
		ByCategory: countBy(t.ArtForms, func(a domain.ArtForm) string { return a.Category }),
		ByRisk:     countBy(t.ArtForms, func(a domain.ArtForm) string { return string(a.RiskLevel) }),
	}
}

// EndangeredByState counts endangered art forms per state, top five.
func EndangeredByState(arts []domain.ArtForm) []Count {
	var endangered []domain.ArtForm
	for _, a := range arts {
		if a.RiskLevel == domain.RiskEndangered {
			endangered = append(endangered, a)
		}
	}
	return head(countBy(endangered, func(a domain.ArtForm) string { return a.State }), 5)
}

// DigitalPresenceByState returns mean digital presence per state sorted
// descending, then state.
func DigitalPresenceByState(sites []domain.HeritageSite) []StateScore {
	type acc struct {
		sum float64
		n   int
	}
	byState := map[string]*acc{}
	for _, s := range sites {
		a, ok := byState[s.State]
		if !ok {
			a = &acc{}
			byState[s.State] = a
		}
		a.sum += s.DigitalPresenceScore.Or(0)
		a.n++
	}

	out := make([]StateScore, 0, len(byState))
	for state, a := range byState {
		out = append(out, StateScore{State: state, Score: a.sum / float64(a.n)})
	}
	slices.SortFunc(out, func(a, b StateScore) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.State, b.State)
	})
	return out
}

// LowestDigitalPresence returns the five states with the weakest mean
// digital presence, weakest first.
func LowestDigitalPresence(sites []domain.HeritageSite) []StateScore {
	all := DigitalPresenceByState(sites)
	slices.Reverse(all)
	return head(all, 5)
}

// FestivalImpact aggregates one festival across its states.
type FestivalImpact struct {
	Festival             string  `json:"festival"`
	EconomicImpact       int     `json:"economic_impact"`
	ExpectedVisitors     int     `json:"expected_visitors"`
	CulturalSignificance float64 `json:"cultural_significance_score"`
	States               int     `json:"states"`
}

// FestivalImpacts returns the ten festivals with the largest summed
// economic impact.
func FestivalImpacts(festivals []domain.Festival) []FestivalImpact {
	byName := map[string]*FestivalImpact{}
	for _, f := range festivals {
		fi, ok := byName[f.Festival]
		if !ok {
			fi = &FestivalImpact{Festival: f.Festival}
			byName[f.Festival] = fi
		}
		fi.EconomicImpact += f.EconomicImpact
		fi.ExpectedVisitors += f.ExpectedVisitors
		fi.CulturalSignificance += f.CulturalSignificanceScore
		fi.States++
	}

	out := make([]FestivalImpact, 0, len(byName))
	for _, fi := range byName {
		fi.CulturalSignificance /= float64(fi.States)
		out = append(out, *fi)
	}
	slices.SortFunc(out, func(a, b FestivalImpact) int {
		if c := cmp.Compare(b.EconomicImpact, a.EconomicImpact); c != 0 {
			return c
		}
		return cmp.Compare(a.Festival, b.Festival)
	})
	return head(out, 10)
}

// MonthlyVisitors is one calendar month of summed visitors.
type MonthlyVisitors struct {
	Month         time.Time `json:"month"`
	Domestic      int       `json:"domestic_visitors"`
	International int       `json:"international_visitors"`
}

// VisitorSeries sums dated tourism rows per month in chronological order.
func VisitorSeries(tourism []domain.TourismRecord) []MonthlyVisitors {
	byMonth := map[time.Time]*MonthlyVisitors{}
	for _, r := range tourism {
		if !r.Date.Set {
			continue
		}
		m, ok := byMonth[r.Date.Value]
		if !ok {
			m = &MonthlyVisitors{Month: r.Date.Value}
			byMonth[r.Date.Value] = m
		}
		m.Domestic += r.DomesticVisitors
		m.International += r.InternationalVisitors
	}

	out := make([]MonthlyVisitors, 0, len(byMonth))
	for _, m := range byMonth {
		out = append(out, *m)
	}
	slices.SortFunc(out, func(a, b MonthlyVisitors) int { return a.Month.Compare(b.Month) })
	return out
}

// Insights groups the conservation priorities shown on the insights page.
type Insights struct {
	EndangeredByState []Count      `json:"endangered_by_state"`
	LowDigital        []StateScore `json:"low_digital_presence"`
}

// BuildInsights collects the endangered and low-digital breakdowns.
func BuildInsights(t domain.Tables) Insights {
	return Insights{
		EndangeredByState: EndangeredByState(t.ArtForms),
		LowDigital:        LowestDigitalPresence(t.Sites),
	}
}

func countBy[T any](rows []T, key func(T) string) []Count {
	counts := map[string]int{}
	for _, r := range rows {
		counts[key(r)]++
	}
	out := make([]Count, 0, len(counts))
	for label, n := range counts {
		out = append(out, Count{Label: label, Count: n})
	}
	slices.SortFunc(out, func(a, b Count) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return out
}

func head[T any](rows []T, n int) []T {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}
