package analytics

import (
	"cmp"
	"slices"

	"github.com/couchcryptid/heritage-explorer/internal/domain"
)

// MonthlyAverage is the mean total visitors per tourism row for a month.
type MonthlyAverage struct {
	Month         int     `json:"month"`
	Season        string  `json:"season"`
	TotalVisitors float64 `json:"total_visitors"`
}

// SiteYearGrowth is one site's annual total and its change on the prior year.
type SiteYearGrowth struct {
	Site          string                   `json:"site"`
	Year          int                      `json:"year"`
	TotalVisitors int                      `json:"total_visitors"`
	GrowthRate    domain.Optional[float64] `json:"growth_rate"`
}

// YearGrowth is the mean growth rate across sites for a year.
type YearGrowth struct {
	Year       int     `json:"year"`
	GrowthRate float64 `json:"growth_rate"`
	Sites      int     `json:"sites"`
}

// Trends holds seasonal and growth analysis over dated tourism rows.
type Trends struct {
	Availability
	Seasonal []MonthlyAverage `json:"seasonal"`
	Growth   []SiteYearGrowth `json:"growth"`
	Yearly   []YearGrowth     `json:"yearly"`
}

// TourismTrends computes monthly means and year-over-year growth (percent).
// Undated rows are ignored; with no dated rows the result is unavailable.
func TourismTrends(tourism []domain.TourismRecord) Trends {
	type siteYear struct {
		site string
		year int
	}
	var monthSum [13]float64
	var monthN [13]int
	annual := map[siteYear]int{}

	dated := 0
	for _, r := range tourism {
		if !r.Date.Set {
			continue
		}
		dated++
		m := int(r.Date.Value.Month())
		monthSum[m] += float64(r.TotalVisitors())
		monthN[m]++
		annual[siteYear{r.Site, r.Date.Value.Year()}] += r.TotalVisitors()
	}
	if dated == 0 {
		return Trends{Availability: unavailable("no dated tourism records")}
	}

	t := Trends{Availability: available()}
	for m := 1; m <= 12; m++ {
		if monthN[m] == 0 {
			continue
		}
		t.Seasonal = append(t.Seasonal, MonthlyAverage{
			Month:         m,
			Season:        domain.Season(m),
			TotalVisitors: monthSum[m] / float64(monthN[m]),
		})
	}

	for k, total := range annual {
		t.Growth = append(t.Growth, SiteYearGrowth{Site: k.site, Year: k.year, TotalVisitors: total})
	}
	slices.SortFunc(t.Growth, func(a, b SiteYearGrowth) int {
		if c := cmp.Compare(a.Site, b.Site); c != 0 {
			return c
		}
		return cmp.Compare(a.Year, b.Year)
	})

	type yearAcc struct {
		sum float64
		n   int
	}
	years := map[int]*yearAcc{}
	for i := 1; i < len(t.Growth); i++ {
		prev, cur := t.Growth[i-1], &t.Growth[i]
		if prev.Site != cur.Site || prev.TotalVisitors == 0 {
			continue
		}
		rate := float64(cur.TotalVisitors-prev.TotalVisitors) / float64(prev.TotalVisitors) * 100
		cur.GrowthRate = domain.Some(rate)

		y, ok := years[cur.Year]
		if !ok {
			y = &yearAcc{}
			years[cur.Year] = y
		}
		y.sum += rate
		y.n++
	}

	for year, y := range years {
		t.Yearly = append(t.Yearly, YearGrowth{Year: year, GrowthRate: y.sum / float64(y.n), Sites: y.n})
	}
	slices.SortFunc(t.Yearly, func(a, b YearGrowth) int { return cmp.Compare(a.Year, b.Year) })
	return t
}
