package source

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/heritage-explorer/internal/domain"
)

// row is one warehouse result row keyed by lower-case column name. A missing
// key means the column is absent from the table; a nil value is SQL NULL.
type row map[string]any

// floater matches driver decimal types such as duckdb.Decimal.
type floater interface {
	Float64() float64
}

func (r row) str(col string) string {
	switch v := r[col].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	default:
		if f, ok := r.num(col); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return ""
	}
}

// num reads a numeric column. NaN and infinities count as absent.
func (r row) num(col string) (float64, bool) {
	f, ok := r.rawNum(col)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func (r row) rawNum(col string) (float64, bool) {
	switch v := r[col].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case int16:
		return float64(v), true
	case int8:
		return float64(v), true
	case int:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uint32:
		return float64(v), true
	case *big.Int:
		f, _ := new(big.Float).SetInt(v).Float64()
		return f, true
	case floater:
		return v.Float64(), true
	case []byte:
		return parseFloat(string(v))
	case string:
		return parseFloat(v)
	default:
		return 0, false
	}
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}

func (r row) float(col string) float64 {
	f, _ := r.num(col)
	return f
}

func (r row) integer(col string) int {
	f, _ := r.num(col)
	return int(math.Round(f))
}

func (r row) optFloat(col string) domain.Optional[float64] {
	if f, ok := r.num(col); ok {
		return domain.Some(f)
	}
	return domain.Optional[float64]{}
}

func (r row) boolean(col string) bool {
	switch v := r[col].(type) {
	case bool:
		return v
	case string, []byte:
		b, _ := strconv.ParseBool(strings.TrimSpace(r.str(col)))
		return b
	default:
		f, ok := r.num(col)
		return ok && f != 0
	}
}

var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02", "2006-01"}

func (r row) timestamp(col string) domain.Optional[time.Time] {
	switch v := r[col].(type) {
	case time.Time:
		return domain.Some(v)
	case string, []byte:
		s := strings.TrimSpace(r.str(col))
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return domain.Some(t)
			}
		}
	}
	return domain.Optional[time.Time]{}
}

func artFormFromRow(r row) domain.ArtForm {
	return domain.ArtForm{
		State:            r.str("state"),
		ArtForm:          r.str("art_form"),
		Category:         r.str("category"),
		Practitioners:    r.integer("practitioners"),
		RiskLevel:        domain.RiskLevel(r.str("risk_level")),
		AgeYears:         r.integer("age_years"),
		UNESCORecognized: r.boolean("unesco_recognized"),
		Latitude:         r.optFloat("latitude"),
		Longitude:        r.optFloat("longitude"),
	}
}

func tourismFromRow(r row) domain.TourismRecord {
	return domain.TourismRecord{
		Site:                  r.str("site"),
		State:                 r.str("state"),
		Date:                  r.timestamp("date"),
		DomesticVisitors:      r.integer("domestic_visitors"),
		InternationalVisitors: r.integer("international_visitors"),
		Revenue:               r.float("revenue"),
		SustainabilityScore:   r.float("sustainability_score"),
		CrowdingIndex:         r.float("crowding_index"),
		Latitude:              r.optFloat("latitude"),
		Longitude:             r.optFloat("longitude"),
	}
}

func siteFromRow(r row) domain.HeritageSite {
	return domain.HeritageSite{
		SiteName:              r.str("site_name"),
		State:                 r.str("state"),
		Type:                  r.str("type"),
		EstablishmentYear:     r.integer("establishment_year"),
		UNESCOStatus:          domain.UNESCOStatus(r.str("unesco_status")),
		ConservationStatus:    domain.ConservationStatus(r.str("conservation_status")),
		AnnualMaintenanceCost: r.integer("annual_maintenance_cost"),
		VisitorCapacity:       r.integer("visitor_capacity"),
		CurrentUtilization:    r.float("current_utilization"),
		AccessibilityScore:    r.float("accessibility_score"),
		DigitalPresenceScore:  r.optFloat("digital_presence_score"),
		Latitude:              r.optFloat("latitude"),
		Longitude:             r.optFloat("longitude"),
	}
}

func festivalFromRow(r row) domain.Festival {
	return domain.Festival{
		Festival:                  r.str("festival"),
		State:                     r.str("state"),
		DurationDays:              r.integer("duration_days"),
		ExpectedVisitors:          r.integer("expected_visitors"),
		EconomicImpact:            r.integer("economic_impact"),
		CulturalSignificanceScore: r.float("cultural_significance_score"),
		TourismPotentialScore:     r.float("tourism_potential_score"),
		Month:                     r.integer("month"),
	}
}
