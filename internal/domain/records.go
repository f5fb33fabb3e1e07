package domain

import (
	"time"

	"github.com/goccy/go-json"
)

// RiskLevel classifies how threatened a traditional art form is.
type RiskLevel string

const (
	RiskSafe       RiskLevel = "Safe"
	RiskVulnerable RiskLevel = "Vulnerable"
	RiskEndangered RiskLevel = "Endangered"
)

// UNESCOStatus is a site's World Heritage classification.
type UNESCOStatus string

const (
	UNESCOInscribed UNESCOStatus = "Inscribed"
	UNESCOTentative UNESCOStatus = "Tentative"
	UNESCONone      UNESCOStatus = "None"
)

// ConservationStatus grades the physical state of a heritage site.
type ConservationStatus string

const (
	ConservationExcellent ConservationStatus = "Excellent"
	ConservationGood      ConservationStatus = "Good"
	ConservationFair      ConservationStatus = "Fair"
	ConservationPoor      ConservationStatus = "Poor"
)

// WellPreserved reports whether the site is in Excellent or Good condition.
func (c ConservationStatus) WellPreserved() bool {
	return c == ConservationExcellent || c == ConservationGood
}

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ArtForm is one traditional art form practised in a state.
type ArtForm struct {
	State            string            `json:"state"`
	ArtForm          string            `json:"art_form"`
	Category         string            `json:"category"`
	Practitioners    int               `json:"practitioners"`
	RiskLevel        RiskLevel         `json:"risk_level"`
	AgeYears         int               `json:"age_years"`
	UNESCORecognized bool              `json:"unesco_recognized"`
	Latitude         Optional[float64] `json:"latitude"`
	Longitude        Optional[float64] `json:"longitude"`
}

// TourismRecord holds one month of visitor statistics for a site.
type TourismRecord struct {
	Site                  string              `json:"site"`
	State                 string              `json:"state"`
	Date                  Optional[time.Time] `json:"date"`
	DomesticVisitors      int                 `json:"domestic_visitors"`
	InternationalVisitors int                 `json:"international_visitors"`
	Revenue               float64             `json:"revenue"`
	SustainabilityScore   float64             `json:"sustainability_score"`
	CrowdingIndex         float64             `json:"crowding_index"`
	Latitude              Optional[float64]   `json:"latitude"`
	Longitude             Optional[float64]   `json:"longitude"`
}

// TotalVisitors is domestic plus international visitors.
func (r TourismRecord) TotalVisitors() int {
	return r.DomesticVisitors + r.InternationalVisitors
}

// MarshalJSON adds the derived total_visitors column.
func (r TourismRecord) MarshalJSON() ([]byte, error) {
	type plain TourismRecord
	return json.Marshal(struct {
		plain
		TotalVisitors int `json:"total_visitors"`
	}{plain(r), r.TotalVisitors()})
}

// HeritageSite is a monument, temple, fort or similar cultural landmark.
type HeritageSite struct {
	SiteName              string             `json:"site_name"`
	State                 string             `json:"state"`
	Type                  string             `json:"type"`
	EstablishmentYear     int                `json:"establishment_year"`
	UNESCOStatus          UNESCOStatus       `json:"unesco_status"`
	ConservationStatus    ConservationStatus `json:"conservation_status"`
	AnnualMaintenanceCost int                `json:"annual_maintenance_cost"`
	VisitorCapacity       int                `json:"visitor_capacity"`
	CurrentUtilization    float64            `json:"current_utilization"`
	AccessibilityScore    float64            `json:"accessibility_score"`
	DigitalPresenceScore  Optional[float64]  `json:"digital_presence_score"`
	Latitude              Optional[float64]  `json:"latitude"`
	Longitude             Optional[float64]  `json:"longitude"`
}

// Coordinates returns the site location once both coordinates are known.
func (s HeritageSite) Coordinates() (Geo, bool) {
	if !s.Latitude.Set || !s.Longitude.Set {
		return Geo{}, false
	}
	return Geo{Lat: s.Latitude.Value, Lon: s.Longitude.Value}, true
}

// Festival is a festival celebrated in one state. A festival celebrated in
// several states appears once per state.
type Festival struct {
	Festival                  string  `json:"festival"`
	State                     string  `json:"state"`
	DurationDays              int     `json:"duration_days"`
	ExpectedVisitors          int     `json:"expected_visitors"`
	EconomicImpact            int     `json:"economic_impact"`
	CulturalSignificanceScore float64 `json:"cultural_significance_score"`
	TourismPotentialScore     float64 `json:"tourism_potential_score"`
	Month                     int     `json:"month"`
}

// Tables is the full set of base tables served to the dashboard.
type Tables struct {
	ArtForms  []ArtForm       `json:"art_forms"`
	Tourism   []TourismRecord `json:"tourism"`
	Sites     []HeritageSite  `json:"sites"`
	Festivals []Festival      `json:"festivals"`
}

// Dataset is the request-scoped data context: ingested tables plus where they
// came from. Every computation receives it explicitly; nothing is cached
// between requests.
type Dataset struct {
	Tables
	Provenance map[string]string `json:"provenance"`
	Report     IngestReport      `json:"ingest"`
	LoadedAt   time.Time         `json:"loaded_at"`
}

// Table names used for provenance, metrics and warehouse queries.
const (
	TableArtForms  = "art_forms"
	TableTourism   = "tourism"
	TableSites     = "sites"
	TableFestivals = "festivals"
)
