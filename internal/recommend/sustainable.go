package recommend

import (
	"cmp"
	"slices"
	"strings"

	"github.com/couchcryptid/heritage-explorer/internal/analytics"
	"github.com/couchcryptid/heritage-explorer/internal/domain"
)

const sustainableLimit = 10

// SustainableSite is a site recommended for low-impact tourism.
type SustainableSite struct {
	Site                string  `json:"site"`
	State               string  `json:"state"`
	SustainabilityScore float64 `json:"sustainability_score"`
	KeyFeatures         string  `json:"key_features"`
	VisitorTips         string  `json:"visitor_tips"`
}

// SustainableSites joins sites to their sustainability metrics by name and
// returns the ten highest overall scores. Sites without tourism data are
// dropped.
func SustainableSites(sites []domain.HeritageSite, metrics []analytics.SiteSustainability) []SustainableSite {
	overall := make(map[string]float64, len(metrics))
	for _, m := range metrics {
		overall[m.Site] = m.Overall
	}

	var out []SustainableSite
	for _, s := range sites {
		score, ok := overall[s.SiteName]
		if !ok {
			continue
		}
		out = append(out, SustainableSite{
			Site:                s.SiteName,
			State:               s.State,
			SustainabilityScore: score,
			KeyFeatures:         KeyFeatures(s),
			VisitorTips:         VisitorTips(s),
		})
	}

	slices.SortStableFunc(out, func(a, b SustainableSite) int {
		return cmp.Compare(b.SustainabilityScore, a.SustainabilityScore)
	})
	if len(out) > sustainableLimit {
		out = out[:sustainableLimit]
	}
	return out
}

// KeyFeatures lists a site's highlights, comma separated.
func KeyFeatures(s domain.HeritageSite) string {
	var f []string
	if s.UNESCOStatus == domain.UNESCOInscribed {
		f = append(f, "UNESCO World Heritage Site")
	}
	if s.AccessibilityScore > 0.8 {
		f = append(f, "Excellent Accessibility")
	}
	if s.ConservationStatus.WellPreserved() {
		f = append(f, "Well Preserved")
	}
	if s.DigitalPresenceScore.Or(0) > 0.7 {
		f = append(f, "Strong Digital Presence")
	}
	if len(f) == 0 {
		return "Historical Significance"
	}
	return strings.Join(f, ", ")
}

// VisitorTips gives practical advice, semicolon separated.
func VisitorTips(s domain.HeritageSite) string {
	var tips []string
	if s.CurrentUtilization > 0.8 {
		tips = append(tips, "Visit during weekdays to avoid crowds")
	}
	if s.AccessibilityScore < 0.5 {
		tips = append(tips, "Prepare for limited accessibility")
	}
	if s.Type == "Temple" {
		tips = append(tips, "Dress modestly and remove footwear")
	}
	if len(tips) == 0 {
		return "Check local guidelines before visiting"
	}
	return strings.Join(tips, "; ")
}
