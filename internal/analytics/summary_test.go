package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/heritage-explorer/internal/domain"
)

func sampleTables() domain.Tables {
	return domain.Tables{
		ArtForms: []domain.ArtForm{
			{State: "Kerala", ArtForm: "Kathakali", Category: "Dance", RiskLevel: domain.RiskEndangered},
			{State: "Kerala", ArtForm: "Theyyam", Category: "Ritual Dance", RiskLevel: domain.RiskEndangered},
			{State: "Bihar", ArtForm: "Madhubani", Category: "Painting", RiskLevel: domain.RiskEndangered},
			{State: "Goa", ArtForm: "Fugdi", Category: "Dance", RiskLevel: domain.RiskSafe},
		},
		Sites: []domain.HeritageSite{
			site("Hampi", "Karnataka", domain.ConservationGood, 0.8, 0.4, 0.9),
			site("Charminar", "Telangana", domain.ConservationFair, 0.7, 0.9, 0.3),
			site("Golconda", "Telangana", domain.ConservationFair, 0.6, 0.6, 0.5),
		},
		Tourism: []domain.TourismRecord{
			{Site: "Hampi", Date: month(2023, time.January), DomesticVisitors: 70, InternationalVisitors: 30, Revenue: 500, SustainabilityScore: 0.6},
			{Site: "Hampi", Date: month(2023, time.February), DomesticVisitors: 70, InternationalVisitors: 30, Revenue: 500, SustainabilityScore: 0.8},
			{Site: "Charminar", Date: month(2023, time.January), DomesticVisitors: 10, Revenue: 100, SustainabilityScore: 0.4},
		},
		Festivals: []domain.Festival{
			{Festival: "Diwali", State: "Goa", EconomicImpact: 100, ExpectedVisitors: 10, CulturalSignificanceScore: 0.8},
			{Festival: "Diwali", State: "Bihar", EconomicImpact: 300, ExpectedVisitors: 20, CulturalSignificanceScore: 1.0},
			{Festival: "Onam", State: "Kerala", EconomicImpact: 250, ExpectedVisitors: 5, CulturalSignificanceScore: 0.9},
		},
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize(sampleTables())

	assert.Equal(t, 4, got.Stats.ArtForms)
	assert.Equal(t, 3, got.Stats.Sites)
	assert.Zero(t, got.Stats.UNESCOSites)
	assert.InDelta(t, (0.7+0.4)/2, got.Stats.AverageSustainability, 1e-9)
	assert.Equal(t, 210, got.Stats.TotalVisitors)
	assert.Equal(t, 2, got.Stats.Festivals)
	assert.Equal(t, 3, got.Stats.EndangeredArtForms)
	assert.InDelta(t, 1100, got.Stats.TotalRevenue, 0)
	assert.Equal(t, []Count{{"Dance", 2}, {"Painting", 1}, {"Ritual Dance", 1}}, got.ByCategory)
	assert.Equal(t, []Count{{"Endangered", 3}, {"Safe", 1}}, got.ByRisk)
}

func TestEndangeredByState(t *testing.T) {
	got := EndangeredByState(sampleTables().ArtForms)
	assert.Equal(t, []Count{{"Kerala", 2}, {"Bihar", 1}}, got)
}

func TestDigitalPresence(t *testing.T) {
	sites := sampleTables().Sites

	by := DigitalPresenceByState(sites)
	require.Len(t, by, 2)
	assert.Equal(t, "Karnataka", by[0].State)
	assert.InDelta(t, 0.4, by[1].Score, 1e-9)

	low := LowestDigitalPresence(sites)
	assert.Equal(t, "Telangana", low[0].State)
}

func TestFestivalImpacts(t *testing.T) {
	got := FestivalImpacts(sampleTables().Festivals)

	require.Len(t, got, 2)
	assert.Equal(t, "Diwali", got[0].Festival)
	assert.Equal(t, 400, got[0].EconomicImpact)
	assert.Equal(t, 30, got[0].ExpectedVisitors)
	assert.InDelta(t, 0.9, got[0].CulturalSignificance, 1e-9)
	assert.Equal(t, 2, got[0].States)
}

func TestVisitorSeries(t *testing.T) {
	got := VisitorSeries(sampleTables().Tourism)

	require.Len(t, got, 2)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), got[0].Month)
	assert.Equal(t, 80, got[0].Domestic)
	assert.Equal(t, 30, got[0].International)
}
