package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/heritage-explorer/internal/domain"
)

func TestArtFormMarkers(t *testing.T) {
	arts := []domain.ArtForm{
		{ArtForm: "Kathakali", RiskLevel: domain.RiskEndangered, Latitude: domain.Some(10.0), Longitude: domain.Some(76.0)},
		{ArtForm: "Garba", RiskLevel: domain.RiskSafe, Latitude: domain.Some(22.0), Longitude: domain.Some(71.0)},
		{ArtForm: "Kathak", RiskLevel: domain.RiskVulnerable, Latitude: domain.Some(26.0), Longitude: domain.Some(80.0)},
		{ArtForm: "Unplaced"},
	}

	got := ArtFormMarkers(arts)

	require.Len(t, got, 3)
	assert.Equal(t, "red", got[0].Color)
	assert.Equal(t, "green", got[1].Color)
	assert.Equal(t, "orange", got[2].Color)
}

func TestSiteMarkers(t *testing.T) {
	inscribed := site("Hampi", "Karnataka", domain.ConservationGood, 0.9, 0.2, 0.5)
	inscribed.UNESCOStatus = domain.UNESCOInscribed
	tentative := site("Tentative", "Goa", domain.ConservationGood, 0.9, 0.2, 0.5)
	tentative.UNESCOStatus = domain.UNESCOTentative
	plain := site("Plain", "Goa", domain.ConservationGood, 0.9, 0.2, 0.5)

	got := SiteMarkers([]domain.HeritageSite{inscribed, tentative, plain})

	require.Len(t, got, 3)
	assert.Equal(t, "gold", got[0].Color)
	assert.Equal(t, "crown", got[0].Icon)
	assert.InDelta(t, 25, got[0].Radius, 1e-9)
	assert.Equal(t, "star", got[1].Icon)
	assert.Equal(t, "gray", got[2].Color)
}

func TestTourismHeat(t *testing.T) {
	got := TourismHeat([]domain.TourismRecord{visits("Hampi", 10, 5), visits("Hampi", 20, 0), visits("Konark", 1, 1)})

	require.Len(t, got, 2)
	assert.Equal(t, HeatPoint{Site: "Hampi", Geo: domain.Geo{Lat: 15, Lon: 76}, Weight: 35}, got[0])
	assert.Equal(t, 2, got[1].Weight)
}
