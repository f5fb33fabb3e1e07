package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateCentroid(t *testing.T) {
	g, ok := StateCentroid("Kerala")
	assert.True(t, ok)
	assert.Equal(t, Geo{Lat: 10.8505, Lon: 76.2711}, g)

	g, ok = StateCentroid("Atlantis")
	assert.False(t, ok)
	assert.Equal(t, IndiaCentroid, g)
}

func TestStatesHaveCentroids(t *testing.T) {
	assert.Len(t, States, 28)
	for _, s := range States {
		_, ok := StateCentroid(s)
		assert.True(t, ok, s)
	}
}

func TestBestTravelTime(t *testing.T) {
	tests := []struct {
		state string
		want  string
	}{
		{"Uttar Pradesh", "September to March"},
		{"Kerala", "October to February"},
		{"Rajasthan", "October to March"},
		{"Goa", "October to March"},
		{"Telangana", "September to March"},
		{"West Bengal", "September to March"},
		{"Odisha", "September to March"},
		{"Assam", "September to March"},
		{"Sikkim", "September to March"},
		{"Delhi", "September to March"},
		{"Madhya Pradesh", "September to March"},
	}
	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			assert.Equal(t, tt.want, BestTravelTime(tt.state))
		})
	}
}

func TestRegionOf_AssamResolvesToFirstRegion(t *testing.T) {
	r, ok := RegionOf("Assam")
	assert.True(t, ok)
	assert.Equal(t, "East", r.Name)
}

func TestSeason(t *testing.T) {
	assert.Equal(t, "Winter", Season(12))
	assert.Equal(t, "Winter", Season(1))
	assert.Equal(t, "Spring", Season(4))
	assert.Equal(t, "Monsoon", Season(7))
	assert.Equal(t, "Autumn", Season(11))
	assert.Empty(t, Season(0))
}
