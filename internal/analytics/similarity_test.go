package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/heritage-explorer/internal/domain"
)

func TestSimilarDestinations(t *testing.T) {
	sites := []domain.HeritageSite{
		site("Ref", "Goa", domain.ConservationGood, 0.9, 0.2, 0.9),
		site("Twin", "Goa", domain.ConservationGood, 0.88, 0.22, 0.88),
		site("Opposite", "Goa", domain.ConservationGood, 0.1, 0.9, 0.1),
		site("Middle", "Goa", domain.ConservationGood, 0.5, 0.5, 0.5),
	}

	got := SimilarDestinations(sites, "Ref", 2)

	require.True(t, got.Available)
	require.Len(t, got.Sites, 2)
	assert.Equal(t, "Twin", got.Sites[0].SiteName)
	assert.Greater(t, got.Sites[0].Similarity, 0.9)
	for _, s := range got.Sites {
		assert.NotEqual(t, "Ref", s.SiteName)
	}
}

func TestSimilarDestinations_DefaultCount(t *testing.T) {
	var sites []domain.HeritageSite
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		sites = append(sites, site(name, "Goa", domain.ConservationGood, 0.5, 0.5, 0.5))
	}

	got := SimilarDestinations(sites, "A", 0)

	assert.Len(t, got.Sites, DefaultSimilarCount)
}

func TestSimilarDestinations_UnknownSite(t *testing.T) {
	got := SimilarDestinations(nil, "Atlantis", 5)

	assert.False(t, got.Available)
	assert.Contains(t, got.Reason, "Atlantis")
}
