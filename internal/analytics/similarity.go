package analytics

import (
	"cmp"
	"math"
	"slices"

	"github.com/couchcryptid/heritage-explorer/internal/domain"
)

// DefaultSimilarCount is how many neighbours SimilarDestinations returns
// when asked for zero or fewer.
const DefaultSimilarCount = 5

// SimilarSite is a neighbour of the reference site in feature space.
type SimilarSite struct {
	SiteName     string              `json:"site_name"`
	State        string              `json:"state"`
	Type         string              `json:"type"`
	UNESCOStatus domain.UNESCOStatus `json:"unesco_status"`
	Similarity   float64             `json:"similarity_score"`
}

// Similar is the neighbour list for one site.
type Similar struct {
	Availability
	Site  string        `json:"site"`
	Sites []SimilarSite `json:"similar"`
}

// SimilarDestinations standardises visitor capacity, accessibility, digital
// presence and utilization to z-scores across all sites, then ranks every
// other site by cosine similarity to the named one.
func SimilarDestinations(sites []domain.HeritageSite, name string, n int) Similar {
	if n <= 0 {
		n = DefaultSimilarCount
	}
	ref := slices.IndexFunc(sites, func(s domain.HeritageSite) bool { return s.SiteName == name })
	if ref < 0 {
		return Similar{Availability: unavailable("unknown site: " + name), Site: name}
	}

	vectors := standardize(sites)
	out := make([]SimilarSite, 0, len(sites)-1)
	for i, s := range sites {
		if i == ref {
			continue
		}
		out = append(out, SimilarSite{
			SiteName:     s.SiteName,
			State:        s.State,
			Type:         s.Type,
			UNESCOStatus: s.UNESCOStatus,
			Similarity:   cosine(vectors[ref], vectors[i]),
		})
	}
	slices.SortStableFunc(out, func(a, b SimilarSite) int {
		return cmp.Compare(b.Similarity, a.Similarity)
	})
	return Similar{Availability: available(), Site: name, Sites: head(out, n)}
}

const featureCount = 4

func features(s domain.HeritageSite) [featureCount]float64 {
	return [featureCount]float64{
		float64(s.VisitorCapacity),
		s.AccessibilityScore,
		s.DigitalPresenceScore.Or(0),
		s.CurrentUtilization,
	}
}

// standardize uses the population standard deviation; constant columns
// become zero.
func standardize(sites []domain.HeritageSite) [][featureCount]float64 {
	raw := make([][featureCount]float64, len(sites))
	var mean, std [featureCount]float64
	for i, s := range sites {
		raw[i] = features(s)
		for j, v := range raw[i] {
			mean[j] += v
		}
	}
	n := float64(len(sites))
	for j := range mean {
		mean[j] /= n
	}
	for _, r := range raw {
		for j, v := range r {
			std[j] += (v - mean[j]) * (v - mean[j])
		}
	}
	for j := range std {
		std[j] = math.Sqrt(std[j] / n)
	}

	for i := range raw {
		for j := range raw[i] {
			if std[j] == 0 {
				raw[i][j] = 0
				continue
			}
			raw[i][j] = (raw[i][j] - mean[j]) / std[j]
		}
	}
	return raw
}

func cosine(a, b [featureCount]float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
