package mapbox

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/couchcryptid/heritage-explorer/internal/domain"
	"github.com/couchcryptid/heritage-explorer/internal/observability"
)

const (
	defaultBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"
	// candidates is how many features are requested per lookup; the first
	// one located in the site's state wins.
	candidates = 5
	// regionPrefix marks the state entry in a feature's context.
	regionPrefix = "region."
)

// Client implements domain.Geocoder against the Mapbox Geocoding API. Lookups
// are restricted to India, biased towards the site's state centroid, and only
// accept a match inside that state.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a Mapbox geocoding client.
func NewClient(token string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
		logger:     logger,
		metrics:    metrics,
	}
}

// ForwardGeocode resolves a heritage site to coordinates. A zero result with
// a nil error means nothing matched inside the state.
func (c *Client) ForwardGeocode(ctx context.Context, name, state string) (domain.GeocodingResult, error) {
	start := time.Now()
	features, err := c.search(ctx, c.searchURL(name, state))
	c.metrics.GeocodeAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.GeocodingResult{}, err
	}

	f, ok := inState(features, state)
	if !ok {
		c.metrics.GeocodeRequests.WithLabelValues("empty").Inc()
		c.logger.Debug("no geocoding match in state",
			"site", name,
			"state", state,
			"candidates", len(features),
		)
		return domain.GeocodingResult{}, nil
	}

	c.metrics.GeocodeRequests.WithLabelValues("success").Inc()
	return f.result(), nil
}

func (c *Client) searchURL(name, state string) string {
	query := name
	if state != "" {
		query = name + ", " + state
	}
	params := url.Values{
		"access_token": {c.token},
		"country":      {"in"},
		"limit":        {strconv.Itoa(candidates)},
		"types":        {"poi,place,locality"},
	}
	if g, ok := domain.StateCentroid(state); ok {
		params.Set("proximity", fmt.Sprintf("%.4f,%.4f", g.Lon, g.Lat))
	}
	return fmt.Sprintf("%s/%s.json?%s", c.baseURL, url.PathEscape(query), params.Encode())
}

func (c *Client) search(ctx context.Context, fullURL string) ([]feature, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("mapbox status %d: %s", resp.StatusCode, body)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}
	return out.Features, nil
}

// inState returns the first feature whose region context names state. With
// no state every feature qualifies.
func inState(features []feature, state string) (feature, bool) {
	for _, f := range features {
		if len(f.Center) != 2 {
			continue
		}
		if state == "" || strings.EqualFold(f.region(), state) {
			return f, true
		}
	}
	return feature{}, false
}

type response struct {
	Features []feature `json:"features"`
}

type feature struct {
	Center    []float64     `json:"center"` // [lon, lat]
	PlaceName string        `json:"place_name"`
	Text      string        `json:"text"`
	Relevance float64       `json:"relevance"`
	Context   []contextItem `json:"context"`
}

type contextItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func (f feature) region() string {
	for _, c := range f.Context {
		if strings.HasPrefix(c.ID, regionPrefix) {
			return c.Text
		}
	}
	return ""
}

func (f feature) result() domain.GeocodingResult {
	return domain.GeocodingResult{
		Lon:              f.Center[0],
		Lat:              f.Center[1],
		FormattedAddress: f.PlaceName,
		PlaceName:        f.Text,
		Confidence:       f.Relevance,
	}
}
