package analytics

import "github.com/couchcryptid/heritage-explorer/internal/domain"

// Marker is one point on a map layer.
type Marker struct {
	Name   string         `json:"name"`
	State  string         `json:"state"`
	Geo    domain.Geo     `json:"geo"`
	Color  string         `json:"color"`
	Icon   string         `json:"icon,omitempty"`
	Radius float64        `json:"radius,omitempty"`
	Info   map[string]any `json:"info,omitempty"`
}

// HeatPoint weights a location by visitor volume.
type HeatPoint struct {
	Site   string     `json:"site"`
	Geo    domain.Geo `json:"geo"`
	Weight int        `json:"weight"`
}

// RouteLine is a circuit drawn through its key sites.
type RouteLine struct {
	Name         string   `json:"route_name"`
	DurationDays int      `json:"duration_days"`
	Color        string   `json:"color"`
	Path         []Marker `json:"path"`
}

var routeColors = []string{"red", "blue", "green", "purple", "orange"}

func riskColor(r domain.RiskLevel) string {
	switch r {
	case domain.RiskSafe:
		return "green"
	case domain.RiskVulnerable:
		return "orange"
	default:
		return "red"
	}
}

func unescoStyle(u domain.UNESCOStatus) (color, icon string) {
	switch u {
	case domain.UNESCOInscribed:
		return "gold", "crown"
	case domain.UNESCOTentative:
		return "blue", "star"
	default:
		return "gray", "monument"
	}
}

// ArtFormMarkers colours each art form by risk level.
func ArtFormMarkers(arts []domain.ArtForm) []Marker {
	out := make([]Marker, 0, len(arts))
	for _, a := range arts {
		if !a.Latitude.Set || !a.Longitude.Set {
			continue
		}
		out = append(out, Marker{
			Name:  a.ArtForm,
			State: a.State,
			Geo:   domain.Geo{Lat: a.Latitude.Value, Lon: a.Longitude.Value},
			Color: riskColor(a.RiskLevel),
			Icon:  "masks-theater",
			Info: map[string]any{
				"category":      a.Category,
				"practitioners": a.Practitioners,
				"risk_level":    a.RiskLevel,
			},
		})
	}
	return out
}

// SiteMarkers styles sites by UNESCO status and sizes them by capacity.
func SiteMarkers(sites []domain.HeritageSite) []Marker {
	out := make([]Marker, 0, len(sites))
	for _, s := range sites {
		g, ok := s.Coordinates()
		if !ok {
			continue
		}
		color, icon := unescoStyle(s.UNESCOStatus)
		out = append(out, Marker{
			Name:   s.SiteName,
			State:  s.State,
			Geo:    g,
			Color:  color,
			Icon:   icon,
			Radius: 20 + float64(s.VisitorCapacity)/1000,
			Info: map[string]any{
				"type":                s.Type,
				"establishment_year":  s.EstablishmentYear,
				"conservation_status": s.ConservationStatus,
				"unesco_status":       s.UNESCOStatus,
			},
		})
	}
	return out
}

// TourismHeat sums visitors per site at the site's first known location.
func TourismHeat(tourism []domain.TourismRecord) []HeatPoint {
	index := map[string]int{}
	out := []HeatPoint{}
	for _, r := range tourism {
		i, ok := index[r.Site]
		if !ok {
			if !r.Latitude.Set || !r.Longitude.Set {
				continue
			}
			i = len(out)
			index[r.Site] = i
			out = append(out, HeatPoint{Site: r.Site, Geo: domain.Geo{Lat: r.Latitude.Value, Lon: r.Longitude.Value}})
		}
		out[i].Weight += r.TotalVisitors()
	}
	return out
}

// RouteLines resolves each circuit's key sites to coordinates. Sites that
// cannot be located are skipped.
func RouteLines(routes []CulturalRoute, sites []domain.HeritageSite) []RouteLine {
	byName := map[string]domain.HeritageSite{}
	for _, s := range sites {
		if _, seen := byName[s.SiteName]; !seen {
			byName[s.SiteName] = s
		}
	}

	out := make([]RouteLine, 0, len(routes))
	for i, r := range routes {
		line := RouteLine{
			Name:         r.Name,
			DurationDays: r.DurationDays,
			Color:        routeColors[i%len(routeColors)],
		}
		for _, name := range r.KeySites {
			s, ok := byName[name]
			if !ok {
				continue
			}
			g, ok := s.Coordinates()
			if !ok {
				continue
			}
			line.Path = append(line.Path, Marker{Name: name, State: s.State, Geo: g, Color: line.Color, Icon: "info-sign"})
		}
		out = append(out, line)
	}
	return out
}
