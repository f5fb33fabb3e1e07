package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/couchcryptid/heritage-explorer/internal/analytics"
	"github.com/couchcryptid/heritage-explorer/internal/domain"
	"github.com/couchcryptid/heritage-explorer/internal/recommend"
)

const (
	defaultDuration   = 5
	defaultSampleSeed = 42
	maxListLimit      = 100
	maxSimilar        = 50
)

type configResponse struct {
	Title              string                 `json:"title"`
	Icon               string                 `json:"icon"`
	DataSource         string                 `json:"data_source"`
	ItinerarySelection recommend.Selection    `json:"itinerary_selection"`
	Interests          []recommend.Interest   `json:"interests"`
	BudgetTiers        []recommend.BudgetTier `json:"budget_tiers"`
	TravelStyles       []string               `json:"travel_styles"`
	Seasons            []string               `json:"seasons"`
	MinDuration        int                    `json:"min_duration"`
	MaxDuration        int                    `json:"max_duration"`
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, configResponse{
		Title:              s.opts.AppTitle,
		Icon:               s.opts.AppIcon,
		DataSource:         s.opts.DataSource,
		ItinerarySelection: s.opts.Selection,
		Interests:          recommend.Interests,
		BudgetTiers:        recommend.BudgetTiers,
		TravelStyles:       recommend.TravelStyles,
		Seasons:            recommend.Seasons,
		MinDuration:        recommend.MinDuration,
		MaxDuration:        recommend.MaxDuration,
	})
}

type summaryResponse struct {
	analytics.Summary
	VisitorsByMonth []analytics.MonthlyVisitors `json:"visitors_by_month"`
	Provenance      map[string]string           `json:"provenance"`
	Ingest          domain.IngestReport         `json:"ingest"`
	LoadedAt        time.Time                   `json:"loaded_at"`
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request, ds domain.Dataset) {
	s.writeJSON(w, http.StatusOK, summaryResponse{
		Summary:         analytics.Summarize(ds.Tables),
		VisitorsByMonth: analytics.VisitorSeries(ds.Tourism),
		Provenance:      ds.Provenance,
		Ingest:          ds.Report,
		LoadedAt:        ds.LoadedAt,
	})
}

func (s *Server) handleArtForms(w http.ResponseWriter, r *http.Request, ds domain.Dataset) {
	category := queryString(r, "category", "")
	risk := queryString(r, "risk", "")
	out := make([]domain.ArtForm, 0, len(ds.ArtForms))
	for _, a := range ds.ArtForms {
		if matches(category, a.Category) && matches(risk, string(a.RiskLevel)) {
			out = append(out, a)
		}
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSites(w http.ResponseWriter, r *http.Request, ds domain.Dataset) {
	s.writeJSON(w, http.StatusOK, filterSites(ds.Sites, queryString(r, "unesco", ""), queryString(r, "state", "")))
}

func filterSites(sites []domain.HeritageSite, unesco, state string) []domain.HeritageSite {
	out := make([]domain.HeritageSite, 0, len(sites))
	for _, site := range sites {
		if matches(unesco, string(site.UNESCOStatus)) && matches(state, site.State) {
			out = append(out, site)
		}
	}
	return out
}

func (s *Server) handleTourism(w http.ResponseWriter, r *http.Request, ds domain.Dataset) {
	site := queryString(r, "site", "")
	out := make([]domain.TourismRecord, 0, len(ds.Tourism))
	for _, t := range ds.Tourism {
		if matches(site, t.Site) {
			out = append(out, t)
		}
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleFestivals(w http.ResponseWriter, r *http.Request, ds domain.Dataset) {
	month, err := queryInt(r, "month", 0, 1, 12)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out := make([]domain.Festival, 0, len(ds.Festivals))
	for _, f := range ds.Festivals {
		if month == 0 || f.Month == month {
			out = append(out, f)
		}
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHeritageIndex(w http.ResponseWriter, r *http.Request, ds domain.Dataset) {
	limit, err := queryInt(r, "limit", 0, 1, maxListLimit)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	index := analytics.HeritageIndex(ds.ArtForms, ds.Sites, ds.Festivals)
	if limit > 0 && len(index) > limit {
		index = index[:limit]
	}
	s.writeJSON(w, http.StatusOK, index)
}

func (s *Server) handleSustainability(w http.ResponseWriter, _ *http.Request, ds domain.Dataset) {
	s.writeJSON(w, http.StatusOK, analytics.SustainabilityMetrics(ds.Tourism))
}

func (s *Server) handleTrends(w http.ResponseWriter, _ *http.Request, ds domain.Dataset) {
	s.writeJSON(w, http.StatusOK, analytics.TourismTrends(ds.Tourism))
}

func (s *Server) handleFestivalImpact(w http.ResponseWriter, _ *http.Request, ds domain.Dataset) {
	s.writeJSON(w, http.StatusOK, analytics.FestivalImpacts(ds.Festivals))
}

func (s *Server) handleDigitalPresence(w http.ResponseWriter, _ *http.Request, ds domain.Dataset) {
	s.writeJSON(w, http.StatusOK, analytics.DigitalPresenceByState(ds.Sites))
}

func (s *Server) handleInsights(w http.ResponseWriter, _ *http.Request, ds domain.Dataset) {
	s.writeJSON(w, http.StatusOK, analytics.BuildInsights(ds.Tables))
}

func (s *Server) handleHiddenGems(w http.ResponseWriter, _ *http.Request, ds domain.Dataset) {
	s.writeJSON(w, http.StatusOK, analytics.HiddenGems(ds.Sites, ds.Tourism))
}

func (s *Server) handleItinerary(w http.ResponseWriter, r *http.Request, ds domain.Dataset) {
	duration, err := queryInt(r, "duration", defaultDuration, recommend.MinDuration, recommend.MaxDuration)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	groupSize, err := queryInt(r, "group_size", 0, recommend.MinGroupSize, recommend.MaxGroupSize)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	seed, err := queryUint(r, "seed", defaultSampleSeed)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	selection := recommend.Selection(queryString(r, "selection", string(s.opts.Selection)))
	if selection != recommend.SelectionTop && selection != recommend.SelectionSample {
		s.writeError(w, http.StatusBadRequest, "invalid selection "+string(selection)+": must be top or sample")
		return
	}

	prefs := recommend.Preferences{
		Duration:    duration,
		Interest:    recommend.Interest(queryString(r, "interest", string(recommend.InterestAll))),
		Budget:      recommend.BudgetTier(queryString(r, "budget", string(recommend.BudgetLow))),
		TravelStyle: queryString(r, "travel_style", ""),
		Season:      queryString(r, "season", ""),
		GroupSize:   groupSize,
	}

	it, err := recommend.GenerateItinerary(prefs, ds.Sites, ds.ArtForms, recommend.NewSelector(selection, seed))
	if errors.Is(err, recommend.ErrInvalidPreferences) {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.logger.Error("itinerary generation failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "itinerary generation failed")
		return
	}
	s.writeJSON(w, http.StatusOK, it)
}

func (s *Server) handleSustainable(w http.ResponseWriter, _ *http.Request, ds domain.Dataset) {
	s.writeJSON(w, http.StatusOK, recommend.SustainableSites(ds.Sites, analytics.SustainabilityMetrics(ds.Tourism)))
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request, ds domain.Dataset) {
	site := queryString(r, "site", "")
	if site == "" {
		s.writeError(w, http.StatusBadRequest, "site is required")
		return
	}
	n, err := queryInt(r, "n", analytics.DefaultSimilarCount, 1, maxSimilar)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, analytics.SimilarDestinations(ds.Sites, site, n))
}

func (s *Server) handleRoutes(w http.ResponseWriter, _ *http.Request, ds domain.Dataset) {
	s.writeJSON(w, http.StatusOK, analytics.CulturalRoutes(ds.Sites, ds.ArtForms))
}

// Map layers served under /api/v1/maps/{layer}.
const (
	layerArtForms = "art-forms"
	layerSites    = "sites"
	layerTourism  = "tourism"
	layerRoutes   = "routes"
)

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request, ds domain.Dataset) {
	switch layer := chi.URLParam(r, "layer"); layer {
	case layerArtForms:
		category := queryString(r, "category", "")
		arts := make([]domain.ArtForm, 0, len(ds.ArtForms))
		for _, a := range ds.ArtForms {
			if matches(category, a.Category) {
				arts = append(arts, a)
			}
		}
		s.writeJSON(w, http.StatusOK, analytics.ArtFormMarkers(arts))
	case layerSites:
		s.writeJSON(w, http.StatusOK, analytics.SiteMarkers(filterSites(ds.Sites, queryString(r, "unesco", ""), "")))
	case layerTourism:
		s.writeJSON(w, http.StatusOK, analytics.TourismHeat(ds.Tourism))
	case layerRoutes:
		s.writeJSON(w, http.StatusOK, analytics.RouteLines(analytics.CulturalRoutes(ds.Sites, ds.ArtForms), ds.Sites))
	default:
		s.writeError(w, http.StatusNotFound, "unknown map layer "+layer)
	}
}
