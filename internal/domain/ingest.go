package domain

import (
	"context"
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"time"
)

// Fill counters keyed by table.column.
const (
	FillArtCoordinates     = "art_forms.coordinates"
	FillSiteCoordinates    = "sites.coordinates"
	FillSiteDigitalScore   = "sites.digital_presence_score"
	FillTourismCoordinates = "tourism.coordinates"
	FillFestivalMonth      = "festivals.month"
)

// IngestOptions controls default filling.
type IngestOptions struct {
	// Geocoder resolves site coordinates before the centroid fallback. Optional.
	Geocoder Geocoder
	// Rand drives jitter and digital presence fills. Nil uses a fixed seed.
	Rand   *rand.Rand
	Logger *slog.Logger
}

// IngestReport summarises what ingestion had to repair.
type IngestReport struct {
	Filled         map[string]int `json:"filled"`
	Clamped        int            `json:"clamped"`
	Geocoded       int            `json:"geocoded"`
	UndatedTourism int            `json:"undated_tourism"`
	UnknownStates  []string       `json:"unknown_states"`
}

type ingester struct {
	ctx     context.Context
	opts    IngestOptions
	rng     *rand.Rand
	report  IngestReport
	unknown map[string]struct{}
}

// Ingest validates raw tables and returns copies with every optional column
// resolved, scores clamped to [0,1] and enum strings canonicalised. The input
// is not modified.
func Ingest(ctx context.Context, t Tables, opts IngestOptions) (Tables, IngestReport) {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(42, 42))
	}

	in := &ingester{
		ctx:     ctx,
		opts:    opts,
		rng:     rng,
		report:  IngestReport{Filled: map[string]int{}},
		unknown: map[string]struct{}{},
	}

	out := Tables{
		ArtForms:  make([]ArtForm, 0, len(t.ArtForms)),
		Tourism:   make([]TourismRecord, 0, len(t.Tourism)),
		Sites:     make([]HeritageSite, 0, len(t.Sites)),
		Festivals: make([]Festival, 0, len(t.Festivals)),
	}
	for _, a := range t.ArtForms {
		out.ArtForms = append(out.ArtForms, in.artForm(a))
	}
	for _, r := range t.Tourism {
		out.Tourism = append(out.Tourism, in.tourism(r))
	}
	for _, s := range t.Sites {
		out.Sites = append(out.Sites, in.site(s))
	}
	for _, f := range t.Festivals {
		out.Festivals = append(out.Festivals, in.festival(f))
	}

	for s := range in.unknown {
		in.report.UnknownStates = append(in.report.UnknownStates, s)
	}
	slices.Sort(in.report.UnknownStates)

	if in.report.Clamped > 0 || len(in.report.UnknownStates) > 0 {
		opts.Logger.Warn("ingest repaired values",
			"clamped", in.report.Clamped,
			"unknown_states", in.report.UnknownStates,
		)
	}
	return out, in.report
}

func (in *ingester) artForm(a ArtForm) ArtForm {
	a.State = strings.TrimSpace(a.State)
	a.RiskLevel = canonicalRisk(a.RiskLevel)
	a.Practitioners = max(a.Practitioners, 0)
	if !a.Latitude.Set || !a.Longitude.Set {
		g := in.jittered(a.State)
		a.Latitude, a.Longitude = Some(g.Lat), Some(g.Lon)
		in.report.Filled[FillArtCoordinates]++
	}
	return a
}

func (in *ingester) tourism(r TourismRecord) TourismRecord {
	r.State = strings.TrimSpace(r.State)
	r.Site = strings.TrimSpace(r.Site)
	r.DomesticVisitors = max(r.DomesticVisitors, 0)
	r.InternationalVisitors = max(r.InternationalVisitors, 0)
	r.SustainabilityScore = in.clamp(r.SustainabilityScore)
	r.CrowdingIndex = in.clamp(r.CrowdingIndex)
	if r.Date.Set {
		d := r.Date.Value.UTC()
		r.Date = Some(time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC))
	} else {
		in.report.UndatedTourism++
	}
	if !r.Latitude.Set || !r.Longitude.Set {
		g := in.centroid(r.State)
		r.Latitude, r.Longitude = Some(g.Lat), Some(g.Lon)
		in.report.Filled[FillTourismCoordinates]++
	}
	return r
}

func (in *ingester) site(s HeritageSite) HeritageSite {
	s.State = strings.TrimSpace(s.State)
	s.SiteName = strings.TrimSpace(s.SiteName)
	s.UNESCOStatus = canonicalUNESCO(s.UNESCOStatus)
	s.ConservationStatus = canonicalConservation(s.ConservationStatus)
	s.CurrentUtilization = in.clamp(s.CurrentUtilization)
	s.AccessibilityScore = in.clamp(s.AccessibilityScore)
	s.VisitorCapacity = max(s.VisitorCapacity, 0)

	if s.DigitalPresenceScore.Set {
		s.DigitalPresenceScore = Some(in.clamp(s.DigitalPresenceScore.Value))
	} else {
		s.DigitalPresenceScore = Some(0.2 + 0.8*in.rng.Float64())
		in.report.Filled[FillSiteDigitalScore]++
	}

	if _, ok := s.Coordinates(); !ok {
		if geocoded, ok := GeocodeSite(in.ctx, s, in.opts.Geocoder, in.opts.Logger); ok {
			in.report.Geocoded++
			return geocoded
		}
		g := in.jittered(s.State)
		s.Latitude, s.Longitude = Some(g.Lat), Some(g.Lon)
		in.report.Filled[FillSiteCoordinates]++
	}
	return s
}

func (in *ingester) festival(f Festival) Festival {
	f.State = strings.TrimSpace(f.State)
	f.CulturalSignificanceScore = in.clamp(f.CulturalSignificanceScore)
	f.TourismPotentialScore = in.clamp(f.TourismPotentialScore)
	f.ExpectedVisitors = max(f.ExpectedVisitors, 0)
	if f.Month < 1 || f.Month > 12 {
		f.Month = 0
		in.report.Filled[FillFestivalMonth]++
	}
	return f
}

func (in *ingester) centroid(state string) Geo {
	g, ok := StateCentroid(state)
	if !ok {
		in.unknown[state] = struct{}{}
	}
	return g
}

func (in *ingester) jittered(state string) Geo {
	g := in.centroid(state)
	g.Lat += in.rng.Float64()*2 - 1
	g.Lon += in.rng.Float64()*2 - 1
	return g
}

// clamp bounds a score to [0,1]. Non-finite values become 0.
func (in *ingester) clamp(v float64) float64 {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0) || v < 0:
		in.report.Clamped++
		return 0
	case v > 1:
		in.report.Clamped++
		return 1
	default:
		return v
	}
}

func canonicalRisk(r RiskLevel) RiskLevel {
	return canonical(r, RiskSafe, RiskVulnerable, RiskEndangered)
}

func canonicalUNESCO(u UNESCOStatus) UNESCOStatus {
	return canonical(u, UNESCOInscribed, UNESCOTentative, UNESCONone)
}

func canonicalConservation(c ConservationStatus) ConservationStatus {
	return canonical(c, ConservationExcellent, ConservationGood, ConservationFair, ConservationPoor)
}

// canonical maps v to the matching known value ignoring case and surrounding
// whitespace. Unknown values are returned trimmed but otherwise verbatim.
func canonical[T ~string](v T, known ...T) T {
	s := strings.TrimSpace(string(v))
	for _, k := range known {
		if strings.EqualFold(s, string(k)) {
			return k
		}
	}
	return T(s)
}
