package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/heritage-explorer/internal/analytics"
	"github.com/couchcryptid/heritage-explorer/internal/domain"
	"github.com/couchcryptid/heritage-explorer/internal/observability"
	"github.com/couchcryptid/heritage-explorer/internal/source"
)

// Builder turns a Source into a request-scoped Dataset: load, then ingest.
// It holds no tables between calls.
type Builder struct {
	source   source.Source
	geocoder domain.Geocoder
	fillSeed uint64
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewBuilder creates a Builder. fillSeed seeds the random default fills so
// repeated loads of the same data produce the same dataset. Pass a nil
// geocoder to place sites at their state centroid.
func NewBuilder(src source.Source, geocoder domain.Geocoder, fillSeed uint64, logger *slog.Logger, metrics *observability.Metrics) *Builder {
	return &Builder{
		source:   src,
		geocoder: geocoder,
		fillSeed: fillSeed,
		logger:   logger,
		metrics:  metrics,
	}
}

// Dataset loads and ingests a fresh copy of every table.
func (b *Builder) Dataset(ctx context.Context) (domain.Dataset, error) {
	raw, prov, err := b.source.Load(ctx)
	if err != nil {
		b.metrics.DatasetLoads.WithLabelValues("error").Inc()
		return domain.Dataset{}, fmt.Errorf("load dataset: %w", err)
	}

	tables, report := domain.Ingest(ctx, raw, domain.IngestOptions{
		Geocoder: b.geocoder,
		Rand:     rand.New(rand.NewPCG(b.fillSeed, b.fillSeed)),
		Logger:   b.logger,
	})

	b.metrics.DatasetLoads.WithLabelValues("success").Inc()
	b.metrics.ClampedValues.Add(float64(report.Clamped))
	for col, n := range report.Filled {
		b.metrics.IngestFills.WithLabelValues(col).Add(float64(n))
	}

	return domain.Dataset{
		Tables:     tables,
		Provenance: prov,
		Report:     report,
		LoadedAt:   domain.Now(),
	}, nil
}

// CheckReadiness reports whether the source can currently be loaded. Sources
// without their own check are always ready.
func (b *Builder) CheckReadiness(ctx context.Context) error {
	if c, ok := b.source.(interface{ CheckReadiness(context.Context) error }); ok {
		return c.CheckReadiness(ctx)
	}
	return nil
}

// Report is a score snapshot published by the export loop.
type Report struct {
	RunID          string                         `json:"run_id"`
	GeneratedAt    time.Time                      `json:"generated_at"`
	Provenance     source.Provenance              `json:"provenance"`
	HeritageIndex  []analytics.StateIndex         `json:"heritage_index"`
	Sustainability []analytics.SiteSustainability `json:"sustainability"`
	HiddenGems     []analytics.HiddenGem          `json:"hidden_gems"`
}

// Report builds a dataset and scores it.
func (b *Builder) Report(ctx context.Context) (Report, error) {
	ds, err := b.Dataset(ctx)
	if err != nil {
		return Report{}, err
	}
	return Report{
		RunID:          uuid.NewString(),
		GeneratedAt:    ds.LoadedAt,
		Provenance:     ds.Provenance,
		HeritageIndex:  analytics.HeritageIndex(ds.ArtForms, ds.Sites, ds.Festivals),
		Sustainability: analytics.SustainabilityMetrics(ds.Tourism),
		HiddenGems:     analytics.HiddenGems(ds.Sites, ds.Tourism),
	}, nil
}
