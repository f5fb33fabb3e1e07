package source

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/heritage-explorer/internal/domain"
	"github.com/couchcryptid/heritage-explorer/internal/observability"
)

// Fallback reads each table from a primary reader and substitutes the
// synthetic table whenever the primary fails or returns no rows. Load never
// fails.
type Fallback struct {
	primary   TableReader
	synthetic *Synthetic
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewFallback wraps primary with per-table synthetic substitution.
func NewFallback(primary TableReader, synthetic *Synthetic, logger *slog.Logger, metrics *observability.Metrics) *Fallback {
	return &Fallback{
		primary:   primary,
		synthetic: synthetic,
		logger:    logger,
		metrics:   metrics,
	}
}

func (f *Fallback) Load(ctx context.Context) (domain.Tables, Provenance, error) {
	prov := uniform(KindWarehouse)

	// Generated lazily and at most once so substituted tables stay
	// consistent with each other.
	var synth *domain.Tables
	fallback := func(table string, err error) domain.Tables {
		f.logger.Warn("warehouse table unavailable, using synthetic data",
			"table", table,
			"error", err,
		)
		f.metrics.SourceFallbacks.WithLabelValues(table).Inc()
		prov[table] = KindFallback
		if synth == nil {
			t := f.synthetic.Generate()
			synth = &t
		}
		return *synth
	}

	var t domain.Tables
	var err error

	if t.ArtForms, err = f.primary.ArtForms(ctx); err != nil {
		t.ArtForms = fallback(domain.TableArtForms, err).ArtForms
	}
	if t.Tourism, err = f.primary.Tourism(ctx); err != nil {
		t.Tourism = fallback(domain.TableTourism, err).Tourism
	}
	if t.Sites, err = f.primary.Sites(ctx); err != nil {
		t.Sites = fallback(domain.TableSites, err).Sites
	}
	if t.Festivals, err = f.primary.Festivals(ctx); err != nil {
		t.Festivals = fallback(domain.TableFestivals, err).Festivals
	}
	return t, prov, nil
}
