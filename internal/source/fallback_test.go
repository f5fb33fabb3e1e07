package source

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/heritage-explorer/internal/domain"
	"github.com/couchcryptid/heritage-explorer/internal/observability"
)

type stubReader struct {
	arts    []domain.ArtForm
	artsErr error
}

func (s stubReader) ArtForms(context.Context) ([]domain.ArtForm, error) {
	return s.arts, s.artsErr
}

func (stubReader) Tourism(context.Context) ([]domain.TourismRecord, error) {
	return nil, ErrEmptyTable
}

func (stubReader) Sites(context.Context) ([]domain.HeritageSite, error) {
	return []domain.HeritageSite{{SiteName: "Hampi", State: "Karnataka"}}, nil
}

func (stubReader) Festivals(context.Context) ([]domain.Festival, error) {
	return nil, errors.New("connection reset")
}

func TestFallback_PerTableSubstitution(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	synth := NewSynthetic(42)
	primary := stubReader{arts: []domain.ArtForm{{State: "Kerala", ArtForm: "Kathakali"}}}
	f := NewFallback(primary, synth, slog.New(slog.NewTextHandler(io.Discard, nil)), metrics)

	tables, prov, err := f.Load(context.Background())
	require.NoError(t, err)

	want := synth.Generate()
	assert.Equal(t, primary.arts, tables.ArtForms)
	assert.Equal(t, []domain.HeritageSite{{SiteName: "Hampi", State: "Karnataka"}}, tables.Sites)
	assert.Equal(t, want.Tourism, tables.Tourism)
	assert.Equal(t, want.Festivals, tables.Festivals)

	assert.Equal(t, Provenance{
		domain.TableArtForms:  KindWarehouse,
		domain.TableTourism:   KindFallback,
		domain.TableSites:     KindWarehouse,
		domain.TableFestivals: KindFallback,
	}, prov)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.SourceFallbacks.WithLabelValues(domain.TableTourism)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.SourceFallbacks.WithLabelValues(domain.TableFestivals)), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.SourceFallbacks.WithLabelValues(domain.TableArtForms)), 0)
}

func TestFallback_ErroredTableReplaced(t *testing.T) {
	f := NewFallback(stubReader{artsErr: errors.New("boom")}, NewSynthetic(1), slog.New(slog.DiscardHandler), observability.NewMetricsForTesting())

	tables, prov, err := f.Load(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, tables.ArtForms)
	assert.Equal(t, KindFallback, prov[domain.TableArtForms])
}
