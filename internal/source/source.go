// Package source loads the four heritage tables from a data warehouse, a
// fixture file, or a seeded synthetic generator.
package source

import (
	"context"
	"errors"

	"github.com/couchcryptid/heritage-explorer/internal/domain"
)

// ErrEmptyTable is returned when a warehouse query succeeds with no rows.
var ErrEmptyTable = errors.New("table is empty")

// Provenance kinds recorded per table.
const (
	KindSynthetic = "synthetic"
	KindFile      = "file"
	KindWarehouse = "warehouse"
	KindFallback  = "synthetic-fallback"
)

// Provenance records where each table came from, keyed by table name.
type Provenance map[string]string

func uniform(kind string) Provenance {
	return Provenance{
		domain.TableArtForms:  kind,
		domain.TableTourism:   kind,
		domain.TableSites:     kind,
		domain.TableFestivals: kind,
	}
}

// Source produces a full set of raw tables. Optional columns may be unset;
// callers run domain.Ingest on the result.
type Source interface {
	Load(ctx context.Context) (domain.Tables, Provenance, error)
}

// TableReader reads each table independently so a failure in one can be
// replaced without discarding the others.
type TableReader interface {
	ArtForms(ctx context.Context) ([]domain.ArtForm, error)
	Tourism(ctx context.Context) ([]domain.TourismRecord, error)
	Sites(ctx context.Context) ([]domain.HeritageSite, error)
	Festivals(ctx context.Context) ([]domain.Festival, error)
}
