package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	// Registered drivers: "duckdb" and "postgres".
	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/lib/pq"

	"github.com/couchcryptid/heritage-explorer/internal/domain"
)

// Supported warehouse drivers.
const (
	DriverPostgres = "postgres"
	DriverDuckDB   = "duckdb"
)

// Warehouse table names.
const (
	warehouseArtForms  = "ART_FORMS"
	warehouseTourism   = "TOURISM_DATA"
	warehouseSites     = "CULTURAL_SITES"
	warehouseFestivals = "FESTIVALS"
)

// Warehouse reads tables with one SELECT * per table. Columns are matched
// case-insensitively; absent columns leave optional fields unset.
type Warehouse struct {
	db      *sql.DB
	timeout time.Duration
}

// NewWarehouse wraps an open database. timeout bounds each query; zero
// means no per-query limit.
func NewWarehouse(db *sql.DB, timeout time.Duration) *Warehouse {
	return &Warehouse{db: db, timeout: timeout}
}

// OpenWarehouse opens a connection pool for a supported driver. An empty
// DSN is accepted for duckdb and opens an in-memory database.
func OpenWarehouse(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverPostgres:
		if dsn == "" {
			return nil, fmt.Errorf("open warehouse: %s requires a DSN", driver)
		}
	case DriverDuckDB:
	default:
		return nil, fmt.Errorf("open warehouse: unsupported driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open warehouse: %w", err)
	}
	return db, nil
}

// Ping checks the connection, for readiness probes.
func (w *Warehouse) Ping(ctx context.Context) error {
	return w.db.PingContext(ctx)
}

func (w *Warehouse) ArtForms(ctx context.Context) ([]domain.ArtForm, error) {
	return queryTable(ctx, w, warehouseArtForms, artFormFromRow)
}

func (w *Warehouse) Tourism(ctx context.Context) ([]domain.TourismRecord, error) {
	return queryTable(ctx, w, warehouseTourism, tourismFromRow)
}

func (w *Warehouse) Sites(ctx context.Context) ([]domain.HeritageSite, error) {
	return queryTable(ctx, w, warehouseSites, siteFromRow)
}

func (w *Warehouse) Festivals(ctx context.Context) ([]domain.Festival, error) {
	return queryTable(ctx, w, warehouseFestivals, festivalFromRow)
}

func queryTable[T any](ctx context.Context, w *Warehouse, table string, convert func(row) T) ([]T, error) {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	rows, err := w.db.QueryContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns %s: %w", table, err)
	}
	for i, c := range cols {
		cols[i] = strings.ToLower(c)
	}

	var out []T
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		r := make(row, len(cols))
		for i, c := range cols {
			r[c] = values[i]
		}
		out = append(out, convert(r))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %w", table, ErrEmptyTable)
	}
	return out, nil
}
