package source

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/heritage-explorer/internal/domain"
)

func openDuckDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenWarehouse(DriverDuckDB, "")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func exec(t *testing.T, db *sql.DB, stmts ...string) {
	t.Helper()
	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err, s)
	}
}

func TestWarehouse_ReadsTables(t *testing.T) {
	db := openDuckDB(t)
	exec(t, db,
		`CREATE TABLE ART_FORMS (STATE VARCHAR, ART_FORM VARCHAR, CATEGORY VARCHAR, PRACTITIONERS INTEGER,
			RISK_LEVEL VARCHAR, AGE_YEARS BIGINT, UNESCO_RECOGNIZED BOOLEAN)`,
		`INSERT INTO ART_FORMS VALUES ('Kerala', 'Kathakali', 'Dance', 1200, 'Endangered', 400, true)`,
		`CREATE TABLE TOURISM_DATA (site VARCHAR, state VARCHAR, date DATE, domestic_visitors INTEGER,
			international_visitors INTEGER, revenue DECIMAL(18,2), sustainability_score DOUBLE, crowding_index DOUBLE)`,
		`INSERT INTO TOURISM_DATA VALUES ('Hampi', 'Karnataka', DATE '2023-04-30', 700, 300, 123456.50, 0.8, 0.4)`,
		`CREATE TABLE CULTURAL_SITES (site_name VARCHAR, state VARCHAR, type VARCHAR, establishment_year INTEGER,
			unesco_status VARCHAR, conservation_status VARCHAR, annual_maintenance_cost BIGINT, visitor_capacity INTEGER,
			current_utilization DOUBLE, accessibility_score DOUBLE, digital_presence_score DOUBLE, latitude DOUBLE, longitude DOUBLE)`,
		`INSERT INTO CULTURAL_SITES VALUES ('Ajanta Caves', 'Maharashtra', 'Monument', -200, 'Inscribed', 'Good', 900000, 4000, 0.4, 0.7, NULL, 20.55, 75.70)`,
		`CREATE TABLE FESTIVALS (festival VARCHAR, state VARCHAR, duration_days INTEGER, expected_visitors INTEGER,
			economic_impact BIGINT, cultural_significance_score DOUBLE, tourism_potential_score DOUBLE, month INTEGER)`,
		`INSERT INTO FESTIVALS VALUES ('Onam', 'Kerala', 10, 500000, 20000000, 0.95, 0.8, 8)`,
	)
	w := NewWarehouse(db, 5*time.Second)
	ctx := context.Background()

	arts, err := w.ArtForms(ctx)
	require.NoError(t, err)
	require.Len(t, arts, 1)
	assert.Equal(t, domain.ArtForm{
		State: "Kerala", ArtForm: "Kathakali", Category: "Dance", Practitioners: 1200,
		RiskLevel: domain.RiskEndangered, AgeYears: 400, UNESCORecognized: true,
	}, arts[0])

	tourism, err := w.Tourism(ctx)
	require.NoError(t, err)
	require.Len(t, tourism, 1)
	assert.Equal(t, 1000, tourism[0].TotalVisitors())
	assert.InDelta(t, 123456.5, tourism[0].Revenue, 1e-6)
	require.True(t, tourism[0].Date.Set)
	assert.Equal(t, time.April, tourism[0].Date.Value.Month())
	assert.False(t, tourism[0].Latitude.Set)

	sites, err := w.Sites(ctx)
	require.NoError(t, err)
	require.Len(t, sites, 1)
	assert.Equal(t, -200, sites[0].EstablishmentYear)
	assert.False(t, sites[0].DigitalPresenceScore.Set)
	assert.Equal(t, domain.Some(20.55), sites[0].Latitude)

	festivals, err := w.Festivals(ctx)
	require.NoError(t, err)
	require.Len(t, festivals, 1)
	assert.Equal(t, 20_000_000, festivals[0].EconomicImpact)
	assert.Equal(t, 8, festivals[0].Month)
}

func TestWarehouse_EmptyTable(t *testing.T) {
	db := openDuckDB(t)
	exec(t, db, `CREATE TABLE FESTIVALS (festival VARCHAR, state VARCHAR)`)

	_, err := NewWarehouse(db, 0).Festivals(context.Background())

	assert.True(t, errors.Is(err, ErrEmptyTable))
}

func TestWarehouse_MissingTable(t *testing.T) {
	db := openDuckDB(t)

	_, err := NewWarehouse(db, 0).ArtForms(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ART_FORMS")
	assert.False(t, errors.Is(err, ErrEmptyTable))
}

func TestOpenWarehouse_Validation(t *testing.T) {
	_, err := OpenWarehouse("oracle", "dsn")
	assert.Error(t, err)

	_, err = OpenWarehouse(DriverPostgres, "")
	assert.Error(t, err)
}

func TestRow_NonFiniteNumbersAreAbsent(t *testing.T) {
	r := row{"nan": math.NaN(), "inf": math.Inf(1), "text": "NaN", "ok": 0.5}

	assert.False(t, r.optFloat("nan").Set)
	assert.False(t, r.optFloat("inf").Set)
	assert.False(t, r.optFloat("text").Set)
	assert.Equal(t, domain.Some(0.5), r.optFloat("ok"))
	assert.Zero(t, r.float("nan"))
}
