package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/heritage-explorer/internal/domain"
)

func TestTourismTrends(t *testing.T) {
	tourism := []domain.TourismRecord{
		{Site: "Hampi", Date: month(2021, time.January), DomesticVisitors: 100},
		{Site: "Hampi", Date: month(2021, time.July), DomesticVisitors: 100},
		{Site: "Hampi", Date: month(2022, time.January), DomesticVisitors: 300},
		{Site: "Konark", Date: month(2021, time.January), DomesticVisitors: 0},
		{Site: "Konark", Date: month(2022, time.January), DomesticVisitors: 50},
		{Site: "Konark", Date: month(2023, time.January), DomesticVisitors: 100},
		{Site: "Undated", DomesticVisitors: 1_000_000},
	}

	got := TourismTrends(tourism)

	require.True(t, got.Available)
	require.Len(t, got.Seasonal, 2)
	assert.Equal(t, MonthlyAverage{Month: 1, Season: "Winter", TotalVisitors: 110}, got.Seasonal[0])
	assert.Equal(t, MonthlyAverage{Month: 7, Season: "Monsoon", TotalVisitors: 100}, got.Seasonal[1])

	require.Len(t, got.Growth, 5)
	assert.Equal(t, SiteYearGrowth{Site: "Hampi", Year: 2021, TotalVisitors: 200}, got.Growth[0])
	assert.Equal(t, domain.Some(50.0), got.Growth[1].GrowthRate)
	assert.False(t, got.Growth[2].GrowthRate.Set, "first Konark year")
	assert.False(t, got.Growth[3].GrowthRate.Set, "prior total zero")
	assert.Equal(t, domain.Some(100.0), got.Growth[4].GrowthRate)

	assert.Equal(t, []YearGrowth{
		{Year: 2022, GrowthRate: 50, Sites: 1},
		{Year: 2023, GrowthRate: 100, Sites: 1},
	}, got.Yearly)
}

func TestTourismTrends_NoDatedRows(t *testing.T) {
	got := TourismTrends([]domain.TourismRecord{{Site: "Hampi", DomesticVisitors: 10}})

	assert.False(t, got.Available)
	assert.NotEmpty(t, got.Reason)
	assert.Empty(t, got.Seasonal)
}
