package database_test

import (
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/stock-dashboard/internal/api"
	"github.com/trogers1052/stock-dashboard/internal/database"
	"github.com/trogers1052/stock-dashboard/internal/generator"
	"github.com/trogers1052/stock-dashboard/internal/models"
	"github.com/trogers1052/stock-dashboard/internal/seed"
)

type envelope struct {
	Message   string          `json:"message"`
	Error     string          `json:"error"`
	Data      json.RawMessage `json:"data"`
	Period    string          `json:"period"`
	Timestamp string          `json:"timestamp"`
}

func getJSON(t *testing.T, server *httptest.Server, path string) (int, envelope) {
	t.Helper()
	resp, err := http.Get(server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestSeedAndServe(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := database.SetupTestDB(t)
	defer testDB.Cleanup(t)
	ctx := context.Background()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	seeder := seed.NewSeeder(testDB.DB, seed.Options{Source: rand.New(rand.NewSource(7))}, logger)

	first, err := seeder.Run(ctx)
	require.NoError(t, err)
	second, err := seeder.Run(ctx)
	require.NoError(t, err)

	t.Run("reseeding replaces instead of accumulating", func(t *testing.T) {
		companies, err := testDB.CountCompanies(ctx)
		require.NoError(t, err)
		assert.Equal(t, 12, companies)

		points, err := testDB.CountPricePoints(ctx)
		require.NoError(t, err)
		perCompany := generator.WeekdaysBetween(second.WindowStart, second.WindowEnd)
		assert.Equal(t, 12*perCompany, points)
		assert.Equal(t, first.PricePoints, second.PricePoints)
	})

	t.Run("stored series keep their invariants", func(t *testing.T) {
		series, err := testDB.GetPricePoints(ctx, 1)
		require.NoError(t, err)
		require.NotEmpty(t, series)

		windowStart := time.Date(second.WindowStart.Year(), second.WindowStart.Month(), second.WindowStart.Day(), 0, 0, 0, 0, time.UTC)
		for _, p := range series {
			assert.True(t, p.Low.LessThanOrEqual(decimal.Min(p.Open, p.Close)))
			assert.True(t, p.High.GreaterThanOrEqual(decimal.Max(p.Open, p.Close)))
			assert.NotEqual(t, time.Saturday, p.Date.Weekday())
			assert.NotEqual(t, time.Sunday, p.Date.Weekday())
			assert.False(t, p.Date.Before(windowStart))
		}
	})

	server := httptest.NewServer(api.SetupRoutes(api.NewHandler(testDB.DB, logger), logger))
	defer server.Close()

	t.Run("companies are sorted by name", func(t *testing.T) {
		status, body := getJSON(t, server, "/api/companies")
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "success", body.Message)

		var companies []models.Company
		require.NoError(t, json.Unmarshal(body.Data, &companies))
		require.Len(t, companies, 12)
		assert.True(t, sort.SliceIsSorted(companies, func(i, j int) bool {
			return companies[i].Name < companies[j].Name
		}))
	})

	t.Run("unknown company is 404", func(t *testing.T) {
		status, body := getJSON(t, server, "/api/companies/9999")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Company not found", body.Error)
	})

	dates := func(t *testing.T, path string) ([]string, string) {
		t.Helper()
		status, body := getJSON(t, server, path)
		require.Equal(t, http.StatusOK, status)

		var points []struct {
			Date string `json:"date"`
		}
		require.NoError(t, json.Unmarshal(body.Data, &points))
		out := make([]string, len(points))
		for i, p := range points {
			out[i] = p.Date
		}
		return out, body.Period
	}

	t.Run("period filters", func(t *testing.T) {
		now := time.Now()
		week, period := dates(t, "/api/stocks/1?period=1W")
		assert.Equal(t, "1W", period)
		month, _ := dates(t, "/api/stocks/1?period=1M")
		all, period := dates(t, "/api/stocks/1?period=BOGUS")
		assert.Equal(t, "BOGUS", period)

		weekCutoff := models.PeriodOneWeek.Cutoff(now).Format(models.DateLayout)
		for _, d := range week {
			assert.GreaterOrEqual(t, d, weekCutoff)
		}
		monthCutoff := models.PeriodOneMonth.Cutoff(now).Format(models.DateLayout)
		for _, d := range month {
			assert.GreaterOrEqual(t, d, monthCutoff)
		}

		assert.Subset(t, month, week)
		assert.Greater(t, len(all), len(month))
		assert.Len(t, all, generator.WeekdaysBetween(second.WindowStart, second.WindowEnd))
		assert.True(t, sort.StringsAreSorted(all))
	})

	t.Run("health does not need the database", func(t *testing.T) {
		require.NoError(t, testDB.Close())

		status, body := getJSON(t, server, "/api/health")
		assert.Equal(t, http.StatusOK, status)
		assert.NotEmpty(t, body.Timestamp)

		status, body = getJSON(t, server, "/api/companies")
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.NotEmpty(t, body.Error)
	})
}
