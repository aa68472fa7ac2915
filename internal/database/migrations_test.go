package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	columnType := func(t *testing.T, table, column string) string {
		var dataType string
		err := testDB.GetRawConn().QueryRow(`
			SELECT data_type
			FROM information_schema.columns
			WHERE table_name = $1 AND column_name = $2
		`, table, column).Scan(&dataType)
		require.NoError(t, err, "column %s should exist in %s", column, table)
		return dataType
	}

	t.Run("companies table has correct columns", func(t *testing.T) {
		expected := map[string]string{
			"id":          "integer",
			"name":        "character varying",
			"symbol":      "character varying",
			"sector":      "character varying",
			"market_cap":  "numeric",
			"description": "text",
			"created_at":  "timestamp without time zone",
		}
		for column, dataType := range expected {
			assert.Equal(t, dataType, columnType(t, "companies", column), "column %s", column)
		}
	})

	t.Run("stock_data table has correct columns", func(t *testing.T) {
		expected := map[string]string{
			"id":          "integer",
			"company_id":  "integer",
			"date":        "date",
			"open_price":  "numeric",
			"high_price":  "numeric",
			"low_price":   "numeric",
			"close_price": "numeric",
			"volume":      "bigint",
			"created_at":  "timestamp without time zone",
		}
		for column, dataType := range expected {
			assert.Equal(t, dataType, columnType(t, "stock_data", column), "column %s", column)
		}
	})

	t.Run("Migrate is idempotent", func(t *testing.T) {
		require.NoError(t, testDB.Migrate())
	})

	t.Run("Reset drops data and restarts ids", func(t *testing.T) {
		_, err := testDB.GetRawConn().Exec(`INSERT INTO companies (name, symbol, sector) VALUES ('A', 'A', 'X')`)
		require.NoError(t, err)

		require.NoError(t, testDB.Reset())

		var count int
		require.NoError(t, testDB.GetRawConn().QueryRow(`SELECT COUNT(*) FROM companies`).Scan(&count))
		assert.Zero(t, count)

		var id int
		err = testDB.GetRawConn().QueryRow(`INSERT INTO companies (name, symbol, sector) VALUES ('B', 'B', 'X') RETURNING id`).Scan(&id)
		require.NoError(t, err)
		assert.Equal(t, 1, id)
	})
}
