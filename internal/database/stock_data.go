package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

const stockDataColumns = `id, company_id, date, open_price, high_price, low_price, close_price, volume, created_at`

// InsertPricePoints bulk-loads price points in a single transaction using COPY.
// Either every point is stored or none is.
func (db *DB) InsertPricePoints(ctx context.Context, points []*models.PricePoint) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("stock_data",
		"company_id", "date", "open_price", "high_price", "low_price", "close_price", "volume"))
	if err != nil {
		return fmt.Errorf("failed to prepare copy: %w", err)
	}

	for _, p := range points {
		_, err := stmt.ExecContext(ctx, p.CompanyID, p.Date.Format(models.DateLayout),
			p.Open.StringFixed(2), p.High.StringFixed(2), p.Low.StringFixed(2), p.Close.StringFixed(2), p.Volume)
		if err != nil {
			stmt.Close()
			return fmt.Errorf("failed to copy price point for company %d on %s: %w",
				p.CompanyID, p.Date.Format(models.DateLayout), err)
		}
	}

	// Flush buffered rows
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("failed to flush price points: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("failed to close copy statement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetPricePoints returns the full series for a company, oldest first
func (db *DB) GetPricePoints(ctx context.Context, companyID int) ([]*models.PricePoint, error) {
	query := `
		SELECT ` + stockDataColumns + `
		FROM stock_data
		WHERE company_id = $1
		ORDER BY date ASC
	`
	return scanPricePoints(db.conn.QueryContext(ctx, query, companyID))
}

// GetPricePointsSince returns the points dated on or after since, oldest first
func (db *DB) GetPricePointsSince(ctx context.Context, companyID int, since time.Time) ([]*models.PricePoint, error) {
	query := `
		SELECT ` + stockDataColumns + `
		FROM stock_data
		WHERE company_id = $1 AND date >= $2::date
		ORDER BY date ASC
	`
	return scanPricePoints(db.conn.QueryContext(ctx, query, companyID, since.Format(models.DateLayout)))
}

// CountPricePoints returns the number of stored price points
func (db *DB) CountPricePoints(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM stock_data`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count price points: %w", err)
	}
	return n, nil
}

func scanPricePoints(rows *sql.Rows, err error) ([]*models.PricePoint, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to query price points: %w", err)
	}
	defer rows.Close()

	points := []*models.PricePoint{}
	for rows.Next() {
		var p models.PricePoint
		err := rows.Scan(
			&p.ID, &p.CompanyID, &p.Date, &p.Open, &p.High, &p.Low, &p.Close, &p.Volume, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan price point: %w", err)
		}
		points = append(points, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate price points: %w", err)
	}
	return points, nil
}
