package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/trogers1052/stock-dashboard/internal/models"
)

const companyColumns = `id, name, symbol, sector, market_cap, description, created_at`

// InsertCompanies inserts all companies in a single transaction and fills in
// their assigned IDs and creation timestamps.
func (db *DB) InsertCompanies(ctx context.Context, companies []*models.Company) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO companies (name, symbol, sector, market_cap, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, c := range companies {
		err := stmt.QueryRowContext(ctx, c.Name, c.Symbol, c.Sector, c.MarketCap, c.Description).
			Scan(&c.ID, &c.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert company %s: %w", c.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListCompanies returns every company ordered by name
func (db *DB) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY name COLLATE "C" ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	companies := []*models.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate companies: %w", err)
	}
	return companies, nil
}

// GetCompany retrieves a company by ID
func (db *DB) GetCompany(ctx context.Context, id int) (*models.Company, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)

	c, err := scanCompany(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("company %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CountCompanies returns the number of stored companies
func (db *DB) CountCompanies(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM companies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count companies: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCompany(s scanner) (*models.Company, error) {
	var c models.Company
	var description sql.NullString

	err := s.Scan(&c.ID, &c.Name, &c.Symbol, &c.Sector, &c.MarketCap, &description, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan company: %w", err)
	}

	if description.Valid {
		c.Description = &description.String
	}
	return &c, nil
}
