package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices and market caps are rendered as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Company represents a listed company in the dashboard catalog
type Company struct {
	ID          int                 `json:"id"`
	Name        string              `json:"name"`
	Symbol      string              `json:"symbol"`
	Sector      string              `json:"sector"`
	MarketCap   decimal.NullDecimal `json:"market_cap"`
	Description *string             `json:"description"`
	CreatedAt   time.Time           `json:"created_at"`
}
