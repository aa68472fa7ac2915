package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used in storage and JSON
const DateLayout = "2006-01-02"

// PricePoint represents one day of OHLCV price data for a company
type PricePoint struct {
	ID        int             `json:"id"`
	CompanyID int             `json:"company_id"`
	Date      time.Time       `json:"date"`
	Open      decimal.Decimal `json:"open_price"`
	High      decimal.Decimal `json:"high_price"`
	Low       decimal.Decimal `json:"low_price"`
	Close     decimal.Decimal `json:"close_price"`
	Volume    int64           `json:"volume"`
	CreatedAt time.Time       `json:"created_at"`
}

// MarshalJSON renders Date as a plain calendar date
func (p PricePoint) MarshalJSON() ([]byte, error) {
	type alias PricePoint
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{
		alias: alias(p),
		Date:  p.Date.Format(DateLayout),
	})
}
