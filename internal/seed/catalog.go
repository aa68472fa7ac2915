package seed

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

// ErrDuplicateSymbol is returned when two catalog entries share a ticker
var ErrDuplicateSymbol = errors.New("duplicate ticker symbol")

type listing struct {
	name        string
	symbol      string
	sector      string
	marketCap   int64
	description string
}

var referenceCatalog = []listing{
	{"Reliance Industries", "RELIANCE", "Oil & Gas", 1500000, "Largest private sector company in India"},
	{"Tata Consultancy Services", "TCS", "Information Technology", 1200000, "Leading IT services company"},
	{"HDFC Bank", "HDFCBANK", "Banking", 800000, "Leading private sector bank"},
	{"Infosys", "INFY", "Information Technology", 700000, "Global IT consulting company"},
	{"Hindustan Unilever", "HINDUNILVR", "FMCG", 600000, "Consumer goods company"},
	{"ICICI Bank", "ICICIBANK", "Banking", 550000, "Private sector bank"},
	{"State Bank of India", "SBIN", "Banking", 400000, "Largest public sector bank"},
	{"Bharti Airtel", "BHARTIARTL", "Telecommunications", 450000, "Leading telecom operator"},
	{"ITC Limited", "ITC", "FMCG", 350000, "Diversified conglomerate"},
	{"Kotak Mahindra Bank", "KOTAKBANK", "Banking", 300000, "Private sector bank"},
	{"Larsen & Toubro", "LT", "Engineering", 280000, "Engineering and construction company"},
	{"Asian Paints", "ASIANPAINT", "Paints", 250000, "Leading paint manufacturer"},
}

// Catalog returns a fresh copy of the reference company list
func Catalog() []*models.Company {
	companies := make([]*models.Company, 0, len(referenceCatalog))
	for _, l := range referenceCatalog {
		description := l.description
		companies = append(companies, &models.Company{
			Name:        l.name,
			Symbol:      l.symbol,
			Sector:      l.sector,
			MarketCap:   decimal.NewNullDecimal(decimal.NewFromInt(l.marketCap)),
			Description: &description,
		})
	}
	return companies
}

// ValidateCatalog checks required fields and ticker uniqueness
func ValidateCatalog(companies []*models.Company) error {
	seen := make(map[string]int, len(companies))
	for i, c := range companies {
		if c.Name == "" || c.Symbol == "" || c.Sector == "" {
			return fmt.Errorf("catalog entry %d: name, symbol and sector are required", i)
		}
		if first, ok := seen[c.Symbol]; ok {
			return fmt.Errorf("%w: %s at entries %d and %d", ErrDuplicateSymbol, c.Symbol, first, i)
		}
		seen[c.Symbol] = i
	}
	return nil
}
