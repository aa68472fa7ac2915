// Package generator produces synthetic daily OHLCV series with a bounded
// random walk. Output depends only on its arguments, so a deterministic
// Source yields a reproducible series.
package generator

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

// Source supplies randomness. *math/rand.Rand satisfies it.
type Source interface {
	// Float64 returns a value in [0.0, 1.0)
	Float64() float64
	// Intn returns a value in [0, n)
	Intn(n int) int
}

// Params bounds the random walk
type Params struct {
	BaseMin      float64 // lowest starting price
	BaseSpread   float64 // starting price is drawn from [BaseMin, BaseMin+BaseSpread)
	Volatility   float64 // daily return is drawn from [-Volatility, +Volatility]
	WickMax      float64 // high/low extend past the body by at most this fraction
	VolumeMin    int64
	VolumeSpread int
}

// DefaultParams matches the reference dataset: 2% daily volatility, 1% wicks,
// starting prices between 100 and 2100, volume in [100000, 1100000).
func DefaultParams() Params {
	return Params{
		BaseMin:      100,
		BaseSpread:   2000,
		Volatility:   0.02,
		WickMax:      0.01,
		VolumeMin:    100000,
		VolumeSpread: 1000000,
	}
}

// Generate walks from a random base price across every weekday between start
// and end (inclusive, compared as UTC calendar dates) and returns one point
// per weekday, oldest first.
func Generate(companyID int, start, end time.Time, p Params, src Source) []*models.PricePoint {
	from, to := calendarDate(start), calendarDate(end)
	points := make([]*models.PricePoint, 0, WeekdaysBetween(from, to))

	prevClose := p.BaseMin + src.Float64()*p.BaseSpread
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if isWeekend(d) {
			continue
		}

		openPrice := prevClose
		change := (src.Float64() - 0.5) * 2 * p.Volatility
		closePrice := openPrice * (1 + change)
		high := math.Max(openPrice, closePrice) * (1 + src.Float64()*p.WickMax)
		low := math.Min(openPrice, closePrice) * (1 - src.Float64()*p.WickMax)
		volume := p.VolumeMin + int64(src.Intn(p.VolumeSpread))

		points = append(points, &models.PricePoint{
			CompanyID: companyID,
			Date:      d,
			Open:      roundPrice(openPrice),
			High:      roundPrice(high),
			Low:       roundPrice(low),
			Close:     roundPrice(closePrice),
			Volume:    volume,
		})

		// The unrounded close seeds the next day
		prevClose = closePrice
	}

	return points
}

// Window returns the generation range ending at now and starting the given
// number of calendar months earlier.
func Window(now time.Time, months int) (start, end time.Time) {
	return now.AddDate(0, -months, 0), now
}

// WeekdaysBetween counts the weekdays between start and end inclusive
func WeekdaysBetween(start, end time.Time) int {
	n := 0
	for d, to := calendarDate(start), calendarDate(end); !d.After(to); d = d.AddDate(0, 0, 1) {
		if !isWeekend(d) {
			n++
		}
	}
	return n
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func calendarDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func roundPrice(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
