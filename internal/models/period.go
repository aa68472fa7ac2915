package models

import "time"

// Period is a relative lookback window token accepted by the stock series endpoint
type Period string

const (
	PeriodOneWeek     Period = "1W"
	PeriodOneMonth    Period = "1M"
	PeriodThreeMonths Period = "3M"
	PeriodOneYear     Period = "1Y"

	DefaultPeriod = PeriodOneMonth
)

var periodDays = map[Period]int{
	PeriodOneWeek:     7,
	PeriodOneMonth:    30,
	PeriodThreeMonths: 90,
	PeriodOneYear:     365,
}

// ParsePeriod resolves a query token. An empty token selects DefaultPeriod.
// Unknown tokens are returned as-is with ok=false; callers serve the full
// series for them.
func ParsePeriod(token string) (p Period, ok bool) {
	if token == "" {
		return DefaultPeriod, true
	}
	p = Period(token)
	_, ok = periodDays[p]
	return p, ok
}

// Days returns the lookback length, or 0 for an unknown period
func (p Period) Days() int {
	return periodDays[p]
}

// Cutoff returns the earliest calendar date (UTC midnight) included by the period
func (p Period) Cutoff(now time.Time) time.Time {
	t := now.UTC().AddDate(0, 0, -p.Days())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
