package dateutil

import (
	"math"
	"time"
)

// DaysPerYear is the day-count convention used for every fractional-year
// figure in the engine. Downstream exponents rely on ages staying fractional,
// so none of these helpers floor.
const DaysPerYear = 365.25

// YearsBetween returns the fractional number of years from one date to
// another, negative when to precedes from.
func YearsBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24 / DaysPerYear
}

// Age returns the fractional age at a given date.
func Age(birthDate, atDate time.Time) float64 {
	return YearsBetween(birthDate, atDate)
}

// MonthsFromYears converts a fractional year span to a whole number of
// monthly periods, rounding to nearest.
func MonthsFromYears(years float64) int {
	return int(math.Round(years * 12))
}

// ClampMonths floors a period count at zero, the convention for horizons
// already in the past.
func ClampMonths(months int) int {
	if months < 0 {
		return 0
	}
	return months
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// MidnightUTC truncates a timestamp to the start of its UTC day. Analysis
// runs key every duration off a single such reference date.
func MidnightUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
