package utils

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the only date format accepted by configs and the CLI.
const DateLayout = "2006-01-02"

// SortDates sorts a slice of time.Time in ascending order.
func SortDates(dates []time.Time) {
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
}

// ParseDate converts YYYY-MM-DD to a UTC midnight time.Time.
func ParseDate(strDate string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(strDate))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", strDate, err)
	}
	return t, nil
}

// MustParseDate is ParseDate for literals; it panics on error.
func MustParseDate(strDate string) time.Time {
	t, err := ParseDate(strDate)
	if err != nil {
		panic(err)
	}
	return t
}

// AddMonth behaves like Excel's EDATE, avoiding Go's month normalization surprises.
func AddMonth(t time.Time, months int) time.Time {
	target := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	d := t.AddDate(0, months, 0)
	for d.Month() != target.Month() {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// AddTenor shifts t by a tenor string like "1W", "3M", "10Y" or "2D".
// Month and year tenors use AddMonth so that month ends do not spill over.
func AddTenor(t time.Time, tenor string) (time.Time, error) {
	s := strings.TrimSpace(strings.ToUpper(tenor))
	if len(s) < 2 {
		return time.Time{}, fmt.Errorf("invalid tenor %q", tenor)
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid tenor %q: %w", tenor, err)
	}
	switch s[len(s)-1] {
	case 'D':
		return t.AddDate(0, 0, n), nil
	case 'W':
		return t.AddDate(0, 0, 7*n), nil
	case 'M':
		return AddMonth(t, n), nil
	case 'Y':
		return AddMonth(t, 12*n), nil
	default:
		return time.Time{}, fmt.Errorf("invalid tenor unit in %q", tenor)
	}
}

// RoundTo rounds val half away from zero to decimals places. A negative
// precision and non-finite values leave val untouched.
func RoundTo(val float64, decimals int) float64 {
	if decimals < 0 || math.IsInf(val, 0) || math.IsNaN(val) {
		return val
	}
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}
