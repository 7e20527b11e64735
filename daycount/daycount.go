package daycount

import (
	"fmt"
	"strings"
	"time"
)

// DayCounter maps a date span to a year fraction.
type DayCounter interface {
	YearFraction(start, end time.Time) float64
}

// Convention is a named day count convention.
// Supported conventions: ACT/360, ACT/365F, ACT/ACT, 30E/360, 30/360.
type Convention string

const (
	Act360   Convention = "ACT/360"
	Act365F  Convention = "ACT/365F"
	ActAct   Convention = "ACT/ACT"
	Thirty   Convention = "30/360"
	ThirtyE  Convention = "30E/360"
	NoneConv Convention = ""
)

// Parse normalizes common spellings ("A365F", "act/365 fixed", "30e/360").
func Parse(s string) (Convention, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ACT/360", "A360", "ACTUAL/360":
		return Act360, nil
	case "ACT/365F", "A365F", "ACT/365", "ACT/365 FIXED", "ACTUAL/365F":
		return Act365F, nil
	case "ACT/ACT", "ACT/ACT ISDA", "ACTUAL/ACTUAL":
		return ActAct, nil
	case "30/360", "30U/360", "BOND":
		return Thirty, nil
	case "30E/360", "EUROBOND":
		return ThirtyE, nil
	case "", "NONE":
		return NoneConv, nil
	default:
		return "", fmt.Errorf("daycount: unknown convention %q", s)
	}
}

// YearFraction implements DayCounter.
//
// The empty convention measures no time at all and panics, matching a curve
// built without a day counter that is then asked for a date-based value.
func (c Convention) YearFraction(start, end time.Time) float64 {
	if c == NoneConv {
		panic("daycount: no day counter given")
	}
	return YearFraction(start, end, string(c))
}

// YearFraction computes year fraction between two dates using the specified day count convention.
func YearFraction(start, end time.Time, convention string) float64 {
	switch convention {
	case "ACT/360":
		return days(start, end) / 360.0
	case "ACT/365F":
		return days(start, end) / 365.0
	case "ACT/ACT":
		return actActISDA(start, end)
	case "30/360":
		// 30/360 US: D2 is capped only when D1 already is.
		d1 := start.Day()
		if d1 > 30 {
			d1 = 30
		}
		d2 := end.Day()
		if d2 > 30 && d1 == 30 {
			d2 = 30
		}
		return thirty360(start, end, d1, d2)
	case "30E/360":
		// 30E/360 ISDA (Eurobond basis)
		// D1 and D2 are capped at 30
		d1 := start.Day()
		if d1 > 30 {
			d1 = 30
		}
		d2 := end.Day()
		if d2 > 30 {
			d2 = 30
		}
		return thirty360(start, end, d1, d2)
	default:
		return days(start, end) / 365.0
	}
}

func days(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}

func thirty360(start, end time.Time, d1, d2 int) float64 {
	y1, m1 := start.Year(), int(start.Month())
	y2, m2 := end.Year(), int(end.Month())
	return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
}

// actActISDA splits the span at year boundaries and divides each piece by
// the length of its own year.
func actActISDA(start, end time.Time) float64 {
	if end.Before(start) {
		return -actActISDA(end, start)
	}
	if start.Year() == end.Year() {
		return days(start, end) / daysInYear(start.Year())
	}
	y1, y2 := start.Year(), end.Year()
	firstEnd := time.Date(y1+1, time.January, 1, 0, 0, 0, 0, start.Location())
	lastStart := time.Date(y2, time.January, 1, 0, 0, 0, 0, end.Location())
	return days(start, firstEnd)/daysInYear(y1) +
		float64(y2-y1-1) +
		days(lastStart, end)/daysInYear(y2)
}

func daysInYear(y int) float64 {
	if y%4 == 0 && (y%100 != 0 || y%400 == 0) {
		return 366
	}
	return 365
}
