package calendar

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Calendar advances dates over business days.
type Calendar interface {
	IsBusinessDay(t time.Time) bool
	Advance(t time.Time, businessDays int) time.Time
}

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	TARGET       CalendarID = "TARGET"
	JPN          CalendarID = "JPN"
	USD          CalendarID = "USD"
	KRW          CalendarID = "KRW"
	WeekendsOnly CalendarID = "WEEKENDS"
	// Null treats every day, weekends included, as a business day.
	Null CalendarID = "NULL"
)

var (
	mu       sync.RWMutex
	holidays = map[CalendarID]map[string]struct{}{
		JPN: {},
		USD: {},
		KRW: {},
	}
)

// Known reports whether id names a supported calendar.
func Known(id CalendarID) bool {
	switch id {
	case TARGET, JPN, USD, KRW, WeekendsOnly, Null:
		return true
	default:
		return false
	}
}

// AddHolidays registers extra closing days for cal. They apply on top of
// the TARGET rules; the NULL and WEEKENDS calendars ignore them.
func AddHolidays(cal CalendarID, dates ...time.Time) {
	mu.Lock()
	defer mu.Unlock()
	set, ok := holidays[cal]
	if !ok {
		set = map[string]struct{}{}
		holidays[cal] = set
	}
	for _, d := range dates {
		set[d.Format("2006-01-02")] = struct{}{}
	}
}

func isHoliday(cal CalendarID, t time.Time) bool {
	switch cal {
	case TARGET:
		if isTargetHoliday(t) {
			return true
		}
	case WeekendsOnly, Null:
		return false
	}
	mu.RLock()
	defer mu.RUnlock()
	_, ok := holidays[cal][t.Format("2006-01-02")]
	return ok
}

// isTargetHoliday applies the TARGET2 closing days in force since 2001.
func isTargetHoliday(t time.Time) bool {
	y, m, d := t.Date()
	switch {
	case m == time.January && d == 1,
		m == time.May && d == 1,
		m == time.December && (d == 25 || d == 26):
		return true
	}
	easter := easterSunday(y)
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return day.Equal(easter.AddDate(0, 0, -2)) || day.Equal(easter.AddDate(0, 0, 1))
}

// easterSunday uses the anonymous Gregorian algorithm.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// IsBusinessDay checks weekends and holiday sets.
func IsBusinessDay(cal CalendarID, t time.Time) bool {
	if cal == Null {
		return true
	}
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !isHoliday(cal, t)
}

// BusinessDayConvention says how a date falling on a holiday is rolled.
type BusinessDayConvention string

const (
	Unadjusted        BusinessDayConvention = "unadjusted"
	Following         BusinessDayConvention = "following"
	ModifiedFollowing BusinessDayConvention = "modified_following"
)

// ParseConvention accepts the convention names used in curve configs.
// The empty string is Unadjusted.
func ParseConvention(s string) (BusinessDayConvention, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unadjusted", "none":
		return Unadjusted, nil
	case "following", "f":
		return Following, nil
	case "modified_following", "modified following", "mf":
		return ModifiedFollowing, nil
	default:
		return "", fmt.Errorf("calendar: unknown business day convention %q", s)
	}
}

// Adjust rolls t to a business day of cal under conv. Modified Following
// rolls back instead when rolling forward would leave the month.
func Adjust(cal CalendarID, t time.Time, conv BusinessDayConvention) time.Time {
	switch conv {
	case Following:
		return roll(cal, t, 1)
	case ModifiedFollowing:
		if adj := roll(cal, t, 1); adj.Month() == t.Month() {
			return adj
		}
		return roll(cal, t, -1)
	default:
		return t
	}
}

func roll(cal CalendarID, t time.Time, step int) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, step)
	}
	return t
}

// AddBusinessDays advances n business days (n can be negative).
//
// With n == 0 the date is rolled forward to a business day, so a spot date
// with zero settlement days never lands on a holiday.
func AddBusinessDays(cal CalendarID, t time.Time, n int) time.Time {
	if n == 0 {
		return roll(cal, t, 1)
	}
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if IsBusinessDay(cal, t) {
			n -= step
		}
	}
	return t
}

// BusinessDaysBetween counts business days in (from, to].
func BusinessDaysBetween(cal CalendarID, from, to time.Time) int {
	n := 0
	for d := from.AddDate(0, 0, 1); !d.After(to); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(cal, d) {
			n++
		}
	}
	return n
}

// IsBusinessDay implements Calendar.
func (c CalendarID) IsBusinessDay(t time.Time) bool {
	return IsBusinessDay(c, t)
}

// Advance implements Calendar.
func (c CalendarID) Advance(t time.Time, businessDays int) time.Time {
	return AddBusinessDays(c, t, businessDays)
}
