package termstructure

import (
	"fmt"
	"time"
)

// ReferenceMode selects how a curve establishes its reference date.
type ReferenceMode int

const (
	// ReferenceFloating follows the evaluation date at every query.
	ReferenceFloating ReferenceMode = iota
	// ReferenceFixed uses a date given at construction.
	ReferenceFixed
	// ReferenceSettlementLag advances the evaluation date by a number of
	// business days on the curve calendar.
	ReferenceSettlementLag
)

func (m ReferenceMode) String() string {
	switch m {
	case ReferenceFloating:
		return "floating"
	case ReferenceFixed:
		return "fixed"
	case ReferenceSettlementLag:
		return "settlement-lag"
	default:
		return fmt.Sprintf("ReferenceMode(%d)", int(m))
	}
}

// Reference is the reference-date strategy of a curve. Build one with
// Floating, Fixed or SettlementLag.
type Reference struct {
	mode           ReferenceMode
	date           time.Time
	settlementDays int
}

// Floating returns a reference that tracks the evaluation date.
func Floating() Reference {
	return Reference{mode: ReferenceFloating}
}

// Fixed returns a reference pinned to d.
func Fixed(d time.Time) Reference {
	return Reference{mode: ReferenceFixed, date: truncateDay(d)}
}

// SettlementLag returns a reference settlementDays business days after the
// evaluation date.
func SettlementLag(settlementDays int) Reference {
	return Reference{mode: ReferenceSettlementLag, settlementDays: settlementDays}
}

func (r Reference) Mode() ReferenceMode { return r.mode }

// Date is the fixed reference date; zero for the other modes.
func (r Reference) Date() time.Time { return r.date }

// SettlementDays is the lag of a settlement-lag reference; zero otherwise.
func (r Reference) SettlementDays() int { return r.settlementDays }

func (r Reference) String() string {
	switch r.mode {
	case ReferenceFixed:
		return "fixed:" + r.date.Format("2006-01-02")
	case ReferenceSettlementLag:
		return fmt.Sprintf("settlement-lag:%d", r.settlementDays)
	default:
		return r.mode.String()
	}
}
