package termstructure

import "time"

// Settings carries the evaluation date that floating and settlement-lag
// curves resolve their reference date from.
type Settings struct {
	evaluationDate time.Time
	observers      []func(time.Time)
}

// DefaultSettings is used by curves built without Options.Settings.
var DefaultSettings = &Settings{}

// NewSettings returns settings pinned to the given evaluation date.
func NewSettings(evaluationDate time.Time) *Settings {
	return &Settings{evaluationDate: truncateDay(evaluationDate)}
}

// EvaluationDate returns the pinned date, or today (UTC) when none is set.
func (s *Settings) EvaluationDate() time.Time {
	if s.evaluationDate.IsZero() {
		return truncateDay(time.Now().UTC())
	}
	return s.evaluationDate
}

// SetEvaluationDate pins the evaluation date and notifies observers.
// Passing the zero time reverts to tracking today's date.
func (s *Settings) SetEvaluationDate(d time.Time) {
	d = truncateDay(d)
	if d.Equal(s.evaluationDate) {
		return
	}
	s.evaluationDate = d
	for _, fn := range s.observers {
		fn(s.EvaluationDate())
	}
}

// Observe registers fn to run after every evaluation date change.
func (s *Settings) Observe(fn func(time.Time)) {
	s.observers = append(s.observers, fn)
}

func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
