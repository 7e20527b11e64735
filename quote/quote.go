// Package quote holds observable market values such as jump sizes and flat rates.
package quote

// Handle is a read-only view of an observable scalar.
type Handle interface {
	Value() float64
}

// SimpleQuote is a settable scalar that notifies observers on change.
//
// It is not synchronized: callers that update a quote from a market data
// feed while curves are being queried must serialize those calls.
type SimpleQuote struct {
	value     float64
	observers []func(float64)
}

// NewSimpleQuote returns a quote initialised to v.
func NewSimpleQuote(v float64) *SimpleQuote {
	return &SimpleQuote{value: v}
}

// Value implements Handle.
func (q *SimpleQuote) Value() float64 {
	return q.value
}

// SetValue stores v and notifies observers if the value changed.
// It returns the difference between the new and the old value.
func (q *SimpleQuote) SetValue(v float64) float64 {
	diff := v - q.value
	if diff != 0 {
		q.value = v
		for _, fn := range q.observers {
			fn(v)
		}
	}
	return diff
}

// Observe registers fn to be called with the new value on every change.
func (q *SimpleQuote) Observe(fn func(float64)) {
	q.observers = append(q.observers, fn)
}

// Handles wraps plain values as quotes.
func Handles(values ...float64) []Handle {
	out := make([]Handle, len(values))
	for i, v := range values {
		out[i] = NewSimpleQuote(v)
	}
	return out
}
