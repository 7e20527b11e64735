package quote_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meenmo/termstructure/quote"
)

func TestSimpleQuote(t *testing.T) {
	t.Parallel()

	q := quote.NewSimpleQuote(0.99)
	var seen []float64
	q.Observe(func(v float64) { seen = append(seen, v) })

	assert.InDelta(t, -0.01, q.SetValue(0.98), 1e-15)
	assert.Equal(t, 0.0, q.SetValue(0.98))
	assert.Equal(t, 0.98, q.Value())
	assert.Equal(t, []float64{0.98}, seen)
}

func TestHandles(t *testing.T) {
	t.Parallel()

	hs := quote.Handles(0.5, 0.25)
	assert.Len(t, hs, 2)
	assert.Equal(t, 0.25, hs[1].Value())
}
