package query_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/termstructure/cmd/dfcurve/internal/query"
)

const curveYAML = `
evaluation_date: 2025-01-02
calendar: TARGET
day_count: ACT/365F
reference:
  mode: fixed
  date: 2025-01-02
zero:
  type: flat
  rate: 0.05
logging:
  level: error
`

func runQuery(t *testing.T, stdin string, args ...string) (query.Output, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := query.Run(args, strings.NewReader(stdin), &stdout, &stderr)

	var out query.Output
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out), stdout.String())
	return out, code
}

func TestRunTimesAndDates(t *testing.T) {
	out, code := runQuery(t, curveYAML, "-times", "0,1,2", "-dates", "2027-01-02")
	require.Equal(t, 0, code, out.Error)

	assert.Equal(t, "2025-01-02", out.ReferenceDate)
	assert.Equal(t, "fixed:2025-01-02", out.Reference)
	require.Len(t, out.Points, 4)

	byDate := out.Points[0]
	assert.Equal(t, "2027-01-02", byDate.Date)
	assert.Equal(t, 2.0, byDate.Time)
	assert.Equal(t, 510, byDate.BusinessDays)

	assert.Equal(t, 1.0, out.Points[1].Discount)
	assert.Equal(t, 1.0/(1.0+0.05*1.0), out.Points[2].Discount)
	assert.Equal(t, 1.0/(1.0+0.05*2.0), out.Points[3].Discount)
	assert.Equal(t, out.Points[3].Discount, byDate.Discount)
	assert.InDelta(t, 0.05, out.Points[3].ZeroRate, 1e-14)
}

func TestRunDefaultTenors(t *testing.T) {
	out, code := runQuery(t, curveYAML, "-compounding", "continuous")
	require.Equal(t, 0, code, out.Error)
	require.Len(t, out.Points, 4)
	assert.Equal(t, "1Y", out.Points[0].Tenor)
	assert.Equal(t, "2026-01-02", out.Points[0].Date)
	assert.Equal(t, "continuous", out.Compounding)
}

func TestRunErrors(t *testing.T) {
	out, code := runQuery(t, "zero: {type: cubic}")
	assert.Equal(t, 1, code)
	assert.Contains(t, out.Error, "zero.type")

	out, code = runQuery(t, curveYAML, "-dates", "2024-01-02")
	assert.Equal(t, 1, code)
	assert.Contains(t, out.Error, "negative time")

	out, code = runQuery(t, curveYAML, "-compounding", "daily")
	assert.Equal(t, 1, code)
	assert.NotEmpty(t, out.Error)
}

const noDayCountYAML = `
evaluation_date: 2025-01-02
day_count: none
zero:
  type: flat
  rate: 0.05
logging:
  level: error
`

func TestRunWithoutDayCount(t *testing.T) {
	out, code := runQuery(t, noDayCountYAML)
	assert.Equal(t, 1, code)
	assert.Contains(t, out.Error, "day_count")

	out, code = runQuery(t, noDayCountYAML, "-dates", "2026-01-02")
	assert.Equal(t, 1, code)
	assert.Contains(t, out.Error, "day_count")

	out, code = runQuery(t, noDayCountYAML, "-times", "1")
	require.Equal(t, 0, code, out.Error)
	require.Len(t, out.Points, 1)
	assert.Equal(t, 1.0/(1.0+0.05*1.0), out.Points[0].Discount)
}

func TestRunSingularDiscount(t *testing.T) {
	doc := strings.Replace(curveYAML, "rate: 0.05", "rate: -0.5", 1)
	out, code := runQuery(t, doc, "-times", "2")
	assert.Equal(t, 1, code)
	assert.Contains(t, out.Error, "non-finite discount factor")
}

func TestRunPrecision(t *testing.T) {
	out, code := runQuery(t, curveYAML, "-times", "1", "-precision", "4")
	require.Equal(t, 0, code, out.Error)
	assert.Equal(t, 0.9524, out.Points[0].Discount)
	assert.Equal(t, 0.05, out.Points[0].ZeroRate)
}

func TestRunLogsOverridesToGivenWriter(t *testing.T) {
	t.Setenv("TERMSTRUCTURE_LOG_LEVEL", "debug")

	var stdout, stderr bytes.Buffer
	code := query.Run([]string{"-times", "1"}, strings.NewReader(curveYAML), &stdout, &stderr)
	require.Equal(t, 0, code, stdout.String())
	assert.Contains(t, stderr.String(), "config override")
	assert.Contains(t, stderr.String(), "TERMSTRUCTURE_LOG_LEVEL")
}
