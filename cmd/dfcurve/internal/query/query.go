package query

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/phuslu/log"

	"github.com/meenmo/termstructure/calendar"
	"github.com/meenmo/termstructure/cmd/dfcurve/internal/logging"
	"github.com/meenmo/termstructure/config"
	"github.com/meenmo/termstructure/daycount"
	"github.com/meenmo/termstructure/termstructure"
	"github.com/meenmo/termstructure/utils"
)

var defaultTenors = []string{"1Y", "2Y", "5Y", "10Y"}

var errNoDayCount = errors.New("date and tenor queries need a day_count; query with -times instead")

// Output is the JSON document written to stdout.
type Output struct {
	ReferenceDate string  `json:"reference_date,omitempty"`
	Reference     string  `json:"reference,omitempty"`
	Compounding   string  `json:"compounding,omitempty"`
	Points        []Point `json:"points,omitempty"`
	Error         string  `json:"error,omitempty"`
}

// Point is one queried discount factor. Date queries also report the
// measured time and the business days from the reference date; time
// queries leave both empty.
type Point struct {
	Tenor        string  `json:"tenor,omitempty"`
	Date         string  `json:"date,omitempty"`
	BusinessDays int     `json:"business_days,omitempty"`
	Time         float64 `json:"time"`
	Discount     float64 `json:"discount"`
	ZeroRate     float64 `json:"zero_rate"`
}

type request struct {
	comp        termstructure.Compounding
	freq        termstructure.Frequency
	extrapolate bool
	precision   int
	dates       []time.Time
	tenors      []string
	times       []float64
}

// Run loads a curve config and prints discount factors.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("discount", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML curve config path (optional; if unset, reads stdin)")
	datesFlag := fs.String("dates", "", "comma separated dates (YYYY-MM-DD)")
	tenorsFlag := fs.String("tenors", "", "comma separated tenors from the reference date (e.g. 6M,1Y)")
	timesFlag := fs.String("times", "", "comma separated year fractions")
	compFlag := fs.String("compounding", "simple", "zero rate compounding: simple, compounded, continuous, simple-then-compounded")
	freqFlag := fs.Int("frequency", 1, "compounding frequency per year")
	extrapolate := fs.Bool("extrapolate", false, "allow queries past the curve max date")
	precision := fs.Int("precision", -1, "round discount factors and zero rates to this many decimals (-1 keeps full precision)")
	logLevel := fs.String("log-level", "", "override logging.level from the config")
	help := fs.Bool("h", false, "Show help")
	fs.BoolVar(help, "help", false, "Show help")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *help {
		usage(stderr)
		return 0
	}

	path := strings.TrimSpace(*configPath)
	if path == "" {
		if f, ok := stdin.(*os.File); ok {
			if stat, err := f.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
				usage(stderr)
				return 2
			}
		}
	}

	data, err := readInput(stdin, path)
	if err != nil {
		return writeError(stdout, fmt.Sprintf("failed to read config: %v", err))
	}
	cfg, err := config.Parse(data)
	if err != nil {
		return writeError(stdout, err.Error())
	}
	level := cfg.Logging.Level
	if *logLevel != "" {
		level = *logLevel
	}
	logger := logging.New(level, stderr)
	logging.Install(logger)
	for _, o := range cfg.Overrides() {
		logger.Debug().Str("env", o.Env).Str("value", o.Value).Msg("config override")
	}

	req := request{
		freq:        termstructure.Frequency(*freqFlag),
		extrapolate: *extrapolate,
		precision:   *precision,
	}
	if req.comp, err = termstructure.ParseCompounding(*compFlag); err != nil {
		return writeError(stdout, err.Error())
	}
	if req.dates, err = parseDates(*datesFlag); err != nil {
		return writeError(stdout, err.Error())
	}
	if req.times, err = parseTimes(*timesFlag); err != nil {
		return writeError(stdout, err.Error())
	}
	req.tenors = splitList(*tenorsFlag)
	if len(req.dates) == 0 && len(req.times) == 0 && len(req.tenors) == 0 {
		req.tenors = defaultTenors
	}

	crv, err := config.Build(cfg)
	if err != nil {
		return writeError(stdout, err.Error())
	}
	if crv.DayCounter() == daycount.NoneConv && len(req.dates)+len(req.tenors) > 0 {
		return writeError(stdout, errNoDayCount.Error())
	}

	out, err := evaluate(crv.Curve, req, logger)
	if err != nil {
		return writeError(stdout, err.Error())
	}
	b, err := json.Marshal(out)
	if err != nil {
		return writeError(stdout, fmt.Sprintf("failed to encode output: %v", err))
	}
	fmt.Fprintln(stdout, string(b))
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  dfcurve discount -config curve.yaml [-dates 2026-01-02,...] [-tenors 1Y,...] [-times 0.5,...] [-precision 6]")
	fmt.Fprintln(w, "  dfcurve discount < curve.yaml")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build a simple-compounding zero curve from YAML and print discount factors as JSON.")
}

func evaluate(crv *termstructure.Curve, req request, logger log.Logger) (*Output, error) {
	ref := crv.ReferenceDate()
	out := &Output{
		ReferenceDate: ref.Format(utils.DateLayout),
		Reference:     crv.Reference().String(),
		Compounding:   req.comp.String(),
	}

	for _, tenor := range req.tenors {
		d, err := utils.AddTenor(ref, tenor)
		if err != nil {
			return nil, err
		}
		p, err := pointAt(crv, d, req)
		if err != nil {
			return nil, fmt.Errorf("tenor %s: %w", tenor, err)
		}
		p.Tenor = strings.ToUpper(tenor)
		out.Points = append(out.Points, p)
	}
	for _, d := range req.dates {
		p, err := pointAt(crv, d, req)
		if err != nil {
			return nil, fmt.Errorf("date %s: %w", d.Format(utils.DateLayout), err)
		}
		out.Points = append(out.Points, p)
	}
	for _, t := range req.times {
		df, err := crv.Discount(t, req.extrapolate)
		if err != nil {
			return nil, fmt.Errorf("time %g: %w", t, err)
		}
		z, err := crv.ZeroRate(t, req.comp, req.freq, req.extrapolate)
		if err != nil {
			return nil, fmt.Errorf("time %g: %w", t, err)
		}
		p, err := finish(Point{Time: t, Discount: df, ZeroRate: z}, req)
		if err != nil {
			return nil, fmt.Errorf("time %g: %w", t, err)
		}
		out.Points = append(out.Points, p)
	}

	logger.Info().
		Str("reference_date", out.ReferenceDate).
		Int("points", len(out.Points)).
		Msg("discount factors computed")
	return out, nil
}

func pointAt(crv *termstructure.Curve, d time.Time, req request) (Point, error) {
	df, err := crv.DiscountAt(d, req.extrapolate)
	if err != nil {
		return Point{}, err
	}
	z, err := crv.ZeroRateAt(d, req.comp, req.freq, req.extrapolate)
	if err != nil {
		return Point{}, err
	}
	cal, _ := crv.Calendar().(calendar.CalendarID)
	return finish(Point{
		Date:         d.Format(utils.DateLayout),
		BusinessDays: calendar.BusinessDaysBetween(cal, crv.ReferenceDate(), d),
		Time:         crv.TimeFromReference(d),
		Discount:     df,
		ZeroRate:     z,
	}, req)
}

// finish rejects values JSON cannot carry, such as the infinite discount
// factor of a rate at -1/t, and applies the requested rounding.
func finish(p Point, req request) (Point, error) {
	for _, v := range []struct {
		name string
		val  float64
	}{{"discount factor", p.Discount}, {"zero rate", p.ZeroRate}} {
		if math.IsInf(v.val, 0) || math.IsNaN(v.val) {
			return Point{}, fmt.Errorf("non-finite %s %v", v.name, v.val)
		}
	}
	p.Discount = utils.RoundTo(p.Discount, req.precision)
	p.ZeroRate = utils.RoundTo(p.ZeroRate, req.precision)
	return p, nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(stdin)
}

func writeError(stdout io.Writer, msg string) int {
	b, _ := json.Marshal(Output{Error: msg})
	fmt.Fprintln(stdout, string(b))
	return 1
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDates(s string) ([]time.Time, error) {
	var out []time.Time
	for _, part := range splitList(s) {
		d, err := utils.ParseDate(part)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func parseTimes(s string) ([]float64, error) {
	var out []float64
	for _, part := range splitList(s) {
		t, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid time %q: %w", part, err)
		}
		out = append(out, t)
	}
	return out, nil
}
