// Package window resolves the dashboard time window into one canonical shape
//
// A window is either a relative period token like "14d" or an absolute pair of UTC bounds
// The relative period always wins when both are present
package window

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"
	"time"

	"orgstats/internal/core/params"
)

// DefaultPeriod is the fallback relative period
const DefaultPeriod = "14d"

// periodRe matches relative period tokens such as 30m, 24h, 14d, 2w
var periodRe = regexp.MustCompile(`^(\d+)([smhdw])$`)

// Params is a raw, unvalidated window record
// it comes either from the location query or from a page filter selection
type Params struct {
	StatsPeriod string
	Period      string
	Start       string
	End         string
	UTC         string

	// page scoped keys written by the legacy per-page selector
	PageStatsPeriod string
	PageStart       string
	PageEnd         string
	PageUTC         string
}

// FromQuery reads window keys from a location query
func FromQuery(q url.Values) Params {
	return Params{
		StatsPeriod:     params.First(q, params.KeyStatsPeriod),
		Start:           params.First(q, params.KeyStart),
		End:             params.First(q, params.KeyEnd),
		UTC:             params.First(q, params.KeyUTC),
		PageStatsPeriod: params.First(q, params.KeyPageStatsPeriod),
		PageStart:       params.First(q, params.KeyPageStart),
		PageEnd:         params.First(q, params.KeyPageEnd),
		PageUTC:         params.First(q, params.KeyPageStatsUTC),
	}
}

// Options controls the acceptance pass
type Options struct {
	AllowEmptyPeriod          bool
	AllowAbsoluteDatetime     bool
	AllowAbsolutePageDatetime bool

	// DefaultPeriod replaces the package default when set
	DefaultPeriod string

	// Location interprets zone-less bounds when utc is not true, nil means time.Local
	Location *time.Location
}

func (o Options) withDefaults() Options {
	if !ValidPeriod(o.DefaultPeriod) {
		o.DefaultPeriod = DefaultPeriod
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	return o
}

// Normalized is the result of the acceptance pass
// Start and End hold accepted raw bounds, UTC is "true", "false" or empty
type Normalized struct {
	StatsPeriod string
	Start       string
	End         string
	UTC         string
}

// NormalizeParams accepts the valid parts of p
// a resolved period clears any absolute bound
func NormalizeParams(p Params, o Options) Normalized {
	o = o.withDefaults()

	period := firstPeriod(p.StatsPeriod, p.Period)
	if o.AllowAbsolutePageDatetime {
		period = firstPeriod(p.PageStatsPeriod, p.StatsPeriod, p.Period)
	}

	var start, end string
	if o.AllowAbsoluteDatetime {
		start, end = acceptBound(p.Start), acceptBound(p.End)
		if o.AllowAbsolutePageDatetime {
			if s := acceptBound(p.PageStart); s != "" {
				start = s
			}
			if e := acceptBound(p.PageEnd); e != "" {
				end = e
			}
		}
	}

	utc := p.UTC
	if o.AllowAbsolutePageDatetime && p.PageUTC != "" {
		utc = p.PageUTC
	}

	if period == "" && (start == "" || end == "") && !o.AllowEmptyPeriod {
		period = o.DefaultPeriod
	}
	if period != "" {
		start, end = "", ""
	}

	return Normalized{
		StatsPeriod: period,
		Start:       start,
		End:         end,
		UTC:         utcValue(utc),
	}
}

// DateWindow is the canonical time window handed to rendering collaborators
// exactly one of Period or Start/End is populated
type DateWindow struct {
	Period string
	Start  string
	End    string
	UTC    bool
}

// Relative returns a period window
func Relative(period string) DateWindow { return DateWindow{Period: period} }

// IsRelative reports whether w is a period window
func (w DateWindow) IsRelative() bool { return w.Period != "" }

// MarshalJSON emits {"period"} or {"start","end","utc"}
func (w DateWindow) MarshalJSON() ([]byte, error) {
	if w.IsRelative() {
		return json.Marshal(struct {
			Period string `json:"period"`
		}{w.Period})
	}
	return json.Marshal(struct {
		Start string `json:"start"`
		End   string `json:"end"`
		UTC   bool   `json:"utc"`
	}{w.Start, w.End, w.UTC})
}

// Resolve normalizes p into a DateWindow
// empty periods and absolute bounds are always accepted, page keys follow o
func Resolve(p Params, o Options) DateWindow {
	o.AllowEmptyPeriod = true
	o.AllowAbsoluteDatetime = true
	o = o.withDefaults()

	n := NormalizeParams(p, o)
	if n.StatsPeriod == "" && n.Start == "" && n.End == "" {
		return Relative(o.DefaultPeriod)
	}

	// period beats start/end
	if n.StatsPeriod != "" {
		return Relative(n.StatsPeriod)
	}

	if n.Start != "" && n.End != "" {
		utc := n.UTC == "true"
		loc := o.Location
		if utc {
			loc = time.UTC
		}
		start, okS := parseBound(n.Start, loc)
		end, okE := parseBound(n.End, loc)
		if okS && okE {
			return DateWindow{Start: FormatUTC(start), End: FormatUTC(end), UTC: utc}
		}
	}

	return Relative(o.DefaultPeriod)
}

// FormatUTC renders t as an RFC 3339 UTC timestamp
func FormatUTC(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// ValidPeriod reports whether s is a relative period token
func ValidPeriod(s string) bool { return periodRe.MatchString(strings.TrimSpace(s)) }

// RelativeOptions lists the periods offered by the legacy time range selector
func RelativeOptions() []params.Option {
	return []params.Option{
		{Value: "24h", Label: "Last 24 hours"},
		{Value: "7d", Label: "Last 7 days"},
		{Value: "14d", Label: "Last 14 days"},
		{Value: "30d", Label: "Last 30 days"},
		{Value: "90d", Label: "Last 90 days"},
	}
}

func firstPeriod(candidates ...string) string {
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if ValidPeriod(c) {
			return c
		}
	}
	return ""
}

// utcValue keeps "true" as the only truthy spelling, any other non-empty value is "false"
func utcValue(s string) string {
	switch s {
	case "":
		return ""
	case "true":
		return "true"
	default:
		return "false"
	}
}

// acceptBound returns s when it parses as a bound, otherwise empty
func acceptBound(s string) string {
	s = strings.TrimSpace(s)
	if _, ok := parseBound(s, time.UTC); !ok {
		return ""
	}
	return s
}

var (
	zonedLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04Z07:00"}
	localLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
)

// parseBound parses s keeping explicit offsets and reading zone-less values in loc
func parseBound(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range zonedLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	for _, l := range localLayouts {
		if t, err := time.ParseInLocation(l, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
