package window

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"
)

var plus2 = time.FixedZone("UTC+2", 2*60*60)

func TestResolve_DefaultWhenNothingSet(t *testing.T) {
	t.Parallel()

	queries := []url.Values{
		nil,
		{},
		{"utc": {"true"}},
		{"dataCategory": {"transactions"}},
		{"statsPeriod": {""}},
	}
	for _, q := range queries {
		got := Resolve(FromQuery(q), Options{})
		if got != Relative(DefaultPeriod) {
			t.Fatalf("Resolve(%v)=%+v want default", q, got)
		}
	}
}

func TestResolve_PeriodWinsOverAbsolute(t *testing.T) {
	t.Parallel()

	for _, period := range []string{"7d", "24h", "30m", "2w", "90d"} {
		q := url.Values{
			"statsPeriod": {period},
			"start":       {"2023-01-01"},
			"end":         {"2023-01-02"},
			"utc":         {"true"},
		}
		got := Resolve(FromQuery(q), Options{})
		if got != Relative(period) {
			t.Fatalf("period %s: got %+v", period, got)
		}
	}
}

func TestResolve_UTCBoundsKeepInstant(t *testing.T) {
	t.Parallel()

	cases := []struct {
		start, end         string
		wantStart, wantEnd string
	}{
		{"2023-01-01T00:00:00Z", "2023-01-02T00:00:00Z", "2023-01-01T00:00:00Z", "2023-01-02T00:00:00Z"},
		{"2023-01-01T00:00:00", "2023-01-02T12:30:00", "2023-01-01T00:00:00Z", "2023-01-02T12:30:00Z"},
		{"2023-01-01T02:00:00+02:00", "2023-01-02", "2023-01-01T00:00:00Z", "2023-01-02T00:00:00Z"},
	}
	for _, tc := range cases {
		q := url.Values{"start": {tc.start}, "end": {tc.end}, "utc": {"true"}}
		got := Resolve(FromQuery(q), Options{Location: plus2})
		want := DateWindow{Start: tc.wantStart, End: tc.wantEnd, UTC: true}
		if got != want {
			t.Fatalf("Resolve(%s,%s)=%+v want %+v", tc.start, tc.end, got, want)
		}
	}
}

func TestResolve_LocalBoundsConvertToUTC(t *testing.T) {
	t.Parallel()

	for _, utc := range []string{"", "false"} {
		q := url.Values{"start": {"2023-01-01T10:00:00"}, "end": {"2023-01-02T10:00:00"}}
		if utc != "" {
			q.Set("utc", utc)
		}
		got := Resolve(FromQuery(q), Options{Location: plus2})
		want := DateWindow{Start: "2023-01-01T08:00:00Z", End: "2023-01-02T08:00:00Z"}
		if got != want {
			t.Fatalf("utc=%q got %+v want %+v", utc, got, want)
		}

		// converting back with the same offset reproduces the local wall clock
		back, err := time.Parse(time.RFC3339, got.Start)
		if err != nil {
			t.Fatal(err)
		}
		if s := back.In(plus2).Format("2006-01-02T15:04:05"); s != "2023-01-01T10:00:00" {
			t.Fatalf("round trip got %s", s)
		}
	}
}

func TestResolve_PartialOrMalformedFallsBack(t *testing.T) {
	t.Parallel()

	queries := []url.Values{
		{"start": {"2023-01-01"}},
		{"end": {"2023-01-01"}},
		{"start": {"yesterday"}, "end": {"2023-01-02"}},
		{"start": {"2023-13-45"}, "end": {"2023-01-02"}},
		{"statsPeriod": {"forever"}, "start": {"2023-01-01"}},
	}
	for _, q := range queries {
		if got := Resolve(FromQuery(q), Options{}); got != Relative(DefaultPeriod) {
			t.Fatalf("Resolve(%v)=%+v want default", q, got)
		}
	}
}

func TestResolve_InvalidPeriodIgnored(t *testing.T) {
	t.Parallel()

	q := url.Values{"statsPeriod": {"bogus"}, "start": {"2023-01-01T00:00:00Z"}, "end": {"2023-01-02T00:00:00Z"}, "utc": {"true"}}
	got := Resolve(FromQuery(q), Options{})
	if got.IsRelative() || got.Start != "2023-01-01T00:00:00Z" {
		t.Fatalf("invalid period should not shadow bounds, got %+v", got)
	}
}

func TestResolve_PageScopedKeys(t *testing.T) {
	t.Parallel()

	q := url.Values{
		"pageStart":    {"2023-03-01T00:00:00"},
		"pageEnd":      {"2023-03-02T00:00:00"},
		"pageStatsUtc": {"true"},
	}

	withPage := Resolve(FromQuery(q), Options{AllowAbsolutePageDatetime: true, Location: plus2})
	want := DateWindow{Start: "2023-03-01T00:00:00Z", End: "2023-03-02T00:00:00Z", UTC: true}
	if withPage != want {
		t.Fatalf("page keys: got %+v want %+v", withPage, want)
	}

	if got := Resolve(FromQuery(q), Options{}); got != Relative(DefaultPeriod) {
		t.Fatalf("page keys must be ignored when not allowed, got %+v", got)
	}

	q.Set("pageStatsPeriod", "30d")
	if got := Resolve(FromQuery(q), Options{AllowAbsolutePageDatetime: true}); got != Relative("30d") {
		t.Fatalf("page period should win, got %+v", got)
	}
}

func TestResolve_CustomDefault(t *testing.T) {
	t.Parallel()

	if got := Resolve(Params{}, Options{DefaultPeriod: "30d"}); got != Relative("30d") {
		t.Fatalf("got %+v", got)
	}
	if got := Resolve(Params{}, Options{DefaultPeriod: "nope"}); got != Relative(DefaultPeriod) {
		t.Fatalf("invalid default should be ignored, got %+v", got)
	}
}

func TestNormalizeParams_DefaultUnlessEmptyAllowed(t *testing.T) {
	t.Parallel()

	n := NormalizeParams(Params{}, Options{})
	if n.StatsPeriod != DefaultPeriod {
		t.Fatalf("expected default period, got %+v", n)
	}
	n = NormalizeParams(Params{}, Options{AllowEmptyPeriod: true})
	if n.StatsPeriod != "" {
		t.Fatalf("expected empty period, got %+v", n)
	}
	n = NormalizeParams(Params{Start: "2023-01-01", End: "2023-01-02", UTC: "true"}, Options{})
	if n.StatsPeriod != DefaultPeriod || n.Start != "" || n.UTC != "true" {
		t.Fatalf("absolute bounds need AllowAbsoluteDatetime, got %+v", n)
	}
	n = NormalizeParams(Params{Start: "2023-01-01", End: "2023-01-02"}, Options{AllowAbsoluteDatetime: true})
	if n.StatsPeriod != "" || n.Start != "2023-01-01" || n.End != "2023-01-02" {
		t.Fatalf("got %+v", n)
	}
}

func TestDateWindow_MarshalJSON(t *testing.T) {
	t.Parallel()

	b, _ := json.Marshal(Relative("7d"))
	if string(b) != `{"period":"7d"}` {
		t.Fatalf("got %s", b)
	}
	b, _ = json.Marshal(DateWindow{Start: "2023-01-01T00:00:00Z", End: "2023-01-02T00:00:00Z"})
	if string(b) != `{"start":"2023-01-01T00:00:00Z","end":"2023-01-02T00:00:00Z","utc":false}` {
		t.Fatalf("got %s", b)
	}
}

func TestRelativeOptions_OmitsLastHour(t *testing.T) {
	t.Parallel()

	for _, o := range RelativeOptions() {
		if o.Value == "1h" {
			t.Fatal("1h must not be offered")
		}
		if !ValidPeriod(o.Value) {
			t.Fatalf("invalid option %q", o.Value)
		}
	}
}

func TestResolve_OnlyLiteralTrueIsUTC(t *testing.T) {
	t.Parallel()

	for _, utc := range []string{"1", "TRUE", "True", " true", "yes", "false"} {
		w := Resolve(Params{Start: "2023-01-01T10:00:00", End: "2023-01-02T10:00:00", UTC: utc}, Options{Location: plus2})
		want := DateWindow{Start: "2023-01-01T08:00:00Z", End: "2023-01-02T08:00:00Z", UTC: false}
		if w != want {
			t.Fatalf("utc=%q: got %+v want %+v", utc, w, want)
		}
		if n := NormalizeParams(Params{UTC: utc}, Options{}); n.UTC != "false" {
			t.Fatalf("utc=%q normalized to %q", utc, n.UTC)
		}
	}

	w := Resolve(Params{Start: "2023-01-01T10:00:00", End: "2023-01-02T10:00:00", UTC: "true"}, Options{Location: plus2})
	if w.Start != "2023-01-01T10:00:00Z" || !w.UTC {
		t.Fatalf("literal true: %+v", w)
	}
	if n := NormalizeParams(Params{}, Options{}); n.UTC != "" {
		t.Fatalf("absent utc should stay empty, got %q", n.UTC)
	}
}
