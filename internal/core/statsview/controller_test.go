package statsview

import (
	"context"
	"net/url"
	"slices"
	"testing"
	"time"

	"orgstats/internal/core/filters"
	"orgstats/internal/core/location"
	"orgstats/internal/core/params"
	"orgstats/internal/core/window"
)

func newController(t *testing.T, raw string, features []string, sel filters.PageFilters) (*Controller, *location.Recorder) {
	t.Helper()
	loc, err := location.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	rec := &location.Recorder{}
	c := New(Inputs{
		Organization: Organization{ID: 1, Slug: "acme", Name: "Acme", Features: features},
		Location:     loc,
		Selection:    sel,
		Navigator:    rec,
		Options:      Options{Location: time.UTC},
	})
	return c, rec
}

func TestController_LegacyTransactions(t *testing.T) {
	t.Parallel()

	c, _ := newController(t, "/organizations/acme/stats/?dataCategory=transactions", nil, filters.PageFilters{})

	if c.DataCategory() != params.CategoryTransactions {
		t.Fatalf("category=%q", c.DataCategory())
	}
	if c.DataCategoryName() != "Transactions" {
		t.Fatalf("name=%q", c.DataCategoryName())
	}
	if c.DataDatetime() != window.Relative("14d") {
		t.Fatalf("window=%+v", c.DataDatetime())
	}
	if ids := c.ProjectIDs(); ids == nil || len(ids) != 0 {
		t.Fatalf("projects=%#v", ids)
	}
	if c.ShouldRenderProjectStats() {
		t.Fatal("project table requires project-stats")
	}
	if c.Strategy() != "legacy" {
		t.Fatalf("strategy=%q", c.Strategy())
	}
}

func TestController_PeriodWins(t *testing.T) {
	t.Parallel()

	c, _ := newController(t, "/stats/?statsPeriod=7d&start=2023-01-01&end=2023-01-02", nil, filters.PageFilters{})
	if c.DataDatetime() != window.Relative("7d") {
		t.Fatalf("window=%+v", c.DataDatetime())
	}
}

func TestController_PageFilterSnapshot(t *testing.T) {
	t.Parallel()

	sel := filters.PageFilters{
		Datetime: window.Params{Start: "2023-01-01T00:00:00Z", End: "2023-01-02T00:00:00Z", UTC: "true"},
		Projects: []int64{1, 2},
	}
	c, _ := newController(t, "/stats/?statsPeriod=90d", []string{FeatureProjectStats}, sel)

	want := window.DateWindow{Start: "2023-01-01T00:00:00Z", End: "2023-01-02T00:00:00Z", UTC: true}
	if c.DataDatetime() != want {
		t.Fatalf("window=%+v", c.DataDatetime())
	}
	if !slices.Equal(c.ProjectIDs(), []int64{1, 2}) {
		t.Fatalf("projects=%v", c.ProjectIDs())
	}
	if !c.ShouldRenderProjectStats() {
		t.Fatal("two projects should render the table")
	}
}

func TestController_ShouldRenderProjectStats(t *testing.T) {
	t.Parallel()

	cases := []struct {
		ids  []int64
		want bool
	}{
		{nil, true},
		{[]int64{7}, false},
		{[]int64{filters.AllProjects}, true},
		{[]int64{1, 2}, true},
	}
	for _, tc := range cases {
		c, _ := newController(t, "/stats/", []string{FeatureProjectStats}, filters.PageFilters{Projects: tc.ids})
		if got := c.ShouldRenderProjectStats(); got != tc.want {
			t.Fatalf("ids=%v got %v", tc.ids, got)
		}
	}
}

func TestController_SetStateOnURL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, rec := newController(t, "/stats/?dataCategory=errors&environment=prod", nil, filters.PageFilters{})

	next, err := c.SetStateOnURL(ctx, params.Delta{"dataCategory": params.Set("attachments"), "bogus": params.Set("x")}, location.NoNavigate())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := rec.Target(); ok {
		t.Fatal("NoNavigate must not navigate")
	}
	if next.Query.Get("dataCategory") != "attachments" || next.Query.Get("environment") != "prod" || next.Query.Has("bogus") {
		t.Fatalf("query=%v", next.Query)
	}
	if c.DataCategory() != params.CategoryErrors {
		t.Fatal("controller location must not change")
	}
}

func TestController_HandleUpdateDatetimeAbsolute(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, rec := newController(t, "/stats/?pageStatsPeriod=7d&sort=-total", nil, filters.PageFilters{})

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	utc := true
	next, err := c.HandleUpdateDatetime(ctx, ChangeData{Start: &start, End: &end, UTC: &utc})
	if err != nil {
		t.Fatal(err)
	}

	q := next.Query
	if q.Has("pageStatsPeriod") {
		t.Fatal("period should be cleared")
	}
	if q.Get("pageStart") != "2023-01-01T00:00:00Z" || q.Get("pageEnd") != "2023-01-02T00:00:00Z" || q.Get("pageStatsUtc") != "true" {
		t.Fatalf("query=%v", q)
	}
	if q.Get("sort") != "-total" {
		t.Fatal("unrelated keys must survive")
	}
	target, ok := rec.Target()
	if !ok || target != next.String() {
		t.Fatalf("target=%q", target)
	}

	// the written location resolves back to the same window
	c2 := New(Inputs{Location: next, Options: Options{Location: time.UTC}})
	want := window.DateWindow{Start: "2023-01-01T00:00:00Z", End: "2023-01-02T00:00:00Z", UTC: true}
	if c2.DataDatetime() != want {
		t.Fatalf("window=%+v", c2.DataDatetime())
	}
}

func TestController_HandleUpdateDatetimeLocalRoundTrip(t *testing.T) {
	t.Parallel()

	zone := time.FixedZone("UTC-5", -5*60*60)
	loc, _ := location.Parse("/stats/")
	c := New(Inputs{Location: loc, Navigator: &location.Recorder{}, Options: Options{Location: zone}})

	start := time.Date(2023, 6, 1, 9, 0, 0, 0, zone)
	end := time.Date(2023, 6, 2, 9, 0, 0, 0, zone)
	utc := false
	next, err := c.HandleUpdateDatetime(context.Background(), ChangeData{Start: &start, End: &end, UTC: &utc})
	if err != nil {
		t.Fatal(err)
	}
	if next.Query.Get("pageStatsUtc") != "false" {
		t.Fatalf("query=%v", next.Query)
	}

	c2 := New(Inputs{Location: next, Options: Options{Location: zone}})
	want := window.DateWindow{Start: "2023-06-01T14:00:00Z", End: "2023-06-02T14:00:00Z"}
	if c2.DataDatetime() != want {
		t.Fatalf("window=%+v want %+v", c2.DataDatetime(), want)
	}
}

func TestController_HandleUpdateDatetimeRelative(t *testing.T) {
	t.Parallel()

	c, _ := newController(t, "/stats/?pageStart=2023-01-01&pageEnd=2023-01-02&pageStatsUtc=true", nil, filters.PageFilters{})
	next, err := c.HandleUpdateDatetime(context.Background(), ChangeData{Relative: "30d"})
	if err != nil {
		t.Fatal(err)
	}
	want := url.Values{"pageStatsPeriod": {"30d"}}
	if next.Query.Encode() != want.Encode() {
		t.Fatalf("query=%v", next.Query)
	}
}

func TestController_Sampling(t *testing.T) {
	t.Parallel()

	all := []string{FeatureServerSideSampling, FeatureSamplingUI}
	cases := []struct {
		features []string
		category string
		want     bool
	}{
		{all, "transactions", true},
		{all, "errors", false},
		{[]string{FeatureServerSideSampling}, "transactions", false},
		{nil, "transactions", false},
	}
	for _, tc := range cases {
		c, _ := newController(t, "/stats/?dataCategory="+tc.category, tc.features, filters.PageFilters{})
		if got := c.ShowSamplingAlert(); got != tc.want {
			t.Fatalf("features=%v category=%s got %v", tc.features, tc.category, got)
		}
	}

	c, rec := newController(t, "/stats/", all, filters.PageFilters{})
	if err := c.NavigateToSamplingSettings(context.Background()); err != nil {
		t.Fatal(err)
	}
	got, _ := rec.Target()
	if got != "/settings/acme/projects/:projectId/server-side-sampling/?referrer=org-stats.alert" {
		t.Fatalf("target=%q", got)
	}
}
