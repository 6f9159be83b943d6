package statsview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"orgstats/internal/core/filters"
)

func TestRender_Legacy(t *testing.T) {
	t.Parallel()

	c, _ := newController(t, "/stats/?dataCategory=attachments", nil, filters.PageFilters{})
	v := c.Render(context.Background(), Renderers{})

	if v.DocumentTitle != "Usage Stats" {
		t.Fatalf("title=%q", v.DocumentTitle)
	}
	if v.Header.Tabs || v.Header.Title == "" || v.Header.Description == "" {
		t.Fatalf("header=%+v", v.Header)
	}
	if v.Controls.Legacy == nil || v.Controls.Legacy.Relative != "14d" {
		t.Fatalf("legacy controls=%+v", v.Controls.Legacy)
	}
	if v.Controls.ProjectPageControl {
		t.Fatal("page filter controls need project-stats")
	}
	if len(v.Sections) != 1 || v.Sections[0].Name != SectionOrg || v.Sections[0].Failed() {
		t.Fatalf("sections=%+v", v.Sections)
	}
	if v.SamplingAlert != nil {
		t.Fatal("unexpected sampling alert")
	}
}

func TestRender_ProjectStatsWithTeamInsights(t *testing.T) {
	t.Parallel()

	features := []string{FeatureProjectStats, FeatureTeamInsights, FeatureServerSideSampling, FeatureSamplingUI}
	c, _ := newController(t, "/stats/?dataCategory=transactions", features, filters.PageFilters{Projects: []int64{1, 2}})

	rows := func(_ context.Context, c *Controller) (any, error) {
		return c.ProjectsProps([]Project{{ID: 1, Slug: "web"}, {ID: 2, Slug: "api"}}), nil
	}
	v := c.Render(context.Background(), Renderers{Projects: rows})

	if !v.Header.Tabs || v.Header.Title != "" {
		t.Fatalf("header=%+v", v.Header)
	}
	if v.Controls.Legacy != nil || !v.Controls.ProjectPageControl {
		t.Fatalf("controls=%+v", v.Controls)
	}
	if v.SamplingAlert == nil || !strings.Contains(v.SamplingAlert.Link, "/settings/acme/") {
		t.Fatalf("alert=%+v", v.SamplingAlert)
	}
	if len(v.Sections) != 2 || v.Sections[1].Name != SectionProjects {
		t.Fatalf("sections=%+v", v.Sections)
	}
	props, ok := v.Sections[1].Data.(ProjectsProps)
	if !ok || len(props.Rows) != 2 {
		t.Fatalf("data=%#v", v.Sections[1].Data)
	}
	if props.Rows[1].Links["projectDetail"].Pathname != "/organizations/acme/projects/api/" {
		t.Fatalf("links=%+v", props.Rows[1].Links)
	}
}

func TestRender_SectionsAreContained(t *testing.T) {
	t.Parallel()

	c, _ := newController(t, "/stats/", []string{FeatureProjectStats}, filters.PageFilters{})
	v := c.Render(context.Background(), Renderers{
		Org: func(context.Context, *Controller) (any, error) { panic("chart exploded") },
		Projects: func(context.Context, *Controller) (any, error) {
			return nil, errors.New("table unavailable")
		},
	})

	if len(v.Sections) != 2 {
		t.Fatalf("sections=%+v", v.Sections)
	}
	org := v.Sections[0]
	if !org.Failed() || !strings.Contains(org.Error, "chart exploded") || org.Panic == "" {
		t.Fatalf("org=%+v", org)
	}
	proj := v.Sections[1]
	if !proj.Failed() || proj.Error != "table unavailable" || proj.Panic != "" {
		t.Fatalf("projects=%+v", proj)
	}
	if v.State.DateWindow.Period != "14d" {
		t.Fatal("the rest of the view must render")
	}
}

func TestDefaultOrg(t *testing.T) {
	t.Parallel()

	c, _ := newController(t, "/stats/?transform=cumulative&statsPeriod=24h", nil, filters.PageFilters{})
	data, err := DefaultOrg(context.Background(), c)
	if err != nil {
		t.Fatal(err)
	}
	p := data.(OrgProps)
	if p.ChartTransform != "cumulative" || p.DataDatetime.Period != "24h" || p.DataCategoryName != "Errors" {
		t.Fatalf("props=%+v", p)
	}
}
