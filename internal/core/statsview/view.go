package statsview

import (
	"context"
	"fmt"
	"runtime/debug"

	"orgstats/internal/core/filters"
	"orgstats/internal/core/location"
	"orgstats/internal/core/params"
	"orgstats/internal/core/window"
)

// Section names
const (
	SectionOrg      = "usage_stats_org"
	SectionProjects = "usage_stats_projects"
)

// RenderFunc renders one dashboard section from the controller state
type RenderFunc func(ctx context.Context, c *Controller) (any, error)

// Renderers are the rendering collaborators of the dashboard
// a nil renderer yields the section props without extra data
type Renderers struct {
	Org      RenderFunc
	Projects RenderFunc
}

// SectionResult is one rendered section, Error is set when the section failed
type SectionResult struct {
	Name  string `json:"name"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`

	// Panic holds the recovered stack for logging, never serialized
	Panic string `json:"-"`
}

// Failed reports whether the section did not render
func (s SectionResult) Failed() bool { return s.Error != "" }

// Header describes the page heading
type Header struct {
	Tabs        bool   `json:"tabs"`
	ActiveTab   string `json:"active_tab,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// LegacyControl is the per-page category and time range selector state
type LegacyControl struct {
	Relative        string          `json:"relative"`
	Start           string          `json:"start,omitempty"`
	End             string          `json:"end,omitempty"`
	UTC             bool            `json:"utc"`
	RelativeOptions []params.Option `json:"relative_options"`
}

// Controls are the filter controls shown above the sections
type Controls struct {
	ProjectPageControl bool            `json:"project_page_control"`
	Legacy             *LegacyControl  `json:"legacy,omitempty"`
	Category           string          `json:"category"`
	CategoryOptions    []params.Option `json:"category_options"`
}

// Alert is an informational banner
type Alert struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Link    string `json:"link"`
}

// View is the dashboard view model of one render pass
type View struct {
	DocumentTitle    string              `json:"document_title"`
	Organization     Organization        `json:"organization"`
	Location         location.Location   `json:"location"`
	Strategy         string              `json:"strategy"`
	State            filters.FilterState `json:"state"`
	DataCategoryName string              `json:"data_category_name"`
	Header           Header              `json:"header"`
	Controls         Controls            `json:"controls"`
	SamplingAlert    *Alert              `json:"sampling_alert,omitempty"`
	Sections         []SectionResult     `json:"sections"`
}

const orgStatsDescription = "We collect usage metrics on three categories: errors, transactions, and attachments. " +
	"The charts below reflect data received across your entire organization. " +
	"You can also find them broken down by project in the table."

// Render builds the view model, each section is contained on its own
func (c *Controller) Render(ctx context.Context, r Renderers) View {
	v := View{
		DocumentTitle:    "Usage Stats",
		Organization:     c.in.Organization,
		Location:         c.Location(),
		Strategy:         c.Strategy(),
		State:            c.State(),
		DataCategoryName: c.DataCategoryName(),
		Header:           c.header(),
		Controls:         c.controls(),
	}
	if c.ShowSamplingAlert() {
		v.SamplingAlert = &Alert{
			Type:    "info",
			Message: "Manage your transaction usage with Dynamic Sampling. Go to Dynamic Sampling Settings.",
			Link:    c.SamplingSettingsPath(),
		}
	}

	v.Sections = append(v.Sections, Contain(ctx, SectionOrg, c, orDefault(r.Org, DefaultOrg)))
	if c.ShouldRenderProjectStats() {
		v.Sections = append(v.Sections, Contain(ctx, SectionProjects, c, orDefault(r.Projects, DefaultProjects)))
	}
	return v
}

func (c *Controller) header() Header {
	if c.HasTeamInsights() {
		return Header{Tabs: true, ActiveTab: "stats"}
	}
	return Header{Title: "Organization Usage Stats", Description: orgStatsDescription}
}

func (c *Controller) controls() Controls {
	ctl := Controls{
		ProjectPageControl: c.HasProjectStats(),
		Category:           string(c.DataCategory()),
		CategoryOptions:    params.CategoryOptions(),
	}
	if !c.HasProjectStats() {
		w := c.DataDatetime()
		ctl.Legacy = &LegacyControl{
			Relative:        w.Period,
			Start:           w.Start,
			End:             w.End,
			UTC:             w.UTC,
			RelativeOptions: window.RelativeOptions(),
		}
	}
	return ctl
}

// Contain renders one section and turns a panic or error into a failed section
func Contain(ctx context.Context, name string, c *Controller, fn RenderFunc) (res SectionResult) {
	res.Name = name
	defer func() {
		if v := recover(); v != nil {
			res.Data = nil
			res.Error = fmt.Sprintf("section %s crashed: %v", name, v)
			res.Panic = string(debug.Stack())
		}
	}()
	data, err := fn(ctx, c)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Data = data
	return res
}

func orDefault(fn, def RenderFunc) RenderFunc {
	if fn == nil {
		return def
	}
	return fn
}

// OrgProps are the props of the organization usage chart
type OrgProps struct {
	DataCategory     params.DataCategory `json:"data_category"`
	DataCategoryName string              `json:"data_category_name"`
	DataDatetime     window.DateWindow   `json:"data_datetime"`
	ChartTransform   string              `json:"chart_transform,omitempty"`
	ProjectIDs       []int64             `json:"project_ids"`
}

// DefaultOrg renders the organization section from the controller alone
func DefaultOrg(_ context.Context, c *Controller) (any, error) {
	return c.OrgProps(), nil
}

// OrgProps returns the organization chart props
func (c *Controller) OrgProps() OrgProps {
	return OrgProps{
		DataCategory:     c.DataCategory(),
		DataCategoryName: c.DataCategoryName(),
		DataDatetime:     c.DataDatetime(),
		ChartTransform:   c.ChartTransform(),
		ProjectIDs:       c.ProjectIDs(),
	}
}

// ProjectRow is one row of the project table with its cross navigation links
type ProjectRow struct {
	Project Project                                    `json:"project"`
	Links   map[location.Destination]location.Location `json:"links"`
}

// ProjectsProps are the props of the project usage table
type ProjectsProps struct {
	DataCategory     params.DataCategory `json:"data_category"`
	DataCategoryName string              `json:"data_category_name"`
	DataDatetime     window.DateWindow   `json:"data_datetime"`
	ProjectIDs       []int64             `json:"project_ids"`
	TableSort        string              `json:"table_sort,omitempty"`
	TableQuery       string              `json:"table_query,omitempty"`
	TableCursor      string              `json:"table_cursor,omitempty"`
	Rows             []ProjectRow        `json:"rows,omitempty"`
}

// DefaultProjects renders the project section without project rows
func DefaultProjects(_ context.Context, c *Controller) (any, error) {
	return c.ProjectsProps(nil), nil
}

// ProjectsProps returns the project table props with a row per project
func (c *Controller) ProjectsProps(projects []Project) ProjectsProps {
	p := ProjectsProps{
		DataCategory:     c.DataCategory(),
		DataCategoryName: c.DataCategoryName(),
		DataDatetime:     c.DataDatetime(),
		ProjectIDs:       c.ProjectIDs(),
		TableSort:        c.TableSort(),
		TableQuery:       c.TableQuery(),
		TableCursor:      c.TableCursor(),
	}
	for _, pr := range projects {
		p.Rows = append(p.Rows, ProjectRow{Project: pr, Links: c.NextLocations(pr)})
	}
	return p
}
