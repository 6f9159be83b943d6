// Package statsview is the usage dashboard view controller
//
// A Controller is built per request from explicit inputs, it derives the filter state,
// writes state changes back to the location, and builds cross navigation links
package statsview

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"time"

	"orgstats/internal/core/filters"
	"orgstats/internal/core/location"
	"orgstats/internal/core/params"
	"orgstats/internal/core/window"
)

// Feature flags consulted by the dashboard
const (
	FeatureProjectStats       = "project-stats"
	FeatureTeamInsights       = "team-insights"
	FeatureServerSideSampling = "server-side-sampling"
	FeatureSamplingUI         = "server-side-sampling-ui"
)

// SamplingSettingsPath is the dynamic sampling settings route, :projectId is resolved by the
// navigator
const SamplingSettingsPath = "/settings/%s/projects/:projectId/server-side-sampling/?referrer=org-stats.alert"

// Organization is the organization the dashboard is rendered for
type Organization struct {
	ID       int64    `json:"id"`
	Slug     string   `json:"slug"`
	Name     string   `json:"name"`
	Features []string `json:"features"`
}

// HasFeature reports flag membership
func (o Organization) HasFeature(name string) bool { return slices.Contains(o.Features, name) }

// Project is a project row the table can navigate to
type Project struct {
	ID   int64  `json:"id"`
	Slug string `json:"slug"`
}

// Options tunes derivation
type Options struct {
	DefaultPeriod string
	Location      *time.Location
}

// Inputs are everything one render pass reads
type Inputs struct {
	Organization Organization
	Location     location.Location
	Selection    filters.PageFilters
	Navigator    location.Navigator
	Options      Options
}

// Controller derives and writes dashboard state for one request
type Controller struct {
	in       Inputs
	strategy filters.Strategy
	writer   location.Writer
}

// New builds a Controller, the strategy is fixed for its lifetime
func New(in Inputs) *Controller {
	if in.Location.Query == nil {
		in.Location.Query = url.Values{}
	}
	return &Controller{
		in:       in,
		strategy: filters.Select(in.Organization.HasFeature(FeatureProjectStats)),
		writer:   location.NewWriter(in.Navigator),
	}
}

func (c *Controller) projectionInputs() filters.Inputs {
	return filters.Inputs{
		Query:         c.in.Location.Query,
		Selection:     c.in.Selection,
		DefaultPeriod: c.in.Options.DefaultPeriod,
		Location:      c.in.Options.Location,
	}
}

// State returns the full derived filter state
func (c *Controller) State() filters.FilterState {
	return filters.Project(c.projectionInputs(), c.strategy)
}

// Strategy returns the active selection strategy name
func (c *Controller) Strategy() string { return c.strategy.Name() }

// Location returns a copy of the current location
func (c *Controller) Location() location.Location { return c.in.Location.Clone() }

// Organization returns the organization being rendered
func (c *Controller) Organization() Organization { return c.in.Organization }

// DataCategory returns the selected category
func (c *Controller) DataCategory() params.DataCategory {
	return params.Decode(c.in.Location.Query).DataCategory
}

// DataCategoryName returns the display name of the selected category
func (c *Controller) DataCategoryName() string { return params.CategoryName(c.DataCategory()) }

// DataDatetime returns the effective time window
func (c *Controller) DataDatetime() window.DateWindow {
	return c.strategy.Window(c.projectionInputs())
}

// ChartTransform is validated by the chart
func (c *Controller) ChartTransform() string { return params.Decode(c.in.Location.Query).Transform }

// TableSort is validated by the table
func (c *Controller) TableSort() string { return params.Decode(c.in.Location.Query).Sort }

// TableQuery is validated by the table
func (c *Controller) TableQuery() string { return params.Decode(c.in.Location.Query).Query }

// TableCursor is validated by the table
func (c *Controller) TableCursor() string { return params.Decode(c.in.Location.Query).Cursor }

// ProjectIDs returns the page filter project selection, empty for the legacy selector
func (c *Controller) ProjectIDs() []int64 { return c.strategy.Projects(c.projectionInputs()) }

// HasProjectStats reports the project-stats capability
func (c *Controller) HasProjectStats() bool {
	return c.in.Organization.HasFeature(FeatureProjectStats)
}

// HasTeamInsights reports the team-insights capability
func (c *Controller) HasTeamInsights() bool {
	return c.in.Organization.HasFeature(FeatureTeamInsights)
}

// HasSamplingUI reports whether both dynamic sampling flags are on
func (c *Controller) HasSamplingUI() bool {
	return c.in.Organization.HasFeature(FeatureServerSideSampling) &&
		c.in.Organization.HasFeature(FeatureSamplingUI)
}

// ShowSamplingAlert reports whether the dynamic sampling hint applies
func (c *Controller) ShowSamplingAlert() bool {
	return c.HasSamplingUI() && c.DataCategory() == params.CategoryTransactions
}

// ShouldRenderProjectStats is true when the project table makes sense for the selection
// a single concrete project is already the whole table
func (c *Controller) ShouldRenderProjectStats() bool {
	if !c.HasProjectStats() {
		return false
	}
	ids := c.ProjectIDs()
	return filters.IncludesAll(ids) || len(ids) != 1
}

// SetStateOnURL writes delta to the location, see params.Reserved for accepted keys
func (c *Controller) SetStateOnURL(ctx context.Context, delta params.Delta, opts location.ApplyOptions) (location.Location, error) {
	return c.writer.Apply(ctx, c.in.Location, delta, opts)
}

// ChangeData is a change emitted by the legacy time range selector
type ChangeData struct {
	Start    *time.Time
	End      *time.Time
	Relative string
	UTC      *bool
}

// HandleUpdateDatetime writes a legacy selector change into the page scoped keys
func (c *Controller) HandleUpdateDatetime(ctx context.Context, change ChangeData) (location.Location, error) {
	if change.Start != nil && change.End != nil {
		utc := change.UTC != nil && *change.UTC
		delta := params.Delta{
			params.KeyPageStatsPeriod: nil,
			params.KeyPageStart:       params.Set(c.formatBound(*change.Start, utc)),
			params.KeyPageEnd:         params.Set(c.formatBound(*change.End, utc)),
			params.KeyPageStatsUTC:    nil,
		}
		if change.UTC != nil {
			delta[params.KeyPageStatsUTC] = params.Set(boolString(utc))
		}
		return c.SetStateOnURL(ctx, delta, location.Navigate())
	}

	var relative *string
	if change.Relative != "" {
		relative = params.Set(change.Relative)
	}
	return c.SetStateOnURL(ctx, params.Delta{
		params.KeyPageStatsPeriod: relative,
		params.KeyPageStart:       nil,
		params.KeyPageEnd:         nil,
		params.KeyPageStatsUTC:    nil,
	}, location.Navigate())
}

func (c *Controller) formatBound(t time.Time, utc bool) string {
	if utc {
		return window.FormatUTC(t)
	}
	loc := c.in.Options.Location
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(time.RFC3339)
}

// NextLocations builds the cross navigation links for project
func (c *Controller) NextLocations(project Project) map[location.Destination]location.Location {
	return location.NextLocations(c.in.Location, c.in.Organization.Slug, location.Target{ID: project.ID, Slug: project.Slug})
}

// SamplingSettingsPath returns the unresolved dynamic sampling settings path
func (c *Controller) SamplingSettingsPath() string {
	return fmt.Sprintf(SamplingSettingsPath, url.PathEscape(c.in.Organization.Slug))
}

// NavigateToSamplingSettings redirects to dynamic sampling settings
func (c *Controller) NavigateToSamplingSettings(ctx context.Context) error {
	if c.in.Navigator == nil {
		return nil
	}
	return c.in.Navigator.Redirect(ctx, c.SamplingSettingsPath())
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
