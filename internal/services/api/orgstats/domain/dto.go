// Package domain holds DTOs and ports for the organization usage dashboard
package domain

import (
	"net/url"
	"time"

	"orgstats/internal/core/location"
	"orgstats/internal/core/statsview"
)

// Scope identifies who is looking at which dashboard location
type Scope struct {
	OrgSlug  string
	UserID   string
	Location location.Location
}

// StateInput is a filter change written back to the location
// delta keys must be dashboard parameters, a null value removes the key
type StateInput struct {
	Location string             `json:"location" validate:"max=4096" example:"/organizations/acme/stats/?dataCategory=errors&sort=-project"`
	Delta    map[string]*string `json:"delta" validate:"dive,keys,stats_param,endkeys" swaggertype:"object,string" example:"dataCategory:transactions"`
	Navigate bool               `json:"navigate" example:"true"`
}

// DatetimeInput is a change emitted by the legacy time range selector
type DatetimeInput struct {
	Location string     `json:"location" validate:"max=4096" example:"/organizations/acme/stats/?pageStatsPeriod=14d"`
	Start    *time.Time `json:"start,omitempty" validate:"required_with=End" example:"2024-03-01T00:00:00Z"`
	End      *time.Time `json:"end,omitempty" validate:"required_with=Start" example:"2024-03-08T00:00:00Z"`
	Relative string     `json:"relative,omitempty" validate:"omitempty,stats_period" example:"7d"`
	UTC      *bool      `json:"utc,omitempty" example:"true"`
}

// StateResult is the location computed by a state change
// Redirect is set when the change navigated
type StateResult struct {
	Location location.Location `json:"location"`
	URL      string            `json:"url" example:"/organizations/acme/stats/?dataCategory=transactions"`
	Redirect string            `json:"-"`
}

// SamplingResult is the dynamic sampling settings target
// Resolved is false while :projectId still needs a project picker
type SamplingResult struct {
	Path     string `json:"path" example:"/settings/acme/projects/:projectId/server-side-sampling/?referrer=org-stats.alert"`
	Resolved bool   `json:"resolved" example:"false"`
}

// Links is one project with its cross navigation destinations
type Links = statsview.ProjectRow

// View is the rendered dashboard
type View = statsview.View

// DashboardPath is the pathname of the dashboard of orgSlug
func DashboardPath(orgSlug string) string {
	return "/organizations/" + url.PathEscape(orgSlug) + "/stats/"
}
