// Package domain holds DTOs and ports for the organization wide page filter selection
package domain

import (
	"slices"
	"time"

	"orgstats/internal/core/filters"
	"orgstats/internal/core/window"
)

// Datetime is the stored time window, either a period or a pair of RFC 3339 bounds
type Datetime struct {
	Period string `json:"period,omitempty" validate:"omitempty,stats_period" example:"14d"`
	Start  string `json:"start,omitempty" validate:"required_with=End,omitempty,datetime=2006-01-02T15:04:05Z07:00" example:"2024-03-01T00:00:00Z"`
	End    string `json:"end,omitempty" validate:"required_with=Start,omitempty,datetime=2006-01-02T15:04:05Z07:00" example:"2024-03-08T00:00:00Z"`
	UTC    bool   `json:"utc" example:"true"`
}

// SaveInput is the PUT body
type SaveInput struct {
	Datetime Datetime `json:"datetime"`
	Projects []int64  `json:"projects" validate:"omitempty,max=200,dive,min=-1" example:"1,2"`
}

// Selection is the stored page filter selection of one viewer
type Selection struct {
	Datetime  Datetime   `json:"datetime"`
	Projects  []int64    `json:"projects"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Normalize applies the storage rules: a period clears the bounds,
// projects keep their order minus repeats and collapse to the all projects sentinel
func (in SaveInput) Normalize() SaveInput {
	out := in
	if out.Datetime.Period != "" {
		out.Datetime.Start, out.Datetime.End = "", ""
	}
	out.Projects = normalizeProjects(in.Projects)
	return out
}

func normalizeProjects(ids []int64) []int64 {
	if filters.IncludesAll(ids) {
		return []int64{filters.AllProjects}
	}
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// PageFilters converts s into the read-only snapshot consumed by the dashboard
func (s Selection) PageFilters() filters.PageFilters {
	p := window.Params{
		StatsPeriod: s.Datetime.Period,
		Start:       s.Datetime.Start,
		End:         s.Datetime.End,
	}
	if p.Start != "" || p.End != "" {
		p.UTC = "false"
		if s.Datetime.UTC {
			p.UTC = "true"
		}
	}
	return filters.PageFilters{Datetime: p, Projects: slices.Clone(s.Projects)}
}
