// Package filters projects the location and the page filter snapshot into one filter state
//
// Two strategies supply the window and project selection. The project-stats capability picks
// exactly one of them per request, they are never merged
package filters

import (
	"net/url"
	"slices"
	"time"

	"orgstats/internal/core/params"
	"orgstats/internal/core/window"
)

// AllProjects is the project id sentinel meaning every project
const AllProjects = -1

// PageFilters is a read-only snapshot of the organization wide page filter selection
type PageFilters struct {
	Datetime window.Params
	Projects []int64
}

// Inputs are the explicit per request inputs of a projection
type Inputs struct {
	Query     url.Values
	Selection PageFilters

	// DefaultPeriod and Location tune the time window normalizer
	DefaultPeriod string
	Location      *time.Location
}

func (in Inputs) windowOptions(allowPage bool) window.Options {
	return window.Options{
		AllowAbsolutePageDatetime: allowPage,
		DefaultPeriod:             in.DefaultPeriod,
		Location:                  in.Location,
	}
}

// FilterState is the effective filter state of one request
type FilterState struct {
	DataCategory   params.DataCategory `json:"data_category"`
	DateWindow     window.DateWindow   `json:"date_window"`
	ProjectIDs     []int64             `json:"project_ids"`
	ChartTransform string              `json:"chart_transform,omitempty"`
	TableSort      string              `json:"table_sort,omitempty"`
	TableQuery     string              `json:"table_query,omitempty"`
	TableCursor    string              `json:"table_cursor,omitempty"`
}

// Strategy supplies the window and project selection
type Strategy interface {
	Name() string
	Window(in Inputs) window.DateWindow
	Projects(in Inputs) []int64
}

// GlobalPageFilters reads the organization wide page filter snapshot
type GlobalPageFilters struct{}

// Name implements Strategy
func (GlobalPageFilters) Name() string { return "page-filters" }

// Window implements Strategy
func (GlobalPageFilters) Window(in Inputs) window.DateWindow {
	return window.Resolve(in.Selection.Datetime, in.windowOptions(false))
}

// Projects implements Strategy
func (GlobalPageFilters) Projects(in Inputs) []int64 {
	return slices.Clone(nonNil(in.Selection.Projects))
}

// LegacyPageSelector reads the window from the location query, including page scoped keys
type LegacyPageSelector struct{}

// Name implements Strategy
func (LegacyPageSelector) Name() string { return "legacy" }

// Window implements Strategy
func (LegacyPageSelector) Window(in Inputs) window.DateWindow {
	return window.Resolve(window.FromQuery(in.Query), in.windowOptions(true))
}

// Projects implements Strategy, the legacy selector has no project selection
func (LegacyPageSelector) Projects(Inputs) []int64 { return []int64{} }

// Select picks the strategy for the project-stats capability
func Select(hasProjectStats bool) Strategy {
	if hasProjectStats {
		return GlobalPageFilters{}
	}
	return LegacyPageSelector{}
}

// Project computes the filter state using s for window and projects
func Project(in Inputs, s Strategy) FilterState {
	frag := params.Decode(in.Query)
	return FilterState{
		DataCategory:   frag.DataCategory,
		DateWindow:     s.Window(in),
		ProjectIDs:     s.Projects(in),
		ChartTransform: frag.Transform,
		TableSort:      frag.Sort,
		TableQuery:     frag.Query,
		TableCursor:    frag.Cursor,
	}
}

// IncludesAll reports whether ids select every project
func IncludesAll(ids []int64) bool { return slices.Contains(ids, AllProjects) }

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
