// Package params maps between the dashboard query string and typed filter values
//
// Every function here is total: unexpected input degrades to a default, never to an error
package params

import (
	"net/url"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Query keys owned by the usage dashboard
const (
	KeyStatsPeriod     = "statsPeriod"
	KeyStart           = "start"
	KeyEnd             = "end"
	KeyUTC             = "utc"
	KeyPageEnd         = "pageEnd"
	KeyPageStart       = "pageStart"
	KeyPageStatsPeriod = "pageStatsPeriod"
	KeyPageStatsUTC    = "pageStatsUtc"
	KeyDataCategory    = "dataCategory"
	KeyTransform       = "transform"
	KeySort            = "sort"
	KeyQuery           = "query"
	KeyCursor          = "cursor"
)

// Reserved is the ordered set of query keys the dashboard owns
// page* keys only exist while the legacy per-page selector is still around
var Reserved = []string{
	// date page filter
	KeyStatsPeriod,
	KeyStart,
	KeyEnd,
	KeyUTC,
	// legacy per-page date selector
	KeyPageEnd,
	KeyPageStart,
	KeyPageStatsPeriod,
	KeyPageStatsUTC,
	// category selector
	KeyDataCategory,
	// chart
	KeyTransform,
	// project table
	KeySort,
	KeyQuery,
	KeyCursor,
}

// IsReserved reports whether key belongs to the dashboard namespace
func IsReserved(key string) bool { return slices.Contains(Reserved, key) }

// DataCategory classifies billable usage units
type DataCategory string

// Supported categories
const (
	CategoryErrors       DataCategory = "errors"
	CategoryTransactions DataCategory = "transactions"
	CategoryAttachments  DataCategory = "attachments"
)

// DefaultCategory is used whenever the query does not name a known category
const DefaultCategory = CategoryErrors

// UnknownCategoryName labels a category with no display name
const UnknownCategoryName = "Unknown Data Category"

var categories = []DataCategory{CategoryErrors, CategoryTransactions, CategoryAttachments}

// ParseCategory coerces s to a supported category, falling back to DefaultCategory
func ParseCategory(s string) DataCategory {
	c := DataCategory(s)
	if slices.Contains(categories, c) {
		return c
	}
	return DefaultCategory
}

// Valid reports whether c is one of the supported categories
func (c DataCategory) Valid() bool { return slices.Contains(categories, c) }

var titler = cases.Title(language.English)

// CategoryName returns the display name for c
func CategoryName(c DataCategory) string {
	if !c.Valid() {
		return UnknownCategoryName
	}
	return titler.String(string(c))
}

// Option is a selectable value with its label
type Option struct {
	Value string `json:"value" example:"errors"`
	Label string `json:"label" example:"Errors"`
}

// CategoryOptions lists the categories offered by the category selector
func CategoryOptions() []Option {
	out := make([]Option, 0, len(categories))
	for _, c := range categories {
		out = append(out, Option{Value: string(c), Label: CategoryName(c)})
	}
	return out
}

// Fragment is the strategy independent part of the filter state
// transform, sort, query and cursor are opaque and validated by their consumers
type Fragment struct {
	DataCategory DataCategory
	Transform    string
	Sort         string
	Query        string
	Cursor       string
}

// Decode reads the strategy independent filters from q
func Decode(q url.Values) Fragment {
	return Fragment{
		DataCategory: ParseCategory(strings.TrimSpace(First(q, KeyDataCategory))),
		Transform:    First(q, KeyTransform),
		Sort:         First(q, KeySort),
		Query:        First(q, KeyQuery),
		Cursor:       First(q, KeyCursor),
	}
}

// First returns the first value for key verbatim, tolerating repeated keys and nil maps
func First(q url.Values, key string) string {
	if q == nil {
		return ""
	}
	vs := q[key]
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

// Delta is a partial update of dashboard query keys
// a non nil value sets the key and a nil value removes it
type Delta map[string]*string

// Set returns a value usable in a Delta
func Set(v string) *string { return &v }

// Encode keeps only reserved keys from d
func Encode(d Delta) Delta {
	out := make(Delta, len(d))
	for k, v := range d {
		if !IsReserved(k) {
			continue
		}
		if v == nil {
			out[k] = nil
			continue
		}
		out[k] = Set(*v)
	}
	return out
}

// Strip returns a copy of q without any reserved key
func Strip(q url.Values) url.Values {
	out := url.Values{}
	for k, vs := range q {
		if IsReserved(k) {
			continue
		}
		out[k] = slices.Clone(vs)
	}
	return out
}
