// Package location models the addressable location of the dashboard and writes filter
// changes back to it
package location

import (
	"context"
	"maps"
	"net/url"
	"slices"
	"strings"

	"orgstats/internal/core/params"
)

// Location is a pathname plus query, values are never mutated in place
type Location struct {
	Pathname string     `json:"pathname"`
	Query    url.Values `json:"query"`
}

// Parse splits a raw "path?query" into a Location
func Parse(raw string) (Location, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Location{}, err
	}
	return Location{Pathname: u.Path, Query: u.Query()}, nil
}

// FromURL builds a Location from a request URL
func FromURL(u *url.URL) Location {
	if u == nil {
		return Location{Query: url.Values{}}
	}
	return Location{Pathname: u.Path, Query: u.Query()}
}

// Clone returns a deep copy of l
func (l Location) Clone() Location {
	q := make(url.Values, len(l.Query))
	for k, vs := range l.Query {
		q[k] = slices.Clone(vs)
	}
	return Location{Pathname: l.Pathname, Query: q}
}

// String renders the location as path?query with sorted keys
func (l Location) String() string {
	enc := l.Query.Encode()
	if enc == "" {
		return l.Pathname
	}
	return l.Pathname + "?" + enc
}

// Navigator performs location transitions, it is owned by the transport
type Navigator interface {
	// Push transitions to next
	Push(ctx context.Context, next Location) error
	// Redirect performs an out of band transition to a legacy path
	Redirect(ctx context.Context, path string) error
}

// ApplyOptions tunes Apply
type ApplyOptions struct {
	// Navigate hands the new location to the Navigator
	Navigate bool
}

// Navigate is the default: compute and push
func Navigate() ApplyOptions { return ApplyOptions{Navigate: true} }

// NoNavigate computes the location without any side effect
func NoNavigate() ApplyOptions { return ApplyOptions{} }

// Writer merges filter deltas into the current location
type Writer struct {
	Nav Navigator
}

// NewWriter returns a Writer pushing to nav
func NewWriter(nav Navigator) Writer { return Writer{Nav: nav} }

// Merge returns a copy of current with the reserved part of delta applied
// set keys win, nil keys are removed, everything else is preserved
func Merge(current Location, delta params.Delta) Location {
	next := current.Clone()
	enc := params.Encode(delta)
	for _, k := range slices.Sorted(maps.Keys(enc)) {
		v := enc[k]
		if v == nil {
			next.Query.Del(k)
			continue
		}
		next.Query.Set(k, *v)
	}
	return next
}

// Apply merges delta into current and navigates unless opts disables it
func (w Writer) Apply(ctx context.Context, current Location, delta params.Delta, opts ApplyOptions) (Location, error) {
	next := Merge(current, delta)
	if opts.Navigate && w.Nav != nil {
		if err := w.Nav.Push(ctx, next); err != nil {
			return next, err
		}
	}
	return next, nil
}

// Recorder is a Navigator that remembers the last transition
// the http layer turns it into a redirect response
type Recorder struct {
	pushed     *Location
	redirected string
}

// Push implements Navigator
func (r *Recorder) Push(_ context.Context, next Location) error {
	n := next.Clone()
	r.pushed = &n
	r.redirected = ""
	return nil
}

// Redirect implements Navigator
func (r *Recorder) Redirect(_ context.Context, path string) error {
	r.pushed = nil
	r.redirected = path
	return nil
}

// Target returns the URL of the last transition, if any
func (r *Recorder) Target() (string, bool) {
	switch {
	case r.pushed != nil:
		return r.pushed.String(), true
	case r.redirected != "":
		return r.redirected, true
	default:
		return "", false
	}
}
