package location

import (
	"net/url"
	"strconv"

	"orgstats/internal/core/params"
)

// Destination names a cross navigation target
type Destination string

// Cross navigation targets offered by the project table
const (
	Performance   Destination = "performance"
	ProjectDetail Destination = "projectDetail"
	IssueList     Destination = "issueList"
	Settings      Destination = "settings"
)

// Target is the project a cross navigation link points at
type Target struct {
	ID   int64
	Slug string
}

// NextLocations builds destination locations for project without leaking dashboard keys
// settings never carries a query
func NextLocations(current Location, orgSlug string, project Target) map[Destination]Location {
	base := current.Clone()
	base.Query.Set("project", strconv.FormatInt(project.ID, 10))
	q := params.Strip(base.Query)

	org := url.PathEscape(orgSlug)
	slug := url.PathEscape(project.Slug)

	with := func(path string) Location {
		l := Location{Query: q}.Clone()
		l.Pathname = path
		return l
	}
	return map[Destination]Location{
		Performance:   with("/organizations/" + org + "/performance/"),
		ProjectDetail: with("/organizations/" + org + "/projects/" + slug + "/"),
		IssueList:     with("/organizations/" + org + "/issues/"),
		Settings:      {Pathname: "/settings/" + org + "/projects/" + slug + "/", Query: url.Values{}},
	}
}
