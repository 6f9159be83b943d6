// Package http provides http transport for the usage dashboard
package http

import (
	stdhttp "net/http"

	"orgstats/internal/core/location"
	"orgstats/internal/modkit/httpkit"
	perr "orgstats/internal/platform/errors"
	str "orgstats/internal/platform/strings"
	"orgstats/internal/services/api/orgstats/domain"
)

// Register mounts dashboard endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// view model for the current query
	httpkit.GetJSON(r, "/", h.dashboard)

	// location writes
	httpkit.PostJSON[domain.StateInput](r, "/state", h.state)
	httpkit.PostJSON[domain.DatetimeInput](r, "/datetime", h.datetime)

	// cross navigation
	httpkit.GetJSON(r, "/projects/{projectSlug}/links", h.links)
	httpkit.GetJSON(r, "/sampling", h.sampling)
}

type handlers struct{ svc domain.ServicePort }

// scope reads the organization and viewer, the query of r is the dashboard query
func scope(r *stdhttp.Request) (domain.Scope, error) {
	org, err := httpkit.Org(r)
	if err != nil {
		return domain.Scope{}, err
	}
	return domain.Scope{
		OrgSlug:  org,
		UserID:   httpkit.MaybeViewer(r),
		Location: location.Location{Query: r.URL.Query()},
	}, nil
}

// bodyScope is scope with the location posted by the client
func bodyScope(r *stdhttp.Request, raw string) (domain.Scope, error) {
	sc, err := scope(r)
	if err != nil {
		return domain.Scope{}, err
	}
	loc, err := location.Parse(raw)
	if err != nil {
		return domain.Scope{}, perr.WithField(perr.Wrap(err, perr.ErrorCodeInvalidArgument, "malformed location"), "location")
	}
	sc.Location = loc
	return sc, nil
}

// @Summary Usage dashboard
// @Description Derives the filter state from the query and renders the dashboard sections
// @Tags Stats
// @Produce json
// @Param orgSlug path string true "Organization slug"
// @Param X-Orgstats-User header string false "Viewer id"
// @Param dataCategory query string false "errors, transactions or attachments"
// @Param statsPeriod query string false "Relative period" example(14d)
// @Param start query string false "Absolute start"
// @Param end query string false "Absolute end"
// @Param utc query string false "true when bounds are UTC"
// @Success 200 {object} statsview.View "ok"
// @Failure 404 {object} swaggerkit.ErrorResponse "unknown organization"
// @Router /organizations/{orgSlug}/stats/ [get]
func (h *handlers) dashboard(r *stdhttp.Request) (any, error) {
	sc, err := scope(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Dashboard(r.Context(), sc)
}

// @Summary Write a filter change to the location
// @Description navigate=true answers 303 to the new location, otherwise the location is returned
// @Tags Stats
// @Accept json
// @Produce json
// @Param orgSlug path string true "Organization slug"
// @Param payload body domain.StateInput true "Change"
// @Success 200 {object} domain.StateResult "computed"
// @Success 303 {object} domain.StateResult "navigated"
// @Router /organizations/{orgSlug}/stats/state [post]
func (h *handlers) state(r *stdhttp.Request, in domain.StateInput) (any, error) {
	sc, err := bodyScope(r, in.Location)
	if err != nil {
		return nil, err
	}
	res, err := h.svc.SetState(r.Context(), sc, in)
	if err != nil {
		return nil, err
	}
	if res.Redirect != "" {
		return httpkit.SeeOther(res.Redirect, res), nil
	}
	return res, nil
}

// @Summary Legacy time range selector change
// @Tags Stats
// @Accept json
// @Produce json
// @Param orgSlug path string true "Organization slug"
// @Param payload body domain.DatetimeInput true "Change"
// @Success 303 {object} domain.StateResult "navigated"
// @Router /organizations/{orgSlug}/stats/datetime [post]
func (h *handlers) datetime(r *stdhttp.Request, in domain.DatetimeInput) (any, error) {
	sc, err := bodyScope(r, in.Location)
	if err != nil {
		return nil, err
	}
	res, err := h.svc.UpdateDatetime(r.Context(), sc, in)
	if err != nil {
		return nil, err
	}
	return httpkit.SeeOther(res.Redirect, res), nil
}

// @Summary Cross navigation links of a project
// @Tags Stats
// @Produce json
// @Param orgSlug path string true "Organization slug"
// @Param projectSlug path string true "Project slug"
// @Success 200 {object} statsview.ProjectRow "ok"
// @Failure 404 {object} swaggerkit.ErrorResponse "unknown project"
// @Router /organizations/{orgSlug}/stats/projects/{projectSlug}/links [get]
func (h *handlers) links(r *stdhttp.Request) (any, error) {
	sc, err := scope(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Links(r.Context(), sc, str.Slug(httpkit.Param(r, "projectSlug")))
}

// @Summary Dynamic sampling settings
// @Description 303 when a single project is selected, otherwise the unresolved path
// @Tags Stats
// @Produce json
// @Param orgSlug path string true "Organization slug"
// @Param X-Orgstats-User header string false "Viewer id"
// @Success 200 {object} domain.SamplingResult "needs a project"
// @Success 303 {object} domain.SamplingResult "navigated"
// @Failure 403 {object} swaggerkit.ErrorResponse "sampling disabled"
// @Router /organizations/{orgSlug}/stats/sampling [get]
func (h *handlers) sampling(r *stdhttp.Request) (any, error) {
	sc, err := scope(r)
	if err != nil {
		return nil, err
	}
	res, err := h.svc.Sampling(r.Context(), sc)
	if err != nil {
		return nil, err
	}
	if res.Resolved {
		return httpkit.SeeOther(res.Path, res), nil
	}
	return res, nil
}
