// Package http provides http transport for page filters
package http

import (
	stdhttp "net/http"

	"orgstats/internal/modkit/httpkit"
	"orgstats/internal/services/api/pagefilters/domain"
)

// Register mounts page filter endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.GetJSON(r, "/", h.get)
	httpkit.PutJSON[domain.SaveInput](r, "/", h.put)
	httpkit.DeleteJSON(r, "/", h.clear)
}

type handlers struct{ svc domain.ServicePort }

func scope(r *stdhttp.Request) (org, user string, err error) {
	if org, err = httpkit.Org(r); err != nil {
		return "", "", err
	}
	user, err = httpkit.Viewer(r)
	return org, user, err
}

// @Summary Current page filter selection
// @Tags PageFilters
// @Produce json
// @Param orgSlug path string true "Organization slug"
// @Param X-Orgstats-User header string true "Viewer id"
// @Success 200 {object} domain.Selection "ok"
// @Router /organizations/{orgSlug}/page-filters/ [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	org, user, err := scope(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), org, user)
}

// @Summary Store the page filter selection
// @Tags PageFilters
// @Accept json
// @Produce json
// @Param orgSlug path string true "Organization slug"
// @Param X-Orgstats-User header string true "Viewer id"
// @Param payload body domain.SaveInput true "Selection"
// @Success 200 {object} domain.Selection "ok"
// @Router /organizations/{orgSlug}/page-filters/ [put]
func (h *handlers) put(r *stdhttp.Request, in domain.SaveInput) (any, error) {
	org, user, err := scope(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Save(r.Context(), org, user, in)
}

// @Summary Reset the page filter selection
// @Tags PageFilters
// @Param orgSlug path string true "Organization slug"
// @Param X-Orgstats-User header string true "Viewer id"
// @Success 204 "cleared"
// @Router /organizations/{orgSlug}/page-filters/ [delete]
func (h *handlers) clear(r *stdhttp.Request) (any, error) {
	org, user, err := scope(r)
	if err != nil {
		return nil, err
	}
	if err := h.svc.Clear(r.Context(), org, user); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
