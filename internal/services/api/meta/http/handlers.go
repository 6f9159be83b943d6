// Package http serves the meta endpoints: health, readiness, version and the module listing
package http

import (
	"context"
	"net/http"
	"time"

	"orgstats/internal/core/version"
	"orgstats/internal/modkit/httpkit"
	"orgstats/internal/modkit/module"
)

// Probe reports whether one dependency is usable
type Probe func(ctx context.Context) error

// Check is a named readiness probe, a nil Probe is reported as skipped
type Check struct {
	Name  string
	Probe Probe
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Checks      []Check
}

// readyTimeout bounds the whole readiness round
const readyTimeout = 2 * time.Second

// check statuses, the overall status is the worst of them
const (
	statusOK       = "ok"
	statusSkipped  = "skipped"
	statusFail     = "fail"
	statusDegraded = "degraded"
)

type handlers struct{ deps Deps }

// Register mounts the meta routes on r
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.GetJSON(r, "/health", h.health)
	httpkit.GetJSON(r, "/ready", h.ready)
	httpkit.GetJSON(r, "/version", h.version)
	httpkit.GetJSON(r, "/service", h.service)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"orgstats-api"`
	Started string `json:"started" example:"2026-10-01T13:00:00Z"`
	Now     string `json:"now"     example:"2026-10-01T13:05:00Z"`
}

// ReadyCheck is the outcome of one probe
type ReadyCheck struct {
	Name   string `json:"name"            example:"pg"`
	Status string `json:"status"          example:"ok"`
	Error  string `json:"error,omitempty" example:"pending: 0002_page_filters"`
}

// ReadyResponse is the readiness payload, Status is ok, degraded or fail
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-01T13:05:00Z"`
}

// ServiceResponse lists what this process serves
type ServiceResponse struct {
	Name    string   `json:"name"    example:"orgstats-api"`
	Started string   `json:"started" example:"2026-10-01T13:00:00Z"`
	Uptime  int64    `json:"uptime"  example:"300"`
	Modules []string `json:"modules" example:"meta,orgstats,pagefilters"`
}

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(*http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: rfc3339(h.deps.StartedAt),
		Now:     rfc3339(time.Now()),
	}, nil
}

// @Summary Readiness with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok or degraded"
// @Failure 503 {object} ReadyResponse "a dependency failed"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	res := ReadyResponse{Status: statusOK, Checks: make([]ReadyCheck, 0, len(h.deps.Checks))}
	for _, c := range h.deps.Checks {
		rc := run(ctx, c)
		res.Checks = append(res.Checks, rc)
		switch {
		case rc.Status == statusFail:
			res.Status = statusFail
		case rc.Status == statusSkipped && res.Status == statusOK:
			res.Status = statusDegraded
		}
	}
	res.Now = rfc3339(time.Now())

	if res.Status == statusFail {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: res}, nil
	}
	return res, nil
}

func run(ctx context.Context, c Check) ReadyCheck {
	if c.Probe == nil {
		return ReadyCheck{Name: c.Name, Status: statusSkipped}
	}
	if err := c.Probe(ctx); err != nil {
		return ReadyCheck{Name: c.Name, Status: statusFail, Error: err.Error()}
	}
	return ReadyCheck{Name: c.Name, Status: statusOK}
}

// @Summary Build info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(*http.Request) (any, error) { return version.Info(), nil }

// @Summary Uptime and mounted modules
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: rfc3339(h.deps.StartedAt),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
		Modules: module.Names(),
	}, nil
}

func rfc3339(t time.Time) string { return t.UTC().Format(time.RFC3339) }
