package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "orgstats/internal/platform/errors"
	"orgstats/internal/platform/logger"
	pnet "orgstats/internal/platform/net"
)

// Envelope is the response body of every JSON endpoint
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Location   string         `json:"location,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// JSON writes v with status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Named("http").Warn().Err(err).Msg("encode response")
	}
}

// Response is returned by return style handlers
// Body holding an error turns the response into an error envelope
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// Handle adapts a Response returning function to a Handler
func Handle(h func(r *stdhttp.Request) Response) Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	env := Envelope{RequestID: pnet.RequestID(r.Context())}
	if err, ok := resp.Body.(error); ok && err != nil {
		status = perr.HTTPStatus(err)
		wire := perr.WireFrom(err)
		env.Code, env.Error, env.Field = wire.Code, wire.Message, wire.Field
		if status >= stdhttp.StatusInternalServerError {
			logger.C(r.Context()).Error().Err(err).Stringer("code", wire.Code).Msg("request failed")
		}
	} else {
		env.Data = resp.Body
	}
	if status == stdhttp.StatusSeeOther {
		env.Location = w.Header().Get("Location")
	}
	env.StatusCode = status
	env.Status = stdhttp.StatusText(status)
	JSON(w, status, env)
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error maps err to its status and envelope
func Error(err error) Response { return Response{Body: err} }

// SeeOther returns a 303 pointing at location, data is echoed in the envelope
func SeeOther(location string, data any) Response {
	h := stdhttp.Header{}
	h.Set("Location", location)
	return Response{Status: stdhttp.StatusSeeOther, Body: data, Header: h}
}
