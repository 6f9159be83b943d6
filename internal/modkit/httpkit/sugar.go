package httpkit

import (
	"net/http"

	phttp "orgstats/internal/platform/net/http"
)

// GetJSON mounts a body-less handler under GET
func GetJSON(r Router, path string, h func(*http.Request) (any, error)) {
	phttp.GetJSON(r, path, h)
}

// PostJSON mounts a bound and validated T handler under POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, h)
}

// PutJSON mounts a bound and validated T handler under PUT
func PutJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PutJSON(r, path, h)
}

// DeleteJSON mounts a body-less handler under DELETE
func DeleteJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Delete(path, phttp.JSONHandlerNoBody(h))
}
