package http

import (
	"net/http"

	"orgstats/internal/platform/net/http/bind"
)

// JSONHandler binds and validates a T body before calling fn
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return result(out)
	})
}

// JSONHandlerNoBody calls fn and wraps the result
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return Error(err)
		}
		return result(out)
	})
}

// result passes a Response through and wraps anything else in OK
func result(out any) Response {
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}

// GetJSON mounts fn for GET
func GetJSON(r Router, path string, fn func(*http.Request) (any, error)) {
	r.Get(path, JSONHandlerNoBody(fn))
}

// PutJSON mounts fn for PUT with a bound body
func PutJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Put(path, JSONHandler(fn))
}

// PostJSON mounts fn for POST with a bound body
func PostJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Post(path, JSONHandler(fn))
}
