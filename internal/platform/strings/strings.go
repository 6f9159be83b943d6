// Package strings holds small string helpers shared by the platform and services
package strings

import std "strings"

// IfEmpty returns def when in has no elements
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString returns s and panics naming what when s is blank
func MustString(s, what string) string {
	if std.TrimSpace(s) == "" {
		panic(what + " is required")
	}
	return s
}

// MustPrefix normalizes a mount path to "/x/y" and panics on the root path
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// Deref returns *ps or a placeholder for nil, used to log optional values
func Deref(ps *string) string {
	if ps == nil {
		return "<unset>"
	}
	return *ps
}

// SQLNull returns nil for blank s so it binds as NULL
func SQLNull(s string) any {
	if std.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// Slug lowercases and trims an organization or project slug
func Slug(s string) string { return std.ToLower(std.TrimSpace(s)) }
