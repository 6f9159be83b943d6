// Package config reads application settings from environment variables
//
// Must* accessors panic on missing or invalid values and are meant for boot time.
// May* accessors fall back to a default and log a warning when a value is invalid
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"orgstats/internal/platform/logger"
)

// Conf is a namespaced view over environment variables, e.g. Prefix("CORE_API_")
type Conf struct{ prefix string }

// New creates a root Conf
func New() Conf { return Conf{} }

// Prefix creates a child Conf with an additional prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.key(k))) }

func (c Conf) must(key string) string {
	v := c.lookup(key)
	if v == "" {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	return v
}

func (c Conf) invalid(key, value, def, msg string) {
	logger.Get().Warn().Str("key", c.key(key)).Str("value", value).Str("default", def).Msg(msg)
}

// MustString panics if key is missing or empty
func (c Conf) MustString(key string) string { return c.must(key) }

// MustInt panics if key is missing or not an int
func (c Conf) MustInt(key string) int {
	s := c.must(key)
	v, err := strconv.Atoi(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid int value")
	}
	return v
}

// MustPort returns a listen address like ":4000" after checking the 1..65535 range
func (c Conf) MustPort(key string) string {
	s := c.must(key)
	return c.port(key, s)
}

// MayPort is MustPort with a default used when key is empty
func (c Conf) MayPort(key string, def int) string {
	s := c.lookup(key)
	if s == "" {
		s = strconv.Itoa(def)
	}
	return c.port(key, s)
}

func (c Conf) port(key, s string) string {
	s = strings.TrimPrefix(s, ":")
	p, err := strconv.Atoi(s)
	if err != nil || p < 1 || p > 65535 {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid TCP port, expected 1..65535")
	}
	return ":" + s
}

// MayString returns the value or def
func (c Conf) MayString(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the value or def, invalid values log and fall back
func (c Conf) MayInt(key string, def int) int {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	c.invalid(key, s, strconv.Itoa(def), "invalid int, using default")
	return def
}

// MayBool returns the value or def, invalid values log and fall back
func (c Conf) MayBool(key string, def bool) bool {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	c.invalid(key, s, strconv.FormatBool(def), "invalid bool, using default")
	return def
}

// MayDuration returns the value or def, invalid values log and fall back
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	c.invalid(key, s, def.String(), "invalid duration, using default")
	return def
}

// MayCSV splits a comma separated value, blank items are dropped
func (c Conf) MayCSV(key string, def []string) []string {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	out := make([]string, 0, strings.Count(s, ",")+1)
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayLocation loads an IANA zone name, empty or unknown names yield def
func (c Conf) MayLocation(key string, def *time.Location) *time.Location {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	loc, err := time.LoadLocation(s)
	if err != nil {
		c.invalid(key, s, def.String(), "unknown time zone, using default")
		return def
	}
	return loc
}

// MayMatch returns the value when ok accepts it, otherwise def
func (c Conf) MayMatch(key, def string, ok func(string) bool) string {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	if ok(s) {
		return s
	}
	c.invalid(key, s, def, "rejected value, using default")
	return def
}

// MayEnum returns one of allowed, panicking on anything else
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
