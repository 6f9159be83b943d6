// Package validation registers the dashboard specific validator tags
package validation

import (
	"sync"

	"orgstats/internal/core/params"
	"orgstats/internal/core/window"
	"orgstats/internal/platform/net/http/bind"
)

// Tags registered by Register
const (
	TagStatsPeriod = "stats_period"
	TagStatsParam  = "stats_param"
)

var (
	once sync.Once
	err  error
)

// Register adds the custom tags to the shared validator, it is safe to call from every module
func Register() error {
	once.Do(func() {
		err = bind.RegisterValidation(TagStatsPeriod, "{0} must be a relative period like 14d",
			func(fl bind.FieldLevel) bool { return window.ValidPeriod(fl.Field().String()) })
		if err != nil {
			return
		}
		err = bind.RegisterValidation(TagStatsParam, "{0} is not a dashboard parameter",
			func(fl bind.FieldLevel) bool { return params.IsReserved(fl.Field().String()) })
	})
	return err
}

// MustRegister panics when the tags cannot be registered
func MustRegister() {
	if err := Register(); err != nil {
		panic(err)
	}
}
