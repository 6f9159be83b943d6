package httpkit

import (
	"net/http"
	"time"

	"orgstats/internal/platform/config"
	"orgstats/internal/platform/net/middleware"
)

// CommonStack returns the API middleware slice configured from cfg
//
// TIMEOUT, SLOW_MS, CORS_ORIGINS and CORS_MAX_AGE are read relative to the cfg prefix
func CommonStack(cfg config.Conf) []func(http.Handler) http.Handler {
	timeout := cfg.MayDuration("TIMEOUT", 30*time.Second)
	slow := time.Duration(cfg.MayInt("SLOW_MS", 750)) * time.Millisecond

	stack := []func(http.Handler) http.Handler{
		middleware.CORS(middleware.CORSOptions{
			AllowedOrigins: cfg.MayCSV("CORS_ORIGINS", []string{"*"}),
			MaxAge:         cfg.MayInt("CORS_MAX_AGE", 300),
		}),
	}
	stack = append(stack, middleware.Defaults(timeout)...)
	return append(stack, middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: slow}))
}
