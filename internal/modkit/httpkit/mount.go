package httpkit

import (
	"net/http"
	"strings"
)

// APIVersion is the version segment every module is served under
const APIVersion = "v1"

// MountUnder opens prefix on r with mw applied only inside it
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}

// MountAPI scopes mount to /api/{version}
//
//	httpkit.MountAPI(r, "v1", httpkit.CommonStack(cfg), func(api httpkit.Router) {
//	  pagefilters.MountRoutes(api)
//	  orgstats.MountRoutes(api)
//	})
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	v := strings.Trim(version, "/")
	if v == "" {
		v = APIVersion
	}
	MountUnder(r, "/api/"+v, mw, mount)
}

// MountAPIV1 mounts under /api/v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, APIVersion, mw, mount)
}
