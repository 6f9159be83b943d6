// Package swaggerkit serves the API reference UI and its doc.json
package swaggerkit

import (
	"net/http"

	phttp "orgstats/internal/platform/net/http"
	"orgstats/internal/services/api/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Path is where the UI lives, doc.json sits beneath it
const Path = "/api/docs"

// Mount registers the UI and doc.json on r, nothing is mounted when disabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get(Path, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, Path+"/", http.StatusPermanentRedirect)
	})
	r.Get(Path+"/doc.json", serveDocJSON())
	r.Handle(Path+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
		httpSwagger.URL(Path+"/doc.json"),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DeepLinking(true),
	))
}
