// Package swaggerkit serves the OpenAPI document and the swagger UI
package swaggerkit

import (
	"net/http"

	phttp "datax/internal/platform/net/http"
)

// DocPath is where the JSON document is served
const DocPath = "/api/docs/doc.json"

// Mount the Swagger UI and JSON spec if enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/api/docs/index.html", http.StatusPermanentRedirect)
	})
	r.Get(DocPath, serveDocJSON())
	r.Route("/api", func(api phttp.Router) {
		phttp.MountSwagger(api, true, DocPath)
	})
}
