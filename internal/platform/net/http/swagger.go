package http

import (
	httpSwagger "github.com/swaggo/http-swagger"
)

// MountSwagger mounts the swagger UI under /docs when enabled
// docURL points the UI at the served spec, e.g. "/api/v1/swagger/doc.json"
func MountSwagger(r Router, enabled bool, docURL string) {
	if !enabled {
		return
	}
	h := httpSwagger.Handler(httpSwagger.URL(docURL))
	r.Get("/docs/*", h)
}
