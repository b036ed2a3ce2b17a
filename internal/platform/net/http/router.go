package http

import "net/http"

// Handler is a bare handler func; every route registers one
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the slice of chi the API mounts against. The coverage API only
// reads, so GET and POST are the only verbs; Handle covers /metrics and docs.
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Handle(path string, h http.Handler)

	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	// Mux is the root handler handed to the server
	Mux() http.Handler
}
