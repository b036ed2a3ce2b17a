package httpkit

import (
	"net/http"

	phttp "datax/internal/platform/net/http"
)

// Get registers a body-less handler behind the envelope adapter
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// PostJSON binds and validates a JSON body of type T, then wraps the result in the envelope
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, h)
}

// PostBlob binds a JSON body of type T and writes the returned file as a download
func PostBlob[T any](r Router, path string, h func(*http.Request, T) (File, error)) {
	phttp.PostBlob(r, path, h)
}
