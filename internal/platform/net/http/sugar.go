package http

import "net/http"

// GetJSON mounts a pure JSON handler for GET
func GetJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, JSONHandlerNoBody(h))
}

// PostJSON mounts a pure JSON handler for POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSONHandler(h))
}

// PostBlob mounts a JSON-in, file-out handler for POST
func PostBlob[T any](r Router, path string, h func(*http.Request, T) (File, error)) {
	r.Post(path, BlobHandler(h))
}
