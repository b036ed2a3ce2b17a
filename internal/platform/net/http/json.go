package http

import (
	"net/http"

	"datax/internal/platform/net/http/bind"
)

// File is a rendered artifact returned by blob handlers
type File struct {
	ContentType string
	Name        string
	Bytes       []byte
}

// JSONHandler adapts a pure JSON handler to a platform Handler
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}

// JSONHandlerNoBody calls fn without parsing a request body and wraps the result
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}

// BlobHandler binds a JSON body and writes the returned file verbatim
func BlobHandler[T any](fn func(*http.Request, T) (File, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		f, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return Blob(f.ContentType, f.Name, f.Bytes)
	})
}
