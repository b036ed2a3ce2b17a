// Package httpkit is what coverage and meta modules import to register routes.
// It re-exports the envelope types of internal/platform/net/http and adds the
// mounting and middleware helpers shared by every module.
package httpkit

import (
	"net/http"

	phttp "datax/internal/platform/net/http"
)

type (
	// Envelope wraps every JSON answer
	Envelope = phttp.Envelope
	// Response is returned by Handle style handlers
	Response = phttp.Response
	// Handler is a plain handler func
	Handler = phttp.Handler
	// Router is the chi backed mounting seam
	Router = phttp.Router
	// File is a chart image or export download
	File = phttp.File
)

// OK wraps data in a 200 envelope
func OK(data any) Response { return phttp.OK(data) }

// Error maps err through its perr code to a status and envelope
func Error(err error) Response { return phttp.Error(err) }

// Call adapts a handler without a request body. A returned Response is written
// as is; anything else becomes a 200 envelope.
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(phttp.Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}

// Handle adapts a func returning a Response
func Handle(fn func(*http.Request) Response) Handler { return phttp.Handle(fn) }
