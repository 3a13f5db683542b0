package middleware

import "net/http"

// Middleware is an adapter to allow the use of ordinary functions as
// request filters. Any function that has the appropriate signature can be
// registered as a middleware.
type Middleware func(handler http.Handler) http.Handler

// Chain wraps handler with the given middlewares. The first middleware is
// the outermost one and sees the request first.
func Chain(handler http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}
