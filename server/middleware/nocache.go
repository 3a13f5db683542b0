package middleware

import (
	"io"
	"net/http"

	"github.com/felixge/httpsnoop"
)

// CacheControl is the value of the Cache-Control header set on every
// response.
const CacheControl = "no-store, no-cache, must-revalidate"

// NoCache sets the Cache-Control header on every response right before
// the headers are written, replacing whatever value the wrapped handler
// set or removed. net/http deletes Cache-Control when serving file errors,
// so the header cannot simply be set before calling the handler.
func NoCache(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nw := &noCacheWriter{header: w.Header()}
		ww := httpsnoop.Wrap(w, httpsnoop.Hooks{
			WriteHeader: func(next httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
				return func(code int) {
					nw.finalizeHeaders(code)
					next(code)
				}
			},
			Write: func(next httpsnoop.WriteFunc) httpsnoop.WriteFunc {
				return func(b []byte) (int, error) {
					nw.finalizeHeaders(http.StatusOK)
					return next(b)
				}
			},
			ReadFrom: func(next httpsnoop.ReadFromFunc) httpsnoop.ReadFromFunc {
				return func(src io.Reader) (int64, error) {
					nw.finalizeHeaders(http.StatusOK)
					return next(src)
				}
			},
			Flush: func(next httpsnoop.FlushFunc) httpsnoop.FlushFunc {
				return func() {
					nw.finalizeHeaders(http.StatusOK)
					next()
				}
			},
		})

		handler.ServeHTTP(ww, r)

		// The handler wrote nothing; net/http would send an implicit 200
		// without passing through the hooks above.
		if !nw.wroteHeader {
			ww.WriteHeader(http.StatusOK)
		}
	})
}

type noCacheWriter struct {
	header      http.Header
	wroteHeader bool
}

func (w *noCacheWriter) finalizeHeaders(code int) {
	if w.wroteHeader {
		return
	}
	w.header.Set("Cache-Control", CacheControl)
	// Informational responses are followed by the final header block.
	if code >= http.StatusOK {
		w.wroteHeader = true
	}
}
