package middleware

import (
	"net/http"

	"github.com/containerd/log"
	"github.com/felixge/httpsnoop"
)

// AccessLog logs one line per request once the response has been sent.
func AccessLog(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(handler, w, r)
		log.G(r.Context()).WithFields(log.Fields{
			"remote":   r.RemoteAddr,
			"method":   r.Method,
			"uri":      r.RequestURI,
			"proto":    r.Proto,
			"status":   m.Code,
			"bytes":    m.Written,
			"duration": m.Duration,
		}).Info("request served")
	})
}
