package httputils

import (
	"context"
	"net/http"

	"github.com/containerd/errdefs/pkg/errhttp"
	"github.com/containerd/log"
)

// APIFunc is an adapter to allow the use of ordinary functions as
// request handlers. Handlers return an error instead of writing it.
type APIFunc func(ctx context.Context, w http.ResponseWriter, r *http.Request) error

// MakeErrorHandler converts an APIFunc into an http.HandlerFunc, writing
// any returned error as the response.
func MakeErrorHandler(handler APIFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := handler(ctx, w, r); err != nil {
			WriteError(ctx, w, err)
		}
	}
}

// WriteError writes err as a plain text response. The status code is
// derived from the error's errdefs class.
func WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	statusCode := errhttp.ToHTTP(err)
	if statusCode >= http.StatusInternalServerError {
		log.G(ctx).WithError(err).Error("error handling request")
	} else {
		log.G(ctx).WithError(err).Debug("request failed")
	}
	http.Error(w, err.Error(), statusCode)
}
