package httputils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/pkg/errors"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestMakeErrorHandler(t *testing.T) {
	tests := []struct {
		doc        string
		err        error
		statusCode int
	}{
		{
			doc:        "no error",
			statusCode: http.StatusOK,
		},
		{
			doc:        "not found",
			err:        errors.Wrap(errdefs.ErrNotFound, "missing"),
			statusCode: http.StatusNotFound,
		},
		{
			doc:        "not implemented",
			err:        errdefs.ErrNotImplemented,
			statusCode: http.StatusNotImplemented,
		},
		{
			doc:        "invalid argument",
			err:        errors.Wrap(errdefs.ErrInvalidArgument, "bad"),
			statusCode: http.StatusBadRequest,
		},
		{
			doc:        "unclassified",
			err:        errors.New("boom"),
			statusCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.doc, func(t *testing.T) {
			h := MakeErrorHandler(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
				if tc.err != nil {
					return tc.err
				}
				w.WriteHeader(http.StatusOK)
				return nil
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			resp := httptest.NewRecorder()
			h.ServeHTTP(resp, req)

			assert.Check(t, is.Equal(resp.Code, tc.statusCode))
			if tc.err != nil {
				assert.Check(t, is.Equal(strings.TrimSpace(resp.Body.String()), tc.err.Error()))
				assert.Check(t, is.Equal(resp.Header().Get("Content-Type"), "text/plain; charset=utf-8"))
			}
		})
	}
}
