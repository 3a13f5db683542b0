package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/containerd/log"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestAccessLog(t *testing.T) {
	logger, hook := test.NewNullLogger()

	handler := AccessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("File not found\n"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/missing.txt", nil)
	req = req.WithContext(log.WithLogger(req.Context(), logrus.NewEntry(logger)))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	entry := hook.LastEntry()
	assert.Assert(t, entry != nil)
	assert.Check(t, is.Equal(entry.Level, logrus.InfoLevel))
	assert.Check(t, is.Equal(entry.Message, "request served"))
	assert.Check(t, is.Equal(entry.Data["method"], http.MethodGet))
	assert.Check(t, is.Equal(entry.Data["uri"], "/missing.txt"))
	assert.Check(t, is.Equal(entry.Data["status"], http.StatusNotFound))
	assert.Check(t, is.Equal(entry.Data["bytes"], int64(len("File not found\n"))))
}
