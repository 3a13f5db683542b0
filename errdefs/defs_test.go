package errdefs

import (
	"net/http"
	"testing"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/containerd/errdefs/pkg/errhttp"
	"github.com/pkg/errors"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestNotFound(t *testing.T) {
	assert.Check(t, NotFound(nil))

	err := NotFound(errors.New("File not found"))
	assert.Check(t, is.Error(err, "File not found"))
	assert.Check(t, cerrdefs.IsNotFound(err))
	assert.Check(t, !cerrdefs.IsNotImplemented(err))
	assert.Check(t, is.Equal(errhttp.ToHTTP(err), http.StatusNotFound))

	wrapped := errors.Wrap(err, "serving /missing")
	assert.Check(t, cerrdefs.IsNotFound(wrapped))
}

func TestNotImplemented(t *testing.T) {
	assert.Check(t, NotImplemented(nil))

	err := NotImplemented(errors.New("Unsupported method ('POST')"))
	assert.Check(t, is.Error(err, "Unsupported method ('POST')"))
	assert.Check(t, cerrdefs.IsNotImplemented(err))
	assert.Check(t, is.Equal(errhttp.ToHTTP(err), http.StatusNotImplemented))
}
