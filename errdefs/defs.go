// Package errdefs classifies errors returned by the server so they can be
// mapped to HTTP status codes. The classes are those of
// github.com/containerd/errdefs; the wrappers here keep the message of the
// wrapped error intact so it can be shown to clients as is.
package errdefs

import (
	cerrdefs "github.com/containerd/errdefs"
)

type errNotFound struct{ error }

func (errNotFound) NotFound() {}

func (e errNotFound) Unwrap() error {
	return e.error
}

func (errNotFound) Is(target error) bool {
	return target == cerrdefs.ErrNotFound
}

// NotFound marks err as a not-found error. It returns nil if err is nil.
func NotFound(err error) error {
	if err == nil || cerrdefs.IsNotFound(err) {
		return err
	}
	return errNotFound{err}
}

type errNotImplemented struct{ error }

func (errNotImplemented) NotImplemented() {}

func (e errNotImplemented) Unwrap() error {
	return e.error
}

func (errNotImplemented) Is(target error) bool {
	return target == cerrdefs.ErrNotImplemented
}

// NotImplemented marks err as a not-implemented error. It returns nil if
// err is nil.
func NotImplemented(err error) error {
	if err == nil || cerrdefs.IsNotImplemented(err) {
		return err
	}
	return errNotImplemented{err}
}
