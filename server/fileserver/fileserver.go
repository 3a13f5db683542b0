// Package fileserver serves the files of a single directory tree.
//
// Request paths are resolved inside the root directory only. Paths with
// ".." segments are rejected, symbolic links are resolved relative to the
// root, and every file is opened through an os.Root, so a request can never
// read a file outside of it.
package fileserver

import (
	"context"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/containerd/log"
	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/pkg/errors"
	"github.com/socialsox/server/errdefs"
)

// indexFiles are served in place of a directory listing, in this order.
var indexFiles = []string{"index.html", "index.htm"}

var errFileNotFound = errors.New("File not found")

// Handler serves files from a root directory.
type Handler struct {
	root string
	fsys *os.Root
}

// New returns a Handler serving the directory tree at root.
func New(root string) (*Handler, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(err, "invalid root directory")
	}
	root, err = filepath.EvalSymlinks(root)
	if err != nil {
		return nil, errors.Wrap(err, "invalid root directory")
	}
	fsys, err := os.OpenRoot(root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open root directory %s", root)
	}
	return &Handler{root: root, fsys: fsys}, nil
}

// Root returns the absolute path of the directory being served.
func (h *Handler) Root() string {
	return h.root
}

// Close releases the root directory.
func (h *Handler) Close() error {
	return h.fsys.Close()
}

// ServeFile writes the file, index file or directory listing found at the
// request path. Paths that do not resolve to anything inside the root
// directory produce a not-found error.
func (h *Handler) ServeFile(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	upath := r.URL.Path
	if !strings.HasPrefix(upath, "/") {
		upath = "/" + upath
	}

	name, err := h.resolve(upath)
	if err != nil {
		log.G(ctx).WithError(err).WithField("path", upath).Debug("rejected request path")
		return errdefs.NotFound(errFileNotFound)
	}

	fi, err := h.fsys.Stat(name)
	if err != nil {
		log.G(ctx).WithError(err).WithField("path", upath).Debug("failed to stat path")
		return errdefs.NotFound(errFileNotFound)
	}

	if fi.IsDir() {
		if !strings.HasSuffix(upath, "/") {
			redirectToDir(w, r, upath)
			return nil
		}
		for _, index := range indexFiles {
			indexName := filepath.Join(name, index)
			if ifi, err := h.fsys.Stat(indexName); err == nil && ifi.Mode().IsRegular() {
				return h.serveFile(ctx, w, r, indexName)
			}
		}
		return h.serveDir(ctx, w, r, name, path.Clean(upath))
	}

	// A trailing slash names a directory.
	if strings.HasSuffix(upath, "/") || !fi.Mode().IsRegular() {
		return errdefs.NotFound(errFileNotFound)
	}
	return h.serveFile(ctx, w, r, name)
}

// resolve maps a URL path to a path relative to the root directory.
func (h *Handler) resolve(upath string) (string, error) {
	for _, seg := range strings.FieldsFunc(upath, isSlash) {
		if seg == ".." {
			return "", errors.Errorf("path %q escapes root directory", upath)
		}
	}
	if strings.ContainsRune(upath, 0) {
		return "", errors.Errorf("path %q contains a NUL byte", upath)
	}

	full, err := securejoin.SecureJoin(h.root, upath)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve %q", upath)
	}
	rel, err := filepath.Rel(h.root, full)
	if err != nil || !filepath.IsLocal(rel) {
		return "", errors.Errorf("path %q escapes root directory", upath)
	}
	return rel, nil
}

func isSlash(r rune) bool {
	return r == '/' || r == '\\'
}

func (h *Handler) serveFile(ctx context.Context, w http.ResponseWriter, r *http.Request, name string) error {
	f, err := h.fsys.Open(name)
	if err != nil {
		log.G(ctx).WithError(err).WithField("file", name).Debug("failed to open file")
		return errdefs.NotFound(errFileNotFound)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return errors.Wrapf(err, "failed to stat %s", name)
	}
	if !fi.Mode().IsRegular() {
		return errdefs.NotFound(errFileNotFound)
	}
	http.ServeContent(w, r, fi.Name(), fi.ModTime(), f)
	return nil
}

// redirectToDir sends a permanent redirect to the directory path with a
// trailing slash so relative links in the listing resolve correctly.
func redirectToDir(w http.ResponseWriter, r *http.Request, upath string) {
	target := url.URL{Path: path.Clean(upath) + "/", RawQuery: r.URL.RawQuery}
	w.Header().Set("Location", target.String())
	w.WriteHeader(http.StatusMovedPermanently)
}

func isPermission(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}
