package fileserver

import (
	"bytes"
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/containerd/log"
	units "github.com/docker/go-units"
	"github.com/pkg/errors"
	"github.com/socialsox/server/errdefs"
)

var errNoListPermission = errors.New("No permission to list directory")

var listingTemplate = template.Must(template.New("listing").Parse(`<!DOCTYPE HTML>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Directory listing for {{.Path}}</title>
</head>
<body>
<h1>Directory listing for {{.Path}}</h1>
<hr>
<ul>
{{range .Entries}}<li><a href="{{.Href}}">{{.Name}}</a>{{with .Size}} <small>({{.}})</small>{{end}}</li>
{{end}}</ul>
<hr>
</body>
</html>
`))

type listing struct {
	Path    string
	Entries []listingEntry
}

type listingEntry struct {
	Name string
	Href string
	Size string
}

// listEntries returns the entries of the directory at name, sorted by name
// without regard to case. Directories are suffixed with "/" and symbolic
// links with "@"; links to directories also get a "/" on their href.
func (h *Handler) listEntries(name string) ([]listingEntry, error) {
	dir, err := h.fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	dirents, err := dir.ReadDir(-1)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(dirents, func(a, b fs.DirEntry) int {
		return strings.Compare(strings.ToLower(a.Name()), strings.ToLower(b.Name()))
	})

	entries := make([]listingEntry, 0, len(dirents))
	for _, d := range dirents {
		displayName, linkName := d.Name(), d.Name()
		var size string
		switch {
		case d.Type()&fs.ModeSymlink != 0:
			displayName += "@"
			// Targets outside the root fail to stat and are listed as files.
			if target, err := h.fsys.Stat(filepath.Join(name, d.Name())); err == nil && target.IsDir() {
				linkName += "/"
			}
		case d.IsDir():
			displayName += "/"
			linkName += "/"
		default:
			if info, err := d.Info(); err == nil {
				size = units.HumanSize(float64(info.Size()))
			}
		}
		href := url.URL{Path: linkName}
		entries = append(entries, listingEntry{
			Name: displayName,
			Href: href.String(),
			Size: size,
		})
	}
	return entries, nil
}

func (h *Handler) serveDir(ctx context.Context, w http.ResponseWriter, r *http.Request, name, displayPath string) error {
	entries, err := h.listEntries(name)
	if err != nil {
		log.G(ctx).WithError(err).WithField("dir", name).Debug("failed to list directory")
		if isPermission(err) {
			return errdefs.NotFound(errNoListPermission)
		}
		return errdefs.NotFound(errFileNotFound)
	}

	if displayPath != "/" {
		displayPath += "/"
	}
	var buf bytes.Buffer
	if err := listingTemplate.Execute(&buf, listing{Path: displayPath, Entries: entries}); err != nil {
		return errors.Wrap(err, "failed to render directory listing")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = buf.WriteTo(w)
	}
	return nil
}
