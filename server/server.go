// Package server runs the HTTP server that exposes the root directory.
package server

import (
	"context"
	stdlog "log"
	"net"
	"net/http"
	"time"

	"github.com/containerd/log"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/socialsox/server/errdefs"
	"github.com/socialsox/server/internal/config"
	"github.com/socialsox/server/server/fileserver"
	"github.com/socialsox/server/server/httputils"
	"github.com/socialsox/server/server/middleware"
	"golang.org/x/sync/errgroup"
)

const (
	// ShutdownTimeout is how long in-flight requests are given to complete
	// once shutdown starts. Connections still open afterwards are closed.
	ShutdownTimeout = 10 * time.Second

	readHeaderTimeout = 30 * time.Second
)

// Server serves the root directory of a Config over HTTP.
type Server struct {
	cfg   *config.Config
	files *fileserver.Handler
}

// New creates a Server for cfg. The root directory is opened immediately.
func New(cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	files, err := fileserver.New(cfg.Root)
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, files: files}, nil
}

// Close releases the root directory.
func (s *Server) Close() error {
	return s.files.Close()
}

// Handler returns the handler for all requests. Every response it writes
// carries the no-cache Cache-Control header.
func (s *Server) Handler() http.Handler {
	return middleware.Chain(s.router(), middleware.AccessLog, middleware.NoCache)
}

func (s *Server) router() *mux.Router {
	r := mux.NewRouter()
	// Dot segments are rejected by the file handler; cleaning them here
	// would turn traversal attempts into redirects.
	r.SkipClean(true)
	r.PathPrefix("/").
		Methods(http.MethodGet, http.MethodHead).
		Handler(httputils.MakeErrorHandler(s.files.ServeFile))
	r.MethodNotAllowedHandler = httputils.MakeErrorHandler(unsupportedMethod)
	r.NotFoundHandler = httputils.MakeErrorHandler(notFound)
	return r
}

func notFound(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return errdefs.NotFound(errors.New("File not found"))
}

func unsupportedMethod(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return errdefs.NotImplemented(errors.Errorf("Unsupported method ('%s')", r.Method))
}

// Serve accepts connections on l until ctx is cancelled, then shuts the
// server down gracefully. It returns nil after a shutdown triggered by ctx.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	logger := log.G(ctx)
	errorLog := logger.WriterLevel(logrus.DebugLevel)
	defer errorLog.Close()

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          stdlog.New(errorLog, "", 0),
		BaseContext: func(net.Listener) context.Context {
			return log.WithLogger(context.WithoutCancel(ctx), logger)
		},
	}

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.WithFields(log.Fields{
			"addr": l.Addr().String(),
			"root": s.files.Root(),
		}).Info("serving files")
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "error while serving")
		}
		return nil
	})
	group.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("graceful shutdown timed out, closing open connections")
			return srv.Close()
		}
		return nil
	})
	return group.Wait()
}
