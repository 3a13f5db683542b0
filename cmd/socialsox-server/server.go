package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"

	"github.com/socialsox/server/internal/config"
	"github.com/socialsox/server/internal/listeners"
	"github.com/socialsox/server/server"
	"github.com/socialsox/server/version"
	"github.com/spf13/cobra"
)

// newConfig builds the configuration the command serves.
var newConfig = config.New

func newServerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "socialsox-server",
		Short:         "Serve the SocialSox app from the directory containing this program",
		Version:       fmt.Sprintf("%s, build %s, built %s", version.Version, version.GitCommit, version.BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := newConfig()
			if err != nil {
				return err
			}
			ctx, stop := notifyShutdown(cmd.Context())
			defer stop()
			return runServer(ctx, cmd.OutOrStdout(), cfg)
		},
	}
	cmd.SetVersionTemplate("SocialSox server version {{.Version}}\n")
	return cmd
}

// notifyShutdown returns a context cancelled by the first shutdown signal.
// The signals are released as soon as that happens, so a repeated signal
// during a slow shutdown terminates the process.
func notifyShutdown(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, shutdownSignals...)
	context.AfterFunc(ctx, stop)
	return ctx, stop
}

// runServer serves cfg until ctx is cancelled. Failing to bind the listen
// address is returned as a *listeners.BindError.
func runServer(ctx context.Context, stdout io.Writer, cfg *config.Config) error {
	s, err := server.New(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	l, err := listeners.Init(cfg.Addr())
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "SocialSox server running at %s\n", cfg.URL())
	fmt.Fprintf(stdout, "   Open %s in your browser\n", cfg.URL())
	fmt.Fprintln(stdout, "   Press Ctrl+C to stop")

	if err := s.Serve(ctx, l); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "\nServer stopped")
	return nil
}
