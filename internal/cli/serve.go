package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/achievements/internal/query"
	"github.com/mesh-intelligence/achievements/internal/server"
	"github.com/mesh-intelligence/achievements/pkg/types"
)

func newServeCmd(a *app) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the achievements HTTP API",
		Long: `Serve exposes the achievements over HTTP:

  GET    /api/achievements?q=&category=&start=&end=
  GET    /api/achievements/:id
  POST   /api/achievements
  PUT    /api/achievements/:id
  DELETE /api/achievements/:id
  GET    /healthz
  GET    /metrics

With the file backend and watch enabled, edits to the data file made by
other processes are picked up without a restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen == "" {
				listen = a.settings.Listen
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, cmd, listen)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config)")
	return cmd
}

func (a *app) serve(ctx context.Context, cmd *cobra.Command, listen string) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s, err := a.open(ctx, query.WithMetrics(query.NewMetrics(reg)))
	if err != nil {
		return err
	}
	defer s.Close()

	g, ctx := errgroup.WithContext(ctx)
	if a.settings.Watch && s.file != nil {
		g.Go(func() error {
			err := s.file.Watch(ctx, types.BlobKey, func(op fsnotify.Op) {
				a.logger.Debug("data file changed", zap.Stringer("op", op))
				s.facade.Invalidate()
			})
			if err != nil {
				// Serving continues without live reload.
				a.logger.Warn("watch data dir", zap.Error(err))
			}
			return nil
		})
	}

	srv := server.New(s.facade, server.WithLogger(a.logger), server.WithGatherer(reg))
	fmt.Fprintf(cmd.OutOrStdout(), "Serving achievements on http://%s\n", listen)
	g.Go(func() error {
		return sysErr(srv.Run(ctx, listen))
	})
	return g.Wait()
}
