package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/biblioteca/shelfmap/internal/server"
	"github.com/biblioteca/shelfmap/pkg/shelfmap"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	var (
		addr  string
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the lookup API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("watch") {
				cfg.Watch = watch
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload when data files change")
	return cmd
}

func serve(ctx context.Context) error {
	cache := shelfmap.NewCache(shelfmap.Options{
		Sources: cacheSources(),
		Logger:  logger,
	})
	if report := cache.Reload(ctx); !report.OK() {
		logger.Warn("starting with incomplete data",
			zap.String("table_error", report.TableError),
			zap.String("overlay_error", report.OverlayError))
	}

	g, ctx := errgroup.WithContext(ctx)
	if cfg.Watch {
		w, err := shelfmap.NewWatcher(cache, cfg.WatchDebounce, logger)
		if err != nil {
			logger.Warn("file watching disabled", zap.Error(err))
		} else {
			g.Go(func() error { return w.Run(ctx) })
		}
	}
	g.Go(func() error {
		return server.New(cache, logger).Run(ctx, cfg.Addr, cfg.ShutdownTimeout)
	})
	return g.Wait()
}
