package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formplay/internal/metrics"
	"github.com/goliatone/go-formplay/internal/server"
	"github.com/goliatone/go-formplay/pkg/renderers/vanilla"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			defer a.close()
			if addr != "" {
				a.cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, a)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}

func serve(ctx context.Context, a *app) error {
	src, reloader, err := a.modelSource(ctx)
	if err != nil {
		return err
	}
	if reloader != nil {
		go func() {
			if err := reloader.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Error("form watcher stopped", zap.Error(err))
			}
		}()
	}

	renderer, err := vanilla.New()
	if err != nil {
		return err
	}

	srv, err := server.New(server.Options{
		Source:        src,
		Renderer:      renderer,
		Assets:        vanilla.AssetsFS(),
		Logger:        a.logger,
		Metrics:       metrics.New(),
		Defaults:      a.defaults(),
		ResetOnSubmit: a.cfg.Form.ResetOnSubmit,
		SessionTTL:    a.cfg.Server.SessionTTL,
		MaxSessions:   a.cfg.Server.MaxSessions,
		ThemeVariant:  a.cfg.Theme.Variant,
		Mode:          a.cfg.Server.Mode,
	})
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx, a.cfg.Server.Addr)
}
