package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/carbon-intensity-proxy/internal/api/http"
	"github.com/i474232898/carbon-intensity-proxy/internal/carbon"
	"github.com/i474232898/carbon-intensity-proxy/internal/carbon/upstream"
	"github.com/i474232898/carbon-intensity-proxy/internal/config"
	"github.com/i474232898/carbon-intensity-proxy/internal/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	metrics := observability.NewMetrics()

	client := upstream.NewClient(cfg.Upstream(), metrics, logger)
	service := carbon.NewService(client, nil)

	app := httpapi.NewApp(service, metrics, os.Stdout)

	listenErr := make(chan error, 1)
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("upstream", cfg.BaseURL).
			Bool("breaker", cfg.BreakerEnabled).
			Msg("http server starting")
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := waitForShutdown(ctx, listenErr); err != nil {
		logger.Error().Err(err).Msg("fiber server stopped")
		return err
	}
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during shutdown")
		return err
	}
	logger.Info().Msg("shutdown complete")
	return nil
}

// waitForShutdown blocks until ctx is done or the listener exits. A listener
// that stops before shutdown was requested is an error, even if it returned nil.
func waitForShutdown(ctx context.Context, listenErr <-chan error) error {
	select {
	case <-ctx.Done():
		return nil
	case err := <-listenErr:
		if err == nil {
			err = errors.New("listener exited unexpectedly")
		}
		return fmt.Errorf("http server: %w", err)
	}
}
