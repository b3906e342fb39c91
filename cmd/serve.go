package main

import (
	"context"
	"errors"
	"net/http"
	"numerology/internal/api"
	"numerology/internal/api/handler/v1handler"
	"numerology/internal/calculator"
	"numerology/internal/config"
	"numerology/pkg/logger"
	"numerology/pkg/metrics"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getCalculator builds the calculator service with its Prometheus collectors
// registered on the default registry.
func getCalculator(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) calculator.Calculator {
	opts, err := calculator.NewOptions(cfg)
	if err != nil {
		logger.Fatal(ctx, "invalid calculator config", zap.Error(err))
	}

	m, err := metrics.NewCalculator(reg)
	if err != nil {
		logger.Fatal(ctx, "could not register calculator metrics", zap.Error(err))
	}

	return calculator.New(opts, m)
}

func setupServer(ctx context.Context, cfg *config.Config, calc calculator.Calculator) func(ctx context.Context) {
	opts := api.NewOptions(cfg)
	opts.Version = version

	server, err := api.NewServer(api.Deps{Deps: v1handler.Deps{Calculator: calc}}, opts)
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	if cfg.Auth.PublicKey == "" {
		logger.Warn(ctx, "no auth public key configured, v1 endpoints are not authenticated")
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the API server",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			calc := getCalculator(ctx, cfg, prometheus.DefaultRegisterer)
			stopWebserver := setupServer(ctx, cfg, calc)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}
