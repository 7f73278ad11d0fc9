package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/kefschema"
	"github.com/aretw0/kefschema/internal/presentation/tui"
	httpAdapter "github.com/aretw0/kefschema/pkg/adapters/http"
	"github.com/aretw0/kefschema/pkg/adapters/memory"
	"github.com/aretw0/kefschema/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves the descriptor as a JSON API with call validation, an OpenAPI
document and Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
		a, err := setup(cmd, metrics)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			a.cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
		}
		timeout, err := time.ParseDuration(a.cfg.Server.ShutdownTimeout)
		if err != nil {
			return fmt.Errorf("server.shutdown_timeout: %w", err)
		}

		handler := httpAdapter.NewHandler(a.registry,
			httpAdapter.WithDispatcher(memory.NewLogDispatcher(a.logger, memory.WithHistory(0))),
			httpAdapter.WithMetrics(metrics, prometheus.DefaultGatherer),
			httpAdapter.WithLogger(a.logger),
			httpAdapter.WithVersion(kefschema.Version),
		)

		srv := &http.Server{
			Addr:              a.cfg.Server.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
				tui.PrintBanner(cmd.ErrOrStderr(), kefschema.Version)
			}
			a.logger.Info("HTTP server listening", "address", srv.Addr, "actions", a.registry.Len())
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			a.logger.Info("shutdown started", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				a.logger.Error("graceful shutdown did not complete", "timeout", timeout, "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("killing server: %w", err)
				}
			}
			a.logger.Info("server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	serveCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}
