package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/warp/charge-engine/api"
	"go.uber.org/zap"
)

func newServeCommand(root *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the charge validation HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTPAddr = addr
			}

			logger, err := cfg.NewLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := &http.Server{
				Addr:         cfg.HTTPAddr,
				Handler:      api.NewRouter(api.NewHandler(logger), cfg.CORSOrigins),
				ReadTimeout:  cfg.ReadTimeout,
				WriteTimeout: cfg.WriteTimeout,
				IdleTimeout:  cfg.IdleTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("server starting", zap.String("addr", cfg.HTTPAddr))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					logger.Error("server failed", zap.Error(err))
					return err
				}
			case <-ctx.Done():
			}

			logger.Info("shutting down server", zap.Duration("timeout", cfg.ShutdownTimeout))
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error("server forced to shutdown", zap.Error(err))
				return err
			}
			logger.Info("server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides CHARGE_HTTP_ADDR")
	return cmd
}
