package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/IgorEulalio/nmap-preflight/pkg/api"
	"github.com/IgorEulalio/nmap-preflight/pkg/config"
	"github.com/IgorEulalio/nmap-preflight/pkg/logging"
	"github.com/IgorEulalio/nmap-preflight/pkg/privilege"
	"github.com/IgorEulalio/nmap-preflight/pkg/report"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve probe, status and version over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.Logger()
		cfg := config.Get()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		store, err := newStore(cmd, cfg)
		if err != nil {
			return err
		}

		resolver := newResolver(cmd)
		probeHandler, err := api.NewProbeHandler(
			report.NewProber(resolver, privilege.System),
			store,
			func() string { return config.Get().NmapPath },
		)
		if err != nil {
			return fmt.Errorf("error creating probe handler: %w", err)
		}
		versionHandler := api.NewVersionHandler(resolver)

		mux := http.NewServeMux()
		mux.HandleFunc("/probe", probeHandler.Probe)
		mux.HandleFunc("/status", probeHandler.Status)
		mux.HandleFunc("/version", versionHandler.Version)

		srv := &http.Server{
			Addr:              fmt.Sprintf("%s:%v", "0.0.0.0", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			if cfg.CertFile != "" && cfg.KeyFile != "" {
				logger.Info().Msgf("Starting server on port %v, using certificate file %v and certificate key %v", cfg.Port, cfg.CertFile, cfg.KeyFile)
				errCh <- srv.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile)
				return
			}
			logger.Info().Msgf("Starting server on port %v", cfg.Port)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			logger.Info().Msg("Shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	},
}
