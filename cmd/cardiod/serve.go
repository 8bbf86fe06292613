package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"cardiod/internal/config"
	"cardiod/internal/history"
	"cardiod/internal/httpapi"
	"cardiod/internal/predictor"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Serve the prediction API",
		Example: "  cardiod serve --artifacts-dir ./artifacts --addr :8000",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			log, closer, err := stderrLogger(cfg)
			if err != nil {
				return err
			}
			defer closer.Close()
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, log)
		},
	}
	f := cmd.Flags()
	f.String("addr", envString("addr", ""), "HTTP listen address (default :8000)")
	f.String("history-db", envString("history-db", ""), "SQLite file recording served predictions (empty disables)")
	f.Bool("watch", envBool("watch"), "Reload artifacts when they change on disk")
	f.Int("ecg-cache-size", envInt("ecg-cache-size", 0), "ECG result cache entries (0=default, <0 disables)")
	f.String("request-log", envString("request-log", ""), "Per-request log level: off|error|info|debug")
	f.Bool("cors-disabled", envBool("cors-disabled"), "Disable CORS headers")
	f.String("cors-origins", envString("cors-origins", ""), "Comma-separated allowed origins (default *)")
	f.Int64("max-body-bytes", int64(envInt("max-body-bytes", 0)), "Maximum JSON body size (0=default 1MiB)")
	f.Int64("max-upload-bytes", int64(envInt("max-upload-bytes", 0)), "Maximum multipart body size (0=default 20MiB)")
	f.Int("predict-timeout-seconds", envInt("predict-timeout-seconds", 0), "Per-prediction timeout (0=none)")
	return cmd
}

// applyHTTPConfig pushes the resolved settings into the HTTP layer.
func applyHTTPConfig(cfg config.Config, log zerolog.Logger) {
	httpapi.SetLogger(log)
	if cfg.RequestLog != "" {
		httpapi.SetRequestLogLevel(cfg.RequestLog)
	}
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetMaxUploadBytes(cfg.MaxUploadBytes)
	httpapi.SetPredictTimeout(time.Duration(cfg.PredictTimeoutSeconds) * time.Second)
	httpapi.SetCORSOptions(!cfg.CORSDisabled, cfg.CORSOrigins, nil, nil)
}

// runServe serves until ctx is done, then shuts down gracefully.
func runServe(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	var rec predictor.Recorder
	if cfg.HistoryDB != "" {
		store, err := history.Open(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer store.Close()
		rec = store
	}

	svc, err := predictor.New(predictorConfig(cfg, log, rec))
	if err != nil {
		return err
	}
	defer svc.Close()
	if !svc.Ready() {
		log.Warn().Str("artifacts_dir", cfg.ArtifactsDir).Msg("no clinical model loaded; predictions will return 503 until artifacts appear")
	}

	applyHTTPConfig(cfg, log)
	applyImageLimit(cfg)
	httpapi.SetBaseContext(ctx)

	if cfg.Watch {
		go func() {
			if err := svc.Watch(ctx); err != nil {
				log.Error().Err(err).Msg("artifact watcher stopped")
			}
		}()
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(svc),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("artifacts_dir", cfg.ArtifactsDir).Msg("cardiod listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
		return err
	}
	log.Info().Msg("cardiod stopped")
	return nil
}
