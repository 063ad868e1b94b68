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

	"go.uber.org/zap"

	"stt-frontend/internal/app"
	"stt-frontend/internal/app/logging"
	"stt-frontend/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "stt-devapi: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if _, err := config.LoadEnv(); err != nil {
		return err
	}
	cfg, err := config.LoadDevAPI()
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Environment == "development", "info")
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	srv, cleanup, err := app.InitializeDevAPI(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("development backend listening",
			zap.String("addr", cfg.Addr),
			zap.String("db", cfg.DBPath),
			zap.Int64("max_upload_mb", cfg.MaxUploadMB),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down development backend")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
