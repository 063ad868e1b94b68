package web

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stt-frontend/cmd/stt/cmd/bootstrap"
	"stt-frontend/internal/app"
	"stt-frontend/internal/app/card"
	webui "stt-frontend/web"
)

var (
	addr  string
	noMic bool
)

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "listen address (default STT_WEB_ADDR or localhost:5173)")
	Cmd.Flags().BoolVar(&noMic, "no-mic", false, "disable microphone recording")
}

// Cmd represents the web command
var Cmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the browser UI",
	Long: `Serve the browser UI on a local address.

The backend is chosen from the listen address: a localhost listener talks
to the local development backend unless --api-base is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := bootstrap.LoadConfig()
		if err != nil {
			return err
		}
		if addr != "" {
			cfg.WebAddr = addr
		}

		logger, err := bootstrap.ConsoleLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		frontend, err := bootstrap.NewFrontend(cfg, app.ClientOptions{PageHost: cfg.WebAddr}, logger)
		if err != nil {
			return err
		}
		defer frontend.Shell.Close()
		if !noMic {
			frontend.AttachMicrophone(logger)
		}

		srv := webui.NewServer(webui.Config{
			Addr:        cfg.WebAddr,
			Environment: cfg.Environment,
			Clipboard:   card.SystemClipboard{},
		}, frontend.Shell, frontend.Metrics, logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("web UI listening",
				zap.String("addr", cfg.WebAddr),
				zap.String("backend", cfg.BaseURL(cfg.WebAddr)),
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

		logger.Info("shutting down web UI")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
