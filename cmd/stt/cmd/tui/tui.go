package tui

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stt-frontend/cmd/stt/cmd/bootstrap"
	"stt-frontend/internal/app"
	"stt-frontend/internal/app/card"
	"stt-frontend/internal/tui"
)

var noMic bool

func init() {
	Cmd.Flags().BoolVar(&noMic, "no-mic", false, "disable microphone recording")
}

// Cmd represents the tui command
var Cmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the terminal UI",
	Long: `Start the terminal UI.

Keys: r record, u upload a file, p switch provider, c copy, s save,
x delete, esc dismiss an error, q quit. Dropping a file onto the
terminal uploads it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := bootstrap.LoadConfig()
		if err != nil {
			return err
		}

		logger, closer, err := bootstrap.FileLogger(cfg)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer closer.Close()
		defer logger.Sync()

		frontend, err := bootstrap.NewFrontend(cfg, app.ClientOptions{PageHost: bootstrap.LocalHost}, logger)
		if err != nil {
			return err
		}
		if !noMic {
			frontend.AttachMicrophone(logger)
		}
		logger.Info("starting terminal UI", zap.String("download_dir", cfg.DownloadDir))

		opts := tui.Options{
			Clipboard:   card.SystemClipboard{},
			DownloadDir: cfg.DownloadDir,
			Logger:      logger,
		}
		if cfg.Notify {
			opts.Notify = tui.DesktopNotifier
		}
		return tui.Run(cmd.Context(), frontend.Shell, opts)
	},
}
