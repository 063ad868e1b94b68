package transcribe

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"stt-frontend/cmd/stt/cmd/bootstrap"
	"stt-frontend/internal/app"
	"stt-frontend/internal/app/progress"
)

var quiet bool

func init() {
	Cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the upload progress bar")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe <file>...",
	Short: "Upload an audio or video file and print its transcript",
	Long: `Upload an audio or video file and print its transcript.

Like dropping files on the UI, only the first file is sent; the rest are
ignored.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := bootstrap.LoadConfig()
		if err != nil {
			return err
		}
		logger, err := bootstrap.ConsoleLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		bar := progress.NewUploadProgress(progress.ProgressConfig{
			Enabled: !quiet,
			Writer:  cmd.ErrOrStderr(),
		})
		frontend, err := bootstrap.NewFrontend(cfg, app.ClientOptions{
			PageHost:   bootstrap.LocalHost,
			WrapUpload: bar.Wrap(filepath.Base(args[0])),
		}, logger)
		if err != nil {
			return err
		}
		defer frontend.Shell.Close()

		s := frontend.Shell
		s.DragOver()
		if err := s.DropPaths(cmd.Context(), args); err != nil {
			return err
		}
		bar.Wait()

		items := s.Snapshot().Items
		if len(items) == 0 {
			return fmt.Errorf("backend returned no transcription")
		}
		fmt.Fprintln(cmd.OutOrStdout(), items[0].Text)
		return nil
	},
}
