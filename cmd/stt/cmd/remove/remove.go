package remove

import (
	"fmt"

	"github.com/spf13/cobra"

	"stt-frontend/cmd/stt/cmd/bootstrap"
	"stt-frontend/internal/app"
)

// Cmd represents the remove command
var Cmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a transcript",
	Args:  cobra.ExactArgs(1),
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

		frontend, err := bootstrap.NewFrontend(cfg, app.ClientOptions{PageHost: bootstrap.LocalHost}, logger)
		if err != nil {
			return err
		}
		defer frontend.Shell.Close()

		if err := frontend.Shell.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}
