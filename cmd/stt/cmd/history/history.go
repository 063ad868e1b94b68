package history

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"stt-frontend/cmd/stt/cmd/bootstrap"
	"stt-frontend/internal/app"
	"stt-frontend/internal/app/card"
)

// Cmd represents the history command
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "Print past transcripts, newest first",
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

		ctx := cmd.Context()
		if err := frontend.Shell.FetchHistory(ctx); err != nil {
			return err
		}

		cards := frontend.Shell.Cards(ctx)
		if len(cards) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No transcriptions yet.")
			return nil
		}
		for _, c := range cards {
			printCard(cmd.OutOrStdout(), c)
		}
		return nil
	},
}

func printCard(w io.Writer, c *card.Card) {
	fmt.Fprintf(w, "%s  %s  [%s]\n", c.Item().ID, c.Timestamp(), c.Provider())
	for _, line := range strings.Split(c.Body(), "\n") {
		fmt.Fprintf(w, "    %s\n", line)
	}
	fmt.Fprintln(w)
}
