package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"stt-frontend/cmd/stt/cmd/bootstrap"
	"stt-frontend/cmd/stt/cmd/history"
	"stt-frontend/cmd/stt/cmd/remove"
	"stt-frontend/cmd/stt/cmd/transcribe"
	"stt-frontend/cmd/stt/cmd/tui"
	"stt-frontend/cmd/stt/cmd/version"
	"stt-frontend/cmd/stt/cmd/web"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stt",
	Short: "Record or upload audio and turn it into text",
	Long: `A front end for a speech transcription backend.
- Record from the microphone or pick an audio/video file
- Choose the transcription provider
- Browse, copy, download and delete past transcripts

Without a subcommand the terminal UI is started.`,
	TraverseChildren: true,
	SilenceUsage:     true,
	RunE:             tui.Cmd.RunE,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(tui.Cmd)
	rootCmd.AddCommand(web.Cmd)
	rootCmd.AddCommand(history.Cmd)
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(remove.Cmd)
	rootCmd.AddCommand(version.Cmd)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&bootstrap.Flags.APIBase, "api-base", "", "backend base URL (overrides STT_API_BASE)")
	flags.StringVarP(&bootstrap.Flags.Provider, "provider", "p", "", "transcription provider to start with")
	flags.BoolVarP(&bootstrap.Flags.Verbose, "verbose", "V", false, "verbose output")
}
