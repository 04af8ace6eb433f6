package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"speech-to-text/cmd/stt/cmd/bootstrap"
	"speech-to-text/cmd/stt/cmd/record"
	"speech-to-text/cmd/stt/cmd/serve"
	"speech-to-text/cmd/stt/cmd/transcribe"
	"speech-to-text/cmd/stt/cmd/version"
	"speech-to-text/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stt",
	Short: "Transcribe uploaded or recorded audio with a remote speech-to-text service",
	Long: `Transcribe uploaded or recorded audio with a remote speech-to-text service.
- serve hosts a transcription session behind a small JSON API and an optional page
- transcribe uploads an audio file and prints the transcript
- record captures audio from the microphone and transcribes it`,
	SilenceUsage:     true,
	TraverseChildren: true,
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
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(record.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().StringP(bootstrap.FlagConfig, "c", "", "config file (default $"+config.EnvConfigPath+" or ./"+bootstrap.DefaultConfigFile+")")
	rootCmd.PersistentFlags().BoolP(bootstrap.FlagVerbose, "V", false, "verbose output")
}
