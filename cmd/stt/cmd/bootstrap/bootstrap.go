package bootstrap

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"speech-to-text/internal/app/logging"
	"speech-to-text/internal/app/session"
	"speech-to-text/internal/config"
)

// Persistent flags shared by every command
const (
	FlagConfig  = "config"
	FlagVerbose = "verbose"
)

// DefaultConfigFile is picked up from the working directory when no path is given
const DefaultConfigFile = "stt.yaml"

// Load reads the configuration named by --config and builds the logger
func Load(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	path, _ := cmd.Flags().GetString(FlagConfig)
	verbose, _ := cmd.Flags().GetBool(FlagVerbose)

	cfg, err := config.Load(ConfigPath(path))
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.NewLogger(verbose || cfg.Log.Development)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	if !verbose && !cfg.Log.Development {
		logger = logger.WithOptions(zap.IncreaseLevel(zap.WarnLevel))
	}

	return cfg, logger, nil
}

// ConfigPath resolves the configuration file: the flag, then $STT_CONFIG,
// then stt.yaml when it exists. "" means defaults only.
func ConfigPath(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(config.EnvConfigPath); env != "" {
		return env
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	return ""
}

// PrintState writes the displayed transcription to stdout, or a warning to stderr
func PrintState(cmd *cobra.Command, state session.State) {
	if state.Warning != session.WarningNone {
		fmt.Fprintln(cmd.ErrOrStderr(), state.Transcription)
		return
	}
	if state.Transcription != "" {
		fmt.Fprintln(cmd.OutOrStdout(), state.Transcription)
	}
}

// SaveOutputs writes the transcription and the held recording into the
// export directory when requested
func SaveOutputs(cmd *cobra.Command, sess *session.Session, dir, textName string, saveText, saveAudio bool) error {
	sink := session.NewDirSink(dir)

	if saveText {
		state := sess.Snapshot()
		if state.Transcription != "" && state.Warning == session.WarningNone {
			if err := sess.SaveText(state.Transcription, textName, sink); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "💾 Saved %s\n", sink.Written)
		}
	}

	if saveAudio {
		ok, err := sess.DownloadAudio(sink)
		if err != nil {
			return err
		}
		if ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "💾 Saved %s\n", sink.Written)
		}
	}

	return nil
}

// Sync flushes the logger. Syncing stderr fails on some terminals, so the
// error is dropped.
func Sync(logger *zap.Logger) {
	_ = logger.Sync()
}
