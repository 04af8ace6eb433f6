package record

import (
	"bufio"
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"speech-to-text/cmd/stt/cmd/bootstrap"
	"speech-to-text/internal/app"
	apperrors "speech-to-text/internal/app/errors"
	"speech-to-text/internal/app/session"
	"speech-to-text/internal/config"
)

var (
	duration  time.Duration
	save      bool
	saveAs    string
	saveAudio bool
	exportDir string
)

func init() {
	Cmd.Flags().DurationVarP(&duration, "duration", "t", 0, "stop automatically after this long (default: wait for Enter)")
	Cmd.Flags().BoolVarP(&save, "save", "s", false, "save the transcription as a text file")
	Cmd.Flags().StringVarP(&saveAs, "output", "o", session.DefaultTextFilename, "text file name used with --save")
	Cmd.Flags().BoolVarP(&saveAudio, "save-audio", "a", false, "save the recording as "+session.AudioFilename)
	Cmd.Flags().StringVarP(&exportDir, "dir", "d", "", "export directory (overrides export.dir)")
}

// Cmd represents the record command
var Cmd = &cobra.Command{
	Use:   "record",
	Short: "Record from the microphone and transcribe the recording",
	Long: `Record from the microphone and transcribe the recording

- Capture runs through ffmpeg or the configured capture command
- Press Enter, send an interrupt or pass --duration to stop
- Recordings under 1000 bytes are rejected as too short`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap.Load(cmd)
		if err != nil {
			return err
		}
		defer bootstrap.Sync(logger)

		if cfg.Capture.Device != config.DeviceCommand {
			return apperrors.InvalidField("capture.device", "record needs the command device")
		}

		sess, err := app.InitializeSession(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize session: %w", err)
		}

		if err := sess.StartRecording(cmd.Context()); err != nil {
			bootstrap.PrintState(cmd, sess.Snapshot())
			return err
		}

		if waitForStop(cmd, sess.RecordingDone()) {
			fmt.Fprintln(cmd.ErrOrStderr(), "⏹  Capture ended")
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), "⏹  Stopping, transcribing...")
		}

		stopErr := sess.StopRecording(context.Background())
		if apperrors.Is(stopErr, apperrors.ErrNotRecording) {
			// capture ended on its own
			stopErr = sess.WaitRecording(context.Background())
		}
		bootstrap.PrintState(cmd, sess.Snapshot())

		dir := cfg.Export.Dir
		if exportDir != "" {
			dir = exportDir
		}
		if err := bootstrap.SaveOutputs(cmd, sess, dir, saveAs, save, saveAudio); err != nil {
			return err
		}
		return stopErr
	},
}

// waitForStop blocks until Enter, an interrupt, the configured duration or
// the end of the capture. It reports whether the capture ended by itself.
func waitForStop(cmd *cobra.Command, captureDone <-chan struct{}) bool {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
		fmt.Fprintf(cmd.ErrOrStderr(), "🎙  Recording for %s...\n", duration)
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), "🎙  Recording... press Enter to stop")
	}

	enter := make(chan struct{})
	go func() {
		reader := bufio.NewReader(cmd.InOrStdin())
		if _, err := reader.ReadString('\n'); err == nil {
			close(enter)
		}
	}()

	select {
	case <-captureDone:
		return true
	case <-ctx.Done():
	case <-enter:
	}
	return false
}
