package transcribe

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"speech-to-text/cmd/stt/cmd/bootstrap"
	"speech-to-text/internal/app"
	"speech-to-text/internal/app/progress"
	"speech-to-text/internal/app/session"
)

var (
	save       bool
	saveAs     string
	exportDir  string
	noProgress bool
)

func init() {
	Cmd.Flags().BoolVarP(&save, "save", "s", false, "save the transcription as a text file")
	Cmd.Flags().StringVarP(&saveAs, "output", "o", session.DefaultTextFilename, "text file name used with --save")
	Cmd.Flags().StringVarP(&exportDir, "dir", "d", "", "export directory (overrides export.dir)")
	Cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the upload progress bar")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe [audio-file]",
	Short: "Upload an audio file and print its transcription",
	Long: `Upload an audio file and print its transcription

- The file is sent as multipart field "audio" to the configured endpoint
- Successful transcriptions are printed to stdout
- Warnings are printed to stderr and the command exits non-zero`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap.Load(cmd)
		if err != nil {
			return err
		}
		defer bootstrap.Sync(logger)

		sess, err := app.InitializeSession(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize session: %w", err)
		}

		if len(args) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), session.AlertNoFileSelected)
			return sess.SubmitUpload(cmd.Context(), nil)
		}

		path := args[0]
		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open audio file: %w", err)
		}
		defer file.Close()

		info, err := file.Stat()
		if err != nil {
			return fmt.Errorf("failed to stat audio file: %w", err)
		}

		manager := progress.NewManager(progress.Config{Enabled: !noProgress, Writer: cmd.ErrOrStderr()})
		bar := manager.CreateBytesBar(info.Size(), "Uploading")

		contentType := mime.TypeByExtension(filepath.Ext(path))
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		submitErr := sess.SubmitUpload(cmd.Context(), &session.Upload{
			Filename:    filepath.Base(path),
			ContentType: contentType,
			Body:        bar.ProxyReader(file),
		})
		if submitErr != nil {
			bar.Abort()
		} else {
			bar.Complete()
		}
		manager.Wait()

		bootstrap.PrintState(cmd, sess.Snapshot())
		if submitErr != nil {
			return submitErr
		}

		dir := cfg.Export.Dir
		if exportDir != "" {
			dir = exportDir
		}
		return bootstrap.SaveOutputs(cmd, sess, dir, saveAs, save, false)
	},
}
