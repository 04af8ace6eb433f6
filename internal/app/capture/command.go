package capture

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"go.uber.org/zap"

	apperrors "speech-to-text/internal/app/errors"
	"speech-to-text/internal/app/model"
	"speech-to-text/internal/app/recorder"
)

const defaultChunkSize = 16 * 1024

// CommandConfig configures a capture process
type CommandConfig struct {
	// Command replaces the default ffmpeg invocation. It must write the
	// encoded recording to stdout.
	Command     []string
	InputFormat string
	Input       string
	ChunkSize   int
	Disabled    bool
}

// CommandDevice captures audio by running an encoder process and reading
// its stdout in chunks.
type CommandDevice struct {
	config   CommandConfig
	logger   *zap.Logger
	lookPath func(string) (string, error)
}

// NewCommandDevice creates a device that runs ffmpeg (or config.Command)
func NewCommandDevice(config CommandConfig, logger *zap.Logger) *CommandDevice {
	if config.ChunkSize <= 0 {
		config.ChunkSize = defaultChunkSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandDevice{
		config:   config,
		logger:   logger.Named("command_device"),
		lookPath: exec.LookPath,
	}
}

// Supports reports the formats the encoder produces. A custom command is
// only trusted to produce a generic webm container.
func (d *CommandDevice) Supports(mimeType string) bool {
	if len(d.config.Command) > 0 {
		return mimeType == model.MIMETypeWebM
	}
	return mimeType == model.MIMETypeWebMOpus || mimeType == model.MIMETypeWebM
}

// Args returns the command line used for mimeType
func (d *CommandDevice) Args(mimeType string) []string {
	if len(d.config.Command) > 0 {
		return append([]string(nil), d.config.Command...)
	}

	args := []string{
		"ffmpeg", "-hide_banner", "-loglevel", "error",
		"-f", d.config.InputFormat,
		"-i", d.config.Input,
	}
	if strings.Contains(mimeType, "opus") {
		args = append(args, "-c:a", "libopus")
	}
	return append(args, "-f", "webm", "pipe:1")
}

// Open starts the capture process
func (d *CommandDevice) Open(ctx context.Context, mimeType string) (recorder.Stream, error) {
	if d.config.Disabled {
		return nil, apperrors.Wrap(apperrors.ErrPermissionDenied, "microphone disabled by configuration")
	}

	args := d.Args(mimeType)
	binary, err := d.lookPath(args[0])
	if err != nil {
		return nil, apperrors.Mark(apperrors.ErrPermissionDenied, err)
	}

	cmd := exec.Command(binary, args[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, apperrors.Mark(apperrors.ErrPermissionDenied, err)
	}
	s := &commandStream{
		cmd:    cmd,
		chunks: make(chan []byte, 16),
		logger: d.logger,
	}
	cmd.Stderr = &s.stderr

	if err := cmd.Start(); err != nil {
		return nil, apperrors.Mark(apperrors.ErrPermissionDenied, err)
	}

	d.logger.Debug("Capture process started",
		zap.Strings("args", args),
		zap.Int("pid", cmd.Process.Pid),
	)

	go s.pump(stdout, d.config.ChunkSize)
	return s, nil
}

type commandStream struct {
	cmd    *exec.Cmd
	chunks chan []byte
	stderr bytes.Buffer
	logger *zap.Logger

	stopOnce sync.Once
	mu       sync.Mutex
	stopped  bool
	err      error
}

func (s *commandStream) pump(stdout io.Reader, chunkSize int) {
	defer close(s.chunks)

	buf := make([]byte, chunkSize)
	for {
		n, err := stdout.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			s.chunks <- chunk
		}
		if err != nil {
			break
		}
	}

	waitErr := s.cmd.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	// an encoder interrupted by Stop exits non-zero after flushing
	if waitErr != nil && !s.stopped {
		s.err = apperrors.Wrapf(waitErr, "capture process failed: %s", strings.TrimSpace(s.stderr.String()))
	}
}

func (s *commandStream) Chunks() <-chan []byte { return s.chunks }

func (s *commandStream) Stop() error {
	var err error
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.stopped = true
		s.mu.Unlock()

		if runtime.GOOS == "windows" {
			err = s.cmd.Process.Kill()
			return
		}
		err = s.cmd.Process.Signal(os.Interrupt)
	})
	if err != nil && !apperrors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

func (s *commandStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
