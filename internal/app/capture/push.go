package capture

import (
	"context"
	"sync"

	"go.uber.org/zap"

	apperrors "speech-to-text/internal/app/errors"
	"speech-to-text/internal/app/model"
	"speech-to-text/internal/app/recorder"
)

const pushBuffer = 64

// PushDevice receives chunks from a remote page that owns the actual
// microphone, mirroring a MediaRecorder's dataavailable events.
type PushDevice struct {
	disabled bool
	logger   *zap.Logger

	mu      sync.Mutex
	current *pushStream
}

// NewPushDevice creates a push device. A disabled device refuses every Open.
func NewPushDevice(disabled bool, logger *zap.Logger) *PushDevice {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PushDevice{disabled: disabled, logger: logger.Named("push_device")}
}

// Supports accepts both webm flavours; the browser negotiates the codec
func (d *PushDevice) Supports(mimeType string) bool {
	return mimeType == model.MIMETypeWebMOpus || mimeType == model.MIMETypeWebM
}

// Open starts accepting pushed chunks
func (d *PushDevice) Open(ctx context.Context, mimeType string) (recorder.Stream, error) {
	if d.disabled {
		return nil, apperrors.Wrap(apperrors.ErrPermissionDenied, "microphone disabled by configuration")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.current != nil {
		return nil, apperrors.ErrRecordingActive
	}

	s := &pushStream{chunks: make(chan []byte, pushBuffer)}
	s.onStop = func() {
		d.mu.Lock()
		if d.current == s {
			d.current = nil
		}
		d.mu.Unlock()
	}
	d.current = s

	d.logger.Debug("Push stream opened", zap.String("mime_type", mimeType))
	return s, nil
}

// Push delivers one chunk to the open stream
func (d *PushDevice) Push(chunk []byte) error {
	d.mu.Lock()
	s := d.current
	d.mu.Unlock()

	if s == nil {
		return apperrors.ErrNotRecording
	}
	return s.send(chunk)
}

// Active reports whether a stream is open
func (d *PushDevice) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current != nil
}

type pushStream struct {
	mu     sync.Mutex
	closed bool
	chunks chan []byte
	onStop func()
}

func (s *pushStream) send(chunk []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return apperrors.ErrNotRecording
	}
	buf := make([]byte, len(chunk))
	copy(buf, chunk)
	s.chunks <- buf
	return nil
}

func (s *pushStream) Chunks() <-chan []byte { return s.chunks }

func (s *pushStream) Stop() error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.chunks)
	}
	s.mu.Unlock()

	s.onStop()
	return nil
}

func (s *pushStream) Err() error { return nil }
