package session

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"speech-to-text/internal/app/api/provider"
	apperrors "speech-to-text/internal/app/errors"
	"speech-to-text/internal/app/metrics"
	"speech-to-text/internal/app/model"
	"speech-to-text/internal/app/recorder"
)

// Upload is a user-selected audio file
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Session holds the transcription state of one user. All mutations go
// through its methods; the lock is never held across a network call.
type Session struct {
	transcriber provider.Transcriber
	controller  *recorder.Controller
	metrics     *metrics.Metrics
	logger      *zap.Logger

	// recMu serializes starting and stopping recordings
	recMu sync.Mutex

	mu            sync.Mutex
	mode          model.Mode
	loading       bool
	transcription string
	warning       Warning
	held          *model.Blob
	history       []model.Result
	pending       *pendingRecording
}

// pendingRecording tracks the handling of one recording's finalized blob
type pendingRecording struct {
	done chan struct{}
	err  error
}

// New creates a session in upload mode with empty history
func New(transcriber provider.Transcriber, controller *recorder.Controller, m *metrics.Metrics, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		transcriber: transcriber,
		controller:  controller,
		metrics:     m,
		logger:      logger.Named("session"),
		mode:        model.ModeUpload,
	}
}

// SetMode switches between upload and record
func (s *Session) SetMode(mode model.Mode) error {
	if !mode.Valid() {
		return apperrors.Wrapf(apperrors.ErrInvalidMode, "unknown mode %q", mode)
	}
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
	return nil
}

// SubmitUpload transcribes a selected file. A nil upload makes no request.
func (s *Session) SubmitUpload(ctx context.Context, upload *Upload) error {
	if upload == nil || upload.Body == nil {
		return apperrors.ErrNoFileSelected
	}
	return s.SendToTranscription(ctx, metrics.SourceUpload, &provider.Request{
		Body:        upload.Body,
		Filename:    upload.Filename,
		ContentType: upload.ContentType,
	})
}

// StartRecording clears the current transcription and held recording and
// starts capturing. The finalized recording is handled in the background
// once the capture ends; StopRecording waits for that.
func (s *Session) StartRecording(ctx context.Context) error {
	s.recMu.Lock()
	defer s.recMu.Unlock()

	if s.controller != nil && s.controller.State() != recorder.StateInactive {
		return apperrors.ErrRecordingActive
	}

	s.mu.Lock()
	s.transcription = ""
	s.warning = WarningNone
	s.held = nil
	s.mu.Unlock()

	if s.controller == nil {
		return s.denyMicrophone(apperrors.Wrap(apperrors.ErrPermissionDenied, "no capture device configured"))
	}

	fin, err := s.controller.Start(ctx)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrPermissionDenied) {
			return s.denyMicrophone(err)
		}
		return err
	}
	s.metrics.ObserveRecording(metrics.OutcomeStarted, 0)

	pending := &pendingRecording{done: make(chan struct{})}
	s.mu.Lock()
	s.pending = pending
	s.mu.Unlock()

	go s.awaitRecording(fin, pending)
	return nil
}

func (s *Session) denyMicrophone(err error) error {
	s.logger.Warn("Microphone access denied", zap.Error(err))
	s.metrics.ObserveRecording(metrics.OutcomeDenied, 0)
	s.setWarning(WarningMicrophoneDenied)
	return err
}

// StopRecording stops the capture and waits until the recording has been
// checked and, when long enough, transcribed. The returned error is the
// outcome of that handling.
func (s *Session) StopRecording(ctx context.Context) error {
	if s.controller == nil {
		return apperrors.ErrNotRecording
	}

	s.recMu.Lock()
	s.mu.Lock()
	pending := s.pending
	s.mu.Unlock()
	err := s.controller.Stop()
	s.recMu.Unlock()

	if err != nil {
		return err
	}
	if pending == nil {
		return nil
	}

	select {
	case <-pending.done:
		return pending.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RecordingDone is closed once the current recording has been handled. It
// is nil when no recording was started.
func (s *Session) RecordingDone() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return nil
	}
	return s.pending.done
}

// WaitRecording blocks until the current recording, if any, has been handled
func (s *Session) WaitRecording(ctx context.Context) error {
	s.mu.Lock()
	pending := s.pending
	s.mu.Unlock()
	if pending == nil {
		return nil
	}

	select {
	case <-pending.done:
		return pending.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) awaitRecording(fin *recorder.Finalization, pending *pendingRecording) {
	// the capture cannot be cancelled, so neither is its handling
	ctx := context.Background()

	blob, err := fin.Wait(ctx)
	if err != nil {
		s.logger.Warn("Capture device reported an error", zap.Error(err))
	}

	pending.err = s.handleRecording(ctx, blob, err)
	close(pending.done)
}

// handleRecording checks a finalized blob. deviceErr is the error that
// ended the capture; a device that failed before producing a usable
// recording counts as refused microphone access.
func (s *Session) handleRecording(ctx context.Context, blob model.Blob, deviceErr error) error {
	s.mu.Lock()
	s.held = &blob
	s.mu.Unlock()

	if deviceErr != nil && blob.Size() < recorder.MinRecordingBytes {
		return s.denyMicrophone(apperrors.Mark(apperrors.ErrPermissionDenied, deviceErr))
	}

	if blob.Size() < recorder.MinRecordingBytes {
		s.logger.Info("Recording too short", zap.Int("bytes", blob.Size()))
		s.metrics.ObserveRecording(metrics.OutcomeTooShort, blob.Size())
		s.setWarning(WarningRecordingTooShort)
		return apperrors.ErrRecordingTooShort
	}

	s.metrics.ObserveRecording(metrics.OutcomeSuccess, blob.Size())
	return s.SubmitRecording(ctx, blob)
}

// SubmitRecording transcribes a finalized recording named after its MIME subtype
func (s *Session) SubmitRecording(ctx context.Context, blob model.Blob) error {
	return s.SendToTranscription(ctx, metrics.SourceRecording, &provider.Request{
		Body:        blob.Reader(),
		Filename:    model.RecordingFilename(blob.MIMEType()),
		ContentType: blob.MIMEType(),
	})
}

// SendToTranscription submits req and applies the result to the session.
// source labels the submission in metrics (metrics.SourceUpload or
// metrics.SourceRecording).
func (s *Session) SendToTranscription(ctx context.Context, source string, req *provider.Request) error {
	return s.send(ctx, source, req)
}

func (s *Session) send(ctx context.Context, source string, req *provider.Request) error {
	s.mu.Lock()
	s.loading = true
	s.transcription = ""
	s.warning = WarningNone
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	backend := s.transcriber.Name()
	startTime := time.Now()
	resp, err := s.transcriber.Transcribe(ctx, req)
	elapsed := time.Since(startTime)

	if err != nil {
		s.logger.Error("Error transcribing audio",
			zap.String("backend", backend),
			zap.String("filename", req.Filename),
			zap.Error(err))
		s.metrics.ObserveSubmission(backend, source, metrics.OutcomeFailure, elapsed)
		s.setWarning(WarningTranscriptionFailed)
		return apperrors.Mark(apperrors.ErrTransmissionFailure, err)
	}

	if strings.TrimSpace(resp.Transcript) == "" {
		s.logger.Warn("Transcription returned no text",
			zap.String("backend", backend),
			zap.String("filename", req.Filename))
		s.metrics.ObserveSubmission(backend, source, metrics.OutcomeEmpty, elapsed)
		s.setWarning(WarningEmptyResult)
		return apperrors.ErrEmptyResult
	}

	result := model.NewResult(resp.Transcript, req.Filename)

	s.mu.Lock()
	s.transcription = resp.Transcript
	s.warning = WarningNone
	s.history = append([]model.Result{result}, s.history...)
	s.mu.Unlock()

	s.metrics.ObserveSubmission(backend, source, metrics.OutcomeSuccess, elapsed)
	s.logger.Info("Transcription completed",
		zap.String("backend", backend),
		zap.String("filename", req.Filename),
		zap.Int("characters", len(resp.Transcript)),
		zap.Duration("elapsed", elapsed))
	return nil
}

// SaveText exports text as a plain-text file. An empty filename uses
// transcription.txt.
func (s *Session) SaveText(text, filename string, sink Sink) error {
	if filename == "" {
		filename = DefaultTextFilename
	}
	return sink.Export(Artifact{
		Filename:    filename,
		ContentType: TextContentType,
		Data:        []byte(text),
	})
}

// SaveHistoryItem exports the history entry with id as <name>.txt
func (s *Session) SaveHistoryItem(id string, sink Sink) error {
	s.mu.Lock()
	item, ok := lo.Find(s.history, func(r model.Result) bool { return r.ID == id })
	s.mu.Unlock()

	if !ok {
		return apperrors.Wrapf(apperrors.ErrNotFound, "history entry %s", id)
	}
	return s.SaveText(item.Text, item.SourceFilename+".txt", sink)
}

// DownloadAudio exports the held recording as recorded_audio.webm. It
// reports false without touching sink when nothing is held.
func (s *Session) DownloadAudio(sink Sink) (bool, error) {
	s.mu.Lock()
	held := s.held
	s.mu.Unlock()

	if held == nil {
		return false, nil
	}

	err := sink.Export(Artifact{
		Filename:    AudioFilename,
		ContentType: held.MIMEType(),
		Data:        held.Bytes(),
	})
	return err == nil, err
}

// DeleteCurrent clears the transcription and the held recording. History
// is left alone.
func (s *Session) DeleteCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcription = ""
	s.warning = WarningNone
	s.held = nil
}

// ClearHistory empties the history
func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() State {
	recordingState := recorder.StateInactive
	if s.controller != nil {
		recordingState = s.controller.State()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := State{
		Mode:           s.mode,
		Loading:        s.loading,
		Transcription:  s.transcription,
		Warning:        s.warning,
		RecordingState: recordingState,
		History:        make([]model.Result, len(s.history)),
	}
	copy(state.History, s.history)
	if s.held != nil {
		state.Recording = &RecordingInfo{Size: s.held.Size(), MIMEType: s.held.MIMEType()}
	}
	return state
}

func (s *Session) setWarning(w Warning) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warning = w
	s.transcription = w.Message()
}
