package recorder

import (
	"context"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"

	apperrors "speech-to-text/internal/app/errors"
	"speech-to-text/internal/app/model"
)

// State is the lifecycle state of the controller
type State string

const (
	StateInactive   State = "inactive"
	StateRecording  State = "recording"
	StateFinalizing State = "finalizing"
)

// MinRecordingBytes is the smallest finalized recording worth transcribing
const MinRecordingBytes = 1000

// PreferredMIMETypes lists the recording formats in order of preference.
// The last entry is used when the device supports none of the others.
var PreferredMIMETypes = []string{model.MIMETypeWebMOpus, model.MIMETypeWebM}

// Controller drives one capture device through record, stop and finalize.
// Only one recording may be active at a time.
type Controller struct {
	device Device
	logger *zap.Logger

	mu       sync.Mutex
	state    State
	mimeType string
	stream   Stream
}

// NewController creates a controller for device
func NewController(device Device, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		device: device,
		logger: logger.Named("recorder"),
		state:  StateInactive,
	}
}

// State returns the current lifecycle state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// MIMEType returns the type negotiated for the current or last recording
func (c *Controller) MIMEType() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mimeType
}

// NegotiateMIMEType picks the first preferred type the device supports
func (c *Controller) NegotiateMIMEType() string {
	candidates := PreferredMIMETypes[:len(PreferredMIMETypes)-1]
	if mimeType, ok := lo.Find(candidates, c.device.Supports); ok {
		return mimeType
	}
	return PreferredMIMETypes[len(PreferredMIMETypes)-1]
}

// Start acquires the device and begins accumulating chunks. The returned
// Finalization resolves when the recording ends, whether through Stop or
// because the device stopped delivering.
func (c *Controller) Start(ctx context.Context) (*Finalization, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateInactive {
		return nil, apperrors.ErrRecordingActive
	}

	mimeType := c.NegotiateMIMEType()
	stream, err := c.device.Open(ctx, mimeType)
	if err != nil {
		c.logger.Warn("Microphone access denied", zap.Error(err))
		if apperrors.Is(err, apperrors.ErrPermissionDenied) {
			return nil, err
		}
		return nil, apperrors.Mark(apperrors.ErrPermissionDenied, err)
	}

	c.state = StateRecording
	c.mimeType = mimeType
	c.stream = stream

	fin := newFinalization()
	go c.capture(stream, mimeType, fin)

	c.logger.Info("Recording started", zap.String("mime_type", mimeType))
	return fin, nil
}

// Stop signals the device to finalize. Valid only while recording.
func (c *Controller) Stop() error {
	c.mu.Lock()
	if c.state != StateRecording {
		c.mu.Unlock()
		return apperrors.ErrNotRecording
	}
	c.state = StateFinalizing
	stream := c.stream
	c.mu.Unlock()

	if err := stream.Stop(); err != nil {
		return apperrors.Wrap(err, "failed to stop capture device")
	}
	return nil
}

// capture owns the accumulator for the lifetime of one recording
func (c *Controller) capture(stream Stream, mimeType string, fin *Finalization) {
	var acc Accumulator
	for chunk := range stream.Chunks() {
		acc.Append(chunk)
	}
	streamErr := stream.Err()

	chunks := acc.Len()
	blob := acc.Finalize(mimeType)

	c.mu.Lock()
	c.state = StateInactive
	c.stream = nil
	c.mu.Unlock()

	fields := []zap.Field{
		zap.Int("chunks", chunks),
		zap.Int("bytes", blob.Size()),
		zap.String("mime_type", mimeType),
	}
	if streamErr != nil {
		c.logger.Warn("Recording ended with device error", append(fields, zap.Error(streamErr))...)
	} else {
		c.logger.Info("Recording finalized", fields...)
	}

	fin.resolve(blob, streamErr)
}
