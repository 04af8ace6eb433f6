package recorder

import "context"

// Device is a capture source able to produce encoded audio chunks
type Device interface {
	// Supports reports whether the device can encode mimeType
	Supports(mimeType string) bool

	// Open acquires the device. It fails with errors.ErrPermissionDenied
	// when access is refused or the device is unavailable.
	Open(ctx context.Context, mimeType string) (Stream, error)
}

// Stream is one open capture session
type Stream interface {
	// Chunks delivers data in capture order and is closed once the
	// stream has been finalized.
	Chunks() <-chan []byte

	// Stop asks the device to flush and finalize
	Stop() error

	// Err returns the error that ended the stream, if any. Only valid
	// after Chunks has been closed.
	Err() error
}
