package model

import (
	"bytes"
	"io"
	"mime"
	"strings"
)

// Recording MIME types in order of preference
const (
	MIMETypeWebMOpus = "audio/webm;codecs=opus"
	MIMETypeWebM     = "audio/webm"
)

// Blob is an immutable audio payload tagged with its content type
type Blob struct {
	data     []byte
	mimeType string
}

// NewBlob copies data into a new Blob
func NewBlob(data []byte, mimeType string) Blob {
	buf := make([]byte, len(data))
	copy(buf, data)
	return Blob{data: buf, mimeType: mimeType}
}

// Size returns the payload length in bytes
func (b Blob) Size() int { return len(b.data) }

// MIMEType returns the content type the blob was tagged with
func (b Blob) MIMEType() string { return b.mimeType }

// Bytes returns a copy of the payload
func (b Blob) Bytes() []byte {
	buf := make([]byte, len(b.data))
	copy(buf, b.data)
	return buf
}

// Reader returns a reader over the payload
func (b Blob) Reader() io.Reader { return bytes.NewReader(b.data) }

// Subtype returns the MIME subtype without parameters, e.g. "webm" for
// "audio/webm;codecs=opus". It falls back to "webm" for untyped blobs.
func Subtype(mimeType string) string {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		mediaType = strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0])
	}
	if _, sub, ok := strings.Cut(mediaType, "/"); ok && sub != "" {
		return sub
	}
	return "webm"
}

// RecordingFilename derives the upload filename for a recorded blob
func RecordingFilename(mimeType string) string {
	return "recording." + Subtype(mimeType)
}
