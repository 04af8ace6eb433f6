package recorder

import (
	"bytes"

	"speech-to-text/internal/app/model"
)

// Accumulator collects the chunks of one recording in arrival order
type Accumulator struct {
	chunks [][]byte
	size   int
}

// Append adds a chunk to the tail; empty chunks are ignored
func (a *Accumulator) Append(chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	a.chunks = append(a.chunks, chunk)
	a.size += len(chunk)
}

// Len returns the number of buffered chunks
func (a *Accumulator) Len() int { return len(a.chunks) }

// Size returns the number of buffered bytes
func (a *Accumulator) Size() int { return a.size }

// Finalize concatenates the chunks into a blob and empties the accumulator
func (a *Accumulator) Finalize(mimeType string) model.Blob {
	blob := model.NewBlob(bytes.Join(a.chunks, nil), mimeType)
	a.chunks = nil
	a.size = 0
	return blob
}
