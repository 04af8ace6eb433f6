package recorder

import (
	"context"
	"sync"

	"speech-to-text/internal/app/model"
)

// Finalization resolves once with the blob of a finished recording
type Finalization struct {
	once sync.Once
	done chan struct{}
	blob model.Blob
	err  error
}

func newFinalization() *Finalization {
	return &Finalization{done: make(chan struct{})}
}

func (f *Finalization) resolve(blob model.Blob, err error) {
	f.once.Do(func() {
		f.blob = blob
		f.err = err
		close(f.done)
	})
}

// Done is closed when the recording has been finalized
func (f *Finalization) Done() <-chan struct{} { return f.done }

// Wait blocks until finalization or until ctx ends. The returned error is
// the device error that ended the capture, if any; the blob holds whatever
// was captured up to that point.
func (f *Finalization) Wait(ctx context.Context) (model.Blob, error) {
	select {
	case <-f.done:
		return f.blob, f.err
	case <-ctx.Done():
		return model.Blob{}, ctx.Err()
	}
}
