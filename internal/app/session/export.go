package session

import (
	"fmt"
	"os"
	"path/filepath"
)

// Export filenames and content types
const (
	DefaultTextFilename = "transcription.txt"
	AudioFilename       = "recorded_audio.webm"
	TextContentType     = "text/plain"
)

// Artifact is a file handed to the user
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Sink receives exported artifacts
type Sink interface {
	Export(artifact Artifact) error
}

// SinkFunc adapts a function to Sink
type SinkFunc func(artifact Artifact) error

// Export implements Sink
func (f SinkFunc) Export(artifact Artifact) error {
	return f(artifact)
}

// DirSink writes artifacts into a directory
type DirSink struct {
	Dir string

	// Written records the last path written, if any
	Written string
}

// NewDirSink creates a sink writing into dir
func NewDirSink(dir string) *DirSink {
	return &DirSink{Dir: dir}
}

// Export writes the artifact under its base name, replacing any existing file
func (d *DirSink) Export(artifact Artifact) error {
	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(d.Dir, filepath.Base(artifact.Filename))
	if err := os.WriteFile(path, artifact.Data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	d.Written = path
	return nil
}
