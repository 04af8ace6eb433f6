package model

import (
	"time"

	"github.com/google/uuid"
)

// Mode is the input mode the user selected
type Mode string

const (
	ModeUpload Mode = "upload"
	ModeRecord Mode = "record"
)

// Valid reports whether m is a known mode
func (m Mode) Valid() bool {
	return m == ModeUpload || m == ModeRecord
}

// Result is one successful transcription kept in history
type Result struct {
	ID             string    `json:"id"`
	Text           string    `json:"text"`
	SourceFilename string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewResult creates a history entry for text transcribed from sourceFilename
func NewResult(text, sourceFilename string) Result {
	return Result{
		ID:             uuid.New().String(),
		Text:           text,
		SourceFilename: sourceFilename,
		CreatedAt:      time.Now(),
	}
}
