package services

import (
	"context"

	"speech-to-text/internal/app/model"
	"speech-to-text/internal/app/session"
)

// SessionService is the transcription session driven by the API
type SessionService interface {
	SetMode(mode model.Mode) error
	SubmitUpload(ctx context.Context, upload *session.Upload) error
	StartRecording(ctx context.Context) error
	StopRecording(ctx context.Context) error
	SaveText(text, filename string, sink session.Sink) error
	SaveHistoryItem(id string, sink session.Sink) error
	DownloadAudio(sink session.Sink) (bool, error)
	DeleteCurrent()
	ClearHistory()
	Snapshot() session.State
}

// ChunkReceiver accepts recording chunks pushed by the page
type ChunkReceiver interface {
	Push(chunk []byte) error
}
