package dto

import "speech-to-text/internal/app/session"

// SetModeRequest represents the request to switch input mode
type SetModeRequest struct {
	Mode string `json:"mode" binding:"required,oneof=upload record"`
}

// SaveTextQuery represents the query parameters for exporting the current transcription
type SaveTextQuery struct {
	Filename string `form:"filename" binding:"omitempty,max=255"`
}

// SessionResponse is the session state returned by every session endpoint
type SessionResponse struct {
	session.State
	Message string `json:"message,omitempty"`
}

// ChunkResponse acknowledges a pushed recording chunk
type ChunkResponse struct {
	Received int `json:"received"`
}

// HealthResponse represents the health check payload
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
	Backend   string `json:"backend"`
}
