package handlers

import (
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"speech-to-text/internal/api/errors"
	"speech-to-text/internal/api/middleware"
	"speech-to-text/internal/api/v1/dto"
	"speech-to-text/internal/api/v1/services"
	"speech-to-text/internal/app/model"
	"speech-to-text/internal/app/session"
)

// UploadField is the multipart field carrying the uploaded audio
const UploadField = "audio"

// MaxChunkBytes bounds a single pushed recording chunk
const MaxChunkBytes = 8 << 20

// SessionHandler handles the transcription session endpoints
type SessionHandler struct {
	session services.SessionService
	chunks  services.ChunkReceiver
}

// NewSessionHandler creates a new session handler. chunks may be nil when
// recordings are captured locally.
func NewSessionHandler(session services.SessionService, chunks services.ChunkReceiver) *SessionHandler {
	return &SessionHandler{
		session: session,
		chunks:  chunks,
	}
}

// Get handles GET /api/v1/session
func (h *SessionHandler) Get(c *gin.Context) {
	h.respond(c, nil)
}

// SetMode handles PUT /api/v1/session/mode
func (h *SessionHandler) SetMode(c *gin.Context) {
	var req dto.SetModeRequest

	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	h.respond(c, h.session.SetMode(model.Mode(req.Mode)))
}

// Upload handles POST /api/v1/session/upload
func (h *SessionHandler) Upload(c *gin.Context) {
	var upload *session.Upload

	fileHeader, err := c.FormFile(UploadField)
	switch {
	case err == nil:
		file, err := fileHeader.Open()
		if err != nil {
			middleware.HandleError(c, errors.NewBadRequestError("Failed to read uploaded file"))
			return
		}
		defer file.Close()

		upload = &session.Upload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Body:        file,
		}
	case err == http.ErrMissingFile, err == http.ErrNotMultipart:
		// handled by the session as "no file selected"
	default:
		middleware.HandleError(c, errors.NewBadRequestError("Invalid multipart form"))
		return
	}

	h.respond(c, h.session.SubmitUpload(c.Request.Context(), upload))
}

// StartRecording handles POST /api/v1/session/recording/start
func (h *SessionHandler) StartRecording(c *gin.Context) {
	h.respond(c, h.session.StartRecording(c.Request.Context()))
}

// PushChunk handles POST /api/v1/session/recording/chunks
func (h *SessionHandler) PushChunk(c *gin.Context) {
	if h.chunks == nil {
		middleware.HandleError(c, errors.NewConflictError("Recording chunks are captured locally"))
		return
	}

	chunk, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxChunkBytes))
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("Failed to read chunk"))
		return
	}

	if err := h.chunks.Push(chunk); err != nil {
		middleware.HandleError(c, errors.FromDomain(err))
		return
	}

	c.JSON(http.StatusAccepted, dto.ChunkResponse{Received: len(chunk)})
}

// StopRecording handles POST /api/v1/session/recording/stop
func (h *SessionHandler) StopRecording(c *gin.Context) {
	h.respond(c, h.session.StopRecording(c.Request.Context()))
}

// DownloadAudio handles GET /api/v1/session/recording/audio
func (h *SessionHandler) DownloadAudio(c *gin.Context) {
	ok, err := h.session.DownloadAudio(attachment(c))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	if !ok {
		middleware.HandleError(c, errors.NewNotFoundError("Recorded audio"))
	}
}

// SaveText handles GET /api/v1/session/transcription/text
func (h *SessionHandler) SaveText(c *gin.Context) {
	var query dto.SaveTextQuery

	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	text := h.session.Snapshot().Transcription
	if text == "" {
		middleware.HandleError(c, errors.NewNotFoundError("Transcription"))
		return
	}

	if err := h.session.SaveText(text, query.Filename, attachment(c)); err != nil {
		middleware.HandleError(c, err)
	}
}

// SaveHistoryItem handles GET /api/v1/session/history/:id/text
func (h *SessionHandler) SaveHistoryItem(c *gin.Context) {
	if err := h.session.SaveHistoryItem(c.Param("id"), attachment(c)); err != nil {
		middleware.HandleError(c, errors.FromDomain(err))
	}
}

// DeleteCurrent handles DELETE /api/v1/session/current
func (h *SessionHandler) DeleteCurrent(c *gin.Context) {
	h.session.DeleteCurrent()
	h.respond(c, nil)
}

// ClearHistory handles DELETE /api/v1/session/history
func (h *SessionHandler) ClearHistory(c *gin.Context) {
	h.session.ClearHistory()
	h.respond(c, nil)
}

// respond writes the session state, or an APIError when err is one the
// client caused. Warnings already shown in the state are not errors here.
func (h *SessionHandler) respond(c *gin.Context, err error) {
	if apiErr := errors.FromDomain(err); apiErr != nil {
		if apiErr.Code == "no_file_selected" {
			apiErr.Message = session.AlertNoFileSelected
		}
		middleware.HandleError(c, apiErr)
		return
	}

	resp := dto.SessionResponse{State: h.session.Snapshot()}
	if err != nil {
		_ = c.Error(err)
		resp.Message = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// attachment streams an exported artifact as a download
func attachment(c *gin.Context) session.Sink {
	return session.SinkFunc(func(artifact session.Artifact) error {
		c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": artifact.Filename}))
		c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
		return nil
	})
}
