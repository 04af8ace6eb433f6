package routes

import (
	"github.com/gin-gonic/gin"

	"speech-to-text/internal/api/v1/handlers"
	"speech-to-text/internal/api/v1/services"
)

// ServiceContainer holds the services behind the v1 API
type ServiceContainer struct {
	Session services.SessionService
	Chunks  services.ChunkReceiver
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	sessionHandler := handlers.NewSessionHandler(container.Session, container.Chunks)

	session := router.Group("/session")
	{
		session.GET("", sessionHandler.Get)
		session.PUT("/mode", sessionHandler.SetMode)
		session.POST("/upload", sessionHandler.Upload)
		session.DELETE("/current", sessionHandler.DeleteCurrent)
		session.GET("/transcription/text", sessionHandler.SaveText)
	}

	recording := session.Group("/recording")
	{
		recording.POST("/start", sessionHandler.StartRecording)
		recording.POST("/chunks", sessionHandler.PushChunk)
		recording.POST("/stop", sessionHandler.StopRecording)
		recording.GET("/audio", sessionHandler.DownloadAudio)
	}

	history := session.Group("/history")
	{
		history.DELETE("", sessionHandler.ClearHistory)
		history.GET("/:id/text", sessionHandler.SaveHistoryItem)
	}
}
