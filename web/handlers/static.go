package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// StaticHandler serves the page shell that drives the session API
type StaticHandler struct {
	staticDir string
}

// NewStaticHandler creates a handler serving files from staticDir
func NewStaticHandler(staticDir string) *StaticHandler {
	return &StaticHandler{
		staticDir: staticDir,
	}
}

// Enabled reports whether a static directory is configured and present
func (h *StaticHandler) Enabled() bool {
	if h.staticDir == "" {
		return false
	}
	info, err := os.Stat(h.staticDir)
	return err == nil && info.IsDir()
}

// ServeStatic serves static files and the main HTML page
func (h *StaticHandler) ServeStatic(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.Status(http.StatusNotFound)
		return
	}

	path := filepath.Clean(c.Request.URL.Path)

	if path == "/" || path == "/index.html" {
		h.serveFile(c, "index.html")
		return
	}

	h.serveFile(c, strings.TrimPrefix(path, "/"))
}

// serveFile serves a specific file with its content type
func (h *StaticHandler) serveFile(c *gin.Context, filename string) {
	fullPath := filepath.Join(h.staticDir, filepath.FromSlash(filename))

	info, err := os.Stat(fullPath)
	if err != nil || info.IsDir() {
		c.Status(http.StatusNotFound)
		return
	}

	c.Header("Content-Type", getContentType(filename))

	// Set caching headers for static assets
	if filename != "index.html" {
		c.Header("Cache-Control", "public, max-age=3600")
	}

	http.ServeFile(c.Writer, c.Request, fullPath)
}

// getContentType returns the appropriate content type for a file
func getContentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".html":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css"
	case ".js":
		return "application/javascript"
	case ".json":
		return "application/json"
	case ".png":
		return "image/png"
	case ".svg":
		return "image/svg+xml"
	case ".ico":
		return "image/x-icon"
	case ".webm":
		return "audio/webm"
	case ".woff2":
		return "font/woff2"
	default:
		return "application/octet-stream"
	}
}
