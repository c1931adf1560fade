package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"delivery_api/internal/storage"

	"github.com/gin-gonic/gin"
)

// FileHandler serves stored uploads back to clients
type FileHandler struct {
	files storage.FileStorage
}

// NewFileHandler creates a new FileHandler
func NewFileHandler(files storage.FileStorage) *FileHandler {
	return &FileHandler{files: files}
}

// Get handles GET /files/*filepath; ?download=true forces an attachment
func (h *FileHandler) Get(c *gin.Context) {
	full := h.files.FullPath(c.Param("filepath"))
	if _, err := os.Stat(full); err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "file not found")
		return
	}

	if c.Query("download") == "true" {
		c.FileAttachment(full, filepath.Base(full))
		return
	}
	c.File(full)
}

// RegisterFileRoutes registers file retrieval routes
func (h *FileHandler) RegisterFileRoutes(rg *gin.RouterGroup) {
	rg.GET("/files/*filepath", h.Get)
}
