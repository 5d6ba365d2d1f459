package handlers

import (
	"errors"
	"net/http"

	"github.com/anhkiniem/memories-service/internal/services"
	"github.com/anhkiniem/memories-service/internal/storage"
	"github.com/gin-gonic/gin"
)

// MaxUploadBytes caps an upload at 20 MiB.
const MaxUploadBytes = 20 << 20

// maxRequestBytes bounds the whole multipart request: the file cap plus room
// for the form framing. Reading stops here, oversized bodies are never
// buffered or spilled to disk in full.
const maxRequestBytes = MaxUploadBytes + 1<<20

// allowedMimeTypes is the upload allow-list. It includes the aliases browsers
// actually declare for avi/mov/wmv/flv alongside the canonical types.
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,

	"video/mp4":       true,
	"video/avi":       true,
	"video/x-msvideo": true,
	"video/mov":       true,
	"video/quicktime": true,
	"video/wmv":       true,
	"video/x-ms-wmv":  true,
	"video/flv":       true,
	"video/x-flv":     true,
	"video/webm":      true,
}

// Upload accepts one media file from the multipart field "memory", validates
// type and size, and streams it into the store under a generated name.
func (h *MemoryHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)

	fileHeader, err := c.FormFile("memory")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "File too large (max 20MB)"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No file uploaded"})
		return
	}

	// Validate before any byte is persisted.
	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedMimeTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unsupported file type: " + contentType})
		return
	}
	if fileHeader.Size > MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "File too large (max 20MB)"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	name := storage.GenerateStorageName(fileHeader.Filename)
	size, err := h.store.Save(name, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save file: " + err.Error()})
		return
	}

	h.events.Publish(services.SubjectMemoryUploaded, services.MemoryEvent{
		Action:   "uploaded",
		Filename: name,
		Type:     storage.TypeFromName(name),
		Size:     size,
	})

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"filename": name,
		"message":  "Tải lên kỷ niệm thành công!",
		"size":     size,
	})
}
