package handlers

import (
	"errors"
	"net/http"

	"github.com/anhkiniem/memories-service/internal/services"
	"github.com/anhkiniem/memories-service/internal/storage"
	"github.com/gin-gonic/gin"
)

// Delete removes one stored memory by filename. The filename is an opaque
// key; anything path-like is rejected by the store and reported as not found.
func (h *MemoryHandler) Delete(c *gin.Context) {
	filename := c.Param("filename")

	if err := h.store.Delete(filename); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "File not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete file: " + err.Error()})
		return
	}

	h.events.Publish(services.SubjectMemoryDeleted, services.MemoryEvent{
		Action:   "deleted",
		Filename: filename,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Đã xóa kỷ niệm",
	})
}
