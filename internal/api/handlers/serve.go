package handlers

import (
	"errors"
	"net/http"

	"github.com/anhkiniem/memories-service/internal/storage"
	"github.com/gin-gonic/gin"
)

// Serve streams the raw bytes of one stored memory.
func (h *MemoryHandler) Serve(c *gin.Context) {
	path, err := h.store.Resolve(c.Param("filename"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "File not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.File(path)
}
