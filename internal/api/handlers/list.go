package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// List returns every stored memory as a JSON array, newest first. A missing
// or empty storage directory yields an empty array.
func (h *MemoryHandler) List(c *gin.Context) {
	memories, err := h.store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to list memories: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, memories)
}
