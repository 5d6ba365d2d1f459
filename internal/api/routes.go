package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/anhkiniem/memories-service/internal/api/handlers"
	"github.com/gin-gonic/gin"
)

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	}
}

// RegisterRoutes wires the gallery endpoints. publicDir holds the single-page
// frontend; unmatched non-API routes fall back to its entry page.
func RegisterRoutes(r *gin.Engine, h *handlers.MemoryHandler, publicDir string) {
	r.Use(corsMiddleware())

	r.GET("/health", h.Health)

	r.POST("/upload", h.Upload)
	r.GET("/api/memories", h.List)
	r.DELETE("/delete/:filename", h.Delete)
	r.GET("/anhkiniem/:filename", h.Serve)

	// Compatibility aliases kept for older frontend builds.
	r.GET("/api/files", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/api/memories")
	})
	r.DELETE("/api/delete/:filename", func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, "/delete/"+c.Param("filename"))
	})

	r.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api") || strings.HasPrefix(path, "/delete") {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Not found"})
			return
		}
		index := filepath.Join(publicDir, "index.html")
		if _, err := os.Stat(index); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Not found"})
			return
		}
		c.File(index)
	})
}
