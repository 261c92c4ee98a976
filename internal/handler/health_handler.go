package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	ocrConfigured bool
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(ocrConfigured bool) *HealthHandler {
	return &HealthHandler{ocrConfigured: ocrConfigured}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if !h.ocrConfigured {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "OCR API key not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
