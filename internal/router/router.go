package router

import (
	"github.com/gin-gonic/gin"

	"mdocr/internal/handler"
	"mdocr/internal/middleware"
	"mdocr/internal/web"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(convertH *handler.ConvertHandler, healthH *handler.HealthHandler) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Web UI
	r.GET("/", web.Index)

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")
	v1.GET("/features", convertH.Features)
	v1.POST("/convert", convertH.Convert)
	v1.GET("/convert/:id/download", convertH.Download)

	return r
}
