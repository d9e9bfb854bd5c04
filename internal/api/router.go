package api

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds the HTTP surface. Call gin.SetMode before this.
func NewRouter(h *Handler, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	if logger != nil {
		r.Use(Logger(logger))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/health/live", h.Live)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/maintenance/generate", h.Generate)
		v1.GET("/maintenance/plans/:code/preview", h.PreviewPlan)
		v1.POST("/work-orders/:number/status", h.ChangeOrderStatus)
	}
	return r
}
