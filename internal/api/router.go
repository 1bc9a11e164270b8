package api

import (
	"fmt"
	"time"

	"drafthours/internal"
	"drafthours/internal/errors"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the handler routes onto a fresh gin engine
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		h.respondError(c, errors.InternalError(fmt.Sprintf("panic: %v", recovered)))
	}))
	router.Use(requestLogger(h.logger))
	router.NoRoute(func(c *gin.Context) {
		h.respondError(c, errors.NotFound("route "+c.Request.Method+" "+c.Request.URL.Path))
	})

	router.GET("/health", h.Health)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/options", h.Options)
		v1.POST("/estimates", h.CreateEstimate)
		v1.GET("/reference", h.ListReference)
		v1.GET("/reference/summary", h.ReferenceSummary)
		v1.POST("/reference/reload", h.ReloadReference)
	}

	return router
}

func requestLogger(logger *internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("[API] %s %s %d %.2fms", c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), float64(time.Since(start).Nanoseconds())/1e6)
	}
}
