package api

import "github.com/gin-gonic/gin"

// NewRouter builds the HTTP router with all report routes attached
func NewRouter(handler *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	handler.Register(r)
	return r
}

// Register attaches the report routes to the given engine
func (h *Handler) Register(r *gin.Engine) {
	r.POST("/trigger_report", h.triggerReport)
	r.GET("/get_report", h.getReport)
	r.GET("/health", h.health)
}
