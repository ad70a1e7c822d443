package api

import "github.com/gin-gonic/gin"

// RegisterRoutes wires the handlers onto the engine.
func (s *Server) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/status", s.statusCard)
	}
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
}
