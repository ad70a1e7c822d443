package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/youruser/statuscard/internal/metrics"
	"github.com/youruser/statuscard/internal/roblox"
)

// CardGenerator produces the status card PNG for a username.
type CardGenerator interface {
	Generate(ctx context.Context, username string) ([]byte, error)
}

// Server holds the handler dependencies.
type Server struct {
	pipeline CardGenerator
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewServer creates the API server.
func NewServer(pipeline CardGenerator, logger *slog.Logger, m *metrics.Metrics) *Server {
	return &Server{pipeline: pipeline, logger: logger, metrics: m}
}

// health
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// statusCard renders the card for the "username" query parameter.
func (s *Server) statusCard(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		s.metrics.CardsGenerated.WithLabelValues("bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "username parameter is required"})
		return
	}

	data, err := s.pipeline.Generate(c.Request.Context(), username)
	switch {
	case errors.Is(err, roblox.ErrUserNotFound):
		s.metrics.CardsGenerated.WithLabelValues("not_found").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	case err != nil:
		// log the cause, return a generic message
		s.logger.Error("generating status card failed", "username", username, "error", err)
		s.metrics.CardsGenerated.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate status image"})
		return
	}

	s.metrics.CardsGenerated.WithLabelValues("ok").Inc()
	c.Header("Cache-Control", "public, max-age=300")
	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Data(http.StatusOK, "image/png", data)
}
