package ui

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fiture/app"
	"fiture/domain/core"
	"fiture/internal"
	apperrors "fiture/internal/errors"
)

// Server exposes the coaching pipeline as a small JSON API
type Server struct {
	router   *gin.Engine
	pipeline *app.CoachPipeline
	logger   *internal.Logger
}

// NewServer creates the API server around a wired pipeline
func NewServer(pipeline *app.CoachPipeline, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:   gin.Default(),
		pipeline: pipeline,
		logger:   logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.POST("/api/predict", s.handlePredict)
}

// Run starts the HTTP server on the given address
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handlePredict accepts one raw feature row as a JSON object and responds
// with the coaching card. With ?format=html the card is rendered through
// markdown instead.
func (s *Server) handlePredict(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object"})
		return
	}

	card, err := s.pipeline.PredictCard(c.Request.Context(), raw)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("predict failed: %v", err)
			c.JSON(status, gin.H{"error": "prediction failed"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if c.Query("format") == "html" {
		c.Data(http.StatusOK, "text/html; charset=utf-8", RenderHTML(card))
		return
	}
	c.JSON(http.StatusOK, card)
}

// statusFor maps pipeline errors to HTTP statuses: caller mistakes get 400,
// everything else is a server-side failure.
func statusFor(err error) int {
	if errors.Is(err, core.ErrMalformedInput) {
		return http.StatusBadRequest
	}
	switch apperrors.GetCode(err) {
	case apperrors.CodeInvalidInput, apperrors.CodeValidationError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
