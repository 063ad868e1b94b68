package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stt-frontend/internal/api/middleware"
	"stt-frontend/internal/app/card"
	"stt-frontend/internal/app/metrics"
	"stt-frontend/internal/app/shell"
	"stt-frontend/web/handlers"
)

// Config configures the local web front end.
type Config struct {
	Addr        string
	Environment string
	// Clipboard receives copies; nil uses the system clipboard.
	Clipboard card.Clipboard
}

// Server serves the browser front end over a shell.
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer creates the web server. m may be nil, in which case /metrics is
// not mounted.
func NewServer(config Config, s *shell.Shell, m *metrics.ShellMetrics, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger, "/healthz", "/metrics"))
	router.Use(middleware.ErrorHandler(logger))
	router.SetHTMLTemplate(handlers.ParseTemplates())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	handlers.NewPageHandler(s, config.Clipboard, logger).RegisterRoutes(router)

	return &Server{
		config: config,
		router: router,
		httpServer: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// ListenAndServe blocks serving the page until Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("Starting web front end", zap.String("address", s.config.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
