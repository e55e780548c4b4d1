package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rzzdr/options-risk-engine/internal/chain"
	"github.com/rzzdr/options-risk-engine/internal/portfolio"
	"github.com/rzzdr/options-risk-engine/internal/pricing"
	"github.com/rzzdr/options-risk-engine/internal/stream"
	"github.com/rzzdr/options-risk-engine/pkg/metrics"
	"github.com/rzzdr/options-risk-engine/pkg/utils/logger"
)

// Config holds the configuration for the API server
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server exposes the pricing and portfolio engine over HTTP
type Server struct {
	config          Config
	engine          *gin.Engine
	httpServer      *http.Server
	solver          *pricing.Solver
	chainPricer     *chain.Pricer
	store           portfolio.Store
	hub             *stream.Hub
	metricsRecorder *metrics.Recorder
	log             *logger.Logger
}

// NewServer creates a new API server
func NewServer(config Config, solver *pricing.Solver, chainPricer *chain.Pricer, store portfolio.Store, hub *stream.Hub, metricsRecorder *metrics.Recorder) *Server {
	// Apply defaults if needed
	if config.ReadTimeout <= 0 {
		config.ReadTimeout = 10 * time.Second
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = 10 * time.Second
	}

	gin.SetMode(gin.ReleaseMode)

	server := &Server{
		config:          config,
		engine:          gin.New(),
		solver:          solver,
		chainPricer:     chainPricer,
		store:           store,
		hub:             hub,
		metricsRecorder: metricsRecorder,
		log:             logger.GetLogger("api.server"),
	}

	server.setupRoutes()

	return server
}

// Start starts the API server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.log.Infof("Starting API server on %s", addr)

	return s.httpServer.ListenAndServe()
}

// Handler exposes the routed engine, primarily for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Stop stops the API server gracefully
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer != nil {
		s.log.Info("Stopping API server")
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.engine.Use(ErrorMiddleware())
	s.engine.Use(LoggingMiddleware())
	s.engine.Use(MetricsMiddleware(s.metricsRecorder))
	s.engine.Use(CORSMiddleware())

	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.engine.GET("/ws", func(c *gin.Context) {
		s.hub.HandleWebSocket(c.Writer, c.Request)
	})

	v1 := s.engine.Group("/api/v1")

	prc := v1.Group("/pricing")
	prc.POST("/greeks", s.handleGreeks)
	prc.POST("/implied-vol", s.handleImpliedVol)
	prc.POST("/chain", s.handlePriceChain)

	strategies := v1.Group("/strategies")
	strategies.POST("/preview", s.handleStrategyPreview)

	portfolios := v1.Group("/portfolios")
	portfolios.GET("", s.handleGetPortfolios)
	portfolios.POST("", s.handleCreatePortfolio)
	portfolios.GET("/:id", s.handleGetPortfolio)
	portfolios.DELETE("/:id", s.handleDeletePortfolio)
	portfolios.GET("/:id/greeks", s.handlePortfolioGreeks)
	portfolios.GET("/:id/summary", s.handlePortfolioSummary)
	portfolios.GET("/:id/hedge", s.handlePortfolioHedge)

	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "The requested resource was not found"})
	})
}
