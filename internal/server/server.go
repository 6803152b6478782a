package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vzahanych/activity-recommender/internal/config"
	"github.com/vzahanych/activity-recommender/internal/recommender"
	"github.com/vzahanych/activity-recommender/internal/server/handlers"
	"github.com/vzahanych/activity-recommender/internal/server/middlewares"
	"github.com/vzahanych/activity-recommender/pkg/telemetry"
)

type Server struct {
	cfg     *config.Config
	engine  *gin.Engine
	server  *http.Server
	rec     *recommender.Recommender
	metrics *middlewares.MetricsMiddleware
	logger  *zap.Logger
	tele    *telemetry.Telemetry
}

func NewServer(cfg *config.Config, rec *recommender.Recommender, logger *zap.Logger, tele *telemetry.Telemetry) *Server {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	metrics := middlewares.NewMetricsMiddleware(logger, tele)

	engine.Use(middlewares.RequestIDMiddleware())
	engine.Use(middlewares.LoggingMiddleware(logger, true))
	engine.Use(middlewares.RecoveryMiddleware(logger, cfg.Debug))
	engine.Use(middlewares.TelemetryMiddleware(logger, tele))
	engine.Use(metrics.Handler())

	s := &Server{
		cfg:     cfg,
		engine:  engine,
		rec:     rec,
		metrics: metrics,
		logger:  logger,
		tele:    tele,
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	metricsHandler := handlers.NewMetricsHandler(s.logger, s.metrics)
	s.rec.SetMetricsRecorder(metricsHandler)

	s.engine.GET("/", handlers.NewInfoHandler(s.cfg.Service, s.cfg.Version).Info)

	// Business endpoints
	v1 := s.engine.Group("/api/v1")
	v1.POST("/activities", handlers.NewActivitiesHandler(s.rec, s.logger, s.tele).GetActivities)

	// Health endpoints (Kubernetes friendly)
	health := handlers.NewHealthHandler(s.logger)
	s.engine.GET("/health", health.Health)
	s.engine.GET("/health/live", health.Liveness)
	s.engine.GET("/health/ready", health.Readiness)

	// Monitoring endpoints
	s.engine.GET("/metrics", metricsHandler.ServeMetrics)
}

// Handler returns the routed engine, for embedding or tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start blocks serving HTTP until Shutdown is called. It returns nil after a
// graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
