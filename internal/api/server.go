package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"jobradar/internal/board"
	"jobradar/internal/config"
	"jobradar/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const defaultJobsLimit = 50

// Server exposes the read side of the board: job listings with filters,
// summary stats, health and Prometheus metrics.
type Server struct {
	store  store.Store
	logger *zap.Logger
	config *config.Config
	http   *http.Server
}

func NewServer(st store.Store, logger *zap.Logger, cfg *config.Config) *Server {
	s := &Server{
		store:  st,
		logger: logger,
		config: cfg,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/jobs", s.getJobs)
		apiGroup.GET("/stats", s.getStats)
	}

	s.http = &http.Server{
		Addr:    cfg.APIAddr,
		Handler: r,
	}
	return s
}

func (s *Server) Start() error {
	s.logger.Info("starting board API", zap.String("addr", s.config.APIAddr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) getJobs(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultJobsLimit)))
	if err != nil || limit <= 0 {
		limit = defaultJobsLimit
	}

	q := store.Query{
		Company:  c.Query("company"),
		Category: c.Query("category"),
		Tier:     c.Query("tier"),
		Level:    c.Query("level"),
		Limit:    limit,
	}

	jobs, err := s.store.List(c.Request.Context(), q)
	if err != nil {
		s.logger.Error("failed to list jobs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, jobs)
}

func (s *Server) getStats(c *gin.Context) {
	jobs, err := s.store.List(c.Request.Context(), store.Query{})
	if err != nil {
		s.logger.Error("failed to list jobs for stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	active, archived := board.Split(jobs, s.config.ArchiveAfter, time.Now())
	stats := board.Compute(active, archived)

	c.JSON(http.StatusOK, stats)
}
