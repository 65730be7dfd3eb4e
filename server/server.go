package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/lvmesh"
	"github.com/katalvlaran/lvmesh/config"
	"github.com/katalvlaran/lvmesh/generate"
)

const shutdownTimeout = 10 * time.Second

// Server owns the gin engine and the geometry store.
type Server struct {
	cfg      config.Server
	defaults generate.Defaults
	store    *Store
	engine   *gin.Engine
}

// New builds a server from cfg. cfg is assumed validated.
func New(cfg config.Config) *Server {
	gin.SetMode(cfg.Server.Mode)
	s := &Server{
		cfg:      cfg.Server,
		defaults: cfg.Defaults,
		store:    NewStore(),
		engine:   gin.New(),
	}
	s.engine.Use(gin.Recovery(), requestLogger(), bodyLimit(cfg.Server.BodyLimit))
	s.routes()

	return s
}

func (s *Server) routes() {
	h := &handlers{srv: s}
	s.engine.GET("/", h.info)
	geo := s.engine.Group("/geometry")
	{
		geo.POST("", h.createGeometry)
		geo.GET("/:id", h.getGeometry)
	}
	m := s.engine.Group("/mesh")
	{
		m.POST("", h.generateMesh)
		m.POST("/batch", h.generateBatch)
	}
	exp := s.engine.Group("/export")
	{
		exp.POST("/csv", h.exportCSV)
		exp.POST("/geojson", h.exportGeoJSON)
	}
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.engine }

// Store returns the geometry store.
func (s *Server) Store() *Store { return s.store }

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	lvmesh.Logger().Info("server: listening", "addr", s.cfg.Addr)

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		lvmesh.Logger().Info("server: shutting down")

		return srv.Shutdown(sctx)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		lvmesh.Logger().Info("server: request",
			"method", c.Request.Method, "path", c.Request.URL.Path,
			"status", c.Writer.Status(), "latency", time.Since(start))
	}
}

func bodyLimit(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
