package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/api/middleware"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/api/routes"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/config"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/ml"
)

// Server wraps the HTTP engine and shared dependencies for easier testing.
type Server struct {
	Engine *gin.Engine
	cfg    config.Config
}

// New wires up the HTTP router and registers routes. The loaded artifacts
// are passed in by reference and shared read-only across requests.
func New(db *gorm.DB, cfg config.Config, forest *ml.IsolationForest, scaler *ml.StandardScaler) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)
	if cfg.Environment == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.RequestLogger(), middleware.Recovery(cfg.Environment == "development"))

	registry := prometheus.NewRegistry()
	if err := routes.Register(router, db, cfg, forest, scaler, registry); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	attachIndex(router, cfg.WebDir)

	return &Server{Engine: router, cfg: cfg}, nil
}

// fallbackIndex keeps GET / serving something sensible when no web
// directory is deployed next to the binary.
const fallbackIndex = `<!DOCTYPE html>
<html>
<head><title>Groundwater Condition Detection</title></head>
<body>
<h1>Groundwater Condition Detection</h1>
<p>POST /predict with the nine groundwater measurements to score an observation.</p>
<p>GET /history returns the most recent predictions.</p>
</body>
</html>
`

func attachIndex(router *gin.Engine, webDir string) {
	index := filepath.Join(webDir, "index.html")
	if _, err := os.Stat(index); err == nil {
		router.GET("/", func(c *gin.Context) {
			c.File(index)
		})
		return
	}

	router.GET("/", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, fallbackIndex)
	})
}

// Run starts the HTTP server with proper shutdown semantics.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", s.cfg.HTTPPort),
		Handler: s.Engine,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
