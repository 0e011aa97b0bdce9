// Package components wires together ledger-engine's pieces, adapted
// from the teacher bank-api's Container (internal/pkg/components):
// staged initialization functions building up one struct holding every
// dependency. A CLI invocation is one-shot, so the teacher's
// sync.Once-guarded process-wide singleton is dropped — New returns a
// fully wired, disposable Container per run instead.
package components

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"ledger-engine/internal/api"
	"ledger-engine/internal/config"
	"ledger-engine/internal/domain/engine"
	"ledger-engine/internal/pkg/logging"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Container holds every component a run of the CLI needs.
type Container struct {
	Config *config.Config
	Logger *logging.Logger
	Engine *engine.Engine

	metricsServer *http.Server
	inspectServer *http.Server
}

// New builds a Container from cfg, logging to diagnostics (stderr in
// the real CLI; an in-memory buffer in tests).
func New(cfg *config.Config, diagnostics io.Writer) *Container {
	return &Container{
		Config: cfg,
		Logger: logging.New(cfg, diagnostics),
		Engine: engine.New(),
	}
}

// StartMetrics starts the Prometheus scrape endpoint in the background
// if Config.Metrics.Addr is set. It does not block the batch path.
func (c *Container) StartMetrics() error {
	if c.Config.Metrics.Addr == "" {
		return nil
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	c.metricsServer = &http.Server{Addr: c.Config.Metrics.Addr, Handler: router}
	errCh := make(chan error, 1)
	go func() { errCh <- c.metricsServer.ListenAndServe() }()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
	case <-time.After(50 * time.Millisecond):
		// listener came up; proceed.
	}
	c.Logger.Info("metrics endpoint listening", map[string]interface{}{"addr": c.Config.Metrics.Addr})
	return nil
}

// Serve blocks, exposing the read-only inspection API over
// Config.Serve.Addr, until ctx is cancelled. A no-op if Serve.Addr is
// unset.
func (c *Container) Serve(ctx context.Context) error {
	if c.Config.Serve.Addr == "" {
		return nil
	}

	router := api.NewRouter(c.Engine)
	c.inspectServer = &http.Server{Addr: c.Config.Serve.Addr, Handler: router}
	c.Logger.Info("inspection API listening", map[string]interface{}{"addr": c.Config.Serve.Addr})

	errCh := make(chan error, 1)
	go func() { errCh <- c.inspectServer.ListenAndServe() }()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("inspection server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		return c.Shutdown(context.Background())
	}
}

// Shutdown gracefully tears down any servers the container started.
func (c *Container) Shutdown(ctx context.Context) error {
	var firstErr error
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.inspectServer != nil {
		if err := c.inspectServer.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
