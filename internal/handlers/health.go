package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// HealthChecker is implemented by the database and cache
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler reports dependency health
type HealthHandler struct {
	checks  map[string]HealthChecker
	timeout time.Duration
}

// NewHealthHandler creates a health handler over named dependencies
func NewHealthHandler(checks map[string]HealthChecker) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		timeout: 5 * time.Second,
	}
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health handles GET /health. Checks run concurrently; any failure turns the
// response into a 503.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		results = make(map[string]string, len(h.checks))
		g       errgroup.Group
	)
	for name, checker := range h.checks {
		name, checker := name, checker
		g.Go(func() error {
			err := checker.Health(ctx)
			status := "ok"
			if err != nil {
				status = err.Error()
				slog.Warn("Health check failed", "dependency", name, "error", err)
			}
			mu.Lock()
			results[name] = status
			mu.Unlock()
			return err
		})
	}

	response := HealthResponse{Status: "ok", Checks: results}
	if err := g.Wait(); err != nil {
		response.Status = "unavailable"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}
	c.JSON(http.StatusOK, response)
}
