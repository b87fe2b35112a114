// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func(ctx context.Context) error

// HealthController handles health check endpoints.
type HealthController struct {
	checks map[string]HealthChecker
	now    func() time.Time
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
	Timestamp    string            `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// Nil checkers are skipped, so optional dependencies can be passed unconditionally.
func NewHealthController(checks map[string]HealthChecker) *HealthController {
	active := make(map[string]HealthChecker, len(checks))
	for name, check := range checks {
		if check != nil {
			active[name] = check
		}
	}
	return &HealthController{
		checks: active,
		now:    time.Now,
	}
}

// Check handles GET /health requests.
// It returns 503 when any registered dependency is unreachable.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	dependencies := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			dependencies[name] = "disconnected"
			status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		dependencies[name] = "connected"
	}

	c.JSON(code, HealthResponse{
		Status:       status,
		Dependencies: dependencies,
		Timestamp:    h.now().UTC().Format(time.RFC3339),
	})
}
