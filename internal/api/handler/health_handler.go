package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// HealthHandler handles GET /health — liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// backendPinger reports whether the VetLink backend answers HTTP at all.
type backendPinger interface {
	Ping(ctx context.Context) error
}

// ReadinessHandler handles GET /health/ready — readiness probe.
// Checks session-store and backend connectivity before declaring ready.
// The redis client is nil when the in-memory store is in use; that
// dependency is then reported as skipped rather than unhealthy.
type ReadinessHandler struct {
	redis   *redis.Client
	backend backendPinger
}

func NewReadinessHandler(rdb *redis.Client, backend backendPinger) *ReadinessHandler {
	return &ReadinessHandler{redis: rdb, backend: backend}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	// --- Session store ping ---
	if h.redis == nil {
		deps["session_store"] = dependencyStatus{Status: "skipped"}
	} else if _, err := h.redis.Ping(ctx).Result(); err != nil {
		deps["session_store"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
		healthy = false
	} else {
		deps["session_store"] = dependencyStatus{Status: "ok"}
	}

	// --- Backend reachability ---
	if err := h.backend.Ping(ctx); err != nil {
		deps["backend"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
		healthy = false
	} else {
		deps["backend"] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
