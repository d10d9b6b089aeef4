package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/api/response"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/infra/database"
)

// CachePinger is the part of the cache store the health checks need
type CachePinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db        database.HealthChecker
	cache     CachePinger
	startTime time.Time
	version   string
}

// NewHealthHandler creates a new health handler. cache may be nil.
func NewHealthHandler(db database.HealthChecker, cache CachePinger, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		cache:     cache,
		startTime: time.Now(),
		version:   version,
	}
}

// SimpleHealthResponse represents a simple health check response
type SimpleHealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ReadyResponse represents a readiness check response
type ReadyResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
	Message   string            `json:"message,omitempty"`
}

// DetailedHealthResponse represents detailed health information
type DetailedHealthResponse struct {
	Status        string                     `json:"status"`
	Version       string                     `json:"version"`
	UptimeSeconds int64                      `json:"uptime_seconds"`
	Timestamp     time.Time                  `json:"timestamp"`
	Components    map[string]ComponentHealth `json:"components"`
}

// ComponentHealth represents health status of a component
type ComponentHealth struct {
	Status       string                 `json:"status"`
	ResponseTime string                 `json:"response_time"`
	Details      map[string]interface{} `json:"details,omitempty"`
	Message      string                 `json:"message,omitempty"`
}

// Health returns simple liveness check
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, SimpleHealthResponse{
		Status:    database.StatusHealthy,
		Timestamp: time.Now(),
	})
}

// Ready returns readiness check with dependency checks
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx := c.Request.Context()
	checks := make(map[string]string)
	message := ""

	if dbHealth := h.db.Health(ctx); dbHealth.Status == database.StatusUnhealthy {
		checks["database"] = "error"
		message = "Database connection failed"
	} else {
		checks["database"] = "ok"
	}

	// A failing cache degrades latency only, lookups fall through to the database
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			checks["cache"] = "error"
		} else {
			checks["cache"] = "ok"
		}
	}

	status := "ready"
	statusCode := http.StatusOK
	if message != "" {
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, ReadyResponse{
		Status:    status,
		Timestamp: time.Now(),
		Checks:    checks,
		Message:   message,
	})
}

// Detailed returns detailed system health information
// GET /api/health/detailed
func (h *HealthHandler) Detailed(c *gin.Context) {
	ctx := c.Request.Context()
	components := make(map[string]ComponentHealth)

	dbHealth := h.db.Health(ctx)
	dbComponent := ComponentHealth{
		Status:       dbHealth.Status,
		ResponseTime: dbHealth.ResponseTime,
		Details: map[string]interface{}{
			"driver":       dbHealth.Driver,
			"active_conns": dbHealth.ActiveConns,
			"idle_conns":   dbHealth.IdleConns,
			"total_conns":  dbHealth.TotalConns,
			"max_conns":    dbHealth.MaxConns,
		},
		Message: dbHealth.Error,
	}
	components["database"] = dbComponent
	overallStatus := dbHealth.Status

	if h.cache != nil {
		start := time.Now()
		err := h.cache.Ping(ctx)
		cacheComponent := ComponentHealth{
			Status:       database.StatusHealthy,
			ResponseTime: time.Since(start).String(),
			Details:      map[string]interface{}{"backend": h.cache.Name()},
		}
		if err != nil {
			cacheComponent.Status = database.StatusUnhealthy
			cacheComponent.Message = err.Error()
			if overallStatus == database.StatusHealthy {
				overallStatus = database.StatusDegraded
			}
		}
		components["cache"] = cacheComponent
	}

	response.Success(c, DetailedHealthResponse{
		Status:        overallStatus,
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Timestamp:     time.Now(),
		Components:    components,
	})
}
