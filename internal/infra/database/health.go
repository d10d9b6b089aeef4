package database

import (
	"context"
	"time"
)

// Health states
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthStatus represents database health status
type HealthStatus struct {
	Status       string    `json:"status"`          // "healthy", "degraded", "unhealthy"
	Driver       string    `json:"driver"`          // "postgres", "sqlite"
	ResponseTime string    `json:"response_time"`   // e.g., "5ms"
	ActiveConns  int32     `json:"active_conns"`    // Current active connections
	IdleConns    int32     `json:"idle_conns"`      // Current idle connections
	TotalConns   int32     `json:"total_conns"`     // Total connections
	MaxConns     int32     `json:"max_conns"`       // Max connections allowed
	CheckedAt    time.Time `json:"checked_at"`      // When health check was performed
	Error        string    `json:"error,omitempty"` // Error message if unhealthy
}

// HealthChecker is implemented by every storage backend
type HealthChecker interface {
	Health(ctx context.Context) *HealthStatus
}
