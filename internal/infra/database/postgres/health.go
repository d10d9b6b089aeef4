package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/infra/database"
)

// Health checks the health of the database connection
func (p *Pool) Health(ctx context.Context) *database.HealthStatus {
	start := time.Now()

	status := &database.HealthStatus{
		CheckedAt: start,
		Driver:    "postgres",
		Status:    database.StatusHealthy,
	}

	// Ping database
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := p.Ping(pingCtx); err != nil {
		status.Status = database.StatusUnhealthy
		status.Error = fmt.Sprintf("ping failed: %v", err)
		status.ResponseTime = time.Since(start).String()
		return status
	}

	// Get pool stats
	stats := p.Stat()
	status.ActiveConns = stats.AcquiredConns()
	status.IdleConns = stats.IdleConns()
	status.TotalConns = stats.TotalConns()
	status.MaxConns = stats.MaxConns()
	status.ResponseTime = time.Since(start).String()

	// Check if connection pool is nearly exhausted
	if stats.MaxConns() > 2 && stats.AcquiredConns() >= stats.MaxConns()-2 {
		status.Status = database.StatusDegraded
		status.Error = "connection pool nearly exhausted"
	}

	return status
}

