package services

import (
	"context"
	"fmt"

	"github.com/localnerve/franchisedb/internal/config"
	"github.com/localnerve/franchisedb/internal/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Database     string            `json:"database"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// Healthy reports whether every checked dependency is reachable
func (r HealthCheckResult) Healthy() bool {
	return r.Status == "healthy"
}

// HealthCheck pings the database through the pool
func HealthCheck(ctx context.Context, cfg *config.Config, db *gorm.DB) HealthCheckResult {
	log := logger.FromContext(ctx)
	result := HealthCheckResult{
		Status:  "healthy",
		Version: config.Version,
		Details: make(map[string]string),
	}

	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Warn("Health check failed - database connection", zap.Error(err))
		return result
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		result.Status = "unhealthy"
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
		log.Warn("Health check failed - database ping", zap.Error(err))
		return result
	}

	result.Database = "connected"
	result.Details["database_type"] = cfg.DBType
	log.Debug("Health check passed")

	return result
}
