package services

import (
	"fmt"
	"log"
	"time"

	"github.com/localnerve/agenthub/internal/config"
	"github.com/localnerve/agenthub/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Timestamp    string            `json:"timestamp"`
	Services     map[string]string `json:"services"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck reports the reachability of the document store and the
// identity provider, and whether the completion engine is configured.
// Degradation is reported, never returned as an error.
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services: map[string]string{
			"api": "online",
		},
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "degraded"
		result.Services["database"] = "error"
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
	} else if err := sqlDB.Ping(); err != nil {
		result.Status = "degraded"
		result.Services["database"] = "unreachable"
		result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
		log.Printf("Health check failed - database ping: %v", err)
	} else {
		result.Services["database"] = "connected"
	}

	// Check identity provider reachability
	if err := utils.PingAuthorizer(cfg.AuthzURL); err != nil {
		result.Status = "degraded"
		result.Services["auth"] = "unreachable"
		log.Printf("Health check failed - authorizer ping: %v", err)
	} else {
		result.Services["auth"] = "authorizer"
	}

	// Completion engine: configuration status only, no probe call
	if cfg.LLMAPIKey != "" {
		result.Services["llm"] = "configured"
	} else {
		result.Services["llm"] = "not_configured"
	}

	return result
}
