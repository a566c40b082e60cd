package testutil

import (
	"time"

	"github.com/nagoyameshi/go-api-server/internal/config"
)

// NewTestConfig creates a test configuration
// This removes the need for environment variables during testing
func NewTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:     "nagoyameshi-api-test",
			Env:      "test",
			Port:     8080,
			Timezone: "UTC",
			Location: time.UTC,
		},
		Database: config.DatabaseConfig{
			Driver:          config.DriverSQLite,
			Path:            ":memory:",
			MaxIdleConns:    1,
			MaxOpenConns:    1,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 10 * time.Minute,
			SlowThreshold:   200 * time.Millisecond,
			IsAutoMigrate:   true,
		},
		JWT: config.JWTConfig{
			MemberSecret:  "test-member-secret-key-must-be-at-least-32-characters",
			AdminSecret:   "test-admin-secret-key-must-be-at-least-32-characters",
			Expiry:        time.Hour,
			RefreshExpiry: 24 * time.Hour,
		},
		CORS: config.CORSConfig{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           86400,
		},
		Server: config.ServerConfig{
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			GracefulTimeout: 30 * time.Second,
			RequestTimeout:  30 * time.Second,
		},
		Billing: config.BillingConfig{
			Driver:   config.BillingLocal,
			PlanName: "premium_plan",
		},
		Storage: config.StorageConfig{
			Driver:         config.StorageLocal,
			PublicBaseURL:  "/uploads",
			MaxUploadBytes: 2 << 20,
		},
		RateLimit: config.RateLimitConfig{
			LoginPerSecond: 100,
			LoginBurst:     100,
		},
	}
}
