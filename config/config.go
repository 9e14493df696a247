// Package config holds runtime configuration sourced from env vars.
//
// A .env file is honored when present (godotenv); real environment
// variables take precedence. Command-line flags in cmd/server override
// both.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the runtime configuration of the server.
type Config struct {
	Port             string
	DatabasePath     string
	CORSOrigins      []string
	RequireAdminRole bool
	LogLevel         string
}

// Load reads configuration from the environment with sane defaults.
//
//	PORT                  HTTP port (default 8080)
//	DATABASE_PATH         SQLite path; ":memory:" for ephemeral (default parking.db)
//	CORS_ALLOWED_ORIGINS  comma-separated list (default *)
//	REQUIRE_ADMIN_ROLE    gate role changes and spot creation behind the
//	                      admin role (default false, matching the
//	                      original permissive contract)
//	LOG_LEVEL             logrus level name (default info)
func Load() Config {
	// Missing .env is fine; env vars alone are enough.
	_ = godotenv.Load()

	return Config{
		Port:             fallback(os.Getenv("PORT"), "8080"),
		DatabasePath:     fallback(os.Getenv("DATABASE_PATH"), "parking.db"),
		CORSOrigins:      parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		RequireAdminRole: parseBool(os.Getenv("REQUIRE_ADMIN_ROLE")),
		LogLevel:         fallback(os.Getenv("LOG_LEVEL"), "info"),
	}
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return ":" + c.Port
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
