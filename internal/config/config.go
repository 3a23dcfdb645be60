// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/pkordes/tour-planner/backend/internal/llm"
)

// Store drivers accepted in STORE_DRIVER.
const (
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
	StoreSQLite   = "sqlite"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"]. Set CORS_ORIGINS to a
	// comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps request body size. Defaults to 1 MiB.
	MaxBodyBytes int64

	// StoreDriver selects the plan store: postgres (default), mongo or sqlite.
	StoreDriver string

	// DatabaseURL is the Postgres connection string. Secret.
	DatabaseURL string

	// MigrateOnStart applies pending goose migrations before serving.
	// Postgres only. Defaults to true.
	MigrateOnStart bool

	// MongoURI is the MongoDB connection string. Secret.
	MongoURI string

	// MongoDatabase is the database holding the tour_plan collection.
	MongoDatabase string

	// SQLitePath is the database file for the sqlite driver.
	SQLitePath string

	// AIProvider selects the model backend: google (default), openai,
	// anthropic or ollama.
	AIProvider string

	// AIAPIKey authenticates against the AI backend. Secret.
	AIAPIKey string

	// AIModel overrides the provider's default model.
	AIModel string

	// AIBaseURL overrides the provider endpoint.
	AIBaseURL string
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the working directory, if present, is loaded first; real
// environment variables take precedence over it.
//
// Missing secrets are not an error here: see MissingSecrets. Load fails only
// on values it cannot interpret.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", StorePostgres)),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDatabase: getEnv("MONGO_DATABASE", "tourplan"),
		SQLitePath:    getEnv("SQLITE_PATH", "tourplan.db"),
		AIProvider:    strings.ToLower(getEnv("AI_PROVIDER", llm.ProviderGoogle)),
		AIAPIKey:      os.Getenv("AI_API_KEY"),
		AIModel:       os.Getenv("AI_MODEL"),
		AIBaseURL:     os.Getenv("AI_BASE_URL"),
	}

	var problems []string

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil {
		problems = append(problems, "MAX_BODY_BYTES must be an integer")
	}
	cfg.MaxBodyBytes = maxBody

	migrate, err := strconv.ParseBool(getEnv("MIGRATE_ON_START", "true"))
	if err != nil {
		problems = append(problems, "MIGRATE_ON_START must be a boolean")
	}
	cfg.MigrateOnStart = migrate

	if !slices.Contains([]string{StorePostgres, StoreMongo, StoreSQLite}, cfg.StoreDriver) {
		problems = append(problems, fmt.Sprintf("STORE_DRIVER %q is not one of postgres, mongo, sqlite", cfg.StoreDriver))
	}
	if !slices.Contains(llm.Providers, cfg.AIProvider) {
		problems = append(problems, fmt.Sprintf("AI_PROVIDER %q is not one of %s", cfg.AIProvider, strings.Join(llm.Providers, ", ")))
	}

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	return cfg, nil
}

// MissingSecrets names the secret variables the selected store driver and
// AI provider need but that are not set. The server still starts without
// them; the caller is expected to log the result.
func (c Config) MissingSecrets() []string {
	var missing []string
	switch c.StoreDriver {
	case StorePostgres:
		if c.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case StoreMongo:
		if c.MongoURI == "" {
			missing = append(missing, "MONGO_URI")
		}
	}
	if c.AIProvider != llm.ProviderOllama && c.AIAPIKey == "" {
		missing = append(missing, "AI_API_KEY")
	}
	return missing
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
