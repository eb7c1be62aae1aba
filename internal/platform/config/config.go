package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Extraction service settings.
	GeminiAPIKey string
	GeminiModel  string

	// Organization defaults stamped onto ingested transactions.
	DefaultOrgID   string
	DefaultGroupID string
	DefaultActorID string

	// IngestRateLimit is a limiter/v3 formatted rate, e.g. "10-M".
	IngestRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	viper.SetDefault("DEFAULT_ORG_ID", "uneural")
	viper.SetDefault("DEFAULT_GROUP_ID", "operaciones")
	viper.SetDefault("DEFAULT_ACTOR_ID", "johan")
	viper.SetDefault("INGEST_RATE_LIMIT", "10-M")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:     viper.GetString("PGSQL_URL"),
		Port:            viper.GetString("PORT"),
		IsProduction:    viper.GetBool("IS_PRODUCTION"),
		GeminiAPIKey:    viper.GetString("GEMINI_API_KEY"),
		GeminiModel:     viper.GetString("GEMINI_MODEL"),
		DefaultOrgID:    viper.GetString("DEFAULT_ORG_ID"),
		DefaultGroupID:  viper.GetString("DEFAULT_GROUP_ID"),
		DefaultActorID:  viper.GetString("DEFAULT_ACTOR_ID"),
		IngestRateLimit: viper.GetString("INGEST_RATE_LIMIT"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL not set. Falling back to the in-memory store; data will not survive a restart.")
	}
	if cfg.GeminiAPIKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set. Ingestion will fail until it is configured.")
	}

	return cfg, nil
}
