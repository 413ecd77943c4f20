package config

import (
	"fmt"
	"os"
)

// Config holds deployment-provided settings for the API process.
type Config struct {
	Port string

	// AI gateway (planning collaborator).
	AIGatewayURL    string
	AIGatewayAPIKey string
	AIModel         string

	// Storage backend for the trip cache: memory, redis or postgres.
	StorageBackend string
	RedisAddr      string
	DatabaseURL    string
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		Port:            getenv("PORT", "8080"),
		AIGatewayURL:    getenv("AI_GATEWAY_URL", "https://ai.gateway.lovable.dev/v1/chat/completions"),
		AIGatewayAPIKey: os.Getenv("AI_GATEWAY_API_KEY"),
		AIModel:         getenv("AI_MODEL", "google/gemini-3-flash-preview"),
		StorageBackend:  getenv("STORAGE_BACKEND", "memory"),
		RedisAddr:       getenv("REDIS_ADDR", "localhost:6379"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
	}

	if cfg.AIGatewayAPIKey == "" {
		return Config{}, fmt.Errorf("missing required env var: AI_GATEWAY_API_KEY")
	}

	switch cfg.StorageBackend {
	case "memory", "redis":
	case "postgres":
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("STORAGE_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return Config{}, fmt.Errorf("invalid STORAGE_BACKEND %q (want memory, redis or postgres)", cfg.StorageBackend)
	}

	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
