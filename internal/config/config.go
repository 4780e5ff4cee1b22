package config

import (
	"os"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	RedisURL     string
	TreeCacheTTL time.Duration

	JWTSecret string

	CommentEditWindow    time.Duration
	CommentRestoreWindow time.Duration

	CORSOrigins string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379"),
		TreeCacheTTL: getDurationEnv("TREE_CACHE_TTL", 5*time.Minute),

		JWTSecret: getEnv("JWT_SECRET", ""),

		CommentEditWindow:    getDurationEnv("COMMENT_EDIT_WINDOW", 15*time.Minute),
		CommentRestoreWindow: getDurationEnv("COMMENT_RESTORE_WINDOW", 15*time.Minute),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
