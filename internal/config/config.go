package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port          int
	NatsURL       string
	NatsToken     string
	DatabaseURL   string
	LogLevel      string
	GeminiAPIKey  string
	GeminiModel   string
	BatchWidth    int
	BatchPacingMS int
	APIToken      string
}

func Load() Config {
	return Config{
		Port:          envInt("SIFT_PORT", 8760),
		NatsURL:       envStr("NATS_URL", "nats://localhost:4222"),
		NatsToken:     envStr("NATS_TOKEN", ""),
		DatabaseURL:   envStr("DATABASE_URL", ""),
		LogLevel:      envStr("LOG_LEVEL", "info"),
		GeminiAPIKey:  envStr("GEMINI_API_KEY", ""),
		GeminiModel:   envStr("SIFT_MODEL", "gemini-2.5-flash"),
		BatchWidth:    envInt("SIFT_BATCH_WIDTH", 8),
		BatchPacingMS: envInt("SIFT_BATCH_PACING_MS", 1000),
		APIToken:      envStr("SIFT_API_TOKEN", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
