package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port              int
	DatabaseURL       string
	LogLevel          string
	GeminiAPIKey      string
	GeminiModel       string
	NatsURL           string
	NatsToken         string
	JWTSecret         string
	TokenTTLMinutes   int
	GoogleProjectID   string
	GoogleCredentials string // base64-encoded service-account JSON
}

func Load() Config {
	return Config{
		Port:              envInt("PORT", 8000),
		DatabaseURL:       envStr("DATABASE_URL", ""),
		LogLevel:          envStr("LOG_LEVEL", "info"),
		GeminiAPIKey:      envStr("GEMINI_API_KEY", ""),
		GeminiModel:       envStr("GEMINI_MODEL", "gemini-2.5-flash-lite-preview-06-17"),
		NatsURL:           envStr("NATS_URL", ""),
		NatsToken:         envStr("NATS_TOKEN", ""),
		JWTSecret:         envStr("JWT_SECRET", ""),
		TokenTTLMinutes:   envInt("TOKEN_TTL_MINUTES", 30),
		GoogleProjectID:   envStr("GOOGLE_CLOUD_PROJECT_ID", ""),
		GoogleCredentials: envStr("GOOGLE_CLOUD_CREDENTIALS", ""),
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
