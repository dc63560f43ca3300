package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string
	Env                  string
	CORSAllowedOrigins   []string
	CORSAllowedMethods   []string
	CORSAllowedHeaders   []string
	CORSAllowCredentials bool
	APIMaxBodyBytes      int64
	ReadHeaderTimeout    time.Duration
	ReadTimeout          time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	OpenAPISpecPath      string
	SentryDSN            string
	MetricsCacheTTL      time.Duration
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr: getEnv("API_ADDR", ":8080"),
		Env:  getEnv("APP_ENV", "dev"),
		CORSAllowedOrigins: getEnvCSV("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
		}),
		CORSAllowedMethods: getEnvCSV("CORS_ALLOWED_METHODS", []string{
			"GET", "POST", "PUT", "DELETE",
		}),
		CORSAllowedHeaders: getEnvCSV("CORS_ALLOWED_HEADERS", []string{
			"Content-Type", "Authorization",
		}),
		CORSAllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", true),
		APIMaxBodyBytes:      int64(getEnvInt("API_MAX_BODY_MB", 2)) * 1024 * 1024,
		ReadHeaderTimeout:    time.Duration(getEnvInt("API_READ_HEADER_TIMEOUT_SEC", 5)) * time.Second,
		ReadTimeout:          time.Duration(getEnvInt("API_READ_TIMEOUT_SEC", 15)) * time.Second,
		WriteTimeout:         time.Duration(getEnvInt("API_WRITE_TIMEOUT_SEC", 30)) * time.Second,
		IdleTimeout:          time.Duration(getEnvInt("API_IDLE_TIMEOUT_SEC", 60)) * time.Second,
		OpenAPISpecPath:      getEnv("OPENAPI_SPEC_PATH", "openapi.yaml"),
		SentryDSN:            os.Getenv("SENTRY_DSN"),
		MetricsCacheTTL:      time.Duration(getEnvInt("METRICS_CACHE_TTL_SEC", 10)) * time.Second,
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvCSV(key string, fallback []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		result = append(result, trimmed)
	}
	if len(result) == 0 {
		return fallback
	}
	return result
}
