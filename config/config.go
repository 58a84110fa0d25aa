package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends for the per-browser local storage.
const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	Port           string
	APIBaseURL     string
	APITimeout     time.Duration
	StorageBackend string
	WizardTTL      time.Duration
	SessionTTL     time.Duration
	CookieSecure   bool
	CORSOrigins    []string
	GCSBucket      string
	GCSPublic      bool
}

// Load reads the environment. Call godotenv.Load first to pick up a .env
// file.
func Load() Config {
	return Config{
		Port:           getEnv("PORT", "8080"),
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:8000/api/v1"),
		APITimeout:     time.Duration(getEnvInt("API_TIMEOUT_SECONDS", 120)) * time.Second,
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendRedis)),
		WizardTTL:      time.Duration(getEnvInt("WIZARD_TTL_MINUTES", 120)) * time.Minute,
		SessionTTL:     time.Duration(getEnvInt("SESSION_TTL_DAYS", 30)) * 24 * time.Hour,
		CookieSecure:   getEnvBool("COOKIE_SECURE", false),
		CORSOrigins:    getEnvList("CORS_ORIGINS", []string{"http://localhost:5173"}),
		GCSBucket:      os.Getenv("GCS_BUCKET"),
		GCSPublic:      getEnvBool("GCS_PUBLIC", false),
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
