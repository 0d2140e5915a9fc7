package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port         string
	DatabasePath string
	LogLevel     string

	// Currency assigned to profiles saved without one
	DefaultCurrency string
	// Effective-year overrides keyed by lowercased email
	PinnedYears map[string]int

	ReportCacheTTL     time.Duration
	ReportCacheCleanup time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
	MaxConnections int

	AllowedOrigins      []string
	MaxRequestBodyBytes int64
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	maxBodyStr := getEnv("MAX_REQUEST_BODY_BYTES", "1048576")
	maxBody, err := strconv.ParseInt(maxBodyStr, 10, 64)
	if err != nil || maxBody <= 0 {
		log.Printf("WARNING: Invalid MAX_REQUEST_BODY_BYTES format '%s'. Using default 1MB. Error: %v", maxBodyStr, err)
		maxBody = 1 << 20
	}

	Cfg = &AppConfig{
		Port:         getEnv("PORT", "8080"),
		DatabasePath: getEnv("DATABASE_PATH", "./honorarios.db"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),

		DefaultCurrency: strings.ToUpper(getEnv("DEFAULT_CURRENCY", "USD")),
		PinnedYears:     ParsePinnedYears(getEnv("PINNED_YEARS", "")),

		ReportCacheTTL:     getEnvAsDuration("REPORT_CACHE_TTL", 15*time.Minute),
		ReportCacheCleanup: getEnvAsDuration("REPORT_CACHE_CLEANUP", 30*time.Minute),

		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 30),
		MaxConnections: getEnvAsInt("MAX_CONNECTIONS", 256),

		AllowedOrigins:      splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		MaxRequestBodyBytes: maxBody,
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, DBPath=%s, DefaultCurrency=%s, PinnedYears=%d",
		Cfg.Port, Cfg.LogLevel, Cfg.DatabasePath, Cfg.DefaultCurrency, len(Cfg.PinnedYears))
}

// ParsePinnedYears reads "email:year,email:year". Malformed entries are skipped.
func ParsePinnedYears(raw string) map[string]int {
	pinned := make(map[string]int)
	for _, entry := range splitList(raw) {
		idx := strings.LastIndex(entry, ":")
		if idx <= 0 {
			log.Printf("WARNING: Ignoring malformed PINNED_YEARS entry '%s'", entry)
			continue
		}
		email := strings.ToLower(strings.TrimSpace(entry[:idx]))
		year, err := strconv.Atoi(strings.TrimSpace(entry[idx+1:]))
		if email == "" || err != nil {
			log.Printf("WARNING: Ignoring malformed PINNED_YEARS entry '%s'", entry)
			continue
		}
		pinned[email] = year
	}
	return pinned
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Integer value for %s not set or empty, using default: %d", key, fallback)
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Float value for %s not set or empty, using default: %g", key, fallback)
		return fallback
	}
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	log.Printf("Invalid float value for %s ('%s'), using default: %g", key, valueStr, fallback)
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Duration value for %s not set or empty, using default: %s", key, fallback.String())
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}
