package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration values.
type Config struct {
	HTTPPort       string
	DatabaseDSN    string
	AccessSecret   string
	RefreshSecret  string
	AccessTTL      time.Duration
	RefreshTTL     time.Duration
	AllowedOrigins []string
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}
	// Validate that port is numeric.
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 8080", port)
		port = "8080"
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "data/inventory.db"
	}

	accessSecret := os.Getenv("ACCESS_SECRET_KEY")
	if accessSecret == "" {
		accessSecret = "access-secret"
	}
	refreshSecret := os.Getenv("REFRESH_SECRET_KEY")
	if refreshSecret == "" {
		refreshSecret = "refresh-secret"
	}

	origins := []string{"http://localhost:5173"}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins = strings.Split(v, ",")
	}

	return Config{
		HTTPPort:       port,
		DatabaseDSN:    dsn,
		AccessSecret:   accessSecret,
		RefreshSecret:  refreshSecret,
		AccessTTL:      durationEnv("ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshTTL:     durationEnv("REFRESH_EXPIRES_IN", 24*time.Hour),
		AllowedOrigins: origins,
	}
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s value %q, defaulting to %s", key, v, fallback)
		return fallback
	}
	return d
}
