package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DatabasePath      string
	OpenWeatherAPIKey string
	JWTSecret         string
	TokenTTL          time.Duration
	CacheTTL          time.Duration
	DefaultCity       string

	// Static coordinates standing in for platform geolocation. When unset the
	// locator reports "no location available" and callers fall back to
	// DefaultCity.
	DefaultLat, DefaultLon float64
	HasDefaultCoords       bool
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		Port:              getEnv("PORT", "8090"),
		DatabasePath:      getEnv("DATABASE_PATH", "closet.db"),
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		JWTSecret:         getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:          7 * 24 * time.Hour,
		CacheTTL:          15 * time.Minute,
		DefaultCity:       getEnv("DEFAULT_CITY", "New York"),
	}

	if v := os.Getenv("CACHE_TTL_MINUTES"); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m > 0 {
			cfg.CacheTTL = time.Duration(m) * time.Minute
		}
	}

	latStr, lonStr := os.Getenv("DEFAULT_LAT"), os.Getenv("DEFAULT_LON")
	if latStr != "" && lonStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lon, lonErr := strconv.ParseFloat(lonStr, 64)
		if latErr == nil && lonErr == nil {
			cfg.DefaultLat, cfg.DefaultLon = lat, lon
			cfg.HasDefaultCoords = true
		}
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
