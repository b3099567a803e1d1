package config

import (
	"os"
	"strconv"

	"github.com/apex/log"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the occurrence service.
type Config struct {
	// Server configuration
	Port string

	// Data layout
	DataDir     string
	BaselineCSV string
	ReportsFile string
	ImagesDir   string

	// Admin access
	AdminUser     string
	AdminPassword string
	JWTSecret     string

	// Abuse protection
	RateLimitPerMinute int

	// Spatial bucketing
	ClusterRadiusMeters float64
	HeatRadiusMeters    float64
}

// Load loads configuration from the environment, optionally seeded from a
// local .env file.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debugf("No .env file loaded: %v", err)
	}

	return &Config{
		Port: getEnv("PORT", "8080"),

		DataDir:     getEnv("DATA_DIR", "data"),
		BaselineCSV: getEnv("BASELINE_CSV", "data/occurrences_baseline.csv"),
		ReportsFile: getEnv("REPORTS_FILE", "data/reports.json"),
		ImagesDir:   getEnv("IMAGES_DIR", "data/images"),

		AdminUser:     getEnv("ADMIN_USER", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "mapa2025"),
		JWTSecret:     getEnv("JWT_SECRET", "urbanmap-dev-secret"),

		RateLimitPerMinute: getIntEnv("RATE_LIMIT_PER_MINUTE", 30),

		ClusterRadiusMeters: getFloatEnv("CLUSTER_RADIUS_METERS", 150),
		HeatRadiusMeters:    getFloatEnv("HEAT_RADIUS_METERS", 250),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv gets an integer environment variable or returns a default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		log.Warnf("Invalid value for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}

// getFloatEnv gets a float environment variable or returns a default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
		log.Warnf("Invalid value for %s, using default %v", key, defaultValue)
	}
	return defaultValue
}
