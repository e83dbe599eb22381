package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration values.
type Config struct {
	Port        string
	RedisURL    string
	MongoURI    string
	MongoDBName string

	// ViewCooldown is the window inside which repeat views from the same
	// visitor are not counted again.
	ViewCooldown time.Duration

	// CounterOpTimeout bounds every single counter-store operation on the
	// request path so a slow cache cannot stall a content view.
	CounterOpTimeout time.Duration

	DrainInterval       time.Duration
	MarkerSweepInterval time.Duration
	RepairInterval      time.Duration

	// Per-IP view velocity limit (views per second and burst) applied
	// in-process before the counter store is touched.
	ViewRatePerSecond float64
	ViewRateBurst     int

	// RequestsPerSecond is the transport-level rate limit for all routes.
	RequestsPerSecond float64
}

// NewConfig creates a new Config instance, loading values from environment variables.
func NewConfig() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),
		MongoURI:    getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDBName: getEnv("MONGODB_DB_NAME", "boardpulse"),

		ViewCooldown:     time.Second * time.Duration(getEnvAsInt("VIEW_COOLDOWN_SECONDS", 60)),
		CounterOpTimeout: time.Millisecond * time.Duration(getEnvAsInt("COUNTER_OP_TIMEOUT_MS", 300)),

		DrainInterval:       time.Second * time.Duration(getEnvAsInt("DRAIN_INTERVAL_SECONDS", 60)),
		MarkerSweepInterval: time.Second * time.Duration(getEnvAsInt("MARKER_SWEEP_INTERVAL_SECONDS", 600)),
		RepairInterval:      time.Second * time.Duration(getEnvAsInt("REPAIR_INTERVAL_SECONDS", 3600)),

		ViewRatePerSecond: getEnvAsFloat("VIEW_RATE_PER_SECOND", 2),
		ViewRateBurst:     getEnvAsInt("VIEW_RATE_BURST", 5),

		RequestsPerSecond: getEnvAsFloat("REQUESTS_PER_SECOND", 10),
	}
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a default value.
func getEnvAsInt(name string, fallback int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as a float or return a default value.
func getEnvAsFloat(name string, fallback float64) float64 {
	valueStr := getEnv(name, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return fallback
}
