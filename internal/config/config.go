package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Env       string
	LogLevel  string
	LogFormat string

	// Ordered candidate API base URLs. The first one that answers the
	// health probe becomes the active endpoint for the session.
	APIBaseURLs []string

	ProbeTimeout   time.Duration
	ProbeInterval  time.Duration
	RequestTimeout time.Duration

	SubmitMaxAttempts int
	SubmitBaseDelay   time.Duration

	BookingMonths       []string
	MaxBookingsPerMonth int
	OfflineFallback     bool

	// Pricing policy knobs. Revisions of the form disagreed on which
	// extras are billed monthly and on what a discount applies to, so
	// both are configuration rather than constants.
	MonthlyExtras []string
	DiscountScope string // "subtotal" or "base"

	RedisAddr     string
	RedisPassword string
	RedisTLS      bool
}

const defaultAPIBaseURLs = "https://cocoa-code-backend-production.up.railway.app/api,http://localhost:3000/api"

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Env:       getEnv("ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		APIBaseURLs: getEnvAsList("COCOA_API_URLS", defaultAPIBaseURLs),

		ProbeTimeout:   getEnvAsDuration("PROBE_TIMEOUT", 5*time.Second),
		ProbeInterval:  getEnvAsDuration("PROBE_INTERVAL", 30*time.Second),
		RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second),

		SubmitMaxAttempts: getEnvAsInt("SUBMIT_MAX_ATTEMPTS", 3),
		SubmitBaseDelay:   getEnvAsDuration("SUBMIT_BASE_DELAY", 500*time.Millisecond),

		BookingMonths:       getEnvAsList("BOOKING_MONTHS", "July 2025,August 2025,September 2025"),
		MaxBookingsPerMonth: getEnvAsInt("MAX_BOOKINGS_PER_MONTH", 4),
		OfflineFallback:     getEnvAsBool("OFFLINE_FALLBACK", true),

		MonthlyExtras: getEnvAsList("MONTHLY_EXTRAS", "management,fixes"),
		DiscountScope: strings.ToLower(strings.TrimSpace(getEnv("DISCOUNT_SCOPE", "subtotal"))),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated environment variable, trimming
// whitespace and dropping empty entries.
func getEnvAsList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
