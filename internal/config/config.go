package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort   string
	DatabaseType string
	DatabasePath string
	DatabaseURL  string

	// Remote risk scoring service
	MLServiceURL        string
	ScorerTimeout       time.Duration
	ScorerProbeInterval time.Duration

	JWTSecret string
	TokenTTL  time.Duration

	// Location used to decide calendar days for learning streaks
	Location *time.Location

	// Email (Amazon SES)
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string

	Debug bool
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:          getEnv("PORT", "8080"),
		DatabaseType:        getEnv("DB_TYPE", "sqlite"),
		DatabasePath:        getEnv("DB_PATH", "./binakata.db"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		MLServiceURL:        getEnv("ML_SERVICE_URL", "http://localhost:8001"),
		ScorerTimeout:       getDuration("SCORER_TIMEOUT", 4*time.Second),
		ScorerProbeInterval: getDuration("SCORER_PROBE_INTERVAL", 5*time.Minute),
		JWTSecret:           getEnv("JWT_SECRET", "change_me"),
		TokenTTL:            getDuration("TOKEN_TTL", 7*24*time.Hour),
		Location:            getLocation("TIMEZONE"),
		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:        getEnv("SES_FROM_EMAIL", ""),
		SESFromName:         getEnv("SES_FROM_NAME", "BinaKata"),
		AppBaseURL:          getEnv("APP_BASE_URL", "http://localhost:3000"),
		Debug:               getBool("DEBUG", false),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", key, v, err)
	}
	return d
}

func getBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid boolean: %v", key, v, err)
	}
	return b
}

func getLocation(key string) *time.Location {
	v := os.Getenv(key)
	if v == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid location: %v", key, v, err)
	}
	return loc
}
