package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendMongo    = "mongo"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

var defaultCORSOrigins = []string{
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

type Config struct {
	Port         string
	StoreBackend string

	MongoURI        string
	MongoDB         string
	MongoCollection string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DatabaseURL string

	CORSOrigins []string

	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	redisDB, err := strconv.Atoi(getenvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB: %w", err)
	}
	rateRequests, err := strconv.Atoi(getenvOrDefault("RATE_LIMIT_REQUESTS", "5"))
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_REQUESTS: %w", err)
	}
	rateWindow, err := time.ParseDuration(getenvOrDefault("RATE_LIMIT_WINDOW", "1m"))
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW: %w", err)
	}

	cfg := &Config{
		Port:              getenvOrDefault("PORT", "8080"),
		StoreBackend:      strings.ToLower(getenvOrDefault("STORE_BACKEND", BackendMongo)),
		MongoURI:          getenvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:           getenvOrDefault("MONGO_DB", "loan_db"),
		MongoCollection:   getenvOrDefault("MONGO_COLLECTION", "loans"),
		RedisAddr:         getenvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           redisDB,
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		CORSOrigins:       splitList(getenvOrDefault("CORS_ORIGINS", strings.Join(defaultCORSOrigins, ","))),
		RateLimitRequests: rateRequests,
		RateLimitWindow:   rateWindow,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMongo, BackendRedis, BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s backend", BackendPostgres)
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.RateLimitRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.RateLimitRequests)
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.RateLimitWindow)
	}
	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	return nil
}

// getenvOrDefault returns the environment variable value if set, otherwise returns def
func getenvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
