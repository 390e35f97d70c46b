package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores the engine settings: HTTP port, database connection,
// external service endpoints and the dispatch tunables.
type Config struct {
	HTTPPort int

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr    string
	GeoBaseURL   string
	GeoAPIKey    string
	OrderFeedURL string

	AggregationWindow  time.Duration
	MaxStops           int
	SampleStaleness    time.Duration
	UnreachableTimeout time.Duration
}

// LoadConfig reads configuration in order: .env (if present) → environment
// → flags. Tunables default to the production values.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := Config{
		HTTPPort:           envInt("HTTP_PORT", 8080),
		DBHost:             envString("DB_HOST", "localhost"),
		DBPort:             envString("DB_PORT", "5432"),
		DBUser:             envString("DB_USER", "postgres"),
		DBPassword:         envString("DB_PASSWORD", "postgres"),
		DBName:             envString("DB_NAME", "consignment"),
		DBSslMode:          envString("DB_SSLMODE", "disable"),
		RedisAddr:          envString("REDIS_ADDR", "localhost:6379"),
		GeoBaseURL:         envString("GEO_BASE_URL", ""),
		GeoAPIKey:          envString("GEO_API_KEY", ""),
		OrderFeedURL:       envString("ORDER_FEED_URL", ""),
		AggregationWindow:  envDuration("AGGREGATION_WINDOW", 10*time.Minute),
		MaxStops:           envInt("MAX_STOPS", 8),
		SampleStaleness:    envDuration("SAMPLE_STALENESS", 5*time.Minute),
		UnreachableTimeout: envDuration("UNREACHABLE_TIMEOUT", 15*time.Minute),
	}

	pflag.IntVarP(&cfg.HTTPPort, "port", "p", cfg.HTTPPort, "port to listen on")
	pflag.StringVar(&cfg.DBHost, "db-host", cfg.DBHost, "database host")
	pflag.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "redis address for event fan-out")
	pflag.StringVar(&cfg.GeoBaseURL, "geo-url", cfg.GeoBaseURL, "geo service base URL (empty disables road distances)")
	pflag.StringVar(&cfg.OrderFeedURL, "order-feed-url", cfg.OrderFeedURL, "order feed base URL")
	pflag.DurationVar(&cfg.AggregationWindow, "aggregation-window", cfg.AggregationWindow, "readiness window for grouping orders")
	pflag.IntVar(&cfg.MaxStops, "max-stops", cfg.MaxStops, "maximum delivery stops per consignment")
	pflag.DurationVar(&cfg.SampleStaleness, "sample-staleness", cfg.SampleStaleness, "location sample age excluding a driver from dispatch")
	pflag.DurationVar(&cfg.UnreachableTimeout, "unreachable-timeout", cfg.UnreachableTimeout, "silence after which an assignment is reclaimed")
	pflag.Parse()

	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return Config{}, fmt.Errorf("invalid port: %d", cfg.HTTPPort)
	}
	if cfg.OrderFeedURL == "" {
		return Config{}, fmt.Errorf("ORDER_FEED_URL is required")
	}
	if cfg.MaxStops <= 0 {
		return Config{}, fmt.Errorf("invalid max stops: %d", cfg.MaxStops)
	}
	if cfg.AggregationWindow <= 0 || cfg.SampleStaleness <= 0 || cfg.UnreachableTimeout <= 0 {
		return Config{}, fmt.Errorf("durations must be positive")
	}

	return cfg, nil
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
