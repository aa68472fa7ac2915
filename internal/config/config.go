package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
	Redis    RedisConfig
	Seed     SeedConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	Host            string
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// KafkaConfig holds Kafka configuration. Publishing is disabled when
// Brokers is empty.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// RedisConfig holds the Redis connection used for the seed lock.
// The lock is disabled when Addr is empty.
type RedisConfig struct {
	Addr     string
	Password string
	LockKey  string
	LockTTL  time.Duration
}

// SeedConfig holds synthetic dataset parameters
type SeedConfig struct {
	Months     int
	Volatility float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	shutdownTimeout, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}
	lockTTL, err := time.ParseDuration(getEnv("REDIS_LOCK_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_LOCK_TTL: %w", err)
	}
	months, err := strconv.Atoi(getEnv("SEED_MONTHS", "6"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_MONTHS: %w", err)
	}
	volatility, err := strconv.ParseFloat(getEnv("SEED_VOLATILITY", "0.02"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_VOLATILITY: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "5000"),
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			ShutdownTimeout: shutdownTimeout,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "stockdashboard"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   getEnv("KAFKA_TOPIC", "dashboard-events"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			LockKey:  getEnv("REDIS_LOCK_KEY", "stock-dashboard:seed-lock"),
			LockTTL:  lockTTL,
		},
		Seed: SeedConfig{
			Months:     months,
			Volatility: volatility,
		},
	}, nil
}

// Addr returns the listen address for the HTTP server
func (s *ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// ConnectionString returns the PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.DBName + "?sslmode=" + d.SSLMode
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
