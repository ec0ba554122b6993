// Package config loads application configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Web      Web
	API      API
	Database Database
	LogLevel string
}

// Web configures the page-serving frontend.
type Web struct {
	Addr       string
	APIBaseURL string
	SessionKey string
}

// API configures the REST backend.
type API struct {
	Addr          string
	AdminPassword string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds a lib/pq connection string.
func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// Load reads configuration from the environment. A missing .env file is not
// an error; every value has a local-development default.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Web: Web{
			Addr:       getEnv("WEB_ADDR", ":8081"),
			APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
			SessionKey: getEnv("SESSION_KEY", "dev-only-session-key"),
		},
		API: API{
			Addr:          getEnv("API_ADDR", ":8080"),
			AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		},
		Database: Database{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "libtrack"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// SlogLevel maps the configured level name onto a slog level, defaulting to
// info for anything unrecognized.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
