package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/diegoclair/advice-rotation-bot/internal/database"
	"github.com/diegoclair/advice-rotation-bot/internal/domain"
	"github.com/joho/godotenv"
)

type Config struct {
	SlackBotToken      string
	SlackSigningSecret string
	SlackChannelID     string
	DatabaseDriver     string
	DatabasePath       string
	DatabaseURL        string
	Port               string
	Timezone           string
	LogLevel           string
	Environment        string
	QueueDepth         int
	DispatchSpec       string
	DeliveryRatePerSec float64
	CatalogPath        string
	CalendarToken      string
}

// Load reads the environment, and a .env file when one exists.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		SlackBotToken:      getEnv("SLACK_BOT_TOKEN", ""),
		SlackSigningSecret: getEnv("SLACK_SIGNING_SECRET", ""),
		SlackChannelID:     getEnv("SLACK_CHANNEL_ID", ""),
		DatabaseDriver:     strings.ToLower(getEnv("DATABASE_DRIVER", database.DriverSQLite)),
		DatabasePath:       getEnv("DATABASE_PATH", "./advice.db"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		Port:               getEnv("PORT", "3000"),
		Timezone:           getEnv("TIMEZONE", domain.DefaultTimezone),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Environment:        strings.ToLower(getEnv("ENVIRONMENT", "development")),
		DispatchSpec:       getEnv("DISPATCH_SPEC", "* * * * *"),
		CatalogPath:        getEnv("CATALOG_PATH", ""),
		CalendarToken:      getEnv("CALENDAR_TOKEN", ""),
	}

	var err error
	cfg.QueueDepth, err = strconv.Atoi(getEnv("QUEUE_DEPTH", strconv.Itoa(domain.DefaultQueueDepth)))
	if err != nil {
		return nil, fmt.Errorf("invalid QUEUE_DEPTH: %w", err)
	}

	cfg.DeliveryRatePerSec, err = strconv.ParseFloat(getEnv("DELIVERY_RATE_PER_SEC", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid DELIVERY_RATE_PER_SEC: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DatabaseDriver {
	case database.DriverSQLite:
	case database.DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when DATABASE_DRIVER is postgres")
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	if c.QueueDepth < 1 {
		return fmt.Errorf("QUEUE_DEPTH must be at least 1, got %d", c.QueueDepth)
	}
	if c.DeliveryRatePerSec <= 0 {
		return fmt.Errorf("DELIVERY_RATE_PER_SEC must be positive, got %v", c.DeliveryRatePerSec)
	}

	return nil
}

// ValidateSlack checks the settings needed to talk to Slack
func (c *Config) ValidateSlack() error {
	var missing []string
	if c.SlackBotToken == "" {
		missing = append(missing, "SLACK_BOT_TOKEN")
	}
	if c.SlackSigningSecret == "" {
		missing = append(missing, "SLACK_SIGNING_SECRET")
	}
	if c.SlackChannelID == "" {
		missing = append(missing, "SLACK_CHANNEL_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

// DSN returns the connection string for the configured driver
func (c *Config) DSN() string {
	if c.DatabaseDriver == database.DriverPostgres {
		return c.DatabaseURL
	}
	return c.DatabasePath
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
