package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Env        string `env:"ENV" envDefault:"development"`
	LogLevel   string `env:"LOG_LEVEL"`
	Port       string `env:"PORT" envDefault:"8080"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"*"`

	// Cash available to a freshly seeded account.
	StartingBalance float64 `env:"STARTING_BALANCE" envDefault:"100000"`

	TradeTimeout     time.Duration `env:"TRADE_TIMEOUT" envDefault:"10s"`
	SnapshotInterval time.Duration `env:"SNAPSHOT_INTERVAL" envDefault:"24h"`

	Database Database
	Quotes   Quotes
	Kafka    Kafka
}

// Database holds the ledger store connection settings.
type Database struct {
	Driver     string `env:"DB_DRIVER" envDefault:"postgres"`
	Host       string `env:"DB_HOST" envDefault:"localhost"`
	Port       string `env:"DB_PORT" envDefault:"5432"`
	User       string `env:"DB_USER" envDefault:"stockfolio"`
	Password   string `env:"DB_PASSWORD" envDefault:"stockfolio"`
	Name       string `env:"DB_NAME" envDefault:"stockfolio"`
	SSLMode    string `env:"DB_SSLMODE" envDefault:"disable"`
	SQLitePath string `env:"DB_SQLITE_PATH" envDefault:"stockfolio.db"`
}

// Quotes configures the live price feed.
type Quotes struct {
	Enabled         bool          `env:"QUOTES_ENABLED" envDefault:"true"`
	BaseURL         string        `env:"QUOTES_BASE_URL" envDefault:"https://query1.finance.yahoo.com/v8/finance/chart"`
	RefreshInterval time.Duration `env:"QUOTES_REFRESH_INTERVAL" envDefault:"60s"`
	EmitInterval    time.Duration `env:"QUOTES_EMIT_INTERVAL" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"QUOTES_REQUEST_TIMEOUT" envDefault:"15s"`
}

// Kafka configures the optional trade event stream. No brokers disables it.
type Kafka struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"KAFKA_TOPIC" envDefault:"trades"`
}

// Load reads the .env file if present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("invalid DB_DRIVER %q: must be postgres or sqlite", c.Database.Driver)
	}
	if c.StartingBalance < 0 {
		return fmt.Errorf("STARTING_BALANCE must not be negative, got %v", c.StartingBalance)
	}
	if c.TradeTimeout <= 0 {
		return fmt.Errorf("TRADE_TIMEOUT must be positive, got %v", c.TradeTimeout)
	}
	if c.SnapshotInterval <= 0 {
		return fmt.Errorf("SNAPSHOT_INTERVAL must be positive, got %v", c.SnapshotInterval)
	}
	if c.Quotes.Enabled && c.Quotes.RefreshInterval <= 0 {
		return fmt.Errorf("QUOTES_REFRESH_INTERVAL must be positive, got %v", c.Quotes.RefreshInterval)
	}
	return nil
}
