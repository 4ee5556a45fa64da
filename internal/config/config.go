package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the gastro-app service
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Billing     BillingConfig     `yaml:"billing"`
	RabbitMQ    RabbitMQConfig    `yaml:"rabbitmq"`
	Suggestions SuggestionsConfig `yaml:"suggestions"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int `yaml:"port"`
	ShutdownTimeout int `yaml:"shutdown_timeout_seconds"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	MaxConns int32  `yaml:"max_conns"`
	MinConns int32  `yaml:"min_conns"`
}

// BillingConfig holds the configurable tax and tip multipliers applied
// to an order subtotal. Rates are kept as strings and parsed into
// decimals so money arithmetic stays exact.
type BillingConfig struct {
	TaxRate string `yaml:"tax_rate"`
	TipRate string `yaml:"tip_rate"`
}

// RabbitMQConfig holds RabbitMQ connection configuration for the
// kitchen display event feed. The feed is optional.
type RabbitMQConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// SuggestionsConfig holds configuration for the product suggestion
// adapter backed by an external completion service.
type SuggestionsConfig struct {
	Enabled        bool   `yaml:"enabled"`
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Load reads configuration from a YAML file and applies defaults
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = 25
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = 5
	}
	if c.Billing.TaxRate == "" {
		c.Billing.TaxRate = "0.21"
	}
	if c.Billing.TipRate == "" {
		c.Billing.TipRate = "0"
	}
	if c.Suggestions.Model == "" {
		c.Suggestions.Model = "gpt-4o-mini"
	}
	if c.Suggestions.TimeoutSeconds == 0 {
		c.Suggestions.TimeoutSeconds = 10
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database.database is required")
	}
	if _, err := decimal.NewFromString(c.Billing.TaxRate); err != nil {
		return fmt.Errorf("billing.tax_rate is not a valid decimal: %w", err)
	}
	if _, err := decimal.NewFromString(c.Billing.TipRate); err != nil {
		return fmt.Errorf("billing.tip_rate is not a valid decimal: %w", err)
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.Host == "" {
		return fmt.Errorf("rabbitmq.host is required when rabbitmq.enabled is true")
	}
	return nil
}

// TaxRate returns the parsed tax multiplier
func (c *Config) TaxRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(c.Billing.TaxRate)
	return rate
}

// TipRate returns the parsed tip multiplier
func (c *Config) TipRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(c.Billing.TipRate)
	return rate
}

// SuggestionTimeout returns the timeout for a single suggestion call
func (c *Config) SuggestionTimeout() time.Duration {
	return time.Duration(c.Suggestions.TimeoutSeconds) * time.Second
}

// DatabaseURL returns a PostgreSQL connection URL
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Database)
}

// RabbitMQURL returns an AMQP connection URL
func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}
