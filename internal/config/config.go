package config

import (
	"fmt"

	"github.com/ariyanssg/rizz-pharmacy/internal/domain"
	pkgconfig "github.com/ariyanssg/rizz-pharmacy/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Cart TTL in hours (default: 30 days, mirroring long-lived browser storage)
	CartTTL int `env:"CART_TTL_HOURS" envDefault:"720"`

	// Pricing policy
	TaxRate               float64 `env:"TAX_RATE" envDefault:"0.08"`
	FreeShippingThreshold float64 `env:"FREE_SHIPPING_THRESHOLD" envDefault:"100"`
	FlatShippingRate      float64 `env:"FLAT_SHIPPING_RATE" envDefault:"9.99"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Pricing returns the pricing policy from the loaded configuration.
func (c *Config) Pricing() domain.PricingConfig {
	return domain.PricingConfig{
		TaxRate:               c.TaxRate,
		FreeShippingThreshold: c.FreeShippingThreshold,
		FlatShippingRate:      c.FlatShippingRate,
	}
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.CartTTL < 1 {
		return fmt.Errorf("invalid cart TTL: %d hours", c.CartTTL)
	}
	if c.TaxRate < 0 || c.TaxRate >= 1 {
		return fmt.Errorf("TAX_RATE must be in [0, 1), got %v", c.TaxRate)
	}
	if c.FreeShippingThreshold < 0 {
		return fmt.Errorf("FREE_SHIPPING_THRESHOLD must not be negative, got %v", c.FreeShippingThreshold)
	}
	if c.FlatShippingRate < 0 {
		return fmt.Errorf("FLAT_SHIPPING_RATE must not be negative, got %v", c.FlatShippingRate)
	}
	return nil
}
