// Package app assembles the storefront bot from its parts: config,
// bootstrap, and the Telegram run options.
package app

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/m3rciful/shopbot/core/config"
	coredatabase "github.com/m3rciful/shopbot/core/database"
	"github.com/m3rciful/shopbot/internal/catalog"
)

// ShopConfig holds the storefront texts and the optional first-run seed.
type ShopConfig struct {
	Currency string `yaml:"currency" envconfig:"SHOP_CURRENCY"`
	Greeting string `yaml:"greeting"`
	About    string `yaml:"about"`

	// SeedSection and Seed populate an empty catalog on first start.
	SeedSection string            `yaml:"seed_section"`
	Seed        []catalog.SeedRow `yaml:"seed"`
}

// Config aggregates core, database, and storefront configuration.
type Config struct {
	Core     coreconfig.Config   `yaml:",inline"`
	Database coredatabase.Config `yaml:"database"`
	Shop     ShopConfig          `yaml:"shop"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Core
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	normalizeShop(&cfg.Shop)
	return &cfg, nil
}

func normalizeShop(s *ShopConfig) {
	if s.Currency == "" {
		s.Currency = "₽"
	}
	if s.Greeting == "" {
		s.Greeting = "Welcome! 👋 Browse the catalog and order right here in the chat."
	}
	if s.About == "" {
		s.About = "We are a small shop that delivers. Questions? The operator will reach out after your order."
	}
}
