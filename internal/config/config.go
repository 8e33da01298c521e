package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the site build.
type Config struct {
	IconsDir     string `env:"SITE_ICONS_DIR"     envDefault:"node_modules/@tabler/icons/icons/outline"`
	OutputDir    string `env:"SITE_OUTPUT_DIR"    envDefault:"public/icons"`
	DataDir      string `env:"SITE_DATA_DIR"      envDefault:"_data"`
	DataFormat   string `env:"SITE_DATA_FORMAT"   envDefault:"json"`
	MetadataFile string `env:"SITE_METADATA_FILE"`
	StrictIcons  bool   `env:"SITE_STRICT_ICONS"  envDefault:"false"`
	Addr         string `env:"SITE_ADDR"          envDefault:":8080"`
	LogFormat    string `env:"LOG_FORMAT"         envDefault:"text"`
	LogLevel     string `env:"LOG_LEVEL"          envDefault:"debug"`
}

// New loads configuration from an optional .env file and the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Failed to read .env file: %v", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that have a fixed set of values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.DataFormat) {
	case "json", "yaml", "yml":
	default:
		return fmt.Errorf("SITE_DATA_FORMAT must be json, yaml or yml, got %q", c.DataFormat)
	}
	if c.IconsDir == "" || c.OutputDir == "" || c.DataDir == "" {
		return errors.New("SITE_ICONS_DIR, SITE_OUTPUT_DIR and SITE_DATA_DIR must not be empty")
	}
	return nil
}
