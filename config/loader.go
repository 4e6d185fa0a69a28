package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort             = 16181
	DefaultRequestTimeoutMS = 5000
	DefaultLine             = "ACE"
	DefaultStaticPath       = "data/"
	DefaultCachePath        = "data/gtfs_cache.json"
	DefaultTimeoutMS        = 10000
)

// Config is the global application configuration
var Config AppConfig

var searchPaths = []string{"config.yml", "./config/config.yml"}

// Default returns the configuration used when no config.yml is present
func Default() AppConfig {
	var cfg AppConfig
	cfg.applyDefaults()
	cfg.Metrics.Enabled = true
	return cfg
}

// LoadAppConfig loads config.yml, applies .env and environment overrides,
// fills defaults and validates the result.
func LoadAppConfig() error {
	var data []byte
	var err error
	for _, p := range searchPaths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if err := finish(&cfg); err != nil {
		return err
	}
	Config = cfg
	return nil
}

// LoadOrDefault behaves like LoadAppConfig but falls back to Default when
// no config file exists. Parse and validation errors are still returned.
func LoadOrDefault() error {
	err := LoadAppConfig()
	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	cfg := Default()
	if err := finish(&cfg); err != nil {
		return err
	}
	Config = cfg
	return nil
}

func finish(cfg *AppConfig) error {
	// .env is optional
	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return err
	}
	cfg.applyDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *AppConfig) applyEnv() error {
	if v := os.Getenv("MTA_API_KEY"); v != "" {
		c.GTFSRT.APIKey = v
	}
	if v := os.Getenv("SUBWAY_MAPPER_PORT"); v != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || port <= 0 {
			return fmt.Errorf("invalid SUBWAY_MAPPER_PORT: %q", v)
		}
		c.Server.Port = port
	}
	return nil
}

func (c *AppConfig) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.RequestTimeoutMS == 0 {
		c.Server.RequestTimeoutMS = DefaultRequestTimeoutMS
	}
	if c.GTFSRT.Line == "" {
		c.GTFSRT.Line = DefaultLine
	}
	if c.GTFSRT.TimeoutMS == 0 {
		c.GTFSRT.TimeoutMS = DefaultTimeoutMS
	}
	if c.GTFS.StaticPath == "" {
		c.GTFS.StaticPath = DefaultStaticPath
	}
	if c.Cache.Path == "" {
		c.Cache.Path = DefaultCachePath
	}
}
