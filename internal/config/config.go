// Package config loads YAML configuration with environment overrides for
// the store service and the client core.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config location relative to the working
// directory.
const ConfigPath = "config.yaml"

// FileConfig represents store-service configuration loaded from YAML.
type FileConfig struct {
	Port             string `yaml:"port"`
	LogLevel         string `yaml:"logLevel"`
	DataFile         string `yaml:"dataFile"`
	DatabaseURL      string `yaml:"databaseURL"`
	MaxDocumentBytes int64  `yaml:"maxDocumentBytes"`
	RedisAddr        string `yaml:"redisAddr"`
	WritesPerMinute  int    `yaml:"writesPerMinute"`
}

// Load reads config from path (defaults to config.yaml).
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	// Override with environment variables
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("FOODCYCLE_DATA_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("FOODCYCLE_MAX_DOCUMENT_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.MaxDocumentBytes = n
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("FOODCYCLE_WRITES_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.WritesPerMinute = n
		}
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateConfig(cfg FileConfig) error {
	if cfg.Port == "" {
		return errors.New("config: port is required (set in config.yaml)")
	}
	if cfg.DataFile == "" && cfg.DatabaseURL == "" {
		return errors.New("config: dataFile or databaseURL is required (set in config.yaml)")
	}
	if cfg.MaxDocumentBytes < 0 {
		return errors.New("config: maxDocumentBytes must not be negative")
	}
	if cfg.WritesPerMinute > 0 && cfg.RedisAddr == "" {
		return errors.New("config: redisAddr is required when writesPerMinute is set")
	}
	return nil
}
