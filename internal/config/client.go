package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Storage backends the client core can persist records to.
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageRedis  = "redis"
)

// ClientConfig represents client-core configuration loaded from YAML.
type ClientConfig struct {
	Storage     string `yaml:"storage"`
	StateDir    string `yaml:"stateDir"`
	RedisAddr   string `yaml:"redisAddr"`
	SyncBaseURL string `yaml:"syncBaseURL"`
	DebounceMs  int    `yaml:"debounceMs"`
}

// LoadClient reads client config from path (defaults to config.yaml).
func LoadClient(path string) (ClientConfig, error) {
	cfg := ClientConfig{}
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
	if v := os.Getenv("FOODCYCLE_STORAGE"); v != "" {
		cfg.Storage = v
	}
	if v := os.Getenv("FOODCYCLE_STATE_DIR"); v != "" {
		cfg.StateDir = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("FOODCYCLE_SYNC_URL"); v != "" {
		cfg.SyncBaseURL = v
	}
	if v := os.Getenv("FOODCYCLE_DEBOUNCE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DebounceMs = n
		}
	}
	if err := validateClientConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateClientConfig(cfg ClientConfig) error {
	switch cfg.Storage {
	case StorageMemory, StorageFile, StorageRedis:
	case "":
		return errors.New("config: storage is required (memory, file or redis)")
	default:
		return fmt.Errorf("config: unknown storage %q (want memory, file or redis)", cfg.Storage)
	}
	if cfg.Storage == StorageFile && cfg.StateDir == "" {
		return errors.New("config: stateDir is required for file storage")
	}
	if cfg.Storage == StorageRedis && cfg.RedisAddr == "" {
		return errors.New("config: redisAddr is required for redis storage")
	}
	if cfg.DebounceMs < 0 {
		return errors.New("config: debounceMs must not be negative")
	}
	return nil
}
