package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is read when CONFIG_PATH is unset. It may be absent.
const DefaultPath = "./config.yaml"

// Load reads configuration with priority ENV > YAML > env-default tags, then
// validates it. The YAML file is CONFIG_PATH, or DefaultPath when that
// variable is unset; only the explicit path must exist.
func Load() (*Config, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return LoadFile(path)
	}
	return load(DefaultPath, false)
}

// LoadFile is Load with an explicit path. A missing file is an error.
func LoadFile(path string) (*Config, error) {
	return load(path, true)
}

func load(path string, explicit bool) (*Config, error) {
	var cfg Config

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Describe lists every environment variable the configuration reads, with
// its default and description.
func Describe() (string, error) {
	header := "Environment variables (CONFIG_PATH names an optional YAML file, default " + DefaultPath + "):"
	return cleanenv.GetDescription(&Config{}, &header)
}
