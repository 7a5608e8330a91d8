package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/triage/pkg/triage/internalerr"
)

// Config is the triaged service configuration.
type Config struct {
	Port           string   `yaml:"port"`
	DataPath       string   `yaml:"data_path"`
	TranscriptDB   string   `yaml:"transcript_db"`
	TopK           int      `yaml:"top_k"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		Port:           "8080",
		DataPath:       "symptoms-DO.tsv",
		TranscriptDB:   "transcripts.db",
		TopK:           5,
		AllowedOrigins: []string{"*"},
	}
}

// Load reads YAML configuration from path (empty path means defaults
// only) and then applies environment overrides: PORT, DATA_PATH,
// TRANSCRIPT_DB, TOP_K.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks for values the service cannot start with.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must not be empty: %w", internalerr.ErrInvalidConfig)
	}
	if c.DataPath == "" {
		return fmt.Errorf("data_path must not be empty: %w", internalerr.ErrInvalidConfig)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive: %w", internalerr.ErrInvalidConfig)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DATA_PATH"); v != "" {
		cfg.DataPath = v
	}
	if v := os.Getenv("TRANSCRIPT_DB"); v != "" {
		cfg.TranscriptDB = v
	}
	if v := os.Getenv("TOP_K"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TopK = n
		}
	}
}
