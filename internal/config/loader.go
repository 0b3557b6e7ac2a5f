package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minjekim/QuizDesk/pkg/types"
	"gopkg.in/yaml.v3"
)

// Load reads and parses the configuration file
// It also supports environment variable overrides with QD_ prefix
func Load(configPath string) (*types.Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg types.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks if the configuration is valid and fills generation defaults
func Validate(cfg *types.Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}

	if cfg.Storage.Adapter != "local" && cfg.Storage.Adapter != "s3" {
		return fmt.Errorf("invalid storage adapter: %s (must be 'local' or 's3')", cfg.Storage.Adapter)
	}

	if cfg.Storage.Adapter == "local" {
		if cfg.Storage.Local.BasePath == "" {
			return fmt.Errorf("local storage base_path is required")
		}
		if !filepath.IsAbs(cfg.Storage.Local.BasePath) {
			return fmt.Errorf("local storage base_path must be absolute: %s", cfg.Storage.Local.BasePath)
		}
	}

	if cfg.Storage.Adapter == "s3" {
		if cfg.Storage.S3.Bucket == "" {
			return fmt.Errorf("s3 bucket is required")
		}
		if cfg.Storage.S3.Region == "" {
			return fmt.Errorf("s3 region is required")
		}
	}

	// Generation defaults
	if cfg.Generation.BasicCount <= 0 {
		cfg.Generation.BasicCount = 15
	}
	if cfg.Generation.AdvancedCount <= 0 {
		cfg.Generation.AdvancedCount = 15
	}
	if cfg.Generation.ChoiceCount <= 0 {
		cfg.Generation.ChoiceCount = 4
	}
	if cfg.Generation.MaxTextChars <= 0 {
		cfg.Generation.MaxTextChars = 120000
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides
// Environment variables are prefixed with QD_ (QuizDesk)
func applyEnvOverrides(cfg *types.Config) {
	// Server overrides
	if val := os.Getenv("QD_SERVER_HOST"); val != "" {
		cfg.Server.Host = val
	}
	if val := os.Getenv("QD_SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &cfg.Server.Port)
	}

	// Storage overrides
	if val := os.Getenv("QD_STORAGE_ADAPTER"); val != "" {
		cfg.Storage.Adapter = val
	}
	if val := os.Getenv("QD_STORAGE_LOCAL_BASE_PATH"); val != "" {
		cfg.Storage.Local.BasePath = val
	}
	if val := os.Getenv("QD_STORAGE_S3_BUCKET"); val != "" {
		cfg.Storage.S3.Bucket = val
	}
	if val := os.Getenv("QD_STORAGE_S3_REGION"); val != "" {
		cfg.Storage.S3.Region = val
	}
	if val := os.Getenv("QD_STORAGE_S3_ENDPOINT"); val != "" {
		cfg.Storage.S3.Endpoint = val
	}
	if val := os.Getenv("QD_STORAGE_S3_ACCESS_KEY_ID"); val != "" {
		cfg.Storage.S3.AccessKeyID = val
	}
	if val := os.Getenv("QD_STORAGE_S3_SECRET_ACCESS_KEY"); val != "" {
		cfg.Storage.S3.SecretAccessKey = val
	}

	// Per-provider API key / endpoint overrides, e.g. QD_LLM_OPENAI_API_KEY
	for i := range cfg.Providers.LLM {
		prefix := fmt.Sprintf("QD_LLM_%s_", strings.ToUpper(cfg.Providers.LLM[i].Name))
		if val := os.Getenv(prefix + "API_KEY"); val != "" {
			cfg.Providers.LLM[i].APIKey = val
		}
		if val := os.Getenv(prefix + "ENDPOINT"); val != "" {
			cfg.Providers.LLM[i].Endpoint = val
		}
		if val := os.Getenv(prefix + "MODEL"); val != "" {
			cfg.Providers.LLM[i].Model = val
		}
	}
}

// GetDefault returns a default configuration
func GetDefault() *types.Config {
	return &types.Config{
		Server: types.ServerConfig{
			Host:         "127.0.0.1",
			Port:         5000,
			ReadTimeout:  15,
			WriteTimeout: 120,
		},
		Storage: types.StorageConfig{
			Adapter: "local",
			Local: types.LocalStorageOpts{
				BasePath: "/var/lib/quizdesk/data",
			},
		},
		Generation: types.GenerationConfig{
			BasicCount:    15,
			AdvancedCount: 15,
			ChoiceCount:   4,
			MaxTextChars:  120000,
		},
	}
}
