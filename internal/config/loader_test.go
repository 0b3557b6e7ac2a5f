package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/minjekim/QuizDesk/pkg/types"
)

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test.yaml")

	configContent := `
server:
  host: "localhost"
  port: 9090
  read_timeout: 10
  write_timeout: 60

storage:
  adapter: "local"
  local:
    base_path: "/tmp/quizdesk-test"

providers:
  llm:
    - name: "openai"
      enabled: true
      endpoint: "https://api.openai.com/v1"
      model: "gpt-4o-mini"

generation:
  basic_count: 5
  advanced_count: 5
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Host != "localhost" {
		t.Errorf("Expected host 'localhost', got '%s'", cfg.Server.Host)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Storage.Adapter != "local" {
		t.Errorf("Expected adapter 'local', got '%s'", cfg.Storage.Adapter)
	}
	if len(cfg.Providers.LLM) != 1 || cfg.Providers.LLM[0].Model != "gpt-4o-mini" {
		t.Errorf("LLM provider config not loaded: %+v", cfg.Providers.LLM)
	}
	if cfg.Generation.BasicCount != 5 {
		t.Errorf("Expected basic_count 5, got %d", cfg.Generation.BasicCount)
	}
	// Unset generation fields should get defaults
	if cfg.Generation.ChoiceCount != 4 {
		t.Errorf("Expected default choice_count 4, got %d", cfg.Generation.ChoiceCount)
	}
	if cfg.Generation.MaxTextChars != 120000 {
		t.Errorf("Expected default max_text_chars 120000, got %d", cfg.Generation.MaxTextChars)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*types.Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			modify:  func(c *types.Config) {},
			wantErr: false,
		},
		{
			name: "invalid port",
			modify: func(c *types.Config) {
				c.Server.Port = 0
			},
			wantErr: true,
		},
		{
			name: "invalid storage adapter",
			modify: func(c *types.Config) {
				c.Storage.Adapter = "ftp"
			},
			wantErr: true,
		},
		{
			name: "missing local base path",
			modify: func(c *types.Config) {
				c.Storage.Adapter = "local"
				c.Storage.Local.BasePath = ""
			},
			wantErr: true,
		},
		{
			name: "relative local base path",
			modify: func(c *types.Config) {
				c.Storage.Adapter = "local"
				c.Storage.Local.BasePath = "data"
			},
			wantErr: true,
		},
		{
			name: "missing s3 bucket",
			modify: func(c *types.Config) {
				c.Storage.Adapter = "s3"
				c.Storage.S3.Region = "us-east-1"
				c.Storage.S3.Bucket = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefault()
			tt.modify(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test.yaml")

	configContent := `
server:
  host: "localhost"
  port: 5000
storage:
  adapter: "local"
  local:
    base_path: "/tmp/quizdesk-test"
providers:
  llm:
    - name: "openai"
      enabled: true
      endpoint: "https://api.openai.com/v1"
      model: "gpt-4o-mini"
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	os.Setenv("QD_SERVER_PORT", "9999")
	os.Setenv("QD_STORAGE_LOCAL_BASE_PATH", "/tmp/override")
	os.Setenv("QD_LLM_OPENAI_API_KEY", "sk-test")
	defer func() {
		os.Unsetenv("QD_SERVER_PORT")
		os.Unsetenv("QD_STORAGE_LOCAL_BASE_PATH")
		os.Unsetenv("QD_LLM_OPENAI_API_KEY")
	}()

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("Expected port 9999 from env override, got %d", cfg.Server.Port)
	}
	if cfg.Storage.Local.BasePath != "/tmp/override" {
		t.Errorf("Expected base_path '/tmp/override' from env override, got '%s'", cfg.Storage.Local.BasePath)
	}
	if cfg.Providers.LLM[0].APIKey != "sk-test" {
		t.Errorf("Expected API key from env override, got '%s'", cfg.Providers.LLM[0].APIKey)
	}
}

func TestGetDefault(t *testing.T) {
	cfg := GetDefault()
	if cfg == nil {
		t.Fatal("GetDefault() returned nil")
	}
	if cfg.Server.Port <= 0 {
		t.Error("Default config has invalid port")
	}
	if cfg.Storage.Adapter == "" {
		t.Error("Default config has empty storage adapter")
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}
