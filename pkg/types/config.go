package types

// Config represents the overall application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server" json:"server"`
	Storage    StorageConfig    `yaml:"storage" json:"storage"`
	Providers  ProvidersConfig  `yaml:"providers" json:"providers"`
	Generation GenerationConfig `yaml:"generation" json:"generation"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host         string `yaml:"host" json:"host"`
	Port         int    `yaml:"port" json:"port"`
	ReadTimeout  int    `yaml:"read_timeout" json:"read_timeout"`   // seconds
	WriteTimeout int    `yaml:"write_timeout" json:"write_timeout"` // seconds
}

// StorageConfig defines storage adapter settings
type StorageConfig struct {
	Adapter string           `yaml:"adapter" json:"adapter"` // "local" or "s3"
	Local   LocalStorageOpts `yaml:"local" json:"local"`
	S3      S3StorageOpts    `yaml:"s3" json:"s3"`
}

// LocalStorageOpts configures the local filesystem adapter
type LocalStorageOpts struct {
	BasePath string `yaml:"base_path" json:"base_path"`
}

// S3StorageOpts configures the S3-compatible adapter
type S3StorageOpts struct {
	Endpoint        string `yaml:"endpoint" json:"endpoint"`
	Region          string `yaml:"region" json:"region"`
	Bucket          string `yaml:"bucket" json:"bucket"`
	AccessKeyID     string `yaml:"access_key_id" json:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key" json:"secret_access_key"`
	UseSSL          bool   `yaml:"use_ssl" json:"use_ssl"`
}

// ProvidersConfig holds all provider configurations
type ProvidersConfig struct {
	LLM []LLMProviderConfig `yaml:"llm" json:"llm"`
}

// LLMProviderConfig configures an LLM provider
type LLMProviderConfig struct {
	Name     string            `yaml:"name" json:"name"`
	Enabled  bool              `yaml:"enabled" json:"enabled"`
	Endpoint string            `yaml:"endpoint" json:"endpoint"`
	APIKey   string            `yaml:"api_key" json:"api_key"`
	Model    string            `yaml:"model" json:"model"`
	Options  map[string]string `yaml:"options" json:"options"`
}

// GenerationConfig controls how study material is produced from a document
type GenerationConfig struct {
	BasicCount    int `yaml:"basic_count" json:"basic_count"`       // questions in the basic bucket
	AdvancedCount int `yaml:"advanced_count" json:"advanced_count"` // questions in the advanced bucket
	ChoiceCount   int `yaml:"choice_count" json:"choice_count"`     // choices per question
	MaxTextChars  int `yaml:"max_text_chars" json:"max_text_chars"` // extracted text is truncated to this length before prompting
}
