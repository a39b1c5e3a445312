package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/VikasCh3108/AI-Moderation11/internal/llm"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	Provider llm.ProviderConfig `yaml:"provider"`

	Database struct {
		Path string `yaml:"path"` // empty disables run history
	} `yaml:"database"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
}

const (
	DefaultServerAddr = ":8080"

	// API key variables per provider
	EnvOpenAIKey = "OPENAI_API_KEY"
	EnvGeminiKey = "GEMINI_API_KEY"

	EnvProvider = "MODERATOR_PROVIDER"
	EnvModel    = "MODERATOR_MODEL"
	EnvBaseURL  = "MODERATOR_BASE_URL"
	EnvDBPath   = "MODERATOR_DB_PATH"
)

// LoadDotEnv loads variables from path into the environment without
// overriding ones already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// LoadConfig loads configuration from a YAML file. An empty path skips the
// file and uses defaults plus environment.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	if configPath != "" {
		file, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer file.Close()

		decoder := yaml.NewDecoder(file)
		decoder.KnownFields(true)
		if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	config.applyEnvOverrides()
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides expands ${VAR} references and applies MODERATOR_* variables
func (c *Config) applyEnvOverrides() {
	c.Provider.APIKey = os.ExpandEnv(c.Provider.APIKey)
	c.Provider.BaseURL = os.ExpandEnv(c.Provider.BaseURL)
	c.Database.Path = os.ExpandEnv(c.Database.Path)

	if v := os.Getenv(EnvProvider); v != "" {
		c.Provider.Type = llm.ProviderType(v)
	}
	if v := os.Getenv(EnvModel); v != "" {
		c.Provider.ModelName = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		c.Database.Path = v
	}
}

func (c *Config) applyDefaults() {
	if c.Provider.Type == "" {
		c.Provider.Type = llm.ProviderOpenAI
	}

	// the key comes from the provider's own variable unless set explicitly
	if c.Provider.APIKey == "" {
		switch c.Provider.Type {
		case llm.ProviderOpenAI:
			c.Provider.APIKey = os.Getenv(EnvOpenAIKey)
		case llm.ProviderGemini:
			c.Provider.APIKey = os.Getenv(EnvGeminiKey)
		}
	}

	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
}

// Validate checks values that would otherwise fail late
func (c *Config) Validate() error {
	switch c.Provider.Type {
	case llm.ProviderOpenAI, llm.ProviderGemini:
	default:
		return fmt.Errorf("unknown provider type %q", c.Provider.Type)
	}
	if c.Provider.RequestsPerMinute < 0 {
		return fmt.Errorf("requests_per_minute must not be negative")
	}
	if c.Provider.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// KeyEnvVar returns the environment variable holding the provider's key
func (c *Config) KeyEnvVar() string {
	if c.Provider.Type == llm.ProviderGemini {
		return EnvGeminiKey
	}
	return EnvOpenAIKey
}

// MaskedKey returns the first 10 characters of the API key for display
func (c *Config) MaskedKey() string {
	if c.Provider.APIKey == "" {
		return "Not found"
	}
	if len(c.Provider.APIKey) <= 10 {
		return c.Provider.APIKey[:len(c.Provider.APIKey)/2] + "..."
	}
	return c.Provider.APIKey[:10] + "..."
}
