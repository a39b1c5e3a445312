package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/VikasCh3108/AI-Moderation11/internal/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvOpenAIKey, EnvGeminiKey, EnvProvider, EnvModel, EnvBaseURL, EnvDBPath} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvOpenAIKey, "sk-from-env")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, llm.ProviderOpenAI, cfg.Provider.Type)
	assert.Equal(t, "sk-from-env", cfg.Provider.APIKey)
	assert.Equal(t, DefaultServerAddr, cfg.Server.Addr)
	assert.Empty(t, cfg.Database.Path)
}

func TestLoadConfig_File(t *testing.T) {
	clearEnv(t)
	t.Setenv("MY_GROQ_KEY", "gsk-123")

	path := writeConfig(t, `
provider:
  type: openai
  api_key: ${MY_GROQ_KEY}
  model_name: llama-3.3-70b-versatile
  base_url: https://api.groq.com/openai/v1/
  timeout: 30s
  requests_per_minute: 20
database:
  path: ./data/runs.db
server:
  addr: ":9000"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "gsk-123", cfg.Provider.APIKey)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Provider.ModelName)
	assert.Equal(t, "https://api.groq.com/openai/v1/", cfg.Provider.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, 20, cfg.Provider.RequestsPerMinute)
	assert.Equal(t, "./data/runs.db", cfg.Database.Path)
	assert.Equal(t, ":9000", cfg.Server.Addr)
}

func TestLoadConfig_EmptyFile(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderOpenAI, cfg.Provider.Type)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvProvider, "gemini")
	t.Setenv(EnvGeminiKey, "gem-key")
	t.Setenv(EnvOpenAIKey, "sk-ignored")
	t.Setenv(EnvModel, "gemini-1.5-pro")
	t.Setenv(EnvDBPath, "/tmp/history.db")

	cfg, err := LoadConfig(writeConfig(t, "provider:\n  type: openai\n"))
	require.NoError(t, err)

	assert.Equal(t, llm.ProviderGemini, cfg.Provider.Type)
	assert.Equal(t, "gem-key", cfg.Provider.APIKey)
	assert.Equal(t, "gemini-1.5-pro", cfg.Provider.ModelName)
	assert.Equal(t, "/tmp/history.db", cfg.Database.Path)
	assert.Equal(t, EnvGeminiKey, cfg.KeyEnvVar())
}

func TestLoadConfig_MissingKeyIsNotAnError(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Provider.APIKey)
	assert.Equal(t, "Not found", cfg.MaskedKey())
}

func TestLoadConfig_Errors(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "provider:\n  type: anthropic\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "provider:\n  requests_per_minute: -1\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "unknown_section: true\n"))
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, ".env")))

	const key = "MODERATOR_DOTENV_TEST"
	t.Cleanup(func() { os.Unsetenv(key) })

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=gpt-4o-mini\n"), 0o644))
	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "gpt-4o-mini", os.Getenv(key))
}

func TestMaskedKey(t *testing.T) {
	cfg := &Config{}
	cfg.Provider.APIKey = "sk-abcdefghijklmnop"
	assert.Equal(t, "sk-abcdefg...", cfg.MaskedKey())

	cfg.Provider.APIKey = "short"
	assert.Equal(t, "sh...", cfg.MaskedKey())
}
