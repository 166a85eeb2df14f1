package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origHost := os.Getenv("DB_HOST")
	defer os.Setenv("DB_HOST", origHost)

	os.Setenv("DB_HOST", "test-host")
	os.Setenv("DB_MAX_OPEN_CONNS", "20")
	os.Setenv("OPENAI_API_KEY", "sk-test")
	os.Setenv("MAX_FREE_ANALYSES", "5")
	defer func() {
		os.Unsetenv("DB_MAX_OPEN_CONNS")
		os.Unsetenv("OPENAI_API_KEY")
		os.Unsetenv("MAX_FREE_ANALYSES")
	}()

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, "sk-test", cfg.Providers.OpenAIAPIKey)
	assert.Equal(t, "gpt-4", cfg.Providers.OpenAIModel)
	assert.Equal(t, 5, cfg.Quota.MaxFreeAnalyses)
}

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("GEMINI_API_KEY")
	os.Unsetenv("SMTP_PORT")

	cfg := Load()

	assert.Empty(t, cfg.Providers.GeminiAPIKey)
	assert.Equal(t, "gemini-1.5-flash", cfg.Providers.GeminiModel)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Equal(t, 3, cfg.Quota.MaxFreeAnalyses)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 7, getEnvInt(key, 7))
}
