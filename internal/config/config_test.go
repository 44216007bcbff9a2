package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv("LLM_API_KEY", "test-key")
	t.Setenv("SOURCE_LANG", "")
	t.Setenv("TARGET_LANG", "")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.LLM.APIKey)
	assert.Equal(t, "https://api.deepseek.com/v1", cfg.LLM.APIURL)
	assert.Equal(t, "deepseek-chat", cfg.LLM.Model)
	assert.Equal(t, language.Und, cfg.Translate.SourceLanguage)
	assert.Equal(t, language.Make("kk"), cfg.Translate.TargetLanguage)
	assert.Equal(t, 10, cfg.Translate.BatchSize)
	assert.Equal(t, 4000, cfg.Translate.MaxBatchChars)
	assert.Equal(t, 3, cfg.Translate.MaxAttempts)
	assert.Equal(t, 1, cfg.Translate.Concurrency)
	assert.Equal(t, "0 0 * * *", cfg.Watch.CronExpr)
	assert.Equal(t, "info", cfg.System.LogLevel)
}

func TestNewEnvOverrides(t *testing.T) {
	t.Setenv("LLM_API_KEY", "test-key")
	t.Setenv("SOURCE_LANG", "ru")
	t.Setenv("TARGET_LANG", "en")
	t.Setenv("BATCH_SIZE", "25")
	t.Setenv("TRANSLATE_CONCURRENCY", "4")
	t.Setenv("WATCH_DIRS", "/a, /b ,,/c")
	t.Setenv("LLM_TEMPERATURE", "0.7")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, language.Make("ru"), cfg.Translate.SourceLanguage)
	assert.Equal(t, language.Make("en"), cfg.Translate.TargetLanguage)
	assert.Equal(t, 25, cfg.Translate.BatchSize)
	assert.Equal(t, 4, cfg.Translate.Concurrency)
	assert.Equal(t, []string{"/a", "/b", "/c"}, cfg.Watch.Dirs)
	assert.Equal(t, 0.7, cfg.LLM.Temperature)
}

func TestNewRequiresAPIKey(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("TARGET_LANG", "kk")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_API_KEY")
}

func TestNewRejectsInvalidLanguage(t *testing.T) {
	t.Setenv("LLM_API_KEY", "test-key")
	t.Setenv("TARGET_LANG", "!!invalid!!")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "!!invalid!!")
}

func TestNewAppliesOptions(t *testing.T) {
	t.Setenv("LLM_API_KEY", "test-key")
	t.Setenv("TARGET_LANG", "kk")

	cfg, err := New(func(c *Config) {
		c.Translate.BatchSize = 99
	})
	require.NoError(t, err)
	assert.Equal(t, 99, cfg.Translate.BatchSize)
}

func TestParseLanguage(t *testing.T) {
	tag, err := parseLanguage("", language.Und)
	require.NoError(t, err)
	assert.Equal(t, language.Und, tag)

	tag, err = parseLanguage("kk", language.Und)
	require.NoError(t, err)
	assert.Equal(t, language.Make("kk"), tag)

	_, err = parseLanguage("???", language.Und)
	assert.Error(t, err)
}
