package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/MimeLyc/vtt-batch-translator/pkg/log"
)

// Config holds all application configuration
// Supports environment variables with sensible defaults; a .env file in
// the working directory is loaded first when present.
//
// Environment Variables:
// LLM Configuration:
// - LLM_API_KEY: API key for the LLM provider (required)
// - LLM_API_URL: API endpoint URL (default: https://api.deepseek.com/v1)
// - LLM_MODEL: Model name to use (default: deepseek-chat)
// - LLM_MAX_TOKENS: Maximum tokens for responses (default: 2048)
// - LLM_TEMPERATURE: Temperature for responses (default: 0.3)
// - LLM_TIMEOUT: Request timeout in seconds (default: 60)
// - LLM_SITE_URL: Site URL for HTTP referer header (optional)
// - LLM_APP_NAME: Application name for X-Title header (optional)
//
// Translate Configuration:
// - SOURCE_LANG: Source language code; auto-detected when empty
// - TARGET_LANG: Target language code (default: kk)
// - BATCH_SIZE: Maximum lines per translation request (default: 10)
// - BATCH_MAX_CHARS: Maximum characters per translation request (default: 4000)
// - TRANSLATE_MAX_ATTEMPTS: Attempts per batch before giving up (default: 3)
// - TRANSLATE_CONCURRENCY: Batches in flight at once (default: 1)
//
// Watch Configuration:
// - WATCH_DIRS: Comma-separated media directories to scan (default: /media)
// - CRON_EXPR: Scan schedule (default: 0 0 * * *)
// - HISTORY_DB: Run history database path (default: <data dir>/vttrans.db)
//
// System Configuration:
// - LOG_LEVEL: debug, info, warn, error or fatal (default: info)

type Config struct {
	// LLM Configuration
	LLM LLMConfig `json:"llm"`

	// Translate Configuration
	Translate TranslateConfig `json:"translate"`

	// Watch Configuration
	Watch WatchConfig `json:"watch"`

	// System Configuration
	System SystemConfig `json:"system"`
}

// LLMConfig holds the configuration for the LLM client
type LLMConfig struct {
	APIKey      string  `json:"api_key"`
	APIURL      string  `json:"api_url"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	Timeout     int     `json:"timeout"`
	SiteURL     string  `json:"site_url"`
	AppName     string  `json:"app_name"`
}

// TranslateConfig holds batching and language configuration
type TranslateConfig struct {
	SourceLanguage language.Tag `json:"source_language"`
	TargetLanguage language.Tag `json:"target_language"`
	BatchSize      int          `json:"batch_size"`
	MaxBatchChars  int          `json:"max_batch_chars"`
	MaxAttempts    int          `json:"max_attempts"`
	Concurrency    int          `json:"concurrency"`
}

// WatchConfig holds the scheduled scan configuration
type WatchConfig struct {
	Dirs      []string `json:"dirs"`
	CronExpr  string   `json:"cron_expr"`
	HistoryDB string   `json:"history_db"`
}

// SystemConfig holds the system configuration
type SystemConfig struct {
	LogLevel string `json:"log_level"`
}

// Option is a function type for configuring Config
type Option func(*Config)

// New creates a Config from the environment, loading .env first when present
func New(opts ...Option) (*Config, error) {
	// Best-effort; a missing .env file is fine
	_ = godotenv.Load()

	sourceLang, err := parseLanguage(getEnvString("SOURCE_LANG", ""), language.Und)
	if err != nil {
		return nil, err
	}
	targetLang, err := parseLanguage(getEnvString("TARGET_LANG", "kk"), language.Und)
	if err != nil {
		return nil, err
	}

	config := &Config{
		LLM: LLMConfig{
			APIKey:      getEnvString("LLM_API_KEY", ""),
			APIURL:      getEnvString("LLM_API_URL", "https://api.deepseek.com/v1"),
			Model:       getEnvString("LLM_MODEL", "deepseek-chat"),
			MaxTokens:   getEnvInt("LLM_MAX_TOKENS", 2048),
			Temperature: getEnvFloat("LLM_TEMPERATURE", 0.3),
			Timeout:     getEnvInt("LLM_TIMEOUT", 60),
			SiteURL:     getEnvString("LLM_SITE_URL", ""),
			AppName:     getEnvString("LLM_APP_NAME", ""),
		},
		Translate: TranslateConfig{
			SourceLanguage: sourceLang,
			TargetLanguage: targetLang,
			BatchSize:      getEnvInt("BATCH_SIZE", 10),
			MaxBatchChars:  getEnvInt("BATCH_MAX_CHARS", 4000),
			MaxAttempts:    getEnvInt("TRANSLATE_MAX_ATTEMPTS", 3),
			Concurrency:    getEnvInt("TRANSLATE_CONCURRENCY", 1),
		},
		Watch: WatchConfig{
			Dirs:      splitDirs(getEnvString("WATCH_DIRS", "/media")),
			CronExpr:  getEnvString("CRON_EXPR", "0 0 * * *"),
			HistoryDB: getEnvString("HISTORY_DB", defaultHistoryDB()),
		},
		System: SystemConfig{
			LogLevel: getEnvString("LOG_LEVEL", "info"),
		},
	}

	// Apply custom options
	for _, opt := range opts {
		opt(config)
	}

	log.Debug("Config: %+v", config)

	// Validate required configuration
	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// validate checks if all required configuration is properly set
func (c *Config) validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("LLM_API_KEY is required")
	}
	if c.Translate.TargetLanguage == language.Und {
		return fmt.Errorf("TARGET_LANG is required")
	}
	return nil
}

// parseLanguage parses a language code, returning fallback for empty input
func parseLanguage(code string, fallback language.Tag) (language.Tag, error) {
	if strings.TrimSpace(code) == "" {
		return fallback, nil
	}
	tag, err := language.Parse(code)
	if err != nil {
		return language.Und, fmt.Errorf("invalid language code %q: %w", code, err)
	}
	return tag, nil
}

func splitDirs(value string) []string {
	parts := strings.Split(value, ",")
	dirs := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			dirs = append(dirs, part)
		}
	}
	return dirs
}

func defaultHistoryDB() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "vttrans.db"
	}
	return filepath.Join(home, ".vttrans", "vttrans.db")
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat gets a float value from environment variables with default
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
