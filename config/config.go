// Package config loads askSQL settings.
//
// Settings are stored in ~/.asksql/config.json. A .env file in the
// working directory is loaded first (GOOGLE_API_KEY="..."), and
// environment variables always override values from the file.
// The credential is read once at process start; nothing re-reads it.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// DefaultDBPath is the SQLite file used when nothing else is configured.
const DefaultDBPath = "student.db"

const defaultTimeoutSeconds = 60

// AppConfig is the top-level config file structure (~/.asksql/config.json).
type AppConfig struct {
	DBPath         string   `json:"db_path"`
	TimeoutSeconds int      `json:"timeout_seconds"`
	AI             AIConfig `json:"ai"`
}

// Timeout is the deadline applied to a single model request.
func (c *AppConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Dir returns the askSQL home directory. ASKSQL_HOME overrides ~/.asksql.
func Dir() (string, error) {
	if dir := os.Getenv("ASKSQL_HOME"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".asksql"), nil
}

// LoadAppConfig loads .env, then ~/.asksql/config.json, then applies
// environment overrides. A missing config file yields defaults.
func LoadAppConfig() (*AppConfig, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	dir, err := Dir()
	if err != nil {
		cfg := defaultAppConfig()
		applyEnv(cfg)
		return cfg, nil
	}
	return Load(filepath.Join(dir, "config.json"))
}

// Load reads the config file at path and applies environment overrides.
func Load(path string) (*AppConfig, error) {
	cfg := defaultAppConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv lets environment variables override file config.
func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.AI.Gemini.APIKey = v
	}
	// GOOGLE_API_KEY wins over GEMINI_API_KEY when both are set.
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		cfg.AI.Gemini.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.AI.OpenAI.APIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.AI.Anthropic.APIKey = v
	}
	if v := os.Getenv("OLLAMA_HOST"); v != "" {
		cfg.AI.Ollama.Host = v
	}
	if v := os.Getenv("ASKSQL_PROVIDER"); v != "" {
		cfg.AI.Provider = v
	}
	if v := os.Getenv("ASKSQL_DB"); v != "" {
		cfg.DBPath = v
	}
}

// SaveAppConfig writes the config to ~/.asksql/config.json and returns the path.
func SaveAppConfig(cfg *AppConfig) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "config.json")
	return path, Save(path, cfg)
}

// Save writes cfg as indented JSON to path, creating the parent directory.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// Default returns the built-in configuration without touching disk or env.
func Default() *AppConfig {
	return defaultAppConfig()
}

func defaultAppConfig() *AppConfig {
	return &AppConfig{
		DBPath:         DefaultDBPath,
		TimeoutSeconds: defaultTimeoutSeconds,
		AI:             DefaultAIConfig(),
	}
}
