package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GOOGLE_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY",
		"ANTHROPIC_API_KEY", "OLLAMA_HOST", "ASKSQL_PROVIDER", "ASKSQL_DB",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)

	assert.Equal(t, DefaultDBPath, cfg.DBPath)
	assert.Equal(t, ProviderGemini, cfg.AI.Provider)
	assert.Equal(t, "gemini-2.5-pro", cfg.AI.Gemini.Model)
	assert.Empty(t, cfg.AI.Gemini.APIKey)
	assert.Equal(t, 60*time.Second, cfg.Timeout())
}

func TestLoad_FileValues(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"db_path": "/tmp/school.db",
		"timeout_seconds": 5,
		"ai": {"provider": "ollama", "ollama": {"host": "http://box:11434", "model": "qwen"}}
	}`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/school.db", cfg.DBPath)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Equal(t, ProviderOllama, cfg.AI.Provider)
	assert.Equal(t, "http://box:11434", cfg.AI.Ollama.Host)
	assert.Equal(t, "qwen", cfg.AI.Ollama.Model)
	// Untouched sections keep their defaults.
	assert.Equal(t, "gemini-2.5-pro", cfg.AI.Gemini.Model)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ai": {"gemini": {"api_key": "from-file"}}}`), 0600))

	t.Setenv("GEMINI_API_KEY", "gemini-env")
	t.Setenv("GOOGLE_API_KEY", "google-env")
	t.Setenv("ASKSQL_DB", "env.db")
	t.Setenv("ASKSQL_PROVIDER", "placeholder")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "google-env", cfg.AI.Gemini.APIKey)
	assert.Equal(t, "env.db", cfg.DBPath)
	assert.Equal(t, ProviderPlaceholder, cfg.AI.Provider)
}

func TestLoad_InvalidJSON(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveAppConfig_RoundTripsThroughHome(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("ASKSQL_HOME", home)

	cfg := Default()
	cfg.DBPath = "saved.db"
	path, err := SaveAppConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.json"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadAppConfig()
	require.NoError(t, err)
	assert.Equal(t, "saved.db", loaded.DBPath)
}

func TestAIConfig_SetModelAndMask(t *testing.T) {
	ai := DefaultAIConfig()
	ai.SetModel("gemini-2.0-flash")
	assert.Equal(t, "gemini-2.0-flash", ai.Gemini.Model)

	ai.Gemini.APIKey = "AIzaSyExampleKey1234"
	ai.OpenAI.APIKey = "short"
	masked := ai.Masked()
	assert.Equal(t, "AIza…1234", masked.Gemini.APIKey)
	assert.Equal(t, "****", masked.OpenAI.APIKey)
	assert.Empty(t, masked.Anthropic.APIKey)
	// The original is not modified.
	assert.Equal(t, "AIzaSyExampleKey1234", ai.Gemini.APIKey)
}
