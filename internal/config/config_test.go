package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromJSONFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.json")
	content := `{
		"port": 9090,
		"parser_url": "http://localhost:8000/parse",
		"database_url": "postgres://localhost:5432/autofill"
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "http://localhost:8000/parse", cfg.ParserURL)
	assert.Equal(t, "postgres://localhost:5432/autofill", cfg.DatabaseURL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("nonexistent_config.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{ invalid"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Port, cfg.Port)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("SUBMIT_URL", "http://example.com/receive")
	t.Setenv("PROFILE_PASSPHRASE", "hunter2-but-longer")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := FromEnv()
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "http://example.com/receive", cfg.SubmitURL)
	assert.Equal(t, "hunter2-but-longer", cfg.Passphrase)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
}

func TestValidate_Defaults(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_BadPort(t *testing.T) {
	cfg := Default()
	cfg.Port = 70000
	require.Error(t, cfg.Validate())
}

func TestValidate_BadURL(t *testing.T) {
	cfg := Default()
	cfg.ParserURL = "not a url"
	require.Error(t, cfg.Validate())
}

func TestValidate_KeyPathAndPassphraseExclusive(t *testing.T) {
	cfg := Default()
	cfg.KeyPath = "encryption.key"
	cfg.Passphrase = "secret"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_EncryptionRequiresFileBackend(t *testing.T) {
	cfg := Default()
	cfg.DatabaseURL = "postgres://localhost:5432/autofill"
	cfg.KeyPath = "encryption.key"
	require.Error(t, cfg.Validate())
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "48")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-secret", cfg.Secret)
	assert.Equal(t, 48, cfg.ExpirationHours)
}

func TestNewJWTConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := NewJWTConfig()
	require.Error(t, err)
}

func TestNewJWTConfigWithSecret_DefaultExpiration(t *testing.T) {
	t.Setenv("JWT_EXPIRATION_HOURS", "")
	cfg, err := NewJWTConfigWithSecret("s3cret")
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.ExpirationHours)
}

func TestNewJWTConfigWithSecret_InvalidExpiration(t *testing.T) {
	t.Setenv("JWT_EXPIRATION_HOURS", "zero")
	_, err := NewJWTConfigWithSecret("s3cret")
	require.Error(t, err)
}
