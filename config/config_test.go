package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
env:
  serviceName: storerating
  log:
    level: info
http:
  port: 8080
secretKey:
  access: test-secret
auth:
  hashAlgorithm: argon2id
  tokenTTL: 2h
rateLimit:
  enabled: true
  window: 30s
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))

	return dir
}

func TestLoadWithEnv_ReadsYAMLAndEnvOverrides(t *testing.T) {
	dir := writeConfig(t, testYAML)
	t.Chdir(dir)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SECRETKEY_ACCESS", "from-env")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "storerating", cfg.Env.ServiceName)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "from-env", cfg.SecretKey.Access)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, HashAlgorithmArgon2id, cfg.Auth.HashAlgorithm)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	require.NotNil(t, cfg.RateLimit)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.SecretKey.Access = "secret"

	require.NoError(t, cfg.applyDefaults())

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, HashAlgorithmBcrypt, cfg.Auth.HashAlgorithm)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "memory", cfg.Revocation.Provider)
	assert.Equal(t, defaultLoginLimit, cfg.RateLimit.Limit)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, "noop", cfg.PubSub.Provider)
}

func TestApplyDefaults_RequiresSecret(t *testing.T) {
	cfg := &Config{}

	err := cfg.applyDefaults()
	require.Error(t, err)
}
