package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", `
server:
  address: ":9090"
database:
  driver: memory
  seed: true
jwt:
  secret: file-secret
  expiration: 30m
dashboard:
  demo_activity: true
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.True(t, cfg.Database.Seed)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Expiration)
	assert.True(t, cfg.Dashboard.DemoActivity)
	assert.Equal(t, 5, cfg.Dashboard.ActivityLimit)
	assert.Equal(t, 3, cfg.Dashboard.UpcomingLimit)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "jwt:\n  secret: file-secret\n")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DATABASE_NAME", "from_env")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "from_env", cfg.Database.Name)
	assert.Equal(t, "mongo", cfg.Database.Driver)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "JWT_SECRET=dotenv-secret\n")
	t.Cleanup(func() { os.Unsetenv("JWT_SECRET") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "dotenv-secret", cfg.JWT.Secret)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestValidateDriver(t *testing.T) {
	cfg := Config{JWT: JWTConfig{Secret: "s"}, Database: DatabaseConfig{Driver: "postgres"}}
	assert.Error(t, cfg.Validate())
	cfg.Database.Driver = "memory"
	assert.NoError(t, cfg.Validate())
}
