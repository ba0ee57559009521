package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5002", cfg.Server.Addr)
	assert.Equal(t, "data/taskboard.db", cfg.Database.Path)
	assert.Equal(t, 5*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "", cfg.Storage.Bucket)
	assert.Error(t, cfg.Validate(), "secret is required")
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TASKBOARD_AUTH_JWTSECRET", "s3cret")
	t.Setenv("TASKBOARD_AUTH_TOKENTTL", "1h")
	t.Setenv("TASKBOARD_DATABASE_PATH", "/tmp/tb.db")
	t.Setenv("TASKBOARD_STORAGE_BUCKET", "exports")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "/tmp/tb.db", cfg.Database.Path)
	assert.Equal(t, "exports", cfg.Storage.Bucket)
	assert.NoError(t, cfg.Validate())
}

func TestValidateBcryptCost(t *testing.T) {
	var cfg Config
	cfg.Auth.JWTSecret = "x"
	cfg.Auth.TokenTTL = time.Hour
	cfg.Database.QueryTimeout = time.Second
	cfg.Auth.BcryptCost = 2
	assert.Error(t, cfg.Validate())

	cfg.Auth.BcryptCost = 10
	assert.NoError(t, cfg.Validate())
}
