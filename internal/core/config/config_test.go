package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, c.App.HTTP.Port)
	assert.Equal(t, "/api", c.App.HTTP.Prefix)
	assert.Equal(t, "sqlite", c.DB.Driver)
	assert.True(t, c.DB.AutoMigrate)
	assert.Equal(t, 1000, c.Seed.TargetOrders)
	assert.False(t, c.Redis.Enabled())
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
app:
  http:
    port: 9090
    prefix: /v1
    corsOrigins: ["http://localhost:5173"]
db:
  driver: postgres
  dsn: host=localhost user=orders dbname=orders
redis:
  addr: 127.0.0.1:6379
seed:
  onStartup: false
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("APP_JWT_SECRET", "from-env")
	t.Setenv("APP_DB_MAXOPENCONNS", "7")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, c.App.HTTP.Port)
	assert.Equal(t, "/v1", c.App.HTTP.Prefix)
	assert.Equal(t, []string{"http://localhost:5173"}, c.App.HTTP.CORSOrigins)
	assert.Equal(t, "postgres", c.DB.Driver)
	assert.Equal(t, 7, c.DB.MaxOpenConns)
	assert.Equal(t, "from-env", c.JWT.Secret)
	assert.True(t, c.Redis.Enabled())
	assert.False(t, c.Seed.OnStartup)
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app: [unclosed"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}
