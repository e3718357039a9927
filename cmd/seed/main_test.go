package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/khaoulaLakhdim/orders-management/pkg/utils"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestSeedCommands(t *testing.T) {
	utils.PasswordCost = bcrypt.MinCost
	t.Cleanup(func() { utils.PasswordCost = bcrypt.DefaultCost })
	dir := t.TempDir()
	t.Setenv("APP_DB_DSN", "file:"+filepath.Join(dir, "seed.db")+"?_foreign_keys=1")
	t.Setenv("APP_LOG_LEVEL", "error")
	cfg := []string{"--config", filepath.Join(dir, "none.yaml"), "--orders", "5"}

	assert.Equal(t, "users=0 clients=0 orders=0 seeded=false\n", run(t, append([]string{"status"}, cfg...)...))
	assert.Equal(t, "inserted users=4 clients=8 orders=5\n", run(t, append([]string{"run"}, cfg...)...))
	assert.Equal(t, "inserted users=0 clients=0 orders=0\n", run(t, append([]string{"run"}, cfg...)...))
	assert.Equal(t, "users=4 clients=8 orders=5 seeded=true\n", run(t, append([]string{"status"}, cfg...)...))

	run(t, append([]string{"clear"}, cfg...)...)
	assert.Equal(t, "users=0 clients=0 orders=0 seeded=false\n", run(t, append([]string{"status"}, cfg...)...))
	assert.Equal(t, "users=4 clients=8 orders=5\n", run(t, append([]string{"reseed"}, cfg...)...))
}
