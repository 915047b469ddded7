package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  listenAddr: ":9000"
  postgresDsn: "host=localhost user=jawaf dbname=jawaf"
  redisAddr: "localhost:6379"
  jwtSecret: "secret"
  oracleEndpoint: "http://oracle.local"
  exposeCasesInReview: true
`)

	conf, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", conf.Server.ListenAddr)
	assert.Equal(t, "host=localhost user=jawaf dbname=jawaf", conf.Server.PostgresDsn)
	assert.Equal(t, "http://oracle.local", conf.Server.OracleEndpoint)
	assert.True(t, conf.Server.ExposeCasesInReview)
	assert.False(t, conf.Server.EnableTrace)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  postgresDsn: "host=localhost"
`)

	conf, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8000", conf.Server.ListenAddr)
	assert.False(t, conf.Server.ExposeCasesInReview)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
