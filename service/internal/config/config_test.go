package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{KeyDatabaseURL, KeyRedisAddr, KeyRedisPassword, KeyRedisDB, KeyLogLevel, KeyLogFormat, KeyCatalogPath, KeyTurnTimeout, KeySnapshotTTL} {
		t.Setenv(k, "")
	}
	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv(KeyDatabaseURL, "postgres://localhost/ragnarok")
	t.Setenv(KeyRedisAddr, "localhost:6379")
	t.Setenv(KeyRedisDB, "3")
	t.Setenv(KeyTurnTimeout, "30s")
	t.Setenv(KeySnapshotTTL, "1h")
	t.Setenv(KeyLogFormat, "json")

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/ragnarok", c.DatabaseURL)
	assert.Equal(t, "localhost:6379", c.RedisAddr)
	assert.Equal(t, 3, c.RedisDB)
	assert.Equal(t, 30*time.Second, c.TurnTimeout)
	assert.Equal(t, time.Hour, c.SnapshotTTL)
	assert.Equal(t, "json", c.LogFormat)
}

func TestFromEnvMalformed(t *testing.T) {
	t.Setenv(KeyRedisDB, "three")
	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv(KeyRedisDB, "")
	t.Setenv(KeyTurnTimeout, "soon")
	_, err = FromEnv()
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("RAGNAROK_CATALOG_PATH=/srv/cards.json\n"), 0o600))
	t.Setenv(KeyCatalogPath, "")
	os.Unsetenv(KeyCatalogPath)

	c, err := Load(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "/srv/cards.json", c.CatalogPath)
}

func TestLogger(t *testing.T) {
	log, err := Config{LogLevel: "debug", LogFormat: "json"}.Logger()
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	_, err = Config{LogLevel: "loud"}.Logger()
	assert.Error(t, err)
	_, err = Config{LogLevel: "info", LogFormat: "xml"}.Logger()
	assert.Error(t, err)
}
