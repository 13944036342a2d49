// Package config loads service settings from an optional .env file and the
// process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Environment keys.
const (
	KeyDatabaseURL   = "RAGNAROK_DATABASE_URL"
	KeyRedisAddr     = "RAGNAROK_REDIS_ADDR"
	KeyRedisPassword = "RAGNAROK_REDIS_PASSWORD"
	KeyRedisDB       = "RAGNAROK_REDIS_DB"
	KeyLogLevel      = "RAGNAROK_LOG_LEVEL"
	KeyLogFormat     = "RAGNAROK_LOG_FORMAT"
	KeyCatalogPath   = "RAGNAROK_CATALOG_PATH"
	KeyTurnTimeout   = "RAGNAROK_TURN_TIMEOUT"
	KeySnapshotTTL   = "RAGNAROK_SNAPSHOT_TTL"
)

// Config holds the service settings. Empty connection strings select the
// in-memory stores.
type Config struct {
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	LogLevel      string
	LogFormat     string // text or json
	CatalogPath   string
	TurnTimeout   time.Duration // zero disables the turn timer
	SnapshotTTL   time.Duration
}

// Default returns the settings used for unset keys.
func Default() Config {
	return Config{
		LogLevel:    "info",
		LogFormat:   "text",
		CatalogPath: "cards.json",
		TurnTimeout: 75 * time.Second,
		SnapshotTTL: 24 * time.Hour,
	}
}

// Load reads the given .env files (".env" when none are named) into the
// environment and builds a Config from it. Missing files are ignored;
// variables already set in the environment win.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	c := Default()
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	str(KeyDatabaseURL, &c.DatabaseURL)
	str(KeyRedisAddr, &c.RedisAddr)
	str(KeyRedisPassword, &c.RedisPassword)
	str(KeyLogLevel, &c.LogLevel)
	str(KeyLogFormat, &c.LogFormat)
	str(KeyCatalogPath, &c.CatalogPath)

	if v := os.Getenv(KeyRedisDB); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", KeyRedisDB, err)
		}
		c.RedisDB = n
	}
	for key, dst := range map[string]*time.Duration{KeyTurnTimeout: &c.TurnTimeout, KeySnapshotTTL: &c.SnapshotTTL} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
	}
	return c, nil
}

// Logger builds a logrus logger from the level and format settings.
func (c Config) Logger() (*logrus.Logger, error) {
	log := logrus.New()
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	log.SetLevel(level)
	switch c.LogFormat {
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("%s: unknown format %q", KeyLogFormat, c.LogFormat)
	}
	return log, nil
}
