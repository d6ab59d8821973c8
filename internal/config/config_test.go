package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Reads the yml file", func(t *testing.T) {
		// Given: a config file overriding a few keys
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "log-level: debug\nhttp-port: \"8080\"\ngame-ttl: 5m\nstorage: redis\nredis:\n  host: cache\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading it
		conf, err := Load(path)

		// Then: file values win and the rest fall back to defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, "9091", conf.SocketPort)
		assert.Equal(t, 5*time.Minute, conf.GameTTL)
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, "cache:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Falls back to the environment without a file", func(t *testing.T) {
		// Given: no config file and a few env overrides
		t.Setenv("HTTP_PORT", "7070")
		t.Setenv("THEME", "dark")

		// When: loading a missing path
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: env and defaults are used
		require.NoError(t, err)
		assert.Equal(t, "7070", conf.HTTPPort)
		assert.Equal(t, "dark", conf.Theme)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, StorageMemory, conf.Storage)
		assert.Equal(t, 30*time.Minute, conf.GameTTL)
		assert.Equal(t, "tictactoe.db", conf.SQLite.Path)
	})

	t.Run("Broken yml is an error", func(t *testing.T) {
		// Given: an unparsable file
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("log-level: [oops"), 0o600))

		// When: loading it
		_, err := Load(path)

		// Then: an error is returned
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unable to load config file")
	})

	t.Run("Unknown log level is an error", func(t *testing.T) {
		// Given: a log level slog has no mapping for
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("log-level: verbose\n"), 0o600))

		// When: loading it
		_, err := Load(path)

		// Then: the config is rejected instead of silently logging at info
		require.ErrorIs(t, err, ErrUnknownLogLevel)
		assert.Contains(t, err.Error(), `"verbose"`)
	})
}

func TestConfig_SlogLevel(t *testing.T) {
	for name, expected := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		t.Run(name, func(t *testing.T) {
			level, err := (&Config{LogLevel: name}).SlogLevel()

			require.NoError(t, err)
			assert.Equal(t, expected, level)
		})
	}

	t.Run("Upper case is not accepted", func(t *testing.T) {
		_, err := (&Config{LogLevel: "DEBUG"}).SlogLevel()

		assert.ErrorIs(t, err, ErrUnknownLogLevel)
	})
}

func TestRedis_GetRedisAddr(t *testing.T) {
	assert.Equal(t, "localhost:6379", (&Redis{Host: "localhost", Port: "6379"}).GetRedisAddr())
	assert.Empty(t, (&Redis{}).GetRedisAddr())
}
