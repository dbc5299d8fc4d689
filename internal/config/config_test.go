// filepath: internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "teachermonitor.db", cfg.Database.Path)
	assert.Equal(t, "exports", cfg.Export.Dir)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestConfig_ApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Host: "0.0.0.0", Port: 9000},
		Database: DatabaseConfig{Path: "custom.db"},
	}
	cfg.ApplyDefaults()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "custom.db", cfg.Database.Path)
}

func TestConfig_ParseAndValidate(t *testing.T) {
	t.Run("Valid Config", func(t *testing.T) {
		cfg := &Config{
			Server: ServerConfig{Port: 8080},
		}
		assert.NoError(t, cfg.ParseAndValidate())
	})

	t.Run("Invalid Port", func(t *testing.T) {
		cfg := &Config{
			Server: ServerConfig{Port: 123456},
		}
		err := cfg.ParseAndValidate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid server port")
	})
}

func TestConfig_SaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := &Config{
		Server:   ServerConfig{Host: "localhost", Port: 8181},
		Database: DatabaseConfig{Path: "monitor.db"},
		Export:   ExportConfig{Dir: "out"},
		Logging:  LoggingConfig{Level: "debug", AuditEnabled: true},
	}
	assert.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}
