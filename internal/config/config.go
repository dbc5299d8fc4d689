// filepath: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the application's configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Export   ExportConfig   `toml:"export"`
	Logging  LoggingConfig  `toml:"logging"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// ExportConfig holds settings for generated documents and backups.
type ExportConfig struct {
	// Dir is where exported PDFs and backup files are written.
	Dir string `toml:"dir"`
	// RetentionDays is how long exported files are kept before the
	// background sweeper removes them. Zero keeps them forever.
	RetentionDays int `toml:"retention_days"`
}

// LoggingConfig holds the logging configuration.
type LoggingConfig struct {
	Level        string `toml:"level"`
	AuditEnabled bool   `toml:"audit_enabled"`
}

// LoadConfig loads the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig writes the current configuration back to a TOML file.
func SaveConfig(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file for saving: %w", err)
	}
	defer f.Close()
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config to file: %w", err)
	}
	return nil
}

// ApplyDefaults fills in any value the file, env, and flags left empty.
func (c *Config) ApplyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Path == "" {
		c.Database.Path = "teachermonitor.db"
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "exports"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// ParseAndValidate checks the configuration for values that cannot work.
func (c *Config) ParseAndValidate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Export.Dir != "" {
		if filepath.Clean(c.Export.Dir) == "" {
			return fmt.Errorf("invalid export dir: %q", c.Export.Dir)
		}
	}
	if c.Export.RetentionDays < 0 {
		return fmt.Errorf("invalid export retention: %d days", c.Export.RetentionDays)
	}
	return nil
}
