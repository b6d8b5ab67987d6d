// Package config provides YAML-based configuration loading for schedtab.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level schedtab configuration, loaded from
// schedtab.yaml.
type Config struct {
	Project  string         `yaml:"project"`
	Database DatabaseConfig `yaml:"database"`
	Export   ExportConfig   `yaml:"export"`
	Serve    ServeConfig    `yaml:"serve"`
}

// DatabaseConfig selects and locates the project database.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // sqlite or mysql
	Path     string `yaml:"path"`   // sqlite file path
	Host     string `yaml:"host"`   // mysql
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
}

// ExportConfig controls where generated table sources are written.
type ExportConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// ServeConfig controls the read-only table API.
type ServeConfig struct {
	Addr    string `yaml:"addr"`
	Refresh string `yaml:"refresh"` // optional 5-field cron expression
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Path == "" {
		c.Database.Path = "schedtab.db"
	}
	if c.Database.Host == "" {
		c.Database.Host = "127.0.0.1"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.Database == "" && c.Project != "" {
		c.Database.Database = "schedtab_" + c.Project
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "."
	}
	if c.Export.Prefix == "" {
		c.Export.Prefix = "sch"
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = ":8472"
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.Project == "" {
		errs = append(errs, "project is required")
	}
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		errs = append(errs, fmt.Sprintf("database.driver must be sqlite or mysql, got %q", c.Database.Driver))
	}
	if c.Database.Driver == "mysql" && c.Database.Database == "" {
		errs = append(errs, "database.database is required for the mysql driver")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
