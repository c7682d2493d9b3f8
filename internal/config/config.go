// Package config loads service configuration from an optional YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Auth   AuthConfig   `yaml:"auth"`
	Ledger LedgerConfig `yaml:"ledger"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type AuthConfig struct {
	JWTSecret  string `yaml:"jwt_secret"`
	TokenHours int    `yaml:"token_hours"`
}

type LedgerConfig struct {
	BaseURL  string `yaml:"base_url"`
	GroupID  string `yaml:"group_id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Load reads configuration from the first existing path, then applies
// env overrides. Missing files are not an error; defaults apply.
func Load(configFile string) *Config {
	c := &Config{
		Server: ServerConfig{Port: 8080},
		DB:     DBConfig{Path: "./data/tracker.db"},
		Auth:   AuthConfig{TokenHours: 24},
	}

	paths := []string{"etc/config.yaml", "/etc/mahjong-tracker/config.yaml"}
	if configFile != "" {
		paths = []string{configFile}
	}
	for _, path := range paths {
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, c)
			break
		}
	}

	envOverride(&c.DB.Path, "DB_PATH")
	envOverride(&c.Auth.JWTSecret, "JWT_SECRET")
	envOverride(&c.Ledger.BaseURL, "LEDGER_BASE_URL")
	envOverride(&c.Ledger.GroupID, "LEDGER_GROUP_ID")
	envOverride(&c.Ledger.Username, "LEDGER_USERNAME")
	envOverride(&c.Ledger.Password, "LEDGER_PASSWORD")
	envOverrideInt(&c.Server.Port, "PORT")

	return c
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
