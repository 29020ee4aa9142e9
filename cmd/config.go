// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config mirrors the persistent flags. Zero values mean "not set".
type Config struct {
	Port          string        `yaml:"port"`
	Baud          int           `yaml:"baud"`
	Timeout       time.Duration `yaml:"timeout"`
	Address       *int          `yaml:"address"`
	LightEncoding string        `yaml:"light_encoding"`
	Debug         bool          `yaml:"debug"`
	LogLevel      string        `yaml:"log_level"`
	WebSocket     WSConfig      `yaml:"websocket"`
}

// WSConfig holds the serial bridge settings
type WSConfig struct {
	URL         string `yaml:"url"`
	Username    string `yaml:"username"`
	NoSSLVerify bool   `yaml:"no_ssl_verify"`
}

// LoadConfig reads a YAML config file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	return &cfg, nil
}

// values returns the configured settings keyed by flag name
func (c *Config) values() map[string]string {
	v := map[string]string{}
	if c.Port != "" {
		v["port"] = c.Port
	}
	if c.Baud != 0 {
		v["baud"] = strconv.Itoa(c.Baud)
	}
	if c.Timeout != 0 {
		v["timeout"] = c.Timeout.String()
	}
	if c.Address != nil {
		v["address"] = strconv.Itoa(*c.Address)
	}
	if c.LightEncoding != "" {
		v["light-encoding"] = c.LightEncoding
	}
	if c.Debug {
		v["debug"] = "true"
	}
	if c.LogLevel != "" {
		v["log-level"] = c.LogLevel
	}
	if c.WebSocket.URL != "" {
		v["url"] = c.WebSocket.URL
	}
	if c.WebSocket.Username != "" {
		v["username"] = c.WebSocket.Username
	}
	if c.WebSocket.NoSSLVerify {
		v["no-ssl-verify"] = "true"
	}
	return v
}

// Apply sets every configured value on flags the user did not set explicitly
func (c *Config) Apply(flags *pflag.FlagSet) error {
	for name, value := range c.values() {
		if flags.Changed(name) {
			continue
		}
		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("config %s: %w", name, err)
		}
	}
	return nil
}
