// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metis.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	return path
}

// newTestFlags mirrors the persistent flags on a private flag set
func newTestFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("port", "", "")
	fs.Int("baud", 115200, "")
	fs.Duration("timeout", time.Second, "")
	fs.Int("address", 0, "")
	fs.String("light-encoding", "decimal", "")
	fs.Bool("debug", false, "")
	fs.String("log-level", "info", "")
	fs.String("url", "", "")
	fs.String("username", "", "")
	fs.Bool("no-ssl-verify", false, "")
	return fs
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
port: /dev/ttyUSB3
baud: 9600
timeout: 250ms
address: 0
light_encoding: hex
debug: true
log_level: warning
websocket:
  url: wss://bridge.local/serial
  username: operator
  no_ssl_verify: true
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Port != "/dev/ttyUSB3" || cfg.Baud != 9600 {
		t.Errorf("serial settings = %q @ %d", cfg.Port, cfg.Baud)
	}
	if cfg.Timeout != 250*time.Millisecond {
		t.Errorf("Timeout = %v, want 250ms", cfg.Timeout)
	}
	if cfg.Address == nil || *cfg.Address != 0 {
		t.Errorf("Address = %v, want explicit 0", cfg.Address)
	}
	if cfg.LightEncoding != "hex" || !cfg.Debug || cfg.LogLevel != "warning" {
		t.Errorf("unexpected device/logging settings: %+v", cfg)
	}
	if cfg.WebSocket.URL != "wss://bridge.local/serial" || cfg.WebSocket.Username != "operator" || !cfg.WebSocket.NoSSLVerify {
		t.Errorf("unexpected websocket settings: %+v", cfg.WebSocket)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := LoadConfig(writeConfig(t, "baud: [fast\n")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestConfigApply_FlagsTakePrecedence(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "port: /dev/ttyUSB3\nbaud: 9600\naddress: 12\ntimeout: 2s\n"))
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	fs := newTestFlags()
	if err := fs.Parse([]string{"--port", "/dev/ttyS0"}); err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if err := cfg.Apply(fs); err != nil {
		t.Fatalf("Apply error: %v", err)
	}

	if port, _ := fs.GetString("port"); port != "/dev/ttyS0" {
		t.Errorf("port = %q, command line value should win", port)
	}
	if baud, _ := fs.GetInt("baud"); baud != 9600 {
		t.Errorf("baud = %d, want 9600 from config", baud)
	}
	if addr, _ := fs.GetInt("address"); addr != 12 {
		t.Errorf("address = %d, want 12 from config", addr)
	}
	if timeout, _ := fs.GetDuration("timeout"); timeout != 2*time.Second {
		t.Errorf("timeout = %v, want 2s from config", timeout)
	}
	if level, _ := fs.GetString("log-level"); level != "info" {
		t.Errorf("log-level = %q, unset config value should keep the default", level)
	}
}

func TestConfigApply_Empty(t *testing.T) {
	fs := newTestFlags()
	if err := (&Config{}).Apply(fs); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			t.Errorf("flag %s changed by an empty config", f.Name)
		}
	})
}
