package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gramofond.toml")
	data := []byte("" +
		"[server]\n" +
		"log_level = \"debug\"\n" +
		"\n" +
		"[library]\n" +
		"database_path = \"/var/lib/gramofon/library.db\"\n" +
		"roots = [\"/music\"]\n" +
		"scan_on_start = true\n" +
		"\n" +
		"[transports.http]\n" +
		"enabled = true\n" +
		"listen = \"127.0.0.1:8555\"\n" +
		"\n" +
		"[transports.embedded_mqtt]\n" +
		"enabled = true\n" +
		"allow_anonymous = true\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.LogLevel != "debug" {
		t.Fatalf("log level = %q", cfg.Server.LogLevel)
	}
	if len(cfg.Library.Roots) != 1 || cfg.Library.Roots[0] != "/music" {
		t.Fatalf("roots = %v", cfg.Library.Roots)
	}
	if !cfg.Library.ScanOnStart {
		t.Fatal("expected scan_on_start")
	}
	if !cfg.Transports.HTTP.Enabled || cfg.Transports.HTTP.Listen != "127.0.0.1:8555" {
		t.Fatalf("http transport = %+v", cfg.Transports.HTTP)
	}
	if !cfg.Transports.EmbeddedMQTT.AllowAnonymous {
		t.Fatal("expected allow_anonymous")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatal("expected error")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("default config path: %v", err)
	}
	if path != "/tmp/xdg/gramofon/gramofond.toml" {
		t.Fatalf("path = %q", path)
	}
}
