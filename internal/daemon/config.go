package daemon

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the top-level configuration for gramofond.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Library    LibraryConfig    `toml:"library"`
	Player     PlayerConfig     `toml:"player"`
	Transports TransportsConfig `toml:"transports"`
}

// ServerConfig defines shared daemon settings.
type ServerConfig struct {
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	LogOutput string `toml:"log_output"`
}

// LibraryConfig configures the media library.
type LibraryConfig struct {
	DatabasePath string   `toml:"database_path"`
	Roots        []string `toml:"roots"`
	Extensions   []string `toml:"extensions"`
	ScanOnStart  bool     `toml:"scan_on_start"`
}

// PlayerConfig configures the playback backend.
type PlayerConfig struct {
	Backend  string `toml:"backend"`
	Pipeline string `toml:"pipeline"`
	Device   string `toml:"device"`
}

// TransportsConfig holds per-transport configuration.
type TransportsConfig struct {
	HTTP         HTTPConfig         `toml:"http"`
	MQTT         MQTTConfig         `toml:"mqtt"`
	EmbeddedMQTT EmbeddedMQTTConfig `toml:"embedded_mqtt"`
}

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	Enabled bool   `toml:"enabled"`
	Listen  string `toml:"listen"`
	Path    string `toml:"path"`
}

// MQTTConfig configures the MQTT transport.
type MQTTConfig struct {
	Enabled      bool       `toml:"enabled"`
	Broker       string     `toml:"broker"`
	ClientID     string     `toml:"client_id"`
	CommandTopic string     `toml:"command_topic"`
	ReplyTopic   string     `toml:"reply_topic"`
	TLS          TLSConfig  `toml:"tls"`
	Auth         AuthConfig `toml:"auth"`
}

// TLSConfig holds TLS material paths.
type TLSConfig struct {
	CA   string `toml:"ca"`
	Cert string `toml:"cert"`
	Key  string `toml:"key"`
}

// AuthConfig holds broker credentials.
type AuthConfig struct {
	User string `toml:"user"`
	Pass string `toml:"pass"`
}

// EmbeddedMQTTConfig configures the embedded broker.
type EmbeddedMQTTConfig struct {
	Enabled        bool   `toml:"enabled"`
	Listen         string `toml:"listen"`
	AllowAnonymous bool   `toml:"allow_anonymous"`
	Username       string `toml:"username"`
	Password       string `toml:"password"`
	TLSCA          string `toml:"tls_ca"`
	TLSCert        string `toml:"tls_cert"`
	TLSKey         string `toml:"tls_key"`
}

// LoadConfig loads a config file from path.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config path required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return Config{}, err
	}
	if info.IsDir() {
		return Config{}, errors.New("config path is a directory")
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultConfigPath returns the default config location.
func DefaultConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "gramofon", "gramofond.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gramofon", "gramofond.toml"), nil
}

// DefaultDatabasePath returns the default library database location.
func DefaultDatabasePath() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "gramofon", "library.db"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "gramofon", "library.db"), nil
}
