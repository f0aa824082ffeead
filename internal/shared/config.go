package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Camera   CameraConfig   `toml:"camera"`
	Audio    AudioConfig    `toml:"audio"`
	Database DatabaseConfig `toml:"database"`
	UI       UIConfig       `toml:"ui"`
}

// ServerConfig contains Rooha backend connection settings.
type ServerConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// CameraConfig contains frame grabber settings.
//
// Command and Args describe an external grabber writing a single encoded
// frame to stdout. "{width}" and "{height}" placeholders in Args are
// substituted with the preferred resolution.
type CameraConfig struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
	Width   int      `toml:"width"`
	Height  int      `toml:"height"`
}

// AudioConfig contains preview playback settings.
//
// Command and Args describe an external player reading signed 16-bit
// little-endian PCM from stdin. A "{rate}" placeholder in Args is substituted
// with the decoded sample rate.
type AudioConfig struct {
	Enabled bool     `toml:"enabled"`
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

// DatabaseConfig contains local analysis log settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// UIConfig contains view timing settings.
type UIConfig struct {
	TextDwellMS  int `toml:"text_dwell_ms"`
	ImageDwellMS int `toml:"image_dwell_ms"`
	ToastMS      int `toml:"toast_ms"`
}

// TextDwell returns the minimum visible loading duration for text analysis.
func (u UIConfig) TextDwell() time.Duration {
	return time.Duration(u.TextDwellMS) * time.Millisecond
}

// ImageDwell returns the minimum visible loading duration for face analysis.
func (u UIConfig) ImageDwell() time.Duration {
	return time.Duration(u.ImageDwellMS) * time.Millisecond
}

// ToastDuration returns how long transient notices stay on screen.
func (u UIConfig) ToastDuration() time.Duration {
	return time.Duration(u.ToastMS) * time.Millisecond
}

// Timeout returns the HTTP client timeout for backend calls.
func (s ServerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
