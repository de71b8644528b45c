package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DefaultMode  string `yaml:"default_mode"`
	LogLevel     string `yaml:"log_level,omitempty"`
	LogFile      string `yaml:"log_file,omitempty"`
	HistoryLimit int    `yaml:"history_limit"`

	Store    StoreConfig   `yaml:"store"`
	Server   ServerConfig  `yaml:"server"`
	Stickers StickerConfig `yaml:"stickers"`

	// Modes holds per-mode options keyed by mode id, passed to Initialize.
	Modes map[string]map[string]string `yaml:"modes,omitempty"`
}

type StoreConfig struct {
	Backend       string `yaml:"backend"`
	Path          string `yaml:"path,omitempty"`
	MaxValueBytes int64  `yaml:"max_value_bytes,omitempty"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type StickerConfig struct {
	MaxRecent int    `yaml:"max_recent"`
	WatchDir  string `yaml:"watch_dir,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		DefaultMode:  "language-tutor",
		LogLevel:     "info",
		HistoryLimit: 50,
		Store: StoreConfig{
			Backend:       "file",
			MaxValueBytes: 5 << 20,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Stickers: StickerConfig{
			MaxRecent: 12,
		},
	}
}

// ModeOptions returns the configured options for a mode, never nil.
func (c *Config) ModeOptions(id string) map[string]string {
	if opts, ok := c.Modes[id]; ok && opts != nil {
		return opts
	}
	return map[string]string{}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "companion"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DataDir is where the file and sqlite stores live when no path is configured.
func DataDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file. Missing keys keep their defaults.
// A missing file returns nil, nil.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault is Load with the .env overlay applied, falling back to
// DefaultConfig when no file exists yet.
func LoadOrDefault(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if path == "" {
		cfg, err = Load()
	} else {
		cfg, err = LoadFrom(path)
	}
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	dir := filepath.Dir(path)
	if path == "" {
		if dir, err = ConfigDir(); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnvFile(filepath.Join(dir, ".env")); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
