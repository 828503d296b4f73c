package internal

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds optional storage path overrides from the user's config file.
type Config struct {
	Database   string `toml:"database"`
	HistoryDir string `toml:"history_dir"`
}

// LoadConfig reads ~/.config/q-history/config.toml if present. A missing or
// unreadable file is not an error; defaults are returned.
func LoadConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		return &Config{}
	}
	return loadConfigFrom(filepath.Join(home, ".config", "q-history", "config.toml"))
}

func loadConfigFrom(path string) *Config {
	cfg := &Config{}
	if _, err := os.Stat(path); err != nil {
		return cfg
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		LogWarn("Ignoring invalid config file %s: %v", path, err)
		return &Config{}
	}
	return cfg
}
