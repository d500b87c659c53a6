package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the user-edited TOML configuration file. Pointer
// fields distinguish unset keys so flags and built-in defaults apply.
type FileConfig struct {
	Session SessionFileConfig `toml:"session"`
}

// SessionFileConfig maps session-related settings.
type SessionFileConfig struct {
	Timed    *int     `toml:"timed"`
	Words    *int     `toml:"words"`
	Punct    *float64 `toml:"punct"`
	Numbers  *bool    `toml:"numbers"`
	Wordlist *string  `toml:"wordlist"`
	Top      *int     `toml:"top"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
