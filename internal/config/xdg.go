// Package config provides configuration files and path helpers.
package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "keydrill", "config.toml")
}

// DefaultWordListPath returns the default word list location.
func DefaultWordListPath() string {
	return filepath.Join(XDGConfigHome(), "keydrill", "words.txt")
}

// DefaultScoresPath returns the default highscore file location.
func DefaultScoresPath() string {
	return filepath.Join(XDGDataHome(), "keydrill", "highscores.json")
}

// DefaultStatePath returns the last-used session state file location.
func DefaultStatePath() string {
	return filepath.Join(XDGDataHome(), "keydrill", "lastsession.toml")
}

// DefaultDBPath returns the default path for the session-history database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), "keydrill", "keydrill.db")
}
