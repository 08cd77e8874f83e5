package config

import (
	"os"
	"path/filepath"
)

// GetUnscrollHome returns $UNSCROLL_HOME or ~/.unscroll
func GetUnscrollHome() string {
	home := os.Getenv("UNSCROLL_HOME")
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".unscroll"
		}
		return filepath.Join(homeDir, ".unscroll")
	}
	return ExpandPath(home)
}

// GetDBPath returns $UNSCROLL_HOME/data.db
func GetDBPath() string {
	return filepath.Join(GetUnscrollHome(), "data.db")
}

// GetSettingsPath returns $UNSCROLL_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetUnscrollHome(), "settings.json")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
