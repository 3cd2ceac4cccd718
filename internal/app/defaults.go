package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - COURSECAL_CONFIG_PATH: config file location (default: ~/.config/coursecal.toml)
//   - COURSECAL_HOME: base directory for coursecal data (default: ~/.local/share/coursecal)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// getConfigPath returns the config file path, checking COURSECAL_CONFIG_PATH
// first, then falling back to the default ~/.config/coursecal.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("COURSECAL_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "coursecal.toml"), nil
}

// getBaseDir returns the base directory for coursecal data, checking
// COURSECAL_HOME first, then falling back to the XDG default
// ~/.local/share/coursecal.
func getBaseDir() (string, error) {
	if path := os.Getenv("COURSECAL_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "coursecal"), nil
}
