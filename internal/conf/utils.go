// conf/utils.go filesystem helpers for configuration handling
package conf

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaultConfigPaths returns the list of directories searched for config.yaml,
// in priority order: current working directory, then the user config directory.
func GetDefaultConfigPaths() ([]string, error) {
	paths := []string{"."}

	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fall back to the home directory if the user config dir is unavailable
		homeDir, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return paths, nil
		}
		return append(paths, filepath.Join(homeDir, ".config", "fluwatch")), nil
	}

	return append(paths, filepath.Join(configDir, "fluwatch")), nil
}

// GetBasePath expands environment variables in the given path and ensures the
// resulting directory exists. A relative path is interpreted relative to the
// working directory.
func GetBasePath(path string) string {
	expandedPath := os.ExpandEnv(path)
	basePath := filepath.Clean(expandedPath)

	if basePath == "." || basePath == "" {
		return "."
	}

	if _, err := os.Stat(basePath); os.IsNotExist(err) {
		if err := os.MkdirAll(basePath, 0o750); err != nil {
			fmt.Printf("failed to create directory '%s': %v\n", basePath, err)
		}
	}

	return basePath
}
