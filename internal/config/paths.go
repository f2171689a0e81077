package config

import (
	"os"
	"path/filepath"
)

// DefaultConfigFileName is the config file looked up in the working directory.
const DefaultConfigFileName = "buildcond.yaml"

// EnvConfig overrides the config file path.
const EnvConfig = "BUILDCOND_CONFIG"

// GetConfigFile returns the config file path.
// If BUILDCOND_CONFIG is set, it takes precedence.
func GetConfigFile() string {
	if envPath := os.Getenv(EnvConfig); envPath != "" {
		return envPath
	}
	return DefaultConfigFileName
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~username is not supported
	return path, nil
}

// FileExists reports whether the config file exists.
func FileExists(configFile string) (bool, error) {
	if configFile == "" {
		configFile = GetConfigFile()
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
