// Package application holds fuelog's identity and the on-disk location of its
// configuration.
package application

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "fuelog"

	// Version is the current fuelog release
	Version = "0.1.0"

	// ConfigFileName is the ini file inside the configuration directory
	ConfigFileName = "config.ini"

	// EnvHome overrides the configuration directory
	EnvHome = "FUELOG_HOME"
)

var configDir = sync.OnceValues(func() (string, error) {
	return resolveConfigDir(os.Getenv, os.UserConfigDir)
})

// ConfigDir returns the fuelog configuration directory: $FUELOG_HOME when set,
// otherwise "fuelog" under the user's configuration directory. It is resolved
// once per process.
func ConfigDir() (string, error) {
	return configDir()
}

// ConfigFilePath returns the path of config.ini. The file may not exist.
func ConfigFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, ConfigFileName), nil
}

func resolveConfigDir(getenv func(string) string, userConfigDir func() (string, error)) (string, error) {
	if home := getenv(EnvHome); home != "" {
		return filepath.Clean(home), nil
	}

	base, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}

	return filepath.Join(base, AppName), nil
}
