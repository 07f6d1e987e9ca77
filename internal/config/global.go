// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"sync"
)

var (
	// configDirOverride allows tests to override the config directory.
	// This is necessary because os.UserHomeDir() doesn't reliably respect
	// the HOME environment variable on all platforms (e.g., macOS in CI).
	configDirOverride string

	// configFilePathOverride forces loading from a specific file,
	// set from the --config flag.
	configFilePathOverride string

	cacheMu      sync.Mutex
	cachedConfig *Config
	cachedPath   string
)

// Load returns the application configuration, honoring any registered
// overrides. The result is cached; call Reset to force a reload.
func Load() (*Config, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cachedConfig != nil {
		return cachedConfig, nil
	}

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: configFilePathOverride,
		ConfigDirPath:  configDirOverride,
	})
	if err != nil {
		// Fall back to defaults so callers always get a usable config,
		// but still surface the load error.
		return DefaultConfig(), err
	}

	cachedConfig = cfg
	cachedPath = path
	return cfg, nil
}

// LoadedPath returns the path of the config file the cached configuration
// was loaded from; empty when defaults are in use or nothing is cached.
func LoadedPath() string {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	return cachedPath
}

// Reset clears overrides and the cached configuration. Call from test
// cleanup to restore defaults.
func Reset() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	configDirOverride = ""
	configFilePathOverride = ""
	cachedConfig = nil
	cachedPath = ""
}

// SetConfigDirOverride sets a custom config directory path.
// This is primarily intended for testing to bypass os.UserHomeDir() which
// doesn't reliably respect the HOME env var on all platforms (e.g., macOS in CI).
func SetConfigDirOverride(dir string) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	configDirOverride = dir
	cachedConfig = nil
	cachedPath = ""
}

// SetConfigFilePathOverride forces configuration loading from the given
// file, as set via the --config flag.
func SetConfigFilePathOverride(path string) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	configFilePathOverride = path
	cachedConfig = nil
	cachedPath = ""
}
