// SPDX-License-Identifier: MPL-2.0

package config

// configFilePathOverride is the explicit config file path from the --config
// flag. When set, it is used exclusively.
var configFilePathOverride string

// configDirOverride allows tests to override the config directory.
// This is necessary because os.UserHomeDir() doesn't reliably respect
// the HOME environment variable on all platforms (e.g., macOS in CI).
var configDirOverride string

// SetConfigFilePathOverride sets a custom config file path (--config flag).
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
}

// SetConfigDirOverride sets a custom config directory path. This is
// primarily intended for testing.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Reset clears overrides. Call from test cleanup to restore defaults.
func Reset() {
	configFilePathOverride = ""
	configDirOverride = ""
}
