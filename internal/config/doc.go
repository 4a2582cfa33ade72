// SPDX-License-Identifier: MPL-2.0

// Package config loads the vitapack configuration.
//
// Configuration lives in a config.cue file, validated against an embedded
// CUE schema and merged into viper on top of built-in defaults. Lookup
// order: explicit --config path, the platform config directory
// (e.g. ~/.config/vitapack on Linux), then the current directory. A missing
// config file is not an error; defaults apply.
package config
