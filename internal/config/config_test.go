// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfigDir creates a temp config directory holding config.cue with the
// given contents, and points the loader at it for the duration of the test.
func writeConfigDir(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)
	return path
}

func TestLoadDefaults(t *testing.T) {
	// Empty config dir: built-in defaults apply and no path is reported.
	SetConfigDirOverride(t.TempDir())
	t.Cleanup(Reset)

	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want empty for defaults", path)
	}

	defaults := DefaultConfig()
	if cfg.Output.DefaultPath != defaults.Output.DefaultPath {
		t.Errorf("output.default_path = %q, want %q", cfg.Output.DefaultPath, defaults.Output.DefaultPath)
	}
	if cfg.UI.Verbose != defaults.UI.Verbose {
		t.Errorf("ui.verbose = %t, want %t", cfg.UI.Verbose, defaults.UI.Verbose)
	}
	if cfg.UI.ColorScheme != defaults.UI.ColorScheme {
		t.Errorf("ui.color_scheme = %q, want %q", cfg.UI.ColorScheme, defaults.UI.ColorScheme)
	}
}

func TestLoadFromConfigDir(t *testing.T) {
	path := writeConfigDir(t, `
output: default_path: "homebrew.vpk"
ui: verbose: true
`)

	cfg, resolvedPath, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolvedPath != path {
		t.Errorf("resolved path = %q, want %q", resolvedPath, path)
	}
	if cfg.Output.DefaultPath != "homebrew.vpk" {
		t.Errorf("output.default_path = %q, want %q", cfg.Output.DefaultPath, "homebrew.vpk")
	}
	if !cfg.UI.Verbose {
		t.Error("ui.verbose should be true")
	}
	// Fields the file does not set keep their defaults.
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("ui.color_scheme = %q, want %q", cfg.UI.ColorScheme, ColorSchemeAuto)
	}
}

func TestLoadExplicitOverridePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.cue")
	if err := os.WriteFile(path, []byte(`ui: color_scheme: "dark"`), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigFilePathOverride(path)
	t.Cleanup(Reset)

	cfg, resolvedPath, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolvedPath != path {
		t.Errorf("resolved path = %q, want %q", resolvedPath, path)
	}
	if cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("ui.color_scheme = %q, want %q", cfg.UI.ColorScheme, ColorSchemeDark)
	}
}

func TestLoadExplicitOverrideMissing(t *testing.T) {
	SetConfigFilePathOverride(filepath.Join(t.TempDir(), "nope.cue"))
	t.Cleanup(Reset)

	_, _, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error %q does not mention the missing file", err)
	}
}

func TestLoadInvalidCUESyntax(t *testing.T) {
	writeConfigDir(t, `output: default_path: "unterminated`)

	_, _, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid CUE syntax")
	}
}

func TestLoadSchemaViolation(t *testing.T) {
	// color_scheme is constrained to auto | dark | light by the schema.
	writeConfigDir(t, `ui: color_scheme: "neon"`)

	_, _, err := Load()
	if err == nil {
		t.Fatal("expected error for schema violation")
	}
}

func TestColorSchemeValidate(t *testing.T) {
	for _, scheme := range []ColorScheme{ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight} {
		if err := scheme.Validate(); err != nil {
			t.Errorf("scheme %q should be valid: %v", scheme, err)
		}
	}
	if err := ColorScheme("neon").Validate(); err == nil {
		t.Error("unknown scheme should be rejected")
	}
}

func TestConfigDirOverride(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	got, err := ConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != dir {
		t.Errorf("ConfigDir() = %q, want %q", got, dir)
	}
}
