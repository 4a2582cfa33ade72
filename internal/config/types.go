// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

// ColorScheme selects the terminal color scheme for styled output.
type ColorScheme string

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
var ErrInvalidColorScheme = errors.New("invalid color scheme")

// Validate checks that the ColorScheme is one of the known values.
func (c ColorScheme) Validate() error {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return fmt.Errorf("%w: %q (expected %q, %q or %q)",
			ErrInvalidColorScheme, string(c), ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight)
	}
}

// OutputConfig holds packaging output preferences.
type OutputConfig struct {
	// DefaultPath is the VPK filename used when no output argument is
	// given on the command line.
	DefaultPath string `mapstructure:"default_path"`
}

// UIConfig holds terminal output preferences.
type UIConfig struct {
	// Verbose enables verbose output without passing --verbose.
	Verbose bool `mapstructure:"verbose"`
	// ColorScheme selects the glamour/lipgloss color scheme.
	ColorScheme ColorScheme `mapstructure:"color_scheme"`
}

// Config is the resolved vitapack configuration.
type Config struct {
	Output OutputConfig `mapstructure:"output"`
	UI     UIConfig     `mapstructure:"ui"`
}

// DefaultConfig returns the built-in defaults applied before any config
// file is read.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			DefaultPath: "output.vpk",
		},
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// Validate checks constraints the CUE schema cannot express at decode time.
func (c *Config) Validate() error {
	if err := c.UI.ColorScheme.Validate(); err != nil {
		return err
	}
	if c.Output.DefaultPath == "" {
		return errors.New("output.default_path must not be empty")
	}
	return nil
}
