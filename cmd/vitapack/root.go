// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for vitapack.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"vitapack-cli/internal/config"
	"vitapack-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// loadedConfig is the configuration resolved by initRootConfig.
	// Falls back to defaults when loading fails.
	loadedConfig *config.Config
	// loadedConfigPath is the config file the settings came from ("" for defaults).
	loadedConfigPath string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "vitapack",
		Short: "Package PS Vita homebrew bundles into VPK archives",
		Long: TitleStyle.Render("vitapack") + SubtitleStyle.Render(" - Package PS Vita homebrew bundles into VPK archives") + `

vitapack assembles a VPK (a stored zip container) from a param.sfo
metadata file, an eboot.bin executable, and any number of extra files
or directory trees mapped to paths inside the archive.

` + SubtitleStyle.Render("Examples:") + `
  vitapack pack -s param.sfo -b eboot.bin game.vpk
  vitapack pack -s param.sfo -b eboot.bin -a assets=data game.vpk
  vitapack list game.vpk
  vitapack info param.sfo`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/vitapack/config.cue)")

	// Add subcommands
	rootCmd.AddCommand(packCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). Failure categories map to
// distinct exit codes via ExitError.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in the config file if present and applies UI
// settings that were not set via flags.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	cfg, cfgPath, err := config.Load()
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	loadedConfig = cfg
	loadedConfigPath = cfgPath

	// Apply verbose from config if not set via flag
	if !verbose {
		verbose = cfg.UI.Verbose
	}
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// formatErrorForDisplay formats an error for user display. ActionableErrors
// render with their suggestions; in verbose mode the full error chain is
// included.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// glamourStyle returns the glamour style path for the configured color scheme.
func glamourStyle() string {
	if loadedConfig == nil {
		return "auto"
	}
	switch loadedConfig.UI.ColorScheme {
	case config.ColorSchemeLight:
		return "light"
	case config.ColorSchemeDark:
		return "dark"
	default:
		return "auto"
	}
}

// failWithCategory classifies a packaging error, optionally renders the
// matching issue-catalog help (verbose mode only), and wraps the error so
// Execute exits with the category's code.
func failWithCategory(err error) error {
	code, id := classify(err)

	if verbose && id != 0 {
		if entry := issue.Get(id); entry != nil {
			rendered, renderErr := entry.Render(glamourStyle())
			if renderErr != nil {
				log.Warn("failed to render issue help", "issue", id, "error", renderErr)
			} else {
				fmt.Fprint(os.Stderr, rendered)
			}
		}
	}

	return &ExitError{Code: code, Err: err}
}

// formatFileSize formats a file size in bytes to a human-readable string
func formatFileSize(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case size >= GB:
		return fmt.Sprintf("%.2f GB", float64(size)/float64(GB))
	case size >= MB:
		return fmt.Sprintf("%.2f MB", float64(size)/float64(MB))
	case size >= KB:
		return fmt.Sprintf("%.2f KB", float64(size)/float64(KB))
	default:
		return fmt.Sprintf("%d bytes", size)
	}
}
