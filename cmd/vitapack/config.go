// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// configCmd groups configuration subcommands
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage vitapack configuration",
		Long: `Manage the vitapack configuration.

Configuration is read from config.cue in the platform config directory
(e.g. ~/.config/vitapack on Linux) or the current directory, and can be
overridden per invocation with --config.`,
	}

	// configShowCmd prints the resolved configuration
	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE:  runConfigShow,
	}
)

func init() {
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if loadedConfig == nil {
		initRootConfig()
	}
	source := loadedConfigPath
	if source == "" {
		source = "built-in defaults"
	}

	fmt.Println(TitleStyle.Render("Configuration"))
	fmt.Printf("%s Source: %s\n", infoIcon, PathStyle.Render(source))
	fmt.Println()
	fmt.Printf("%s output.default_path = %q\n", infoIcon, loadedConfig.Output.DefaultPath)
	fmt.Printf("%s ui.verbose = %t\n", infoIcon, loadedConfig.UI.Verbose)
	fmt.Printf("%s ui.color_scheme = %q\n", infoIcon, loadedConfig.UI.ColorScheme)

	return nil
}
