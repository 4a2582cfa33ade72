// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"vitapack-cli/pkg/vpk"

	"github.com/spf13/cobra"
)

// listCmd prints the contents of an existing VPK archive.
var listCmd = &cobra.Command{
	Use:   "list <file.vpk>",
	Short: "List the entries of a VPK archive",
	Long: `List the entries of an existing VPK archive in the order they
were packed, with their uncompressed sizes.

Examples:
  vitapack list game.vpk`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	vpkPath := args[0]

	records, err := vpk.List(vpkPath)
	if err != nil {
		return &ExitError{Code: ExitIOFailure, Err: err}
	}

	fmt.Println(TitleStyle.Render("VPK Contents"))
	fmt.Printf("%s Archive: %s\n", infoIcon, PathStyle.Render(vpkPath))
	fmt.Println()

	var total uint64
	for _, record := range records {
		method := ""
		if !record.Stored {
			method = SubtitleStyle.Render(" (compressed)")
		}
		fmt.Printf("%s %s  %s%s\n", infoIcon, PathStyle.Render(record.Path),
			formatFileSize(int64(record.UncompressedSize)), method)
		total += record.UncompressedSize
	}

	fmt.Println()
	fmt.Printf("%s %d entries, %s total\n", successIcon, len(records), formatFileSize(int64(total)))

	return nil
}
