// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"vitapack-cli/pkg/sfo"

	"github.com/spf13/cobra"
)

// infoCmd dumps the key/value parameters of a param.sfo file.
var infoCmd = &cobra.Command{
	Use:   "info <param.sfo>",
	Short: "Show the parameters of a param.sfo file",
	Long: `Decode a param.sfo (PSF) file and print its parameters.

Examples:
  vitapack info param.sfo`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	sfoPath := args[0]

	f, err := sfo.ParseFile(sfoPath)
	if err != nil {
		code := ExitInvalidSource
		if errors.Is(err, fs.ErrNotExist) {
			code = ExitMissingInput
		}
		return &ExitError{Code: code, Err: err}
	}

	fmt.Println(TitleStyle.Render("SFO Metadata"))
	fmt.Printf("%s File: %s\n", infoIcon, PathStyle.Render(sfoPath))
	fmt.Printf("%s Format version: %s\n", infoIcon, f.Version)
	fmt.Println()

	for _, param := range f.Params {
		fmt.Printf("%s %s = %s %s\n", infoIcon, param.Key, param.Text(),
			SubtitleStyle.Render("("+param.Format.String()+")"))
	}

	return nil
}
