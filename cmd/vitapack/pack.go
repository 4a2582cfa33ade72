// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"strings"

	"vitapack-cli/pkg/manifest"
	"vitapack-cli/pkg/sfo"
	"vitapack-cli/pkg/vpk"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// packSFOPath is the param.sfo file packed at sce_sys/param.sfo
	packSFOPath string
	// packEbootPath is the eboot.bin file packed at eboot.bin
	packEbootPath string
	// packAdds are the raw --add src=dst declarations, in flag order
	packAdds []string

	// packCmd assembles a VPK from the declared inputs
	packCmd = &cobra.Command{
		Use:   "pack [output.vpk]",
		Short: "Assemble a VPK archive",
		Long: `Assemble a VPK archive from a param.sfo, an eboot.bin and any
number of extra files or directory trees.

Every VPK starts with two fixed entries: the --sfo file at
sce_sys/param.sfo and the --eboot file at eboot.bin. Each --add src=dst
declaration follows in the order given; when src is a directory, its
files are included recursively under dst with their relative paths
preserved. Entries are stored uncompressed.

Examples:
  vitapack pack -s param.sfo -b eboot.bin game.vpk
  vitapack pack -s param.sfo -b eboot.bin -a assets=data -a LICENSE=license.txt
  vitapack pack -s param.sfo -b eboot.bin   (writes ` + vpk.DefaultOutputName + `)`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPack,
	}
)

func init() {
	packCmd.Flags().StringVarP(&packSFOPath, "sfo", "s", "", "param.sfo file packed at "+manifest.SFOArchivePath)
	packCmd.Flags().StringVarP(&packEbootPath, "eboot", "b", "", "eboot.bin file packed at "+manifest.EbootArchivePath)
	packCmd.Flags().StringArrayVarP(&packAdds, "add", "a", nil, "add the file or directory src to the VPK as dst (src=dst, repeatable)")
	packCmd.MarkFlagRequired("sfo")
	packCmd.MarkFlagRequired("eboot")
}

// parseAddSpec splits one src=dst declaration on its first '='. Both halves
// must be non-empty; dst may itself contain '=' characters.
func parseAddSpec(raw string) (manifest.AddSpec, error) {
	src, dst, found := strings.Cut(raw, "=")
	if !found || src == "" || dst == "" {
		return manifest.AddSpec{}, fmt.Errorf("invalid add declaration %q: need src=dst with the source file or folder and its path inside the VPK", raw)
	}
	return manifest.AddSpec{Source: src, Destination: dst}, nil
}

// outputPath resolves the VPK output path: positional argument, then the
// configured default, then the built-in default filename.
func outputPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if loadedConfig != nil && loadedConfig.Output.DefaultPath != "" {
		return loadedConfig.Output.DefaultPath
	}
	return vpk.DefaultOutputName
}

func runPack(cmd *cobra.Command, args []string) error {
	output := outputPath(args)

	adds := make([]manifest.AddSpec, 0, len(packAdds))
	for _, raw := range packAdds {
		spec, err := parseAddSpec(raw)
		if err != nil {
			return &ExitError{Code: ExitUsage, Err: err}
		}
		adds = append(adds, spec)
	}

	fmt.Println(TitleStyle.Render("Pack VPK"))
	fmt.Printf("%s SFO: %s\n", infoIcon, PathStyle.Render(packSFOPath))
	fmt.Printf("%s Eboot: %s\n", infoIcon, PathStyle.Render(packEbootPath))

	entries, err := manifest.Build(packSFOPath, packEbootPath, adds)
	if err != nil {
		return failWithCategory(err)
	}
	for _, entry := range entries {
		log.Debug("resolved entry", "source", entry.Source, "destination", entry.Destination)
	}

	if err := vpk.Pack(entries, output); err != nil {
		return failWithCategory(err)
	}

	info, err := os.Stat(output)
	if err != nil {
		return fmt.Errorf("failed to stat output file: %w", err)
	}

	fmt.Printf("%s VPK created successfully\n", successIcon)
	fmt.Println()
	fmt.Printf("%s Output: %s\n", infoIcon, PathStyle.Render(output))
	fmt.Printf("%s Entries: %d\n", infoIcon, len(entries))
	fmt.Printf("%s Size: %s\n", infoIcon, formatFileSize(info.Size()))
	printBundleTitle(packSFOPath)

	return nil
}

// printBundleTitle shows the TITLE from the packed param.sfo when it
// parses. The SFO contents are never validated (the archive is already
// written); an unparseable file only downgrades the output.
func printBundleTitle(sfoPath string) {
	f, err := sfo.ParseFile(sfoPath)
	if err != nil {
		log.Debug("could not parse param.sfo for display", "error", err)
		return
	}
	if title, ok := f.Lookup("TITLE"); ok {
		fmt.Printf("%s Title: %s\n", infoIcon, title.Text())
	}
}
