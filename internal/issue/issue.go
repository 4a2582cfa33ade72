// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies one failure category in the catalog.
type Id int

const (
	// SourceNotFoundId: a declared source path does not exist.
	SourceNotFoundId Id = iota + 1
	// InvalidSourceId: a source exists but is neither file nor directory.
	InvalidSourceId
	// OutputNotWritableId: the output VPK path cannot be created.
	OutputNotWritableId
	// SourceUnreadableId: a resolved source could not be read at pack time.
	SourceUnreadableId
	// ArchiveWriteFailedId: the container writer reported an I/O error.
	ArchiveWriteFailedId
	// ConfigLoadFailedId: the config.cue file could not be loaded.
	ConfigLoadFailedId
)

// MarkdownMsg is markdown help text rendered to the terminal.
type MarkdownMsg string

// HttpLink is a documentation or reference URL.
type HttpLink string

// Issue is one catalog entry: the markdown help shown for a failure
// category, plus related links.
type Issue struct {
	id       Id
	mdMsg    MarkdownMsg
	docLinks []HttpLink
	extLinks []HttpLink
}

// Id returns the catalog id.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw markdown help text.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// DocLinks returns the documentation links.
func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// ExtLinks returns the external reference links.
func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue's markdown (plus any links) with the given
// glamour style.
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "- " + string(link) + "\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- " + string(link) + "\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	sourceNotFoundIssue = &Issue{
		id: SourceNotFoundId,
		mdMsg: `
# Source path not found

A file or folder named on the command line does not exist. Nothing was
packed: the manifest is validated in full before any output is created.

## Things to check
- Typos in the ` + "`--sfo`" + `, ` + "`--eboot`" + ` or ` + "`--add`" + ` paths
- Paths are resolved relative to the current directory, not the VPK output
- For ` + "`--add src=dst`" + `, the part before ` + "`=`" + ` is the on-disk source`,
	}

	invalidSourceIssue = &Issue{
		id: InvalidSourceId,
		mdMsg: `
# Source is not a file or directory

An ` + "`--add`" + ` source exists but is neither a regular file nor a
directory (for example a device node, socket or FIFO). Only regular files
and directory trees can be packed into a VPK.`,
	}

	outputNotWritableIssue = &Issue{
		id: OutputNotWritableId,
		mdMsg: `
# Cannot create the output file

The VPK output path could not be created.

## Things to check
- The parent directory exists (vitapack does not create it)
- You have write permission for the target directory
- The path does not point at an existing directory`,
	}

	sourceUnreadableIssue = &Issue{
		id: SourceUnreadableId,
		mdMsg: `
# Source became unreadable

A source file that existed when the manifest was resolved could not be
opened or read while packing. This usually means the file was removed,
renamed or had its permissions changed mid-build. The partially written
output file is left on disk and should be discarded.`,
	}

	archiveWriteFailedIssue = &Issue{
		id: ArchiveWriteFailedId,
		mdMsg: `
# Archive write failed

The container writer reported an I/O error while writing the VPK. Check
free disk space and that the output filesystem is healthy. The partially
written output file is left on disk and should be discarded.`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Configuration could not be loaded

The ` + "`config.cue`" + ` file exists but failed to parse or validate.

## Things to check
- The file contains valid CUE syntax
- Values match the expected schema (see ` + "`vitapack config show`" + `)
- Or pass ` + "`--config`" + ` to point at a different file`,
	}

	registry = map[Id]*Issue{
		SourceNotFoundId:     sourceNotFoundIssue,
		InvalidSourceId:      invalidSourceIssue,
		OutputNotWritableId:  outputNotWritableIssue,
		SourceUnreadableId:   sourceUnreadableIssue,
		ArchiveWriteFailedId: archiveWriteFailedIssue,
		ConfigLoadFailedId:   configLoadFailedIssue,
	}
)

// Get returns the catalog entry for the given id, or nil when the id is
// unknown.
func Get(id Id) *Issue {
	return registry[id]
}

// Ids returns all catalog ids in ascending order.
func Ids() []Id {
	ids := maps.Keys(registry)
	slices.Sort(ids)
	return ids
}
