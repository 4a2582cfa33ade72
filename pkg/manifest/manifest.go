// SPDX-License-Identifier: MPL-2.0

// Package manifest resolves the inputs of a VPK build into an ordered list
// of archive entries.
//
// A manifest always starts with the two mandatory entries every VPK carries:
//   - the param.sfo metadata file at "sce_sys/param.sfo"
//   - the eboot.bin executable at "eboot.bin"
//
// User declarations follow in the order given. A declaration whose source is
// a regular file contributes exactly one entry; a declaration whose source
// is a directory is expanded recursively, preserving the relative layout of
// the tree under the declared destination root.
//
// Resolution is eager and fail-fast: every source is stat'ed while the
// manifest is built, and the first missing or unusable path aborts the whole
// build. Entries never denote directories; by the time an Entry exists its
// source has been observed as a regular file.
package manifest

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const (
	// SFOArchivePath is the fixed archive path of the param.sfo entry.
	SFOArchivePath = "sce_sys/param.sfo"
	// EbootArchivePath is the fixed archive path of the eboot.bin entry.
	EbootArchivePath = "eboot.bin"
)

// Entry maps one source file on disk to its destination path inside the
// archive. Destination is slash-separated and relative regardless of the
// host platform, so the archive layout is identical everywhere.
type Entry struct {
	// Source is the filesystem path of an existing regular file.
	Source string
	// Destination is the archive-relative path, forward slashes only,
	// never starting with a separator.
	Destination string
}

// AddSpec is one already-split user declaration: the source file or
// directory to include and the destination it maps to inside the archive.
// Splitting the "src=dst" command-line syntax is the CLI layer's job.
type AddSpec struct {
	Source      string
	Destination string
}

// normalizeDestination converts a destination path to the canonical archive
// form: forward slashes, cleaned, no leading separator.
func normalizeDestination(dst string) string {
	dst = path.Clean(filepath.ToSlash(dst))
	return strings.TrimLeft(dst, "/")
}

// AddSingle resolves a single source file to an Entry targeting dst.
// The source must exist and be a regular file: a missing path yields a
// *NotFoundError, an existing non-regular path a *InvalidSourceError.
func AddSingle(src, dst string) (Entry, error) {
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return Entry{}, &NotFoundError{Path: src}
		}
		return Entry{}, fmt.Errorf("failed to stat source: %w", err)
	}
	if !info.Mode().IsRegular() {
		return Entry{}, &InvalidSourceError{Path: src}
	}
	return Entry{Source: src, Destination: normalizeDestination(dst)}, nil
}

// AddTree recursively resolves every regular file under srcDir to an Entry
// whose destination is dstRoot joined with the file's path relative to
// srcDir, normalized to forward slashes. The walk is filepath.WalkDir's
// lexical depth-first order, which is stable for a given filesystem state.
// Directories contribute no entries of their own; non-regular entries
// (symlinks, sockets, devices) are skipped.
func AddTree(srcDir, dstRoot string) ([]Entry, error) {
	info, err := os.Stat(srcDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: srcDir}
		}
		return nil, fmt.Errorf("failed to stat source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, &InvalidSourceError{Path: srcDir}
	}

	var entries []Entry
	err = filepath.WalkDir(srcDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", p, err)
		}
		entries = append(entries, Entry{
			Source:      p,
			Destination: normalizeDestination(path.Join(filepath.ToSlash(dstRoot), filepath.ToSlash(rel))),
		})
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: srcDir}
		}
		return nil, fmt.Errorf("failed to walk %s: %w", srcDir, err)
	}

	return entries, nil
}

// Build produces the full ordered manifest for one VPK: the param.sfo entry
// first, the eboot.bin entry second, then every user declaration in the
// order given. Any resolution failure aborts the build; no partial manifest
// is ever returned.
//
// Duplicate destinations are permitted. Entries are written to the
// container strictly in manifest order, so a later entry overwrites an
// earlier one at the same archive path when the container is extracted.
func Build(sfoPath, ebootPath string, adds []AddSpec) ([]Entry, error) {
	sfoEntry, err := AddSingle(sfoPath, SFOArchivePath)
	if err != nil {
		return nil, err
	}
	ebootEntry, err := AddSingle(ebootPath, EbootArchivePath)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, 2+len(adds))
	entries = append(entries, sfoEntry, ebootEntry)

	for _, add := range adds {
		if add.Source == "" || add.Destination == "" {
			return nil, fmt.Errorf("add declaration needs a non-empty source and destination (got %q=%q)", add.Source, add.Destination)
		}

		info, err := os.Stat(add.Source)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, &NotFoundError{Path: add.Source}
			}
			return nil, fmt.Errorf("failed to stat source: %w", err)
		}

		switch {
		case info.Mode().IsRegular():
			entry, err := AddSingle(add.Source, add.Destination)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		case info.IsDir():
			subEntries, err := AddTree(add.Source, add.Destination)
			if err != nil {
				return nil, err
			}
			entries = append(entries, subEntries...)
		default:
			return nil, &InvalidSourceError{Path: add.Source}
		}
	}

	return entries, nil
}
