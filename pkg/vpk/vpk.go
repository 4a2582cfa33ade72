// SPDX-License-Identifier: MPL-2.0

// Package vpk writes resolved manifests out as VPK containers.
//
// A VPK is a zip archive with stored (uncompressed) entries. Entries are
// written strictly in manifest order with fixed 0755 permission bits, so a
// container built from the same manifest and file contents is structurally
// identical regardless of the source files' on-disk modes.
package vpk

import (
	"archive/zip"
	"fmt"
	"io"
	"os"

	"vitapack-cli/pkg/manifest"
)

// DefaultOutputName is the output filename used when the caller does not
// name one.
const DefaultOutputName = "output.vpk"

// copyBufferSize is the chunk size for streaming a source file into the
// container. One chunk is the most of any source held in memory at a time.
const copyBufferSize = 64 * 1024

// Pack materializes the entry list as a VPK container at outputPath.
//
// The output file is created (or truncated) first, then each entry's bytes
// are copied into the container in list order. Exactly one source handle is
// open at any moment. Any failure aborts packing immediately; a partially
// written output file is left on disk as-is.
func Pack(entries []manifest.Entry, outputPath string) error {
	out, err := os.Create(outputPath)
	if err != nil {
		return &CreateError{Path: outputPath, Err: err}
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	buf := make([]byte, copyBufferSize)
	for _, entry := range entries {
		if err := packEntry(zw, entry, buf); err != nil {
			return err
		}
	}

	// Close flushes the central directory; without it the container is
	// unreadable.
	if err := zw.Close(); err != nil {
		return &WriteError{Destination: outputPath, Err: err}
	}
	if err := out.Close(); err != nil {
		return &WriteError{Destination: outputPath, Err: err}
	}
	return nil
}

// packEntry copies one source file into the container under the entry's
// destination path, stored uncompressed with 0755 permissions.
func packEntry(zw *zip.Writer, entry manifest.Entry, buf []byte) error {
	src, err := os.Open(entry.Source)
	if err != nil {
		return &SourceReadError{Path: entry.Source, Err: err}
	}
	defer src.Close()

	header := &zip.FileHeader{
		Name:   entry.Destination,
		Method: zip.Store,
	}
	header.SetMode(0o755)

	w, err := zw.CreateHeader(header)
	if err != nil {
		return &WriteError{Destination: entry.Destination, Err: err}
	}

	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, writeErr := w.Write(buf[:n]); writeErr != nil {
				return &WriteError{Destination: entry.Destination, Err: writeErr}
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return &SourceReadError{Path: entry.Source, Err: readErr}
		}
	}
}

// Record describes one entry of an existing VPK container as read back from
// its central directory.
type Record struct {
	// Path is the archive-relative entry path.
	Path string
	// UncompressedSize is the entry's size in bytes.
	UncompressedSize uint64
	// Stored is true when the entry uses the store (no compression) method.
	Stored bool
}

// List reads the entries of an existing VPK container in central-directory
// order, which matches the order they were packed in.
func List(path string) ([]Record, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open VPK file: %w", err)
	}
	defer r.Close()

	records := make([]Record, 0, len(r.File))
	for _, f := range r.File {
		records = append(records, Record{
			Path:             f.Name,
			UncompressedSize: f.UncompressedSize64,
			Stored:           f.Method == zip.Store,
		})
	}
	return records, nil
}
