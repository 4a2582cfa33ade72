// SPDX-License-Identifier: MPL-2.0

package vpk

import "fmt"

// CreateError reports that the output container file could not be created,
// typically because the parent directory is missing or not writable.
type CreateError struct {
	// Path is the requested output path.
	Path string
	// Err is the underlying OS error.
	Err error
}

// Error implements the error interface.
func (e *CreateError) Error() string {
	return fmt.Sprintf("cannot create output file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *CreateError) Unwrap() error { return e.Err }

// SourceReadError reports a resolved source file that could not be opened
// or read at pack time. Sources are validated when the manifest is built,
// so this usually means the file changed between resolution and packing.
type SourceReadError struct {
	// Path is the source file path.
	Path string
	// Err is the underlying OS error.
	Err error
}

// Error implements the error interface.
func (e *SourceReadError) Error() string {
	return fmt.Sprintf("cannot read source file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *SourceReadError) Unwrap() error { return e.Err }

// WriteError reports an I/O or format failure from the container writer.
type WriteError struct {
	// Destination is the archive path (or output path) being written.
	Destination string
	// Err is the underlying writer error.
	Err error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write container entry %s: %v", e.Destination, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *WriteError) Unwrap() error { return e.Err }
