// SPDX-License-Identifier: MPL-2.0

package manifest

import "fmt"

// NotFoundError reports a declared source path that does not exist.
type NotFoundError struct {
	// Path is the missing source path as the user declared it.
	Path string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("source path does not exist: %s", e.Path)
}

// InvalidSourceError reports a source path that exists but is neither a
// regular file nor a directory (e.g. a device node or socket).
type InvalidSourceError struct {
	// Path is the offending source path.
	Path string
}

// Error implements the error interface.
func (e *InvalidSourceError) Error() string {
	return fmt.Sprintf("source path is neither a regular file nor a directory: %s", e.Path)
}
