// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"vitapack-cli/internal/issue"
	"vitapack-cli/pkg/manifest"
	"vitapack-cli/pkg/vpk"
)

// Exit codes follow the BSD sysexits convention, one per failure category,
// so scripts can tell a missing input from an unwritable output.
const (
	// ExitUsage is a command line usage error (EX_USAGE).
	ExitUsage = 64
	// ExitInvalidSource is a source that is neither file nor directory (EX_DATAERR).
	ExitInvalidSource = 65
	// ExitMissingInput is a source path that does not exist (EX_NOINPUT).
	ExitMissingInput = 66
	// ExitCannotCreate is an unwritable output path (EX_CANTCREAT).
	ExitCannotCreate = 73
	// ExitIOFailure is a read or write failure during packing (EX_IOERR).
	ExitIOFailure = 74
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE
// handlers. Execute unwraps it after fang has printed the error.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// classify maps a packaging error to its exit code and issue catalog entry.
// Unrecognized errors get a generic exit code 1 and no catalog entry.
func classify(err error) (int, issue.Id) {
	var (
		notFound      *manifest.NotFoundError
		invalidSource *manifest.InvalidSourceError
		cannotCreate  *vpk.CreateError
		sourceRead    *vpk.SourceReadError
		writeFailed   *vpk.WriteError
	)

	switch {
	case errors.As(err, &notFound):
		return ExitMissingInput, issue.SourceNotFoundId
	case errors.As(err, &invalidSource):
		return ExitInvalidSource, issue.InvalidSourceId
	case errors.As(err, &cannotCreate):
		return ExitCannotCreate, issue.OutputNotWritableId
	case errors.As(err, &sourceRead):
		return ExitIOFailure, issue.SourceUnreadableId
	case errors.As(err, &writeFailed):
		return ExitIOFailure, issue.ArchiveWriteFailedId
	default:
		return 1, 0
	}
}
