// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error support for the CLI layer.
//
// It has two halves: a catalog of known failure categories with rendered
// markdown help (one entry per packaging error kind), and ActionableError,
// a structured error type carrying the failed operation, the resource
// involved and suggestions for fixing it.
package issue
