// Package common provides shared errors used across the importer.
package common

import "errors"

// Common application errors.
var (
	// ErrNoTable means the bill document contains no transaction table.
	ErrNoTable = errors.New("no transaction table found")

	// ErrNotRegularFile means an input path exists but is not a regular file.
	ErrNotRegularFile = errors.New("not a regular file")
)
