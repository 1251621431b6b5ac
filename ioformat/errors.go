package ioformat

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFormat indicates an input-format value outside {2D, Box, Angular}.
	ErrUnknownFormat = errors.New("ioformat: unknown input format")

	// ErrMissingColumn indicates a required CSV column was absent from the header.
	ErrMissingColumn = errors.New("ioformat: required column missing from header")

	// ErrEmptyInput indicates the input had no header or data rows.
	ErrEmptyInput = errors.New("ioformat: input is empty")
)

// ParseError reports a malformed numeric field recovered by substituting 0,
// carrying the 1-indexed source row for diagnostics.
type ParseError struct {
	Row    int
	Column string
	Value  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ioformat: row %d: cannot parse %s=%s", e.Row, e.Column, e.Value)
}
