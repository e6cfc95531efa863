package parser

import (
	"fmt"
	"strings"
)

// HeaderError reports a statement whose header row does not match the
// documented column contract. Actual is nil for a completely empty file.
type HeaderError struct {
	Expected []string
	Actual   []string
}

func (e *HeaderError) Error() string {
	if e.Actual == nil {
		return fmt.Sprintf("statement has no header row (expected %q)", strings.Join(e.Expected, ","))
	}
	return fmt.Sprintf("header mismatch: expected %q, got %q",
		strings.Join(e.Expected, ","), strings.Join(e.Actual, ","))
}

// RowError reports a single row that failed semantic parsing. Row is the
// 1-based file row, counting the header as row 1, so it matches editor line
// numbers.
type RowError struct {
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %s: %v", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
