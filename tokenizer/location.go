// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package tokenizer

import "fmt"

// A LineCol describes the line number and column of a location in source
// text. Both are 1-based; the column counts bytes.
type LineCol struct {
	Line   int
	Column int
}

func (lc LineCol) String() string { return fmt.Sprintf("line %d, col %d", lc.Line, lc.Column) }

// Error is the concrete type of errors reported by a Tokenizer.
type Error struct {
	Location LineCol
	Message  string

	err error
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("at %s: %s: %v", e.Location, e.Message, e.err)
	}
	return fmt.Sprintf("at %s: %s", e.Location, e.Message)
}

// Unwrap supports error wrapping.
func (e *Error) Unwrap() error { return e.err }
