// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"errors"
	"fmt"

	"github.com/creachadair/mlkit/tokenizer"
)

var (
	// ErrNoField is reported by Field when an object has no field with the
	// requested name.
	ErrNoField = errors.New("field not found")

	// ErrRange is reported for a double value that cannot be represented
	// safely in JSON text.
	ErrRange = errors.New("value out of range")

	// ErrNoRoot is reported when writing a document with no root node.
	ErrNoRoot = errors.New("no root node has been set")

	// ErrForeignNode is reported when a node is attached to a document other
	// than the one that created it.
	ErrForeignNode = errors.New("node belongs to a different document")

	// ErrNilNode is reported when a nil node is added to an object or array.
	ErrNilNode = errors.New("nil node")
)

// SyntaxError is the concrete type of errors reported by the parser.
type SyntaxError struct {
	Location tokenizer.LineCol
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// TypeError is the concrete type of errors reported when an operation is
// applied to a node of the wrong kind.
type TypeError struct {
	Want Kind // the kind the operation requires
	Got  Kind // the kind of the node
}

// Error satisfies the error interface.
func (t *TypeError) Error() string {
	return fmt.Sprintf("wrong node kind: got %v, want %v", t.Got, t.Want)
}
