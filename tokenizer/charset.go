// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package tokenizer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCharRange is reported by NewCharSet for an empty or descending range.
var ErrCharRange = errors.New("invalid character range")

// A CharSet is a set of byte values. The zero value is the empty set.
// CharSet values are comparable; two sets are equal if they contain the same
// members.
type CharSet struct{ bits [4]uint64 }

// Predefined character sets.
var (
	Whitespace = MustCharSet("\t\n\r ") // JSON whitespace
	Newline    = MustCharSet("\n")
)

// NewCharSet constructs a CharSet from a pattern. Each byte of the pattern is
// a member of the set, except that a "-" between two bytes denotes the closed
// range from the first to the second, so "a-zA-Z" is all ASCII letters.
// A "-" at the start of the pattern stands for itself.
//
// NewCharSet reports ErrCharRange if a range is empty or descending, or if a
// "-" ends the pattern after some other byte.
func NewCharSet(pattern string) (CharSet, error) {
	var cs CharSet
	var prev byte
	var hasPrev bool
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '-' || !hasPrev {
			cs.add(c)
			prev, hasPrev = c, true
			continue
		}
		if i+1 >= len(pattern) || pattern[i+1] <= prev {
			return CharSet{}, fmt.Errorf("pattern %q offset %d: %w", pattern, i, ErrCharRange)
		}
		hi := pattern[i+1]
		for b := int(prev) + 1; b <= int(hi); b++ {
			cs.add(byte(b))
		}
		prev = hi
		i++
	}
	return cs, nil
}

// MustCharSet is as NewCharSet, but panics if the pattern is invalid.
func MustCharSet(pattern string) CharSet {
	cs, err := NewCharSet(pattern)
	if err != nil {
		panic(err)
	}
	return cs
}

// Contains reports whether c is a member of cs.
func (cs CharSet) Contains(c byte) bool { return cs.bits[c>>6]&(1<<(c&63)) != 0 }

// Equal reports whether cs and other have the same members.
func (cs CharSet) Equal(other CharSet) bool { return cs == other }

// Len reports the number of members of cs.
func (cs CharSet) Len() int {
	var n int
	for c := range 256 {
		if cs.Contains(byte(c)) {
			n++
		}
	}
	return n
}

// String renders the members of cs in ascending order, with ranges of three
// or more consecutive members collapsed to "lo-hi".
func (cs CharSet) String() string {
	var sb strings.Builder
	for c := 0; c < 256; c++ {
		if !cs.Contains(byte(c)) {
			continue
		}
		hi := c
		for hi+1 < 256 && cs.Contains(byte(hi+1)) {
			hi++
		}
		switch {
		case hi-c >= 2:
			fmt.Fprintf(&sb, "%q-%q", byte(c), byte(hi))
		case hi > c:
			fmt.Fprintf(&sb, "%q%q", byte(c), byte(hi))
		default:
			fmt.Fprintf(&sb, "%q", byte(c))
		}
		c = hi
	}
	return sb.String()
}

func (cs *CharSet) add(c byte) { cs.bits[c>>6] |= 1 << (c & 63) }
