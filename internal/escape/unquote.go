// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
//
// The encoding is byte-oriented: bytes outside the ASCII range are copied
// through without interpretation, and a \uXXXX escape is decoded to the
// placeholder byte UnicodePlaceholder rather than to a code point.
package escape

import (
	"errors"
	"fmt"

	"go4.org/mem"
)

// UnicodePlaceholder is the byte substituted for a \uXXXX escape.
const UnicodePlaceholder = '_'

// ErrIncomplete is reported for an escape sequence truncated by the end of
// the input.
var ErrIncomplete = errors.New("incomplete escape sequence")

// AppendUnquote decodes src, the contents of a JSON string with the enclosing
// double quotation marks already removed, appends the result to dst, and
// returns the extended slice.
//
// Escape sequences are replaced with their unescaped equivalents. An unknown
// escape or a \u not followed by four hexadecimal digits is an error.
func AppendUnquote(dst []byte, src mem.RO) ([]byte, error) {
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dst, src), nil
	}
	for src.Len() != 0 {
		dst = mem.Append(dst, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, ErrIncomplete
		}

		c := src.At(0)
		src = src.SliceFrom(1)
		switch c {
		case '"', '\\', '/':
			dst = append(dst, c)
		case 'b':
			dst = append(dst, '\b')
		case 'f':
			dst = append(dst, '\f')
		case 'n':
			dst = append(dst, '\n')
		case 'r':
			dst = append(dst, '\r')
		case 't':
			dst = append(dst, '\t')
		case 'u':
			if src.Len() < 4 {
				return nil, ErrIncomplete
			}
			if err := checkHex(src.SliceTo(4)); err != nil {
				return nil, err
			}
			dst = append(dst, UnicodePlaceholder)
			src = src.SliceFrom(4)
		default:
			return nil, fmt.Errorf("unrecognized escape sequence %q", []byte{'\\', c})
		}

		// Look for the next escape sequence, and if one is not found we can blit
		// the rest of the input and go home.
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			dst = mem.Append(dst, src)
			break
		}
	}
	return dst, nil
}

// Unquote is as AppendUnquote, returning a freshly-allocated result.
func Unquote(src mem.RO) ([]byte, error) { return AppendUnquote(make([]byte, 0, src.Len()), src) }

func checkHex(data mem.RO) error {
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		if !('0' <= b && b <= '9' || 'a' <= b && b <= 'f' || 'A' <= b && b <= 'F') {
			return fmt.Errorf("invalid hex digit %q in Unicode escape", b)
		}
	}
	return nil
}
