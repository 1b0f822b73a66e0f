// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package escape

import "go4.org/mem"

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

// AppendQuote appends the JSON encoding of src to dst, including the
// enclosing double quotation marks, and returns the extended slice.
//
// Quotation marks and backslashes are escaped, as are the control bytes that
// have a short JSON escape. Other control bytes and all bytes >= 0x80 are
// copied unmodified.
func AppendQuote(dst []byte, src mem.RO) []byte {
	dst = append(dst, '"')
	for i := 0; i < src.Len(); i++ {
		c := src.At(i)
		if c < ' ' {
			if b := controlEsc[c]; b != 0 {
				dst = append(dst, '\\', b)
			} else {
				dst = append(dst, c)
			}
		} else if c == '\\' || c == '"' {
			dst = append(dst, '\\', c)
		} else {
			dst = append(dst, c)
		}
	}
	return append(dst, '"')
}

// Quote encodes src as a JSON string value.
func Quote(src mem.RO) []byte { return AppendQuote(make([]byte, 0, src.Len()+2), src) }

// AppendLiteral appends the JSON encoding of src to dst, escaped a second
// time so that the result may appear inside a double-quoted C string literal.
// It returns the extended slice and the number of output columns the
// encoding is deemed to occupy.
//
// Each control byte is counted as three columns whether or not it was
// escaped; this matches the line-length accounting of the literal writer.
func AppendLiteral(dst []byte, src mem.RO) ([]byte, int) {
	dst = append(dst, `\"`...)
	cols := 2
	for i := 0; i < src.Len(); i++ {
		c := src.At(i)
		switch {
		case c < ' ':
			if b := controlEsc[c]; b != 0 {
				dst = append(dst, '\\', '\\', b)
			} else {
				dst = append(dst, c)
			}
			cols += 3
		case c == '\\':
			dst = append(dst, `\\\\`...)
			cols += 4
		case c == '"':
			dst = append(dst, `\\\"`...)
			cols += 4
		default:
			dst = append(dst, c)
			cols++
		}
	}
	return append(dst, `\"`...), cols + 2
}
