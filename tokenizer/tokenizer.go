// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package tokenizer implements a byte-oriented tokenizer for text formats.
//
// A Tokenizer reads from a byte stream with a small bounded lookahead. Bytes
// are consumed one at a time with Get, or in runs selected by a CharSet with
// the Next and Skip methods. The Next methods capture what they consume into
// a token buffer that is reused by each call; the returned slice is only
// valid until the next capturing call.
//
//	ws := tokenizer.Whitespace
//	word := tokenizer.MustCharSet("a-zA-Z0-9_")
//	tok := tokenizer.FromBytes(input)
//	for tok.Skip(ws); tok.HasMore(); tok.Skip(ws) {
//	   w, err := tok.NextWhile(word, 1)
//	   if err != nil {
//	      log.Fatal(err)
//	   }
//	   log.Printf("word: %s", w)
//	}
//
// End of input is reported as the byte 0 by Peek and Get. The tokenizer does
// not interpret text encodings.
package tokenizer

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// Lookahead is the number of bytes a Tokenizer can inspect without
// consuming them.
const Lookahead = 8

const initBufSize = 256

// A Tokenizer reads tokens from a byte stream.
type Tokenizer struct {
	r   io.ByteReader
	c   io.Closer // if not nil, closed by Close
	err error     // first non-EOF read error

	q      [Lookahead]byte // ring of lookahead bytes
	qpos   int             // head of q
	qcount int             // number of bytes buffered in q

	buf []byte // token buffer; len(buf) is its capacity
	n   int    // length of the current token

	line, col int // line is 1-based; col counts bytes consumed on this line
	off       int // bytes consumed
}

// New constructs a Tokenizer that consumes input from r.
func New(r io.Reader) *Tokenizer {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Tokenizer{r: br, buf: make([]byte, initBufSize), line: 1}
}

// FromBytes constructs a Tokenizer that consumes the contents of data.
func FromBytes(data []byte) *Tokenizer { return New(bytes.NewReader(data)) }

// Open constructs a Tokenizer that consumes the contents of the named file.
// The caller must Close the tokenizer when it is no longer needed.
func Open(path string) (*Tokenizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tokenizer input: %w", err)
	}
	t := New(f)
	t.c = f
	return t, nil
}

// Close releases the input of t, if it was opened by Open.
func (t *Tokenizer) Close() error {
	if t.c == nil {
		return nil
	}
	err := t.c.Close()
	t.c = nil
	return err
}

// Err reports the first error other than end of input encountered while
// reading the stream, or nil. A read error is otherwise treated as the end
// of input.
func (t *Tokenizer) Err() error { return t.err }

// Line reports the current 1-based line number. It is incremented each time
// a newline is consumed.
func (t *Tokenizer) Line() int { return t.line }

// Col reports the number of bytes consumed since the last newline.
func (t *Tokenizer) Col() int { return t.col }

// Offset reports the total number of bytes consumed.
func (t *Tokenizer) Offset() int { return t.off }

// Location reports the 1-based line and column of the next unread byte.
func (t *Tokenizer) Location() LineCol { return LineCol{Line: t.line, Column: t.col + 1} }

// HasMore reports whether any input remains to be consumed.
func (t *Tokenizer) HasMore() bool { return t.qcount > 0 || t.fill() }

// Peek returns the next byte of input without consuming it, or 0 at the end
// of input.
func (t *Tokenizer) Peek() byte {
	if t.qcount == 0 && !t.fill() {
		return 0
	}
	return t.q[t.qpos]
}

// PeekAt returns the byte n positions ahead without consuming any input, or 0
// if the input ends before then. PeekAt(0) is equivalent to Peek.
// It panics if n < 0 or n >= Lookahead.
func (t *Tokenizer) PeekAt(n int) byte {
	if n < 0 || n >= Lookahead {
		panic(fmt.Sprintf("tokenizer: lookahead %d out of range [0, %d)", n, Lookahead))
	}
	for t.qcount <= n {
		if !t.fill() {
			return 0
		}
	}
	return t.q[(t.qpos+n)%Lookahead]
}

// Get consumes and returns the next byte of input, or returns 0 at the end of
// input.
func (t *Tokenizer) Get() byte {
	if t.qcount == 0 && !t.fill() {
		return 0
	}
	c := t.q[t.qpos]
	t.qpos = (t.qpos + 1) % Lookahead
	t.qcount--
	t.off++
	if c == '\n' {
		t.line++
		t.col = 0
	} else {
		t.col++
	}
	return c
}

// Advance consumes up to n bytes, stopping early at the end of input.
func (t *Tokenizer) Advance(n int) {
	for ; n > 0 && t.HasMore(); n-- {
		t.Get()
	}
}

// Skip consumes bytes while the next byte is a member of set.
func (t *Tokenizer) Skip(set CharSet) {
	for t.HasMore() && set.Contains(t.Peek()) {
		t.Get()
	}
}

// SkipTo consumes bytes until the next byte is a member of set.
func (t *Tokenizer) SkipTo(set CharSet) {
	for t.HasMore() && !set.Contains(t.Peek()) {
		t.Get()
	}
}

// NextWhile captures bytes while the next byte is a member of set. It reports
// an error if fewer than minLen bytes were captured.
func (t *Tokenizer) NextWhile(set CharSet, minLen int) ([]byte, error) {
	t.n = 0
	for t.HasMore() && set.Contains(t.Peek()) {
		t.bufferByte(t.Get())
	}
	if t.n < minLen {
		return nil, t.failf("unexpected token, want at least %d bytes, got %d", minLen, t.n)
	}
	return t.finish(), nil
}

// NextUntil captures bytes until the next byte is a member of delims. It
// reports an error if fewer than minLen bytes were captured.
func (t *Tokenizer) NextUntil(delims CharSet, minLen int) ([]byte, error) {
	t.n = 0
	for t.HasMore() && !delims.Contains(t.Peek()) {
		t.bufferByte(t.Get())
	}
	if t.n < minLen {
		return nil, t.failf("expected a token of at least size %d, but got only %d", minLen, t.n)
	}
	return t.finish(), nil
}

// NextUntilNotEscaped captures bytes until the next byte is a member of
// delims and the most recently consumed byte is not esc. Escape bytes are
// retained in the token.
func (t *Tokenizer) NextUntilNotEscaped(esc byte, delims CharSet) []byte {
	t.n = 0
	var last byte
	for t.HasMore() {
		if c := t.Peek(); delims.Contains(c) && last != esc {
			break
		}
		last = t.Get()
		t.bufferByte(last)
	}
	return t.finish()
}

// NextArg captures a delimited argument.
//
// If the next byte is a double or single quotation mark, the argument extends
// to the matching quotation mark and both marks are included in the token.
// Reaching a newline or the end of input before the matching mark is an
// error. The escape byte has no special meaning inside quotes. Any bytes
// following the closing mark are then discarded up to the next delimiter.
//
// Otherwise the argument extends to the next newline or member of delims.
// An occurrence of esc causes the byte following it to be captured
// literally, even if it is a delimiter; esc itself is not captured. An escape
// at the end of a line is an error.
func (t *Tokenizer) NextArg(delims CharSet, esc byte) ([]byte, error) {
	t.n = 0
	if q := t.Peek(); q == '"' || q == '\'' {
		t.bufferByte(t.Get())
		for t.HasMore() {
			if c := t.Peek(); c == q || c == '\n' {
				break
			}
			t.bufferByte(t.Get())
		}
		if t.Peek() != q {
			if q == '"' {
				return nil, t.failf("expected matching double-quotes")
			}
			return nil, t.failf("expected a matching single-quote")
		}
		t.bufferByte(t.Get())
		t.SkipTo(delims)
		return t.finish(), nil
	}

	var inEscape bool
	for t.HasMore() {
		c := t.Peek()
		if inEscape {
			if c == '\n' {
				return nil, t.failf("escape %q at end of line", esc)
			}
			t.bufferByte(t.Get())
			inEscape = false
			continue
		}
		if c == '\n' || delims.Contains(c) {
			break
		}
		if t.Get() == esc {
			inEscape = true
		} else {
			t.bufferByte(c)
		}
	}
	return t.finish(), nil
}

// Expect consumes the bytes of s, reporting an error if the input does not
// match exactly.
func (t *Tokenizer) Expect(s string) error {
	for i := 0; i < len(s); i++ {
		if !t.HasMore() {
			return t.failf("expected %q, reached end of input", s)
		}
		if t.Get() != s[i] {
			return t.failf("expected %q", s)
		}
	}
	return nil
}

// Token returns the current token, that is, the bytes captured by the most
// recent Next method.
func (t *Tokenizer) Token() []byte { return t.buf[:t.n] }

// TokenLen reports the length of the current token.
func (t *Tokenizer) TokenLen() int { return t.n }

// AppendToToken appends s to the current token without consuming input, and
// returns the extended token.
func (t *Tokenizer) AppendToToken(s string) []byte {
	for i := 0; i < len(s); i++ {
		t.bufferByte(s[i])
	}
	return t.finish()
}

// Trim returns the current token with members of set removed from both ends.
// The token buffer is not otherwise modified.
func (t *Tokenizer) Trim(set CharSet) []byte {
	lo, hi := 0, t.n
	for lo < hi && set.Contains(t.buf[lo]) {
		lo++
	}
	for hi > lo && set.Contains(t.buf[hi-1]) {
		hi--
	}
	return t.buf[lo:hi]
}

// Filter removes from the current token, in place, every byte that is not a
// member of set, and returns the result. The length reported by TokenLen is
// not changed.
func (t *Tokenizer) Filter(set CharSet) []byte {
	end := 0
	for _, c := range t.buf[:t.n] {
		if set.Contains(c) {
			t.buf[end] = c
			end++
		}
	}
	if end < t.n {
		t.buf[end] = 0
	}
	return t.buf[:end]
}

// fill reads one byte from the stream into the lookahead queue, and reports
// whether it succeeded. The queue must not be full.
func (t *Tokenizer) fill() bool {
	c, err := t.r.ReadByte()
	if err != nil {
		if err != io.EOF && t.err == nil {
			t.err = err
		}
		return false
	}
	t.q[(t.qpos+t.qcount)%Lookahead] = c
	t.qcount++
	return true
}

func (t *Tokenizer) bufferByte(c byte) {
	if t.n == len(t.buf) {
		t.growBuf()
	}
	t.buf[t.n] = c
	t.n++
}

// growBuf doubles the capacity of the token buffer.
func (t *Tokenizer) growBuf() {
	nb := make([]byte, 2*len(t.buf))
	copy(nb, t.buf)
	t.buf = nb
}

// finish terminates the current token with a NUL and returns it.
func (t *Tokenizer) finish() []byte {
	if t.n == len(t.buf) {
		t.growBuf()
	}
	t.buf[t.n] = 0
	return t.buf[:t.n]
}

func (t *Tokenizer) failf(msg string, args ...any) error {
	return &Error{Location: t.Location(), Message: fmt.Sprintf(msg, args...), err: t.err}
}
