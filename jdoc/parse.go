// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/creachadair/mlkit/internal/escape"
	"github.com/creachadair/mlkit/tokenizer"
	"github.com/tailscale/hujson"
	"go4.org/mem"
)

var (
	whitespace = tokenizer.Whitespace
	numChars   = tokenizer.MustCharSet("-.+0-9eE")
	stringStop = tokenizer.MustCharSet(`"\`)
)

// ParseOptions control the behaviour of ParseWith.
type ParseOptions struct {
	// If true, accept JWCC input: comments and trailing commas in objects and
	// arrays are permitted, and are discarded before parsing.
	AllowComments bool
}

// Parse parses a single JSON value from data into a new document.
// In case of a syntax error, the returned error has type [*SyntaxError].
//
// A number containing "." is a double. Any other number is an integer, even
// with an exponent, so "1e3" is the integer 1000; an exponent that leaves a
// fractional part, as in "15e-1", is an error.
func Parse(data []byte) (*Doc, error) {
	d := New()
	if _, err := d.ParseJSON(data); err != nil {
		return nil, err
	}
	return d, nil
}

// ParseWith is as Parse, with options.
func ParseWith(data []byte, opts ParseOptions) (*Doc, error) {
	if opts.AllowComments {
		std, err := hujson.Standardize(bytes.Clone(data))
		if err != nil {
			return nil, fmt.Errorf("standardize input: %w", err)
		}
		data = std
	}
	return Parse(data)
}

// ParseReader parses a single JSON value from r into a new document.
func ParseReader(r io.Reader) (*Doc, error) {
	d := New()
	if _, err := d.parse(tokenizer.New(r)); err != nil {
		return nil, err
	}
	return d, nil
}

// Load parses a single JSON value from the named file into a new document.
func Load(path string) (*Doc, error) {
	tok, err := tokenizer.Open(path)
	if err != nil {
		return nil, err
	}
	defer tok.Close()
	d := New()
	if _, err := d.parse(tok); err != nil {
		return nil, fmt.Errorf("load %q: %w", path, err)
	}
	return d, nil
}

// ParseJSON parses a single JSON value from data into d, makes it the root of
// d, and returns it. Leading and trailing whitespace is permitted, but any
// other input after the value is an error.
func (d *Doc) ParseJSON(data []byte) (*Node, error) {
	return d.parse(tokenizer.FromBytes(data))
}

func (d *Doc) parse(tok *tokenizer.Tokenizer) (_ *Node, err error) {
	p := &parser{doc: d, tok: tok}
	defer p.recoverParseError(&err)

	tok.Skip(whitespace)
	if !tok.HasMore() {
		p.syntaxError(tok.Err(), "unexpected end of input")
	}
	root := p.parseValue()
	tok.Skip(whitespace)
	if tok.HasMore() {
		p.syntaxError(nil, "unexpected %q after value", tok.Peek())
	}
	p.checkRead()
	d.root = root
	return root, nil
}

type parser struct {
	doc *Doc
	tok *tokenizer.Tokenizer
	raw []byte // scratch for undecoded strings
	str []byte // scratch for decoded strings
}

func (p *parser) recoverParseError(errp *error) {
	if serr := recover(); serr != nil {
		switch err := serr.(type) {
		case *SyntaxError:
			*errp = err
		default:
			panic(serr)
		}
	}
}

func (p *parser) parseValue() *Node {
	switch c := p.tok.Peek(); c {
	case '{':
		return p.parseObject()
	case '[':
		return p.parseArray()
	case '"':
		return p.doc.NewStringBytes(p.parseString())
	case 't':
		p.expect("true")
		return p.doc.NewBool(true)
	case 'f':
		p.expect("false")
		return p.doc.NewBool(false)
	case 'n':
		p.expect("null")
		return p.doc.NewNull()
	case 0:
		if !p.tok.HasMore() {
			p.checkRead()
			p.syntaxError(nil, "unexpected end of input, want value")
		}
	default:
		if numChars.Contains(c) {
			return p.parseNumber()
		}
	}
	p.syntaxError(nil, "unexpected %q, want value", p.tok.Peek())
	panic("unreachable")
}

func (p *parser) parseObject() *Node {
	p.tok.Get() // {
	obj := p.doc.NewObject()
	p.tok.Skip(whitespace)
	if p.tok.Peek() == '}' {
		p.tok.Get()
		return obj
	}
	for {
		p.tok.Skip(whitespace)
		if c := p.tok.Peek(); c != '"' {
			p.unexpected(c, "object field name")
		}
		name := p.parseString()
		p.tok.Skip(whitespace)
		if c := p.tok.Peek(); c != ':' {
			p.unexpected(c, `":"`)
		}
		p.tok.Get()
		p.tok.Skip(whitespace)

		// The name is held in scratch space which parseValue may reuse.
		key := p.doc.heap.Add(name)
		obj.addField(key, p.parseValue())

		p.tok.Skip(whitespace)
		switch c := p.tok.Peek(); c {
		case ',':
			p.tok.Get()
		case '}':
			p.tok.Get()
			return obj
		default:
			p.unexpected(c, `"," or "}" in object`)
		}
	}
}

func (p *parser) parseArray() *Node {
	p.tok.Get() // [
	arr := p.doc.NewArray()
	p.tok.Skip(whitespace)
	if p.tok.Peek() == ']' {
		p.tok.Get()
		return arr
	}
	for {
		p.tok.Skip(whitespace)
		arr.addItem(p.parseValue())
		p.tok.Skip(whitespace)
		switch c := p.tok.Peek(); c {
		case ',':
			p.tok.Get()
		case ']':
			p.tok.Get()
			return arr
		default:
			p.unexpected(c, `"," or "]" in array`)
		}
	}
}

// parseString consumes a quoted string and returns its decoded contents.
// The result is valid until the next call to parseString.
func (p *parser) parseString() []byte {
	start := p.tok.Location()
	p.tok.Get() // "
	p.raw = p.raw[:0]
	for {
		run, _ := p.tok.NextUntil(stringStop, 0)
		p.raw = append(p.raw, run...)
		switch p.tok.Get() {
		case '"':
			out, err := escape.AppendUnquote(p.str[:0], mem.B(p.raw))
			if err != nil {
				panic(&SyntaxError{Location: start, Message: fmt.Sprintf("invalid string: %v", err), err: err})
			}
			p.str = out
			return out
		case '\\':
			if !p.tok.HasMore() {
				break
			}
			p.raw = append(p.raw, '\\', p.tok.Get())
			continue
		}
		p.checkRead()
		p.syntaxError(nil, "unexpected end of input in string")
	}
}

func (p *parser) parseNumber() *Node {
	tok, err := p.tok.NextWhile(numChars, 1)
	if err != nil {
		p.syntaxError(err, "invalid number")
	}
	text := mem.B(tok)
	if mem.IndexByte(text, '.') < 0 {
		v, err := mem.ParseInt(text, 10, 64)
		if err == nil {
			return p.doc.NewInt(v)
		}
		// An exponent without a decimal point still denotes an integer, and
		// its value must be integral.
		if mem.IndexByte(text, 'e') < 0 && mem.IndexByte(text, 'E') < 0 {
			p.syntaxError(err, "invalid integer %q", tok)
		}
		f, ferr := mem.ParseFloat(text, 64)
		if ferr != nil || f < -0x1p63 || f >= 0x1p63 {
			p.syntaxError(err, "invalid integer %q", tok)
		} else if f != math.Trunc(f) {
			p.syntaxError(nil, "integer %q has a fractional part", tok)
		}
		return p.doc.NewInt(int64(f))
	}
	f, err := mem.ParseFloat(text, 64)
	if err != nil {
		p.syntaxError(err, "invalid number %q", tok)
	}
	n, err := p.doc.NewDouble(f)
	if err != nil {
		p.syntaxError(err, "%v", err)
	}
	return n
}

func (p *parser) expect(word string) {
	loc := p.tok.Location()
	if err := p.tok.Expect(word); err != nil {
		panic(&SyntaxError{Location: loc, Message: fmt.Sprintf("expected %q", word), err: err})
	}
}

// unexpected reports a syntax error for the byte c where want was required.
func (p *parser) unexpected(c byte, want string) {
	if c == 0 && !p.tok.HasMore() {
		p.checkRead()
		p.syntaxError(nil, "unexpected end of input, want %s", want)
	}
	p.syntaxError(nil, "unexpected %q, want %s", c, want)
}

// checkRead reports a read error from the underlying input, if any.
func (p *parser) checkRead() {
	if err := p.tok.Err(); err != nil {
		p.syntaxError(err, "read failed: %v", err)
	}
}

func (p *parser) syntaxError(err error, msg string, args ...any) {
	panic(&SyntaxError{
		Location: p.tok.Location(),
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	})
}
