// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package matrix

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/creachadair/mds/mapset"
	"github.com/creachadair/mlkit/tokenizer"
	"github.com/creachadair/mlkit/vec"
	"go4.org/mem"
)

// ARFFError is the concrete type of errors reported for malformed ARFF input.
type ARFFError struct {
	Line    int // 1-based
	Message string

	err error
}

// Error satisfies the error interface.
func (e *ARFFError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("arff line %d: %s: %v", e.Line, e.Message, e.err)
	}
	return fmt.Sprintf("arff line %d: %s", e.Line, e.Message)
}

// Unwrap supports error wrapping.
func (e *ARFFError) Unwrap() error { return e.err }

var (
	blanks        = tokenizer.MustCharSet("\t\r ")
	directive     = tokenizer.MustCharSet("@a-zA-Z")
	valueStop     = tokenizer.MustCharSet(",\n")
	nominalStop   = tokenizer.MustCharSet("}\n")
	trimSet       = tokenizer.MustCharSet("\t\r ")
	anyWhitespace = tokenizer.Whitespace

	// Attribute types denoting continuous columns, in lower case.
	continuousTypes = mapset.New("real", "continuous", "integer", "numeric")
)

// LoadARFF reads a matrix in ARFF format from the named file.
func LoadARFF(path string) (*Matrix, error) {
	tok, err := tokenizer.Open(path)
	if err != nil {
		return nil, err
	}
	defer tok.Close()
	m, err := readARFF(tok)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", path, err)
	}
	return m, nil
}

// ReadARFF reads a matrix in ARFF format from r.
//
// Directives are matched without regard to case. Lines beginning with "%"
// are comments. An attribute type is either one of REAL, CONTINUOUS, INTEGER,
// or NUMERIC, all denoting a continuous column, or a brace-enclosed list of
// comma-separated value names denoting a nominal column. An attribute name
// may be enclosed in single or double quotes to include whitespace. In the
// data section, "?" denotes an unknown value.
func ReadARFF(r io.Reader) (*Matrix, error) { return readARFF(tokenizer.New(r)) }

type arffReader struct {
	tok *tokenizer.Tokenizer
	m   *Matrix
}

func readARFF(tok *tokenizer.Tokenizer) (*Matrix, error) {
	ar := &arffReader{tok: tok, m: new(Matrix)}
	if err := ar.readHeader(); err != nil {
		return nil, err
	}
	if err := ar.readData(); err != nil {
		return nil, err
	}
	if err := tok.Err(); err != nil {
		return nil, ar.fail(err, "read failed")
	}
	return ar.m, nil
}

func (ar *arffReader) fail(err error, msg string, args ...any) error {
	return &ARFFError{Line: ar.tok.Line(), Message: fmt.Sprintf(msg, args...), err: err}
}

// skipBlankLines consumes whitespace and comment lines.
func (ar *arffReader) skipBlankLines() {
	for {
		ar.tok.Skip(anyWhitespace)
		if ar.tok.Peek() != '%' {
			return
		}
		ar.tok.SkipTo(tokenizer.Newline)
	}
}

// readHeader reads directives up to and including @DATA. If the input ends
// before @DATA, the matrix has no rows.
func (ar *arffReader) readHeader() error {
	for ar.skipBlankLines(); ar.tok.HasMore(); ar.skipBlankLines() {
		if ar.tok.Peek() != '@' {
			return ar.fail(nil, "unexpected text before @DATA")
		}
		word, err := ar.tok.NextWhile(directive, 1)
		if err != nil {
			return ar.fail(err, "invalid directive")
		}
		name := mem.B(word)
		switch {
		case mem.EqualFold(name, mem.S("@relation")):
			ar.tok.Skip(blanks)
			if _, err := ar.tok.NextUntil(tokenizer.Newline, 0); err != nil {
				return ar.fail(err, "invalid relation")
			}
			ar.m.relation = unquoteName(string(ar.tok.Trim(trimSet)))

		case mem.EqualFold(name, mem.S("@attribute")):
			if err := ar.readAttribute(); err != nil {
				return err
			}

		case mem.EqualFold(name, mem.S("@data")):
			ar.tok.SkipTo(tokenizer.Newline)
			return nil

		default:
			return ar.fail(nil, "unknown directive %q", word)
		}
	}
	return nil
}

func (ar *arffReader) readAttribute() error {
	ar.tok.Skip(blanks)
	quoted := ar.tok.Peek() == '\'' || ar.tok.Peek() == '"'
	arg, err := ar.tok.NextArg(blanks, '\\')
	if err != nil {
		return ar.fail(err, "invalid attribute name")
	}
	name := string(arg)
	if quoted {
		name = name[1 : len(name)-1]
	}
	if name == "" {
		return ar.fail(nil, "missing attribute name")
	}

	ar.tok.Skip(blanks)
	if ar.tok.Peek() != '{' {
		kind, err := ar.tok.NextUntil(anyWhitespace, 1)
		if err != nil {
			return ar.fail(err, "missing type for attribute %q", name)
		}
		if !continuousTypes.Has(strings.ToLower(string(kind))) {
			return ar.fail(nil, "unsupported type %q for attribute %q", kind, name)
		}
		ar.m.addColumn(name, nil, nil)
		ar.tok.SkipTo(tokenizer.Newline)
		return nil
	}

	ar.tok.Get() // {
	list, _ := ar.tok.NextUntil(nominalStop, 0)
	if ar.tok.Peek() != '}' {
		return ar.fail(nil, "missing } in values of attribute %q", name)
	}
	ar.tok.Get()

	var names []string
	codes := make(map[string]int)
	for v := range bytes.SplitSeq(list, []byte(",")) {
		s := string(bytes.TrimSpace(v))
		if s == "" {
			return ar.fail(nil, "empty value name for attribute %q", name)
		}
		if _, dup := codes[s]; dup {
			return ar.fail(nil, "duplicate value %q for attribute %q", s, name)
		}
		codes[s] = len(names)
		names = append(names, s)
	}
	ar.m.addColumn(name, names, codes)
	ar.tok.SkipTo(tokenizer.Newline)
	return nil
}

func (ar *arffReader) readData() error {
	cols := ar.m.Cols()
	for ar.skipBlankLines(); ar.tok.HasMore(); ar.skipBlankLines() {
		row, err := ar.m.NewRow()
		if err != nil {
			return ar.fail(err, "data with no attributes")
		}
		for c := range cols {
			ar.tok.Skip(blanks)
			if _, err := ar.tok.NextUntil(valueStop, 0); err != nil {
				return ar.fail(err, "invalid value")
			}
			val := ar.tok.Trim(trimSet)
			if len(val) == 0 {
				return ar.fail(nil, "expected more elements (attribute %d)", c)
			}
			v, err := ar.parseValue(c, val)
			if err != nil {
				return err
			}
			row.Set(c, v)

			if c+1 < cols {
				if ar.tok.Peek() != ',' {
					return ar.fail(nil, "expected more elements (attribute %d)", c+1)
				}
				ar.tok.Get()
			}
		}
		if ar.tok.Peek() == ',' {
			return ar.fail(nil, "too many elements, want %d", cols)
		}
	}
	return nil
}

func (ar *arffReader) parseValue(c int, val []byte) (float64, error) {
	if len(val) == 1 && val[0] == '?' {
		return vec.Unknown, nil
	}
	if ar.m.IsNominal(c) {
		code, ok := ar.m.strToEnum[c][string(val)]
		if !ok {
			return 0, ar.fail(nil, "unrecognized value %q for attribute %d", val, c)
		}
		return float64(code), nil
	}
	v, err := mem.ParseFloat(mem.B(val), 64)
	if err != nil {
		return 0, ar.fail(err, "invalid number for attribute %d", c)
	}
	return v, nil
}

// unquoteName removes a matching pair of quotes surrounding s, if present.
func unquoteName(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// quoteName renders an attribute name so that readAttribute recovers it.
// A name containing blanks is quoted with whichever quotation mark it does
// not contain. Otherwise, blanks, quotation marks, and backslashes are
// escaped with a backslash. Names cannot contain newlines.
func quoteName(s string) string {
	switch {
	case s == "":
		return "x"
	case !strings.ContainsAny(s, nameBlanks):
		return escapeName(s)
	case !strings.Contains(s, "'"):
		return "'" + s + "'"
	case !strings.Contains(s, `"`):
		return `"` + s + `"`
	}
	return escapeName(s)
}

const nameBlanks = "\t\r "

func escapeName(s string) string {
	if !strings.ContainsAny(s, nameBlanks+`'"\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(nameBlanks+`'"\`, s[i]) >= 0 {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// quoteRelation renders a relation name so that readHeader recovers it. The
// reader takes the rest of the line, trimmed, and removes one pair of
// enclosing quotes.
func quoteRelation(s string) string {
	if s == "" || strings.ContainsAny(s, nameBlanks) || unquoteName(s) != s {
		return "'" + s + "'"
	}
	return s
}

// SaveARFF writes m in ARFF format to the named file.
func (m *Matrix) SaveARFF(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	err = m.WriteARFF(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("save %q: %w", path, err)
	}
	return nil
}

// WriteARFF writes m in ARFF format to w. Continuous values are written in
// the shortest form that reads back exactly. Unnamed attributes are written
// with the name "x". Names are quoted or escaped as needed to read back
// unchanged.
func (m *Matrix) WriteARFF(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "@RELATION %s\n", quoteRelation(m.relation))
	for c, name := range m.attrNames {
		fmt.Fprintf(bw, "@ATTRIBUTE %s", quoteName(name))
		if !m.IsNominal(c) {
			bw.WriteString(" REAL\n")
			continue
		}
		bw.WriteString(" {")
		bw.WriteString(strings.Join(m.enumToStr[c], ","))
		bw.WriteString("}\n")
	}
	bw.WriteString("@DATA\n")

	var buf []byte
	for i, r := range m.rows {
		buf = buf[:0]
		for c, v := range r.Data() {
			if c > 0 {
				buf = append(buf, ',')
			}
			if v == vec.Unknown {
				buf = append(buf, '?')
			} else if m.IsNominal(c) {
				code := int(v)
				if code < 0 || code >= m.ValueCount(c) || float64(code) != v {
					return fmt.Errorf("row %d column %d: value %v: %w", i, c, v, ErrRange)
				}
				buf = append(buf, m.enumToStr[c][code]...)
			} else {
				buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
			}
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
