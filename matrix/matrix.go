// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package matrix implements a dense table of float64 values with per-column
// attribute metadata, as used to hold machine-learning data sets.
//
// Each column of a Matrix is either continuous, holding real values, or
// nominal, holding the integer code of one of a fixed set of named values.
// A cell may also hold vec.Unknown to mark a missing value. The statistical
// methods skip unknown cells.
//
// Matrices can be read and written in the ARFF text format (see ReadARFF and
// WriteARFF), and continuous matrices can be marshaled to JSON.
package matrix

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/creachadair/mlkit/vec"
)

var (
	// ErrDimension is reported when the shape of a matrix does not fit the
	// requested operation.
	ErrDimension = errors.New("dimension mismatch")

	// ErrRange is reported when a row, column, or value code is out of range.
	ErrRange = errors.New("index out of range")
)

// A Matrix is a sequence of rows of equal width, with metadata for each
// column. A zero Matrix has no rows or columns and is ready for use.
type Matrix struct {
	rows      []*vec.Vec
	relation  string
	attrNames []string
	strToEnum []map[string]int // per column: value name → code
	enumToStr [][]string       // per column: code → value name
	attrTypes []int            // per column: 0 if continuous, else the value count
}

// New constructs a matrix of r rows and c continuous columns, with all cells
// zero.
func New(r, c int) *Matrix {
	m := new(Matrix)
	m.SetSize(r, c)
	return m
}

// SetSize discards the contents and metadata of m, and resizes it to r rows
// and c continuous columns, with all cells zero.
func (m *Matrix) SetSize(r, c int) {
	m.Clear()
	m.relation = ""
	m.attrNames = make([]string, c)
	m.strToEnum = make([]map[string]int, c)
	m.enumToStr = make([][]string, c)
	m.attrTypes = make([]int, c)
	m.addRows(r)
}

// Clear discards all the rows of m, but keeps its column metadata.
func (m *Matrix) Clear() {
	clear(m.rows)
	m.rows = m.rows[:0]
}

// CopyMetaData discards all the rows of m and replaces its column metadata
// with a copy of the metadata of that.
func (m *Matrix) CopyMetaData(that *Matrix) {
	m.Clear()
	m.attrNames = slices.Clone(that.attrNames)
	m.strToEnum = make([]map[string]int, len(that.strToEnum))
	for i, e := range that.strToEnum {
		m.strToEnum[i] = maps.Clone(e)
	}
	m.enumToStr = make([][]string, len(that.enumToStr))
	for i, e := range that.enumToStr {
		m.enumToStr[i] = slices.Clone(e)
	}
	m.attrTypes = slices.Clone(that.attrTypes)
}

// NewColumn discards all the rows of m and adds a column named "col_N", where
// N is its offset. If vals == 0, the column is continuous; otherwise it is
// nominal, with values named "val_0" through "val_K" for K = vals-1.
func (m *Matrix) NewColumn(vals int) {
	m.Clear()
	names := make([]string, vals)
	codes := make(map[string]int, vals)
	for i := range vals {
		names[i] = "val_" + strconv.Itoa(i)
		codes[names[i]] = i
	}
	m.addColumn("col_"+strconv.Itoa(m.Cols()), names, codes)
}

func (m *Matrix) addColumn(name string, names []string, codes map[string]int) {
	m.attrNames = append(m.attrNames, name)
	m.enumToStr = append(m.enumToStr, names)
	m.strToEnum = append(m.strToEnum, codes)
	m.attrTypes = append(m.attrTypes, len(names))
}

// NewRow adds a new row of zeroes to m, and returns it. It reports an error
// if m has no columns.
func (m *Matrix) NewRow() (*vec.Vec, error) {
	if m.Cols() == 0 {
		return nil, fmt.Errorf("add a row with no columns: %w", ErrDimension)
	}
	r := vec.New(m.Cols())
	m.rows = append(m.rows, r)
	return r, nil
}

// NewRows adds n new rows of zeroes to m. It reports an error if m has no
// columns.
func (m *Matrix) NewRows(n int) error {
	if m.Cols() == 0 && n > 0 {
		return fmt.Errorf("add rows with no columns: %w", ErrDimension)
	}
	m.addRows(n)
	return nil
}

func (m *Matrix) addRows(n int) {
	m.rows = slices.Grow(m.rows, n)
	for range n {
		m.rows = append(m.rows, vec.New(m.Cols()))
	}
}

// Copy makes m a copy of that, including its column metadata.
func (m *Matrix) Copy(that *Matrix) {
	m.SetSize(that.Rows(), that.Cols())
	if err := m.CopyBlock(0, 0, that, 0, 0, that.Rows(), that.Cols()); err != nil {
		panic(err) // the shapes agree by construction
	}
}

// Clone returns a new copy of m, including its relation name.
func (m *Matrix) Clone() *Matrix {
	out := new(Matrix)
	out.Copy(m)
	out.relation = m.relation
	return out
}

// Rows reports the number of rows in m.
func (m *Matrix) Rows() int { return len(m.rows) }

// Cols reports the number of columns in m.
func (m *Matrix) Cols() int { return len(m.attrNames) }

// Row returns the row of m at offset r. The caller may modify its elements,
// but must not change its size.
func (m *Matrix) Row(r int) *vec.Vec { return m.rows[r] }

// At returns the cell of m at row r and column c.
func (m *Matrix) At(r, c int) float64 { return m.rows[r].At(c) }

// Set sets the cell of m at row r and column c to v.
func (m *Matrix) Set(r, c int, v float64) { m.rows[r].Set(c, v) }

// Relation returns the relation name of m.
func (m *Matrix) Relation() string { return m.relation }

// SetRelation sets the relation name of m.
func (m *Matrix) SetRelation(name string) { m.relation = name }

// AttrName returns the name of column c.
func (m *Matrix) AttrName(c int) string { return m.attrNames[c] }

// SetAttrName sets the name of column c.
func (m *Matrix) SetAttrName(c int, name string) { m.attrNames[c] = name }

// ValueCount reports the number of values of column c, or 0 if column c is
// continuous.
func (m *Matrix) ValueCount(c int) int { return len(m.enumToStr[c]) }

// AttrType reports 0 if column c is continuous, or else its value count.
func (m *Matrix) AttrType(c int) int { return m.attrTypes[c] }

// IsNominal reports whether column c is nominal.
func (m *Matrix) IsNominal(c int) bool { return m.attrTypes[c] != 0 }

// AttrValue returns the name of the value with the given code in column c.
func (m *Matrix) AttrValue(c, code int) (string, error) {
	if code < 0 || code >= len(m.enumToStr[c]) {
		return "", fmt.Errorf("column %d has no value %d: %w", c, code, ErrRange)
	}
	return m.enumToStr[c][code], nil
}

// ValueCode returns the code of the named value in column c.
func (m *Matrix) ValueCode(c int, name string) (int, bool) {
	code, ok := m.strToEnum[c][name]
	return code, ok
}

// Fill sets every cell of m to v.
func (m *Matrix) Fill(v float64) {
	for _, r := range m.rows {
		r.Fill(v)
	}
}

// CheckCompatibility reports an error unless m and that have the same number
// of columns, with the same value count in each.
func (m *Matrix) CheckCompatibility(that *Matrix) error {
	if m.Cols() != that.Cols() {
		return fmt.Errorf("matrices have %d and %d columns: %w", m.Cols(), that.Cols(), ErrDimension)
	}
	for c := range m.Cols() {
		if m.ValueCount(c) != that.ValueCount(c) {
			return fmt.Errorf("column %d has %d and %d values: %w", c, m.ValueCount(c), that.ValueCount(c), ErrDimension)
		}
	}
	return nil
}

// CopyBlock copies the block of that with rows [srcRow, srcRow+rows) and
// columns [srcCol, srcCol+cols) into m at destRow, destCol. The metadata of
// the copied columns also replaces that of the destination columns.
func (m *Matrix) CopyBlock(destRow, destCol int, that *Matrix, srcRow, srcCol, rows, cols int) error {
	if destRow < 0 || destCol < 0 || rows < 0 || cols < 0 ||
		destRow+rows > m.Rows() || destCol+cols > m.Cols() {
		return fmt.Errorf("block out of range for destination: %w", ErrRange)
	}
	if srcRow < 0 || srcCol < 0 || srcRow+rows > that.Rows() || srcCol+cols > that.Cols() {
		return fmt.Errorf("block out of range for source: %w", ErrRange)
	}
	for i := range cols {
		d, s := destCol+i, srcCol+i
		m.attrNames[d] = that.attrNames[s]
		m.strToEnum[d] = maps.Clone(that.strToEnum[s])
		m.enumToStr[d] = slices.Clone(that.enumToStr[s])
		m.attrTypes[d] = that.attrTypes[s]
	}
	for i := range rows {
		if err := m.rows[destRow+i].Put(destCol, that.rows[srcRow+i], srcCol, cols); err != nil {
			return err
		}
	}
	return nil
}

// Print writes each row of m to w as a bracketed, comma-separated list
// followed by a newline.
func (m *Matrix) Print(w io.Writer) error {
	var buf []byte
	for _, r := range m.rows {
		buf = append(buf, r.String()...)
		buf = append(buf, '\n')
	}
	_, err := w.Write(buf)
	return err
}
