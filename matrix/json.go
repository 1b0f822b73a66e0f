// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package matrix

import (
	"errors"
	"fmt"

	"github.com/creachadair/mlkit/jdoc"
	"github.com/creachadair/mlkit/vec"
)

// ErrNominal is reported when marshaling a matrix with a nominal column.
var ErrNominal = errors.New("cannot marshal nominal values")

// Marshal returns a new array node in doc holding one array of numbers for
// each row of m. It reports an error if any column of m is nominal.
func (m *Matrix) Marshal(doc *jdoc.Doc) (*jdoc.Node, error) {
	for c := range m.Cols() {
		if m.IsNominal(c) {
			return nil, fmt.Errorf("column %d: %w", c, ErrNominal)
		}
	}
	arr := doc.NewArray()
	for _, r := range m.rows {
		n, err := r.Marshal(doc)
		if err != nil {
			return nil, err
		}
		if _, err := arr.AddItem(n); err != nil {
			return nil, err
		}
	}
	return arr, nil
}

// FromJSON constructs a continuous matrix from an array of arrays of numbers,
// each giving one row. All rows must have the same length.
func FromJSON(n *jdoc.Node) (*Matrix, error) {
	it, err := jdoc.NewIterator(n)
	if err != nil {
		return nil, err
	}
	m := new(Matrix)
	for i := 0; it.Remaining() > 0; it.Advance() {
		row, err := vec.FromJSON(it.Current())
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if i == 0 {
			m.SetSize(0, row.Size())
		} else if row.Size() != m.Cols() {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", i, row.Size(), m.Cols(), ErrDimension)
		}
		m.rows = append(m.rows, row)
		i++
	}
	return m, nil
}
