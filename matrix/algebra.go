// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package matrix

import "fmt"

// SwapRows exchanges rows a and b of m.
func (m *Matrix) SwapRows(a, b int) { m.rows[a], m.rows[b] = m.rows[b], m.rows[a] }

// SwapColumns exchanges columns a and b of m, including their metadata.
func (m *Matrix) SwapColumns(a, b int) error {
	if a < 0 || b < 0 || a >= m.Cols() || b >= m.Cols() {
		return fmt.Errorf("swap columns %d and %d of %d: %w", a, b, m.Cols(), ErrRange)
	}
	if a == b {
		return nil
	}
	m.attrNames[a], m.attrNames[b] = m.attrNames[b], m.attrNames[a]
	m.strToEnum[a], m.strToEnum[b] = m.strToEnum[b], m.strToEnum[a]
	m.enumToStr[a], m.enumToStr[b] = m.enumToStr[b], m.enumToStr[a]
	m.attrTypes[a], m.attrTypes[b] = m.attrTypes[b], m.attrTypes[a]
	for _, r := range m.rows {
		x, y := r.At(a), r.At(b)
		r.Set(a, y)
		r.Set(b, x)
	}
	return nil
}

// Transpose returns a new continuous matrix that is the transpose of m.
func (m *Matrix) Transpose() *Matrix {
	out := New(m.Cols(), m.Rows())
	for i, r := range m.rows {
		for j, v := range r.Data() {
			out.rows[j].Set(i, v)
		}
	}
	return out
}

// Scale multiplies every cell of m by s.
func (m *Matrix) Scale(s float64) {
	for _, r := range m.rows {
		r.Scale(s)
	}
}

// Multiply returns the matrix product of a and b. If transposeA or transposeB
// is true, the corresponding operand is transposed before multiplying, without
// being copied.
func Multiply(a, b *Matrix, transposeA, transposeB bool) (*Matrix, error) {
	ar, ac := shape(a, transposeA)
	br, bc := shape(b, transposeB)
	if ac != br {
		return nil, fmt.Errorf("multiply %dx%d by %dx%d: %w", ar, ac, br, bc, ErrDimension)
	}
	out := New(ar, bc)
	for y := range ar {
		row := out.rows[y]
		for x := range bc {
			var sum float64
			for i := range ac {
				sum += cell(a, transposeA, y, i) * cell(b, transposeB, i, x)
			}
			row.Set(x, sum)
		}
	}
	return out, nil
}

func shape(m *Matrix, transpose bool) (rows, cols int) {
	if transpose {
		return m.Cols(), m.Rows()
	}
	return m.Rows(), m.Cols()
}

func cell(m *Matrix, transpose bool, r, c int) float64 {
	if transpose {
		return m.rows[c].At(r)
	}
	return m.rows[r].At(c)
}
