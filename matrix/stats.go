// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package matrix

import (
	"math"

	"github.com/creachadair/mlkit/vec"
)

// known calls f with each cell of column c that is not vec.Unknown, and
// returns the number of such cells.
func (m *Matrix) known(c int, f func(float64)) int {
	var n int
	for _, r := range m.rows {
		if v := r.At(c); v != vec.Unknown {
			f(v)
			n++
		}
	}
	return n
}

// ColumnMean returns the mean of the known values of column c, or vec.Unknown
// if there are none.
func (m *Matrix) ColumnMean(c int) float64 {
	var sum float64
	n := m.known(c, func(v float64) { sum += v })
	if n == 0 {
		return vec.Unknown
	}
	return sum / float64(n)
}

// ColumnMin returns the least known value of column c, or vec.Unknown if
// there are none.
func (m *Matrix) ColumnMin(c int) float64 {
	lo := math.Inf(1)
	if m.known(c, func(v float64) { lo = min(lo, v) }) == 0 {
		return vec.Unknown
	}
	return lo
}

// ColumnMax returns the greatest known value of column c, or vec.Unknown if
// there are none.
func (m *Matrix) ColumnMax(c int) float64 {
	hi := math.Inf(-1)
	if m.known(c, func(v float64) { hi = max(hi, v) }) == 0 {
		return vec.Unknown
	}
	return hi
}

// MostCommonValue returns the known value occurring most often in column c,
// or vec.Unknown if there are none. Among values with equal counts, the one
// appearing first wins.
func (m *Matrix) MostCommonValue(c int) float64 {
	counts := make(map[float64]int)
	var order []float64
	m.known(c, func(v float64) {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	})
	best, bestCount := vec.Unknown, 0
	for _, v := range order {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

// ColumnStdDev returns the sample standard deviation of the known values of
// column c, or 0 if there are fewer than two.
func (m *Matrix) ColumnStdDev(c int) float64 {
	mean := m.ColumnMean(c)
	var ss float64
	n := m.known(c, func(v float64) {
		d := v - mean
		ss += d * d
	})
	if n < 2 {
		return 0
	}
	return math.Sqrt(ss / float64(n-1))
}

// ColumnGini returns the Gini impurity of the known values of the nominal
// column c, the sum of p(1-p) over the proportion p of each value. It returns
// 0 if there are no known values.
func (m *Matrix) ColumnGini(c int) float64 {
	counts := make([]int, m.ValueCount(c))
	n := m.known(c, func(v float64) {
		if i := int(v); i >= 0 && i < len(counts) {
			counts[i]++
		}
	})
	if n == 0 {
		return 0
	}
	var sum float64
	for _, k := range counts {
		p := float64(k) / float64(n)
		sum += p * (1 - p)
	}
	return sum
}

// ColumnSpread returns a measure of the dispersion of column c: its standard
// deviation if continuous, or its Gini impurity if nominal.
func (m *Matrix) ColumnSpread(c int) float64 {
	if m.IsNominal(c) {
		return m.ColumnGini(c)
	}
	return m.ColumnStdDev(c)
}
