// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package knn implements a brute-force k-nearest-neighbor model over the
// rows of a training matrix.
//
// The distance between two points is the square root of a sum over columns.
// A nominal column contributes 0 if the points have the same value and 1
// otherwise. A continuous column contributes the squared difference of the
// values divided by the square of the column's spread, as computed by
// matrix.ColumnSpread over the training features.
package knn

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/creachadair/mlkit/matrix"
	"github.com/creachadair/mlkit/vec"
)

// ErrNoData is reported when a model has no training rows to compare with.
var ErrNoData = errors.New("no training data")

// A Model holds training features and labels, and the per-column spread of
// the features used to scale continuous distances.
type Model struct {
	Features *matrix.Matrix
	Labels   *matrix.Matrix // may be nil
	Spread   *vec.Vec
}

// NewModel constructs a model from the given training features and labels.
// If labels != nil, it must have the same number of rows as features.
func NewModel(features, labels *matrix.Matrix) (*Model, error) {
	if labels != nil && labels.Rows() != features.Rows() {
		return nil, fmt.Errorf("have %d feature rows and %d label rows: %w",
			features.Rows(), labels.Rows(), matrix.ErrDimension)
	}
	spread := vec.New(features.Cols())
	for c := range features.Cols() {
		spread.Set(c, features.ColumnSpread(c))
	}
	return &Model{Features: features, Labels: labels, Spread: spread}, nil
}

// Distance returns the distance between points a and b, which must both have
// one element per feature column.
//
// A column whose spread is zero or unknown is not scaled. If either value in
// a column is unknown, the column contributes 1 as for mismatched nominal
// values.
func (m *Model) Distance(a, b *vec.Vec) float64 {
	var sum float64
	for c := range m.Features.Cols() {
		x, y := a.At(c), b.At(c)
		switch {
		case x == vec.Unknown || y == vec.Unknown:
			sum++
		case m.Features.IsNominal(c):
			if x != y {
				sum++
			}
		default:
			d := x - y
			if s := m.Spread.At(c); s != 0 && s != vec.Unknown {
				d /= s
			}
			sum += d * d
		}
	}
	return math.Sqrt(sum)
}

// A Neighbor is the distance from a point to one training row.
type Neighbor struct {
	Index    int // row of the training features
	Distance float64
}

// Distances returns the distance from point to each training row, in row
// order.
func (m *Model) Distances(point *vec.Vec) ([]Neighbor, error) {
	if err := m.checkPoint(point); err != nil {
		return nil, err
	}
	out := make([]Neighbor, m.Features.Rows())
	for i := range out {
		out[i] = Neighbor{Index: i, Distance: m.Distance(point, m.Features.Row(i))}
	}
	return out, nil
}

// Nearest returns the k training rows closest to point, in nondecreasing
// order of distance. Rows at equal distance are ordered by index. If k
// exceeds the number of training rows, all rows are returned.
func (m *Model) Nearest(point *vec.Vec, k int) ([]Neighbor, error) {
	if k < 1 {
		return nil, fmt.Errorf("invalid neighbor count %d", k)
	}
	all, err := m.Distances(point)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(all, compareNeighbors)
	return all[:min(k, len(all))], nil
}

func compareNeighbors(a, b Neighbor) int {
	if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
		return c
	}
	return cmp.Compare(a.Index, b.Index)
}

// A Label is the label value of a neighbor and its distance from the query.
type Label struct {
	Value    float64
	Distance float64
}

// Neighbors returns the labels of the k training rows closest to point. The
// result has one slice for each label column, each holding the labels of the
// nearest rows in the order reported by Nearest.
func (m *Model) Neighbors(point *vec.Vec, k int) ([][]Label, error) {
	if m.Labels == nil {
		return nil, errors.New("model has no labels")
	}
	near, err := m.Nearest(point, k)
	if err != nil {
		return nil, err
	}
	out := make([][]Label, m.Labels.Cols())
	for c := range out {
		out[c] = make([]Label, len(near))
		for i, nb := range near {
			out[c][i] = Label{Value: m.Labels.At(nb.Index, c), Distance: nb.Distance}
		}
	}
	return out, nil
}

func (m *Model) checkPoint(point *vec.Vec) error {
	if m.Features.Rows() == 0 {
		return ErrNoData
	} else if point.Size() != m.Features.Cols() {
		return fmt.Errorf("point has %d elements, want %d: %w",
			point.Size(), m.Features.Cols(), matrix.ErrDimension)
	}
	return nil
}
