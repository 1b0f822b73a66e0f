// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package vec implements a dense vector of float64 values.
//
// A Vec owns its storage. Operations that combine two vectors require them to
// have the same size, and panic if they do not. Missing values are marked by
// the sentinel Unknown, which the methods whose names say so will skip.
package vec

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/creachadair/mlkit/jdoc"
)

// Unknown is the sentinel value marking a missing element.
const Unknown = -1e308

// ErrRange is reported when a position or length exceeds the bounds of a
// vector.
var ErrRange = errors.New("index out of range")

// A Vec is a vector of float64 values. A zero Vec is empty and ready for use.
// Values of this type should not be copied; use Copy or Clone instead.
type Vec struct {
	data []float64
}

// New constructs a vector of n zeroes.
func New(n int) *Vec { return &Vec{data: make([]float64, n)} }

// Of constructs a vector holding a copy of vs.
func Of(vs ...float64) *Vec { return &Vec{data: append([]float64(nil), vs...)} }

// Size reports the number of elements in v.
func (v *Vec) Size() int { return len(v.data) }

// At returns the element of v at offset i.
func (v *Vec) At(i int) float64 { return v.data[i] }

// Set sets the element of v at offset i to x.
func (v *Vec) Set(i int, x float64) { v.data[i] = x }

// Data returns the elements of v. The slice aliases the storage of v.
func (v *Vec) Data() []float64 { return v.data }

// Clone returns a new vector with a copy of the elements of v.
func (v *Vec) Clone() *Vec { return Of(v.data...) }

// Copy resizes v to the size of other and copies its elements.
func (v *Vec) Copy(other *Vec) {
	v.Resize(other.Size())
	copy(v.data, other.data)
}

// Resize changes the size of v to n. If the size changes, the previous
// contents are discarded and all elements are zero.
func (v *Vec) Resize(n int) {
	if n != len(v.data) {
		v.data = make([]float64, n)
	}
}

// SetData resizes v to len(src) and copies src into it.
func (v *Vec) SetData(src []float64) {
	v.Resize(len(src))
	copy(v.data, src)
}

// Fill sets every element of v to x.
func (v *Vec) Fill(x float64) { v.FillRange(x, 0, len(v.data)) }

// FillRange sets the elements of v at offsets [start, end) to x. The end is
// clamped to the size of v.
func (v *Vec) FillRange(x float64, start, end int) {
	end = min(end, len(v.data))
	for i := start; i < end; i++ {
		v.data[i] = x
	}
}

func (v *Vec) checkSize(that *Vec) {
	if len(that.data) != len(v.data) {
		panic(fmt.Sprintf("vec: size mismatch %d != %d", len(v.data), len(that.data)))
	}
}

// Plus returns a new vector v + that.
func (v *Vec) Plus(that *Vec) *Vec {
	out := v.Clone()
	out.Add(that)
	return out
}

// Minus returns a new vector v - that.
func (v *Vec) Minus(that *Vec) *Vec {
	out := v.Clone()
	out.Sub(that)
	return out
}

// Scaled returns a new vector v * scalar.
func (v *Vec) Scaled(scalar float64) *Vec {
	out := v.Clone()
	out.Scale(scalar)
	return out
}

// Add adds that to v in place.
func (v *Vec) Add(that *Vec) {
	v.checkSize(that)
	for i, x := range that.data {
		v.data[i] += x
	}
}

// Sub subtracts that from v in place.
func (v *Vec) Sub(that *Vec) {
	v.checkSize(that)
	for i, x := range that.data {
		v.data[i] -= x
	}
}

// Scale multiplies v by scalar in place.
func (v *Vec) Scale(scalar float64) {
	for i := range v.data {
		v.data[i] *= scalar
	}
}

// AddScaled adds scalar * that to v in place.
func (v *Vec) AddScaled(scalar float64, that *Vec) {
	v.checkSize(that)
	for i, x := range that.data {
		v.data[i] += scalar * x
	}
}

// Sum returns the sum of the elements of v.
func (v *Vec) Sum() float64 {
	var s float64
	for _, x := range v.data {
		s += x
	}
	return s
}

// SquaredMagnitude returns the sum of the squares of the elements of v.
func (v *Vec) SquaredMagnitude() float64 {
	var s float64
	for _, x := range v.data {
		s += x * x
	}
	return s
}

// Normalize scales v to unit magnitude. If the magnitude of v is less than
// 1e-16, every element is set to sqrt(1/n).
func (v *Vec) Normalize() {
	mag := math.Sqrt(v.SquaredMagnitude())
	if mag < 1e-16 {
		v.Fill(math.Sqrt(1 / float64(len(v.data))))
	} else {
		v.Scale(1 / mag)
	}
}

// SquaredDistance returns the squared Euclidean distance from v to that.
func (v *Vec) SquaredDistance(that *Vec) float64 {
	v.checkSize(that)
	var s float64
	for i, x := range v.data {
		d := x - that.data[i]
		s += d * d
	}
	return s
}

// EstimateSquaredDistanceWithUnknowns returns the squared distance from v to
// that over the positions where neither is Unknown, scaled by n/(n-missing)
// to estimate the full distance. If every position is missing, the result is
// 1e50.
func (v *Vec) EstimateSquaredDistanceWithUnknowns(that *Vec) float64 {
	v.checkSize(that)
	var dist float64
	var missing int
	for i, x := range v.data {
		y := that.data[i]
		if x == Unknown || y == Unknown {
			missing++
			continue
		}
		d := x - y
		dist += d * d
	}
	n := len(v.data)
	if missing >= n {
		return 1e50
	}
	return dist * float64(n) / float64(n-missing)
}

// DotProduct returns the inner product of v and that.
func (v *Vec) DotProduct(that *Vec) float64 {
	v.checkSize(that)
	var s float64
	for i, x := range v.data {
		s += x * that.data[i]
	}
	return s
}

// DotProductIgnoringUnknowns returns the inner product of v and that over the
// positions where neither is Unknown.
func (v *Vec) DotProductIgnoringUnknowns(that *Vec) float64 {
	v.checkSize(that)
	var s float64
	for i, x := range v.data {
		if y := that.data[i]; x != Unknown && y != Unknown {
			s += x * y
		}
	}
	return s
}

// Correlation returns the cosine of the angle between v and that, or 0 if
// their inner product is 0.
func (v *Vec) Correlation(that *Vec) float64 {
	d := v.DotProduct(that)
	if d == 0 {
		return 0
	}
	return d / math.Sqrt(v.SquaredMagnitude()*that.SquaredMagnitude())
}

// IndexOfMax returns the offset of the greatest element of v in the range
// [start, end). The end is clamped to the size of v. If the range is empty,
// it returns start.
func (v *Vec) IndexOfMax(start, end int) int {
	end = min(end, len(v.data))
	best, bestVal := start, -1e300
	for i := start; i < end; i++ {
		if v.data[i] > bestVal {
			best, bestVal = i, v.data[i]
		}
	}
	return best
}

// RegularizeL1 moves each element of v toward zero by amount, stopping at
// zero.
func (v *Vec) RegularizeL1(amount float64) {
	for i, x := range v.data {
		if x < 0 {
			v.data[i] = min(0, x+amount)
		} else {
			v.data[i] = max(0, x-amount)
		}
	}
}

// Put copies length elements of that starting at offset start into v at
// offset pos. If length < 0, the rest of that from start is copied.
func (v *Vec) Put(pos int, that *Vec, start, length int) error {
	if start < 0 || start > that.Size() {
		return fmt.Errorf("input size %d, start %d: %w", that.Size(), start, ErrRange)
	}
	if length < 0 {
		length = that.Size() - start
	} else if start+length > that.Size() {
		return fmt.Errorf("input size %d, start %d, length %d: %w", that.Size(), start, length, ErrRange)
	}
	if pos < 0 || pos+length > len(v.data) {
		return fmt.Errorf("size %d, pos %d, length %d: %w", len(v.data), pos, length, ErrRange)
	}
	copy(v.data[pos:pos+length], that.data[start:])
	return nil
}

// Erase removes count elements of v starting at offset start.
func (v *Vec) Erase(start, count int) error {
	if start < 0 || count < 0 || start+count > len(v.data) {
		return fmt.Errorf("size %d, start %d, count %d: %w", len(v.data), start, count, ErrRange)
	}
	v.data = append(v.data[:start], v.data[start+count:]...)
	return nil
}

// String renders v as a bracketed, comma-separated list.
func (v *Vec) String() string { return string(v.appendText(nil)) }

// Print writes the String rendering of v to w.
func (v *Vec) Print(w io.Writer) error {
	_, err := w.Write(v.appendText(nil))
	return err
}

func (v *Vec) appendText(buf []byte) []byte {
	buf = append(buf, '[')
	for i, x := range v.data {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendFloat(buf, x, 'g', -1, 64)
	}
	return append(buf, ']')
}

// Marshal returns a new array node in doc holding the elements of v.
func (v *Vec) Marshal(doc *jdoc.Doc) (*jdoc.Node, error) {
	arr := doc.NewArray()
	for _, x := range v.data {
		n, err := doc.NewDouble(x)
		if err != nil {
			return nil, err
		}
		if _, err := arr.AddItem(n); err != nil {
			return nil, err
		}
	}
	return arr, nil
}

// FromJSON constructs a vector from an array of numbers.
func FromJSON(n *jdoc.Node) (*Vec, error) {
	it, err := jdoc.NewIterator(n)
	if err != nil {
		return nil, err
	}
	v := New(it.Remaining())
	for i := 0; it.Remaining() > 0; it.Advance() {
		x, err := it.Current().AsDouble()
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		v.data[i] = x
		i++
	}
	return v, nil
}
