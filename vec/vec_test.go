// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package vec_test

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/creachadair/mds/mtest"
	"github.com/creachadair/mlkit/jdoc"
	"github.com/creachadair/mlkit/vec"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-12)

func TestBasics(t *testing.T) {
	v := vec.New(3)
	if diff := cmp.Diff([]float64{0, 0, 0}, v.Data()); diff != "" {
		t.Errorf("New (-want, +got):\n%s", diff)
	}
	v.Set(1, 5)
	if got := v.At(1); got != 5 {
		t.Errorf("At(1): got %v, want 5", got)
	}

	w := vec.New(0)
	w.Copy(v)
	w.Set(0, 9)
	if v.At(0) != 0 || w.Size() != 3 {
		t.Errorf("Copy aliased storage or wrong size: v=%v w=%v", v, w)
	}

	v.Resize(3) // same size; contents kept
	if v.At(1) != 5 {
		t.Errorf("Resize to same size changed contents: %v", v)
	}
	v.Resize(2)
	if diff := cmp.Diff([]float64{0, 0}, v.Data()); diff != "" {
		t.Errorf("Resize (-want, +got):\n%s", diff)
	}

	v.SetData([]float64{1, 2, 3, 4, 5})
	v.FillRange(7, 1, 3)
	if diff := cmp.Diff([]float64{1, 7, 7, 4, 5}, v.Data()); diff != "" {
		t.Errorf("FillRange (-want, +got):\n%s", diff)
	}
	v.FillRange(8, 4, 100)
	v.Fill(2)
	if got := v.Sum(); got != 10 {
		t.Errorf("Sum after Fill: got %v, want 10", got)
	}
}

func TestArithmetic(t *testing.T) {
	a, b := vec.Of(1, 2, 3), vec.Of(4, 5, 6)
	tests := []struct {
		name string
		got  *vec.Vec
		want []float64
	}{
		{"Plus", a.Plus(b), []float64{5, 7, 9}},
		{"Minus", a.Minus(b), []float64{-3, -3, -3}},
		{"Scaled", a.Scaled(2), []float64{2, 4, 6}},
	}
	for _, tc := range tests {
		if diff := cmp.Diff(tc.want, tc.got.Data()); diff != "" {
			t.Errorf("%s (-want, +got):\n%s", tc.name, diff)
		}
	}
	if diff := cmp.Diff([]float64{1, 2, 3}, a.Data()); diff != "" {
		t.Errorf("Operand modified (-want, +got):\n%s", diff)
	}

	a.Add(b)
	a.Sub(vec.Of(1, 1, 1))
	a.Scale(0.5)
	a.AddScaled(2, vec.Of(1, 0, -1))
	if diff := cmp.Diff([]float64{4, 3, 2}, a.Data()); diff != "" {
		t.Errorf("In place (-want, +got):\n%s", diff)
	}

	mtest.MustPanic(t, func() { a.Add(vec.Of(1)) })
	mtest.MustPanic(t, func() { a.DotProduct(vec.New(4)) })
}

func TestStatistics(t *testing.T) {
	a, b := vec.Of(3, 4), vec.Of(0, 1)
	if got := a.SquaredMagnitude(); got != 25 {
		t.Errorf("SquaredMagnitude: got %v, want 25", got)
	}
	if got := a.SquaredDistance(b); got != 18 {
		t.Errorf("SquaredDistance: got %v, want 18", got)
	}
	if got := a.DotProduct(b); got != 4 {
		t.Errorf("DotProduct: got %v, want 4", got)
	}
	if got := a.Correlation(b); !cmp.Equal(got, 0.8, approx) {
		t.Errorf("Correlation: got %v, want 0.8", got)
	}
	if got := vec.Of(1, 0).Correlation(vec.Of(0, 1)); got != 0 {
		t.Errorf("Correlation orthogonal: got %v, want 0", got)
	}
	if got := vec.Of(1, 9, 3, 9).IndexOfMax(0, 100); got != 1 {
		t.Errorf("IndexOfMax: got %d, want 1", got)
	}
	if got := vec.Of(1, 9, 3, 9).IndexOfMax(2, 4); got != 3 {
		t.Errorf("IndexOfMax range: got %d, want 3", got)
	}

	n := vec.Of(3, 4)
	n.Normalize()
	if diff := cmp.Diff([]float64{0.6, 0.8}, n.Data(), approx); diff != "" {
		t.Errorf("Normalize (-want, +got):\n%s", diff)
	}
	z := vec.New(4)
	z.Normalize()
	if diff := cmp.Diff([]float64{0.5, 0.5, 0.5, 0.5}, z.Data()); diff != "" {
		t.Errorf("Normalize zero (-want, +got):\n%s", diff)
	}

	r := vec.Of(-3, -0.5, 0, 0.5, 3)
	r.RegularizeL1(1)
	if diff := cmp.Diff([]float64{-2, 0, 0, 0, 2}, r.Data()); diff != "" {
		t.Errorf("RegularizeL1 (-want, +got):\n%s", diff)
	}
}

func TestUnknowns(t *testing.T) {
	u := vec.Unknown
	a, b := vec.Of(1, u, 3, 5), vec.Of(2, 2, u, 7)
	if got := a.DotProductIgnoringUnknowns(b); got != 37 {
		t.Errorf("DotProductIgnoringUnknowns: got %v, want 37", got)
	}
	// Known squared distance 1 + 4 = 5 over 2 of 4 positions.
	if got := a.EstimateSquaredDistanceWithUnknowns(b); got != 10 {
		t.Errorf("EstimateSquaredDistanceWithUnknowns: got %v, want 10", got)
	}
	if got := vec.Of(u, 1).EstimateSquaredDistanceWithUnknowns(vec.Of(1, u)); got != 1e50 {
		t.Errorf("All missing: got %v, want 1e50", got)
	}
}

func TestPutErase(t *testing.T) {
	v := vec.Of(0, 0, 0, 0, 0)
	if err := v.Put(1, vec.Of(1, 2, 3, 4), 1, 2); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := v.Put(3, vec.Of(8, 9), 0, -1); err != nil {
		t.Fatalf("Put rest: %v", err)
	}
	if diff := cmp.Diff([]float64{0, 2, 3, 8, 9}, v.Data()); diff != "" {
		t.Errorf("Put (-want, +got):\n%s", diff)
	}
	for _, tc := range []struct{ pos, start, length int }{
		{4, 0, 2}, {0, 1, 2}, {-1, 0, 1}, {0, -1, 1},
		{0, 3, -1}, {0, 5, -1}, {0, -1, -1},
	} {
		if err := v.Put(tc.pos, vec.Of(1, 2), tc.start, tc.length); !errors.Is(err, vec.ErrRange) {
			t.Errorf("Put(%d, _, %d, %d): got %v, want %v", tc.pos, tc.start, tc.length, err, vec.ErrRange)
		}
	}

	if err := v.Erase(1, 2); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	if diff := cmp.Diff([]float64{0, 8, 9}, v.Data()); diff != "" {
		t.Errorf("Erase (-want, +got):\n%s", diff)
	}
	if err := v.Erase(2, 2); !errors.Is(err, vec.ErrRange) {
		t.Errorf("Erase: got %v, want %v", err, vec.ErrRange)
	}
}

func TestRandomFills(t *testing.T) {
	r := vec.NewRand(12345)
	v := vec.New(5)

	v.FillUniform(r, -2, 3)
	for i, x := range v.Data() {
		if x < -2 || x >= 3 {
			t.Errorf("FillUniform [%d] = %v out of range", i, x)
		}
	}

	v.FillSphericalShell(r, 2)
	if got := v.SquaredMagnitude(); !cmp.Equal(got, 4.0, approx) {
		t.Errorf("FillSphericalShell: squared magnitude %v, want 4", got)
	}

	v.FillSphericalVolume(r)
	if got := v.SquaredMagnitude(); got > 1+1e-12 {
		t.Errorf("FillSphericalVolume: squared magnitude %v > 1", got)
	}

	v.FillSimplex(r)
	if got := v.Sum(); !cmp.Equal(got, 1.0, approx) {
		t.Errorf("FillSimplex: sum %v, want 1", got)
	}
	for i, x := range v.Data() {
		if x < 0 {
			t.Errorf("FillSimplex [%d] = %v < 0", i, x)
		}
	}

	// The same seed yields the same sequence.
	a, b := vec.New(4), vec.New(4)
	a.FillNormal(vec.NewRand(7), 1)
	b.FillNormal(vec.NewRand(7), 1)
	if diff := cmp.Diff(a.Data(), b.Data()); diff != "" {
		t.Errorf("FillNormal not deterministic (-a, +b):\n%s", diff)
	}
}

func TestCorrelationBound(t *testing.T) {
	r := vec.NewRand(99)
	a, b := vec.New(8), vec.New(8)
	for range 100 {
		a.FillNormal(r, 3)
		b.FillNormal(r, 0.5)
		if c := a.Correlation(b); math.Abs(c) > 1+1e-12 {
			t.Errorf("Correlation %v out of bounds for %v, %v", c, a, b)
		}
		a.Normalize()
		if m := a.SquaredMagnitude(); math.Abs(m-1) > 1e-12 {
			t.Errorf("Normalize: squared magnitude %v", m)
		}
	}
}

func TestPrint(t *testing.T) {
	if got, want := vec.Of(1, -2.5, 1e-7).String(), "[1,-2.5,1e-07]"; got != want {
		t.Errorf("String: got %q, want %q", got, want)
	}
	var buf bytes.Buffer
	if err := vec.New(0).Print(&buf); err != nil || buf.String() != "[]" {
		t.Errorf("Print empty: got %q, %v", buf.String(), err)
	}
}

func TestJSON(t *testing.T) {
	d := jdoc.New()
	n, err := vec.Of(1, -0.5, vec.Unknown).Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got, want := n.Len(), 3; got != want {
		t.Errorf("Marshal: got %d items, want %d", got, want)
	}

	// Round trip through text.
	d2, err := jdoc.Parse([]byte(n.JSON()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v, err := vec.FromJSON(d2.Root())
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if diff := cmp.Diff([]float64{1, -0.5, vec.Unknown}, v.Data()); diff != "" {
		t.Errorf("FromJSON (-want, +got):\n%s", diff)
	}

	// Integers are widened.
	d3, err := jdoc.Parse([]byte(`[1, 2.5, -3]`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v, err := vec.FromJSON(d3.Root()); err != nil {
		t.Errorf("FromJSON: %v", err)
	} else if diff := cmp.Diff([]float64{1, 2.5, -3}, v.Data()); diff != "" {
		t.Errorf("FromJSON (-want, +got):\n%s", diff)
	}

	for _, bad := range []string{`{"a":1}`, `[1, "x"]`} {
		d, err := jdoc.Parse([]byte(bad))
		if err != nil {
			t.Fatalf("Parse %q: %v", bad, err)
		}
		if v, err := vec.FromJSON(d.Root()); err == nil {
			t.Errorf("FromJSON %q: got %v, want error", bad, v)
		}
	}
}
