// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package vec

import (
	"math"
	"math/rand/v2"
)

// Rand is a source of random values used by the random fill methods.
type Rand interface {
	// Uniform returns a value uniformly distributed in [0, 1).
	Uniform() float64

	// Normal returns a value from the standard normal distribution.
	Normal() float64

	// Exponential returns a value from the exponential distribution with
	// rate 1.
	Exponential() float64
}

// NewRand returns a deterministic Rand seeded with seed.
func NewRand(seed uint64) Rand { return stdRand{rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))} }

type stdRand struct{ r *rand.Rand }

func (s stdRand) Uniform() float64     { return s.r.Float64() }
func (s stdRand) Normal() float64      { return s.r.NormFloat64() }
func (s stdRand) Exponential() float64 { return s.r.ExpFloat64() }

// FillUniform sets each element of v to a uniform random value in [lo, hi).
func (v *Vec) FillUniform(r Rand, lo, hi float64) {
	for i := range v.data {
		v.data[i] = r.Uniform()*(hi-lo) + lo
	}
}

// FillNormal sets each element of v to a normal random value with mean 0 and
// the given standard deviation.
func (v *Vec) FillNormal(r Rand, deviation float64) {
	for i := range v.data {
		v.data[i] = r.Normal() * deviation
	}
}

// FillSphericalShell sets v to a random point on the surface of a sphere of
// the given radius centered at the origin.
func (v *Vec) FillSphericalShell(r Rand, radius float64) {
	v.FillNormal(r, 1)
	v.Normalize()
	if radius != 1 {
		v.Scale(radius)
	}
}

// FillSphericalVolume sets v to a random point uniformly distributed in the
// unit ball.
func (v *Vec) FillSphericalVolume(r Rand) {
	v.FillSphericalShell(r, 1)
	v.Scale(math.Pow(r.Uniform(), 1/float64(len(v.data))))
}

// FillSimplex sets v to a random point uniformly distributed on the standard
// simplex, so that its elements are non-negative and sum to 1.
func (v *Vec) FillSimplex(r Rand) {
	for i := range v.data {
		v.data[i] = r.Exponential()
	}
	v.Scale(1 / v.Sum())
}
