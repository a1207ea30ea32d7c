// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides seeded random sources and point generators for growing crystal patterns.

package utils

import (
	"math"
	"math/rand"
	"slices"

	"github.com/golang/geo/r2"
)

// Source is a reproducible uniform random source.
type Source struct {
	r *rand.Rand
}

// NewSource returns a Source seeded with seed.
func NewSource(seed int64) *Source {
	//nolint:gosec
	return &Source{r: rand.New(rand.NewSource(seed))}
}

// Float64n returns a value in [0, n).
func (s *Source) Float64n(n float64) float64 {
	return s.r.Float64() * n
}

// Float64Range returns a value in [lo, hi).
func (s *Source) Float64Range(lo, hi float64) float64 {
	return lo + s.r.Float64()*(hi-lo)
}

// GenerateConvexPoints generates the vertices of a random convex polygon
// inscribed in the circle of the given center and radius, listed clockwise in
// screen coordinates. The seed parameter ensures reproducibility.
func GenerateConvexPoints(cnt int, center r2.Point, radius float64, seed int64) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	angles := make([]float64, cnt)
	for i := range cnt {
		angles[i] = random.Float64() * 2 * math.Pi
	}
	// Increasing angle turns clockwise when y points down.
	slices.Sort(angles)

	points := make([]r2.Point, cnt)
	for i, a := range angles {
		points[i] = center.Add(r2.Point{X: math.Cos(a), Y: math.Sin(a)}.Mul(radius))
	}
	return points
}
