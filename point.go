// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package crystal grows crystal fracture patterns by repeatedly splitting convex polygons along random chords.

package crystal

import (
	"math"

	"github.com/golang/geo/r2"
)

// Point is a position on the canvas, in screen coordinates (y grows downwards).
type Point struct {
	r2.Point
}

// Pt is shorthand for Point{r2.Point{X: x, Y: y}}.
func Pt(x, y float64) Point {
	return Point{r2.Point{X: x, Y: y}}
}

// DistanceSq returns the squared Euclidean distance between p and q.
func (p Point) DistanceSq(q Point) float64 {
	d := q.Sub(p.Point)
	return d.Dot(d)
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return q.Sub(p.Point).Norm()
}

// AngleTo returns the direction from p to q in radians, in (-π, π].
func (p Point) AngleTo(q Point) float64 {
	d := q.Sub(p.Point)
	return math.Atan2(d.Y, d.X)
}

// Lerp returns the point at fraction t along the way from p to q.
// t is not clamped.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.Add(q.Sub(p.Point).Mul(t))}
}
