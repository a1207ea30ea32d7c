// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package crystal

import (
	"errors"
	"fmt"
)

var (
	ErrSameEdge       = errors.New("crystal: split edges must differ")
	ErrEdgeOutOfRange = errors.New("crystal: split edge index out of range")
)

// Source supplies uniformly distributed reals.
type Source interface {
	// Float64n returns a value in [0, n).
	Float64n(n float64) float64
	// Float64Range returns a value in [lo, hi).
	Float64Range(lo, hi float64) float64
}

// Split cuts p along a chord between two randomly chosen edges.
//
// The split points sit at 0.5±randomness/2 along their edges. With probability
// oppositeBias the second edge is the one roughly across from the first.
// p is left unchanged.
func Split(p *Polygon, src Source, randomness, oppositeBias float64) (*Polygon, *Polygon, error) {
	n := len(p.Vertices)
	if n < 3 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrTooFewVertices, n)
	}

	i1 := randomIndex(src, n)
	i2 := i1
	if src.Float64n(1) < oppositeBias {
		i2 = (i1 + n/2) % n
	}
	for i2 == i1 {
		i2 = randomIndex(src, n)
	}

	h := randomness / 2
	l1 := 0.5 + src.Float64Range(-h, h)
	l2 := 0.5 + src.Float64Range(-h, h)

	return SplitAt(p, i1, i2, l1, l2)
}

// SplitAt cuts p along the chord from fraction l1 of edge i1 to fraction l2 of
// edge i2, where edge i runs from vertex i to vertex i+1.
//
// The first polygon winds from the split point on i1 to the one on i2 and owns
// the new chord; the second winds back. Both keep the winding of p.
func SplitAt(p *Polygon, i1, i2 int, l1, l2 float64) (*Polygon, *Polygon, error) {
	n := len(p.Vertices)
	if n < 3 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrTooFewVertices, n)
	}
	if i1 < 0 || i1 >= n || i2 < 0 || i2 >= n {
		return nil, nil, fmt.Errorf("%w: edges %d, %d of [0 %d)", ErrEdgeOutOfRange, i1, i2, n)
	}
	if i1 == i2 {
		return nil, nil, fmt.Errorf("%w: edge %d", ErrSameEdge, i1)
	}

	v1 := p.Edge(i1).A.Lerp(p.Edge(i1).B, l1)
	v2 := p.Edge(i2).A.Lerp(p.Edge(i2).B, l2)

	a := &Polygon{
		Vertices:    windBetween(p.Vertices, v1, i1, i2, v2),
		Generation:  p.Generation + 1,
		NewSegments: []Segment{{A: v1, B: v2}},
	}
	b := &Polygon{
		Vertices:   windBetween(p.Vertices, v2, i2, i1, v1),
		Generation: p.Generation + 1,
	}
	return a, b, nil
}

// windBetween returns [first, vertices[from+1], ..., vertices[to], last].
func windBetween(vertices []Point, first Point, from, to int, last Point) []Point {
	n := len(vertices)
	out := make([]Point, 0, (to-from+n)%n+2)
	out = append(out, first)
	for j := from; j != to; {
		j = (j + 1) % n
		out = append(out, vertices[j])
	}
	return append(out, last)
}

func randomIndex(src Source, n int) int {
	i := int(src.Float64n(float64(n)))
	return min(max(i, 0), n-1)
}
