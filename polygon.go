// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package crystal

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/markus-wa/quickhull-go/v2"
)

const (
	defaultEps = 1e-9
)

var (
	ErrTooFewVertices = errors.New("crystal: polygon needs at least 3 vertices")
	ErrEmptyBounds    = errors.New("crystal: bounds must have positive width and height")
	ErrNotConvex      = errors.New("crystal: polygon is not convex")
)

// Polygon is a simple polygon whose vertices are listed clockwise in screen
// coordinates.
type Polygon struct {
	Vertices []Point
	// Generation is the number of splits between the polygon and its root shape.
	Generation int
	// NewSegments holds the chords created when this polygon was built.
	// They are not inherited from ancestors.
	NewSegments []Segment
}

// NewPolygon returns a generation 0 polygon over a copy of vertices.
func NewPolygon(vertices []Point) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewVertices, len(vertices))
	}
	return &Polygon{Vertices: slices.Clone(vertices)}, nil
}

// NewRectPolygon returns the polygon covering bounds, starting at the top-left
// corner and going clockwise on screen.
func NewRectPolygon(bounds r2.Rect) (*Polygon, error) {
	if bounds.IsEmpty() || bounds.X.Length() <= 0 || bounds.Y.Length() <= 0 {
		return nil, ErrEmptyBounds
	}
	// NOTE: r2 lists vertices CCW with y up, which is CW with y down.
	rv := bounds.Vertices()
	vertices := make([]Point, len(rv))
	for i, v := range rv {
		vertices[i] = Point{v}
	}
	return &Polygon{Vertices: vertices}, nil
}

func (p *Polygon) NumVertices() int {
	return len(p.Vertices)
}

// Edge returns the edge from vertex i to its successor.
func (p *Polygon) Edge(i int) Segment {
	n := len(p.Vertices)
	if i < 0 || i >= n {
		panic("Edge: index out of range")
	}
	return Segment{A: p.Vertices[i], B: p.Vertices[(i+1)%n]}
}

// Clone returns a deep copy of p.
func (p *Polygon) Clone() *Polygon {
	return &Polygon{
		Vertices:    slices.Clone(p.Vertices),
		Generation:  p.Generation,
		NewSegments: slices.Clone(p.NewSegments),
	}
}

// MinAngle returns the smallest angle, in radians, between the two edges
// meeting at any vertex.
func (p *Polygon) MinAngle() float64 {
	n := len(p.Vertices)
	minAngle := math.Inf(1)
	for i, v := range p.Vertices {
		prev := p.Vertices[(i-1+n)%n]
		next := p.Vertices[(i+1)%n]

		a2 := v.DistanceSq(prev)
		b2 := v.DistanceSq(next)
		c2 := prev.DistanceSq(next)

		angle := 0.0
		// Zero-length edges make the angle undefined; treat it as fully collapsed.
		if a2 > 0 && b2 > 0 {
			cos := (a2 + b2 - c2) / (2 * math.Sqrt(a2*b2))
			angle = math.Acos(max(-1, min(1, cos)))
		}
		minAngle = min(minAngle, angle)
	}
	return minAngle
}

// MinSide returns the length of the shortest edge, or +Inf for a polygon
// without vertices.
func (p *Polygon) MinSide() float64 {
	if len(p.Vertices) == 0 {
		return math.Inf(1)
	}
	side := math.Inf(1)
	prev := p.Vertices[len(p.Vertices)-1]
	for _, v := range p.Vertices {
		side = min(side, v.DistanceSq(prev))
		prev = v
	}
	return math.Sqrt(side)
}

func (p *Polygon) Perimeter() float64 {
	if len(p.Vertices) == 0 {
		return 0
	}
	perimeter := 0.0
	prev := p.Vertices[len(p.Vertices)-1]
	for _, v := range p.Vertices {
		perimeter += prev.Distance(v)
		prev = v
	}
	return perimeter
}

// Centroid returns the mean of the vertices. It is not area weighted.
func (p *Polygon) Centroid() Point {
	if len(p.Vertices) == 0 {
		return Point{}
	}
	var sum r2.Point
	for _, v := range p.Vertices {
		sum = sum.Add(v.Point)
	}
	return Point{sum.Mul(1 / float64(len(p.Vertices)))}
}

// SignedArea returns the shoelace area of p. It is positive when the vertices
// run clockwise on screen.
func (p *Polygon) SignedArea() float64 {
	if len(p.Vertices) == 0 {
		return 0
	}
	area := 0.0
	prev := p.Vertices[len(p.Vertices)-1]
	for _, v := range p.Vertices {
		area += prev.Cross(v.Point)
		prev = v
	}
	return area / 2
}

func (p *Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// Clockwise reports whether the vertices run clockwise on screen.
func (p *Polygon) Clockwise() bool {
	return p.SignedArea() > 0
}

func (p *Polygon) Bounds() r2.Rect {
	pts := make([]r2.Point, len(p.Vertices))
	for i, v := range p.Vertices {
		pts[i] = v.Point
	}
	return r2.RectFromPoints(pts...)
}

// Convex reports whether p encloses its whole convex hull. Vertices lying on a
// hull edge, such as split points, are allowed.
func (p *Polygon) Convex() bool {
	area := p.Area()
	bounds := p.Bounds()
	scale := max(bounds.X.Length(), bounds.Y.Length())
	if area <= 0 || scale <= 0 {
		return false
	}

	// The hull of the unit prism over the vertices has the 2D hull area as volume.
	center := bounds.Center()
	n := len(p.Vertices)
	prism := make([]r3.Vector, 2*n)
	for i, v := range p.Vertices {
		q := v.Sub(center).Mul(1 / scale)
		prism[2*i] = r3.Vector{X: q.X, Y: q.Y, Z: 0}
		prism[2*i+1] = r3.Vector{X: q.X, Y: q.Y, Z: 1}
	}

	qh := new(quickhull.QuickHull)
	ch := qh.ConvexHull(prism, true, true, defaultEps)
	if len(ch.Indices) == 0 || len(ch.Indices)%3 != 0 {
		return false
	}
	volume := 0.0
	for i := 0; i < len(ch.Indices); i += 3 {
		a, b, c := prism[ch.Indices[i]], prism[ch.Indices[i+1]], prism[ch.Indices[i+2]]
		volume += a.Dot(b.Cross(c))
	}
	hullArea := math.Abs(volume) / 6 * scale * scale

	return math.Abs(hullArea-area) <= 1e-6*hullArea
}
