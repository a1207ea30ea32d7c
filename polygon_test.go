// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package crystal

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/2dChan/crystal/utils"
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
)

// Constructors

func TestNewPolygon(t *testing.T) {
	tests := []struct {
		name     string
		vertices []Point
		wantErr  bool
	}{
		{"nil", nil, true},
		{"two vertices", []Point{Pt(0, 0), Pt(1, 0)}, true},
		{"triangle", []Point{Pt(0, 0), Pt(1, 0), Pt(0, 1)}, false},
		{"square", square(10).Vertices, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPolygon(tt.vertices)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewPolygon(%v) error = %v, wantErr %v", tt.vertices, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrTooFewVertices) {
					t.Errorf("NewPolygon(%v) error = %v, want %v", tt.vertices, err, ErrTooFewVertices)
				}
				return
			}
			if p.Generation != 0 || len(p.NewSegments) != 0 {
				t.Errorf("NewPolygon(...) = %+v, want generation 0 without segments", p)
			}
		})
	}
}

func TestNewPolygon_CopiesVertices(t *testing.T) {
	vertices := []Point{Pt(0, 0), Pt(1, 0), Pt(0, 1)}
	p := mustNewPolygon(t, vertices)
	vertices[0] = Pt(5, 5)
	if p.Vertices[0] != Pt(0, 0) {
		t.Errorf("p.Vertices[0] = %v after caller modification, want (0, 0)", p.Vertices[0])
	}
}

func TestNewRectPolygon(t *testing.T) {
	bounds := r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 30, Y: 20})
	p, err := NewRectPolygon(bounds)
	if err != nil {
		t.Fatalf("NewRectPolygon(%v) error = %v, want nil", bounds, err)
	}
	want := []Point{Pt(0, 0), Pt(30, 0), Pt(30, 20), Pt(0, 20)}
	if diff := cmp.Diff(want, p.Vertices); diff != "" {
		t.Errorf("NewRectPolygon(%v) vertices mismatch (-want +got):\n%s", bounds, diff)
	}
	if !p.Clockwise() {
		t.Errorf("NewRectPolygon(%v) is not clockwise", bounds)
	}
}

func TestNewRectPolygon_EmptyBounds(t *testing.T) {
	tests := []struct {
		name   string
		bounds r2.Rect
	}{
		{"empty", r2.EmptyRect()},
		{"zero width", r2.Rect{X: r1.Interval{Lo: 1, Hi: 1}, Y: r1.Interval{Lo: 0, Hi: 5}}},
		{"zero height", r2.Rect{X: r1.Interval{Lo: 0, Hi: 5}, Y: r1.Interval{Lo: 2, Hi: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRectPolygon(tt.bounds); !errors.Is(err, ErrEmptyBounds) {
				t.Errorf("NewRectPolygon(%v) error = %v, want %v", tt.bounds, err, ErrEmptyBounds)
			}
		})
	}
}

// Metrics

func TestPolygon_MinAngle(t *testing.T) {
	tests := []struct {
		name string
		p    *Polygon
		want float64
	}{
		{"square", square(10), math.Pi / 2},
		{"rectangle", rect(0, 0, 10, 5), math.Pi / 2},
		{"equilateral", equilateral(), math.Pi / 3},
		{"right isosceles", triangle(Pt(0, 0), Pt(4, 0), Pt(0, 4)), math.Pi / 4},
		{"colinear vertex", triangleWithMidpoint(), math.Pi / 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.MinAngle(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("p.MinAngle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolygon_MinAngle_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		p    *Polygon
	}{
		{"duplicate vertex", &Polygon{Vertices: []Point{Pt(0, 0), Pt(0, 0), Pt(1, 0), Pt(0, 1)}}},
		{"all equal", &Polygon{Vertices: []Point{Pt(2, 2), Pt(2, 2), Pt(2, 2)}}},
		{"colinear", &Polygon{Vertices: []Point{Pt(0, 0), Pt(1e8, 0), Pt(2e8, 1e-8)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.p.MinAngle()
			if math.IsNaN(got) || got < 0 || got > 1e-6 {
				t.Errorf("p.MinAngle() = %v, want ≈0", got)
			}
		})
	}
}

func TestPolygon_Empty(t *testing.T) {
	p := &Polygon{}
	if got := p.MinAngle(); !math.IsInf(got, 1) {
		t.Errorf("p.MinAngle() = %v, want +Inf", got)
	}
	if got := p.MinSide(); !math.IsInf(got, 1) {
		t.Errorf("p.MinSide() = %v, want +Inf", got)
	}
	if got := p.Perimeter(); got != 0 {
		t.Errorf("p.Perimeter() = %v, want 0", got)
	}
	if got := p.SignedArea(); got != 0 {
		t.Errorf("p.SignedArea() = %v, want 0", got)
	}
	if got := p.Centroid(); got != (Point{}) {
		t.Errorf("p.Centroid() = %v, want %v", got, Point{})
	}
	if p.Convex() {
		t.Errorf("p.Convex() = true, want false")
	}
}

func TestPolygon_MinSide(t *testing.T) {
	tests := []struct {
		name string
		p    *Polygon
		want float64
	}{
		{"square", square(10), 10},
		{"rectangle", rect(0, 0, 10, 5), 5},
		{"closing edge shortest", triangle(Pt(0, 0), Pt(10, 0), Pt(1, 0.5)), math.Hypot(1, 0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.MinSide(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("p.MinSide() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolygon_Metrics_OrderInvariant(t *testing.T) {
	for seed := range int64(10) {
		p := mustRandomConvex(t, 3+int(seed), seed)
		wantAngle, wantSide := p.MinAngle(), p.MinSide()

		reversed := p.Clone()
		slices.Reverse(reversed.Vertices)
		if got := reversed.MinAngle(); math.Abs(got-wantAngle) > 1e-9 {
			t.Errorf("seed %d: reversed MinAngle() = %v, want %v", seed, got, wantAngle)
		}
		if got := reversed.MinSide(); math.Abs(got-wantSide) > 1e-9 {
			t.Errorf("seed %d: reversed MinSide() = %v, want %v", seed, got, wantSide)
		}

		for k := 1; k < p.NumVertices(); k++ {
			rotated := &Polygon{Vertices: append(slices.Clone(p.Vertices[k:]), p.Vertices[:k]...)}
			if got := rotated.MinAngle(); math.Abs(got-wantAngle) > 1e-9 {
				t.Errorf("seed %d: rotated by %d MinAngle() = %v, want %v", seed, k, got, wantAngle)
			}
			if got := rotated.MinSide(); math.Abs(got-wantSide) > 1e-9 {
				t.Errorf("seed %d: rotated by %d MinSide() = %v, want %v", seed, k, got, wantSide)
			}
		}
	}
}

func TestPolygon_Perimeter(t *testing.T) {
	tests := []struct {
		name string
		p    *Polygon
		want float64
	}{
		{"square", square(10), 40},
		{"rectangle", rect(0, 0, 10, 5), 30},
		{"3-4-5", triangle(Pt(0, 0), Pt(4, 0), Pt(4, 3)), 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Perimeter(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("p.Perimeter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolygon_Centroid(t *testing.T) {
	tests := []struct {
		name string
		p    *Polygon
		want Point
	}{
		{"square", square(10), Pt(5, 5)},
		{"triangle", triangle(Pt(0, 0), Pt(6, 0), Pt(0, 3)), Pt(2, 1)},
		// Vertex mean, not the area centroid.
		{"extra vertex", triangleWithMidpoint(), Pt(1.5, 1.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Centroid(); got.Distance(tt.want) > 1e-12 {
				t.Errorf("p.Centroid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolygon_Area(t *testing.T) {
	p := square(10)
	if got := p.SignedArea(); got != 100 {
		t.Errorf("p.SignedArea() = %v, want 100", got)
	}
	slices.Reverse(p.Vertices)
	if got := p.SignedArea(); got != -100 {
		t.Errorf("reversed p.SignedArea() = %v, want -100", got)
	}
	if got := p.Area(); got != 100 {
		t.Errorf("reversed p.Area() = %v, want 100", got)
	}
	if p.Clockwise() {
		t.Errorf("reversed p.Clockwise() = true, want false")
	}
}

func TestPolygon_Bounds(t *testing.T) {
	p := triangle(Pt(1, 5), Pt(7, 2), Pt(3, 9))
	want := r2.RectFromPoints(r2.Point{X: 1, Y: 2}, r2.Point{X: 7, Y: 9})
	if got := p.Bounds(); got != want {
		t.Errorf("p.Bounds() = %v, want %v", got, want)
	}
}

func TestPolygon_Edge(t *testing.T) {
	assertPanic := func(p *Polygon, in int) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("p.Edge(%d) did not panic, want panic", in)
			}
		}()
		p.Edge(in)
	}

	p := square(10)
	want := Segment{A: Pt(0, 10), B: Pt(0, 0)}
	if got := p.Edge(3); got != want {
		t.Errorf("p.Edge(3) = %v, want %v", got, want)
	}
	assertPanic(p, -1)
	assertPanic(p, p.NumVertices())
}

func TestPolygon_Clone(t *testing.T) {
	p := square(10)
	p.Generation = 3
	p.NewSegments = []Segment{{A: Pt(0, 0), B: Pt(1, 1)}}
	c := p.Clone()
	if diff := cmp.Diff(p, c); diff != "" {
		t.Fatalf("p.Clone() mismatch (-want +got):\n%s", diff)
	}
	c.Vertices[0] = Pt(-1, -1)
	c.NewSegments[0].A = Pt(-1, -1)
	if p.Vertices[0] != Pt(0, 0) || p.NewSegments[0].A != Pt(0, 0) {
		t.Errorf("modifying the clone changed the original: %+v", p)
	}
}

func TestPolygon_Convex(t *testing.T) {
	tests := []struct {
		name string
		p    *Polygon
		want bool
	}{
		{"square", square(10), true},
		{"large rectangle", rect(0, 0, 1920, 1080), true},
		{"triangle", equilateral(), true},
		{"colinear vertex", triangleWithMidpoint(), true},
		{"arrow", &Polygon{Vertices: []Point{Pt(0, 0), Pt(10, 0), Pt(5, 3), Pt(10, 10), Pt(0, 10)}}, false},
		{"bowtie", &Polygon{Vertices: []Point{Pt(0, 0), Pt(10, 10), Pt(10, 0), Pt(0, 10)}}, false},
		{"flat", &Polygon{Vertices: []Point{Pt(0, 0), Pt(1, 0), Pt(2, 0)}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Convex(); got != tt.want {
				t.Errorf("p.Convex() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolygon_Convex_Random(t *testing.T) {
	for seed := range int64(20) {
		p := mustRandomConvex(t, 3+int(seed%12), seed)
		if !p.Convex() {
			t.Errorf("seed %d: p.Convex() = false, want true for %v", seed, p.Vertices)
		}
	}
}

// Helpers

func mustNewPolygon(t *testing.T, vertices []Point) *Polygon {
	t.Helper()
	p, err := NewPolygon(vertices)
	if err != nil {
		t.Fatalf("NewPolygon(...) error = %v, want nil", err)
	}
	return p
}

func mustRandomConvex(t *testing.T, n int, seed int64) *Polygon {
	t.Helper()
	pts := utils.GenerateConvexPoints(n, r2.Point{X: 500, Y: 500}, 400, seed)
	vertices := make([]Point, len(pts))
	for i, p := range pts {
		vertices[i] = Point{p}
	}
	return mustNewPolygon(t, vertices)
}

func rect(x, y, w, h float64) *Polygon {
	return &Polygon{Vertices: []Point{Pt(x, y), Pt(x+w, y), Pt(x+w, y+h), Pt(x, y+h)}}
}

func square(size float64) *Polygon {
	return rect(0, 0, size, size)
}

func triangle(a, b, c Point) *Polygon {
	return &Polygon{Vertices: []Point{a, b, c}}
}

func equilateral() *Polygon {
	return triangle(Pt(0, 0), Pt(2, 0), Pt(1, math.Sqrt(3)))
}

// triangleWithMidpoint is a right isosceles triangle with an extra vertex in
// the middle of its hypotenuse.
func triangleWithMidpoint() *Polygon {
	return &Polygon{Vertices: []Point{Pt(0, 0), Pt(4, 0), Pt(2, 2), Pt(0, 4)}}
}
