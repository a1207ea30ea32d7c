// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package crystal

import (
	"errors"
	"slices"

	"github.com/golang/geo/r2"
)

// Outcome is the result of a single Step.
type Outcome int

const (
	Rejected Outcome = iota
	Accepted
	// Exhausted means there was no polygon left to split.
	Exhausted
)

func (o Outcome) String() string {
	switch o {
	case Rejected:
		return "rejected"
	case Accepted:
		return "accepted"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

// Stats counts step outcomes.
type Stats struct {
	Accepted  int `json:"accepted"`
	Rejected  int `json:"rejected"`
	Exhausted int `json:"exhausted"`
}

// Add accumulates the counts of o into s.
func (s *Stats) Add(o Stats) {
	s.Accepted += o.Accepted
	s.Rejected += o.Rejected
	s.Exhausted += o.Exhausted
}

func (s *Stats) add(o Outcome) {
	switch o {
	case Accepted:
		s.Accepted++
	case Rejected:
		s.Rejected++
	case Exhausted:
		s.Exhausted++
	}
}

// Driver grows a crystal pattern by repeatedly splitting one of its live
// polygons. It is not safe for concurrent use.
type Driver struct {
	cfg     Config
	bounds  r2.Rect
	shape   []Point
	src     Source
	surface Surface

	polygons []*Polygon
	segments []Segment
}

// NewDriver returns a driver whose working set is the bounds rectangle, or the
// shape given by WithInitialShape.
func NewDriver(bounds r2.Rect, src Source, setters ...Option) (*Driver, error) {
	if src == nil {
		return nil, errors.New("crystal: random source must not be nil")
	}
	opts := Options{
		Config: DefaultConfig(),
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	d := &Driver{
		cfg:     opts.Config,
		bounds:  bounds,
		shape:   opts.Shape,
		src:     src,
		surface: opts.Surface,
	}
	if err := d.Reset(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Driver) Config() Config {
	return d.cfg
}

// SetConfig takes effect from the next Step.
func (d *Driver) SetConfig(cfg Config) {
	d.cfg = cfg
}

func (d *Driver) Bounds() r2.Rect {
	return d.bounds
}

// Polygons returns the working set. The polygons must not be modified.
func (d *Driver) Polygons() []*Polygon {
	return slices.Clone(d.polygons)
}

func (d *Driver) NumPolygons() int {
	return len(d.polygons)
}

// Segments returns the chords of every polygon removed from the working set.
func (d *Driver) Segments() []Segment {
	return slices.Clone(d.segments)
}

// Step picks a polygon at random and tries to split it. A split whose pieces
// fall below the configured angle or side length is discarded and the driver
// is left untouched.
func (d *Driver) Step() Outcome {
	if len(d.polygons) == 0 {
		return Exhausted
	}

	idx := randomIndex(d.src, len(d.polygons))
	parent := d.polygons[idx]
	a, b, err := Split(parent, d.src, d.cfg.Randomness, d.cfg.OppositeBias)
	if err != nil {
		return Rejected
	}
	if min(a.MinAngle(), b.MinAngle()) < d.cfg.MinAngle.Radians() ||
		min(a.MinSide(), b.MinSide()) < d.cfg.MinSide {
		return Rejected
	}

	d.segments = append(d.segments, parent.NewSegments...)
	d.polygons = append(d.polygons, a, b)
	d.polygons = slices.Delete(d.polygons, idx, idx+1)

	if d.surface != nil {
		DrawPolygon(d.surface, a)
		DrawPolygon(d.surface, b)
	}
	return Accepted
}

// Tick runs Config.Iterations steps, one animation frame worth of growth.
func (d *Driver) Tick() Stats {
	var s Stats
	for range d.cfg.Iterations {
		s.add(d.Step())
	}
	return s
}

// Reset restores the working set to the root polygon, drops all accumulated
// segments and clears the surface.
func (d *Driver) Reset() error {
	var (
		root *Polygon
		err  error
	)
	if d.shape != nil {
		root, err = NewPolygon(d.shape)
	} else {
		root, err = NewRectPolygon(d.bounds)
	}
	if err != nil {
		return err
	}

	d.polygons = []*Polygon{root}
	d.segments = nil
	d.Clear()
	return nil
}

// Resize moves the driver to new canvas bounds and resets it. A shape given
// by WithInitialShape is kept.
func (d *Driver) Resize(bounds r2.Rect) error {
	if bounds.IsEmpty() || bounds.X.Length() <= 0 || bounds.Y.Length() <= 0 {
		return ErrEmptyBounds
	}
	d.bounds = bounds
	return d.Reset()
}

// Clear blanks the surface without touching the working set. A driver
// without canvas bounds clears the bounds of its initial shape.
func (d *Driver) Clear() {
	if d.surface == nil {
		return
	}
	area := d.bounds
	if area.IsEmpty() {
		if d.shape == nil {
			return
		}
		area = (&Polygon{Vertices: d.shape}).Bounds()
	}
	lo := area.Lo()
	size := area.Size()
	d.surface.ClearRect(lo.X, lo.Y, size.X, size.Y)
}

// Redraw clears the surface and draws every live polygon and accumulated
// segment.
func (d *Driver) Redraw() {
	if d.surface == nil {
		return
	}
	d.Clear()
	for _, p := range d.polygons {
		DrawPolygon(d.surface, p)
	}
	DrawSegments(d.surface, d.segments)
}
