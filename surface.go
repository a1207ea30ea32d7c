// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package crystal

// Surface is a canvas-style drawing target. Fill and stroke styles belong to
// the surface.
type Surface interface {
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	Fill()
	Stroke()
	ClearRect(x, y, w, h float64)
}

// DrawPolygon fills and strokes p on s.
func DrawPolygon(s Surface, p *Polygon) {
	s.BeginPath()
	for i, v := range p.Vertices {
		if i == 0 {
			s.MoveTo(v.X, v.Y)
		} else {
			s.LineTo(v.X, v.Y)
		}
	}
	s.ClosePath()
	s.Fill()
	s.Stroke()
}

// DrawSegments strokes every segment as an open path.
func DrawSegments(s Surface, segments []Segment) {
	if len(segments) == 0 {
		return
	}
	s.BeginPath()
	for _, seg := range segments {
		s.MoveTo(seg.A.X, seg.A.Y)
		s.LineTo(seg.B.X, seg.B.Y)
	}
	s.Stroke()
}
