// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package render

import (
	"fmt"
	"image/color"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/2dChan/crystal"
	svg "github.com/ajstarks/svgo"
	"github.com/golang/geo/r2"
)

var _ crystal.Surface = (*SVG)(nil)

// SVG records drawing calls as SVG paths.
type SVG struct {
	width, height int
	style         Style

	path       strings.Builder
	pathBounds r2.Rect
	elements   []svgElement
}

type svgElement struct {
	d      string
	style  string
	bounds r2.Rect
}

func NewSVG(width, height int, style Style) *SVG {
	return &SVG{width: width, height: height, style: style, pathBounds: r2.EmptyRect()}
}

// Len returns the number of recorded elements.
func (s *SVG) Len() int {
	return len(s.elements)
}

func (s *SVG) BeginPath() {
	s.path.Reset()
	s.pathBounds = r2.EmptyRect()
}

func (s *SVG) MoveTo(x, y float64) {
	s.path.WriteString("M" + formatFloat(x) + " " + formatFloat(y) + " ")
	s.pathBounds = s.pathBounds.AddPoint(r2.Point{X: x, Y: y})
}

func (s *SVG) LineTo(x, y float64) {
	s.path.WriteString("L" + formatFloat(x) + " " + formatFloat(y) + " ")
	s.pathBounds = s.pathBounds.AddPoint(r2.Point{X: x, Y: y})
}

func (s *SVG) ClosePath() {
	s.path.WriteString("Z ")
}

func (s *SVG) Fill() {
	if s.path.Len() == 0 {
		return
	}
	s.elements = append(s.elements, svgElement{
		d:      strings.TrimSpace(s.path.String()),
		style:  "fill:" + cssColor(s.style.Fill) + ";stroke:none",
		bounds: s.pathBounds,
	})
}

func (s *SVG) Stroke() {
	if s.path.Len() == 0 {
		return
	}
	s.elements = append(s.elements, svgElement{
		d: strings.TrimSpace(s.path.String()),
		style: "fill:none;stroke:" + cssColor(s.style.Stroke) +
			";stroke-width:" + formatFloat(s.style.LineWidth) + ";stroke-linejoin:round",
		bounds: s.pathBounds,
	})
}

// ClearRect drops the recorded elements lying inside the rectangle and, if
// the style has a background, paints it over the rectangle. Elements only
// partly inside are kept.
func (s *SVG) ClearRect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	area := r2.RectFromPoints(r2.Point{X: x, Y: y}, r2.Point{X: x + w, Y: y + h})
	s.elements = slices.DeleteFunc(s.elements, func(e svgElement) bool {
		return area.Contains(e.bounds)
	})
	if s.style.Background == nil {
		return
	}
	d := fmt.Sprintf("M%s %s h%s v%s h%s Z",
		formatFloat(x), formatFloat(y), formatFloat(w), formatFloat(h), formatFloat(-w))
	s.elements = append(s.elements, svgElement{
		d:      d,
		style:  "fill:" + cssColor(s.style.Background) + ";stroke:none",
		bounds: area,
	})
}

// Export writes the recorded picture as a standalone SVG document.
func (s *SVG) Export(w io.Writer) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(s.width, s.height)
	for _, e := range s.elements {
		canvas.Path(e.d, e.style)
	}
	canvas.End()
	if ew.err != nil {
		return fmt.Errorf("render: export svg: %w", ew.err)
	}
	return nil
}

// errWriter keeps the first write error, since svgo drops them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func cssColor(c color.Color) string {
	if c == nil {
		return "none"
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("rgb(%d,%d,%d)", n.R, n.G, n.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", n.R, n.G, n.B, strconv.FormatFloat(float64(n.A)/0xff, 'f', 3, 64))
}
