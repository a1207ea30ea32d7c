// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/2dChan/crystal"
	"golang.org/x/image/vector"
)

var _ crystal.Surface = (*Raster)(nil)

// Raster draws onto an RGBA image with anti-aliasing.
type Raster struct {
	img   *image.RGBA
	style Style
	z     *vector.Rasterizer

	subpaths []subpath
}

type subpath struct {
	pts    [][2]float32
	closed bool
}

func NewRaster(width, height int, style Style) *Raster {
	r := &Raster{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		style: style,
		z:     vector.NewRasterizer(width, height),
	}
	r.ClearRect(0, 0, float64(width), float64(height))
	return r
}

func (r *Raster) Image() *image.RGBA {
	return r.img
}

func (r *Raster) BeginPath() {
	r.subpaths = r.subpaths[:0]
}

func (r *Raster) MoveTo(x, y float64) {
	r.subpaths = append(r.subpaths, subpath{pts: [][2]float32{{float32(x), float32(y)}}})
}

func (r *Raster) LineTo(x, y float64) {
	if len(r.subpaths) == 0 {
		r.MoveTo(x, y)
		return
	}
	last := &r.subpaths[len(r.subpaths)-1]
	last.pts = append(last.pts, [2]float32{float32(x), float32(y)})
}

func (r *Raster) ClosePath() {
	if len(r.subpaths) > 0 {
		r.subpaths[len(r.subpaths)-1].closed = true
	}
}

func (r *Raster) Fill() {
	if r.style.Fill == nil {
		return
	}
	r.resetRasterizer()
	for _, sp := range r.subpaths {
		if len(sp.pts) < 3 {
			continue
		}
		r.z.MoveTo(sp.pts[0][0], sp.pts[0][1])
		for _, p := range sp.pts[1:] {
			r.z.LineTo(p[0], p[1])
		}
		r.z.ClosePath()
	}
	r.z.Draw(r.img, r.img.Bounds(), image.NewUniform(r.style.Fill), image.Point{})
}

// Stroke rasterizes every edge of the path as a quad of the line width.
func (r *Raster) Stroke() {
	if r.style.Stroke == nil || r.style.LineWidth <= 0 {
		return
	}
	half := r.style.LineWidth / 2
	r.resetRasterizer()
	for _, sp := range r.subpaths {
		n := len(sp.pts)
		edges := n - 1
		if sp.closed && n > 2 {
			edges = n
		}
		for i := range edges {
			r.strokeEdge(sp.pts[i], sp.pts[(i+1)%n], half)
		}
	}
	r.z.Draw(r.img, r.img.Bounds(), image.NewUniform(r.style.Stroke), image.Point{})
}

func (r *Raster) strokeEdge(a, b [2]float32, half float64) {
	dx, dy := float64(b[0]-a[0]), float64(b[1]-a[1])
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx, ny := float32(-dy/length*half), float32(dx/length*half)
	r.z.MoveTo(a[0]+nx, a[1]+ny)
	r.z.LineTo(b[0]+nx, b[1]+ny)
	r.z.LineTo(b[0]-nx, b[1]-ny)
	r.z.LineTo(a[0]-nx, a[1]-ny)
	r.z.ClosePath()
}

func (r *Raster) ClearRect(x, y, w, h float64) {
	rect := image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	).Intersect(r.img.Bounds())

	var bg image.Image = image.Transparent
	if r.style.Background != nil {
		bg = image.NewUniform(r.style.Background)
	}
	draw.Draw(r.img, rect, bg, image.Point{}, draw.Src)
}

// Export encodes the image as PNG.
func (r *Raster) Export(w io.Writer) error {
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("render: export png: %w", err)
	}
	return nil
}

func (r *Raster) resetRasterizer() {
	b := r.img.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
}

// At returns the color of the pixel at (x, y).
func (r *Raster) At(x, y int) color.Color {
	return r.img.At(x, y)
}
