// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package render implements crystal.Surface on top of SVG documents and raster images.

package render

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/2dChan/crystal"
)

// Style holds the paint used by a surface.
type Style struct {
	Fill   color.Color
	Stroke color.Color
	// LineWidth is in canvas units.
	LineWidth float64
	// Background paints cleared areas. Nil leaves them transparent.
	Background color.Color
}

func DefaultStyle() Style {
	return Style{
		Fill:      color.NRGBA{R: 0xfc, G: 0xfc, B: 0xfc, A: 0xff},
		Stroke:    color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff},
		LineWidth: 0.25,
	}
}

// Exporter writes the current picture of a surface.
type Exporter interface {
	Export(w io.Writer) error
}

// ParseHexColor parses "#rgb", "#rrggbb" and "#rrggbbaa".
func ParseHexColor(s string) (color.NRGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.NRGBA{}, fmt.Errorf("render: color %q must start with #", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("render: color %q has bad length", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("render: color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Multi replays every call on each of its surfaces in order.
type Multi []crystal.Surface

func (m Multi) BeginPath() {
	for _, s := range m {
		s.BeginPath()
	}
}

func (m Multi) MoveTo(x, y float64) {
	for _, s := range m {
		s.MoveTo(x, y)
	}
}

func (m Multi) LineTo(x, y float64) {
	for _, s := range m {
		s.LineTo(x, y)
	}
}

func (m Multi) ClosePath() {
	for _, s := range m {
		s.ClosePath()
	}
}

func (m Multi) Fill() {
	for _, s := range m {
		s.Fill()
	}
}

func (m Multi) Stroke() {
	for _, s := range m {
		s.Stroke()
	}
}

func (m Multi) ClearRect(x, y, w, h float64) {
	for _, s := range m {
		s.ClearRect(x, y, w, h)
	}
}
