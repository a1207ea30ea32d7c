// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package live

import "slices"

// frameRecorder is a surface that keeps the filled polygons of one frame.
type frameRecorder struct {
	path     [][2]float64
	polygons [][][2]float64
	cleared  bool
}

func (f *frameRecorder) reset() {
	f.path = f.path[:0]
	f.polygons = nil
	f.cleared = false
}

// take returns the recorded polygons and forgets them.
func (f *frameRecorder) take() [][][2]float64 {
	p := f.polygons
	f.polygons = nil
	return p
}

func (f *frameRecorder) BeginPath() {
	f.path = f.path[:0]
}

func (f *frameRecorder) MoveTo(x, y float64) {
	f.path = append(f.path, [2]float64{x, y})
}

func (f *frameRecorder) LineTo(x, y float64) {
	f.path = append(f.path, [2]float64{x, y})
}

func (f *frameRecorder) ClosePath() {}

func (f *frameRecorder) Fill() {
	f.polygons = append(f.polygons, slices.Clone(f.path))
}

func (f *frameRecorder) Stroke() {}

func (f *frameRecorder) ClearRect(x, y, w, h float64) {
	f.polygons = nil
	f.cleared = true
}
