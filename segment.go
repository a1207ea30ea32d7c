// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package crystal

// Segment is a fracture chord introduced by a split.
type Segment struct {
	A, B Point
}

func (s Segment) Length() float64 {
	return s.A.Distance(s.B)
}

func (s Segment) Midpoint() Point {
	return s.A.Lerp(s.B, 0.5)
}
