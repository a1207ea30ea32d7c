// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package crystal

import (
	"errors"
	"fmt"
	"slices"
)

type Options struct {
	Config  Config
	Surface Surface
	// Shape replaces the bounds rectangle as the root polygon when set.
	Shape []Point
}

type Option func(*Options) error

func WithConfig(cfg Config) Option {
	return func(o *Options) error {
		o.Config = cfg
		return nil
	}
}

// WithSurface draws accepted splits on s as they happen.
func WithSurface(s Surface) Option {
	return func(o *Options) error {
		if s == nil {
			return errors.New("WithSurface: surface must not be nil")
		}
		o.Surface = s
		return nil
	}
}

// WithInitialShape grows the pattern inside a convex polygon instead of the
// bounds rectangle. Counter-clockwise input is reversed.
func WithInitialShape(vertices []Point) Option {
	return func(o *Options) error {
		p, err := NewPolygon(vertices)
		if err != nil {
			return fmt.Errorf("WithInitialShape: %w", err)
		}
		if !p.Convex() {
			return fmt.Errorf("WithInitialShape: %w", ErrNotConvex)
		}
		if !p.Clockwise() {
			slices.Reverse(p.Vertices)
		}
		o.Shape = p.Vertices
		return nil
	}
}
