// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colors provides the palettes used by the figure panels and
// helpers for flattening translucent colors onto a background.
package colors

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// White is the default figure background.
var White = color.RGBA{0xff, 0xff, 0xff, 0xff}

// Black is the default stroke color.
var Black = color.RGBA{0, 0, 0, 0xff}

// ParseHex parses a color of the form "#rrggbb".
func ParseHex(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parsing color %q: %w", s, err)
	}
	return toRGBA(c), nil
}

// MustHex is like ParseHex but panics if s is malformed. It is
// intended for palette literals.
func MustHex(s string) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// AlphaOnBackground returns the opaque color that fg drawn with the
// given alpha over bg would produce. Renderers that lack or mishandle
// transparency draw the result identically.
//
// The alpha channels of fg and bg are ignored.
func AlphaOnBackground(fg color.Color, alpha float64, bg color.Color) color.RGBA {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	f, _ := colorful.MakeColor(opaque(fg))
	b, _ := colorful.MakeColor(opaque(bg))
	return toRGBA(b.BlendRgb(f, alpha).Clamped())
}

// Hex formats c as "#rrggbb".
func Hex(c color.Color) string {
	cf, _ := colorful.MakeColor(opaque(c))
	return cf.Hex()
}

func opaque(c color.Color) color.Color {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return color.RGBA64{}
	}
	// Undo alpha premultiplication.
	return color.RGBA64{
		uint16(r * 0xffff / a),
		uint16(g * 0xffff / a),
		uint16(b * 0xffff / a),
		0xffff,
	}
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 0xff}
}
