// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colors

import (
	"fmt"
	"image/color"
)

// An Entry assigns a display color to one category value.
type Entry struct {
	Category string
	Color    color.RGBA
}

// A Palette is an ordered list of category colors. It may cover only
// some of the categories in a table; panels draw the covered ones in
// palette order.
type Palette []Entry

// ParsePalette builds a palette from alternating category and
// "#rrggbb" arguments.
func ParsePalette(pairs ...string) (Palette, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("palette needs category/color pairs, got %d arguments", len(pairs))
	}
	var p Palette
	for i := 0; i < len(pairs); i += 2 {
		c, err := ParseHex(pairs[i+1])
		if err != nil {
			return nil, err
		}
		if _, ok := p.Lookup(pairs[i]); ok {
			return nil, fmt.Errorf("palette lists category %q twice", pairs[i])
		}
		p = append(p, Entry{pairs[i], c})
	}
	return p, nil
}

// Lookup returns the color of category.
func (p Palette) Lookup(category string) (color.RGBA, bool) {
	for _, e := range p {
		if e.Category == category {
			return e.Color, true
		}
	}
	return color.RGBA{}, false
}

// Keys returns the categories of p in order.
func (p Palette) Keys() []string {
	keys := make([]string, len(p))
	for i, e := range p {
		keys[i] = e.Category
	}
	return keys
}

// Restrict returns the entries of p whose category is in present, in
// palette order.
func (p Palette) Restrict(present []string) Palette {
	have := make(map[string]bool, len(present))
	for _, c := range present {
		have[c] = true
	}
	var out Palette
	for _, e := range p {
		if have[e.Category] {
			out = append(out, e)
		}
	}
	return out
}

// DefaultViolin is the palette of the stimulus violin panels: the
// merged natural-movie condition and the spontaneous (null)
// condition.
var DefaultViolin = Palette{
	{"merged_3.0_and_8.0", MustHex("#233954")},
	{"null", MustHex("#EA5E48")},
}

// sessionColors is the 10-color categorical cycle used for per-session
// slices.
var sessionColors = [...]color.RGBA{
	MustHex("#1f77b4"),
	MustHex("#ff7f0e"),
	MustHex("#2ca02c"),
	MustHex("#d62728"),
	MustHex("#9467bd"),
	MustHex("#8c564b"),
	MustHex("#e377c2"),
	MustHex("#7f7f7f"),
	MustHex("#bcbd22"),
	MustHex("#17becf"),
}

// NumSessionColors is the length of the session color cycle.
const NumSessionColors = len(sessionColors)

// Session returns the color of session coordinate i. Colors repeat
// every NumSessionColors sessions.
func Session(i int) color.RGBA {
	i %= NumSessionColors
	if i < 0 {
		i += NumSessionColors
	}
	return sessionColors[i]
}
