// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colors

import (
	"image/color"
	"reflect"
	"testing"
)

func TestAlphaOnBackground(t *testing.T) {
	for _, test := range []struct {
		fg    string
		alpha float64
		bg    string
		want  string
	}{
		{"#000000", 0.5, "#ffffff", "#808080"},
		{"#000000", 0, "#ffffff", "#ffffff"},
		{"#233954", 1, "#ffffff", "#233954"},
		{"#ff0000", 0.5, "#0000ff", "#800080"},
		{"#ea5e48", 2, "#ffffff", "#ea5e48"},
	} {
		got := AlphaOnBackground(MustHex(test.fg), test.alpha, MustHex(test.bg))
		if Hex(got) != test.want {
			t.Errorf("AlphaOnBackground(%s, %g, %s) = %s, want %s", test.fg, test.alpha, test.bg, Hex(got), test.want)
		}
		if got.A != 0xff {
			t.Errorf("AlphaOnBackground(%s, %g, %s) is not opaque", test.fg, test.alpha, test.bg)
		}
	}
}

func TestAlphaOnBackgroundPremultiplied(t *testing.T) {
	// Half-transparent black as a premultiplied color still
	// composites as black.
	fg := color.RGBA{0, 0, 0, 0x80}
	if got := Hex(AlphaOnBackground(fg, 1, White)); got != "#000000" {
		t.Errorf("got %s, want #000000", got)
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#1ABECF")
	if err != nil {
		t.Fatal(err)
	}
	if want := (color.RGBA{0x1a, 0xbe, 0xcf, 0xff}); c != want {
		t.Errorf("got %v, want %v", c, want)
	}
	if _, err := ParseHex("blue"); err == nil {
		t.Error("want error for malformed color")
	}
}

func TestPalette(t *testing.T) {
	p, err := ParsePalette("b", "#000000", "a", "#ffffff")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := p.Keys(), []string{"b", "a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if c, ok := p.Lookup("a"); !ok || c != White {
		t.Errorf("Lookup(a) = %v, %v", c, ok)
	}
	if _, ok := p.Lookup("c"); ok {
		t.Error("Lookup(c) succeeded")
	}
	if got := p.Restrict([]string{"a", "c"}).Keys(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("Restrict = %v, want [a]", got)
	}

	if _, err := ParsePalette("a"); err == nil {
		t.Error("odd arguments: want error")
	}
	if _, err := ParsePalette("a", "#000000", "a", "#ffffff"); err == nil {
		t.Error("duplicate category: want error")
	}
}

func TestSession(t *testing.T) {
	if Session(0) != Session(NumSessionColors) || Session(3) != Session(23) {
		t.Error("session colors do not cycle")
	}
	if Session(-1) != Session(NumSessionColors-1) {
		t.Error("negative coordinate not wrapped")
	}
	if Hex(Session(1)) != "#ff7f0e" {
		t.Errorf("Session(1) = %s", Hex(Session(1)))
	}
}
