// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hierarchy

import (
	"errors"
	"math"
	"testing"
)

func TestGroupPosition(t *testing.T) {
	h := Default()
	for _, test := range []struct {
		group               string
		left, marker, right float64
	}{
		{Thalamus, 0, 0.6, 0.7},
		{V1, 1.2, 1.4875, 1.775},
		{Higher, 2.275, 2.375, 3.725},
	} {
		left, marker, right, err := h.GroupPosition(test.group)
		if err != nil {
			t.Errorf("%s: unexpected error %v", test.group, err)
			continue
		}
		if !near(left, test.left) || !near(marker, test.marker) || !near(right, test.right) {
			t.Errorf("%s: got (%g, %g, %g), want (%g, %g, %g)", test.group, left, marker, right, test.left, test.marker, test.right)
		}
		if !(left < marker && marker < right) {
			t.Errorf("%s: want left < marker < right, got (%g, %g, %g)", test.group, left, marker, right)
		}
	}
}

func TestStructureOrder(t *testing.T) {
	h := Default()
	for _, g := range h.Groups() {
		members, err := h.Members(g)
		if err != nil {
			t.Fatal(err)
		}
		left, _, right, _ := h.GroupPosition(g)
		prev := math.Inf(-1)
		for _, s := range members {
			x, err := h.StructurePosition(s)
			if err != nil {
				t.Fatal(err)
			}
			if x <= prev {
				t.Errorf("%s: position %g of %s not after %g", g, x, s, prev)
			}
			if x <= left || x >= right {
				t.Errorf("%s: position %g of %s outside (%g, %g)", g, x, s, left, right)
			}
			prev = x
		}
	}

	lgn, _ := h.StructurePosition("LGN")
	lp, _ := h.StructurePosition("LP")
	if !(lgn < lp) {
		t.Errorf("want LGN < LP, got %g, %g", lgn, lp)
	}
	if lm, _ := h.StructurePosition("LM"); !near(lm, 2.625) {
		t.Errorf("LM: got %g, want 2.625", lm)
	}
}

func TestGroupsDoNotOverlap(t *testing.T) {
	h := Default()
	prevRight := math.Inf(-1)
	for _, g := range h.Groups() {
		left, _, right, _ := h.GroupPosition(g)
		if left <= prevRight {
			t.Errorf("%s: left edge %g overlaps previous group ending at %g", g, left, prevRight)
		}
		prevRight = right
	}
}

func TestLookupErrors(t *testing.T) {
	h := Default()
	if _, _, _, err := h.GroupPosition("cerebellum_grouped"); !errors.Is(err, ErrLookup) {
		t.Errorf("GroupPosition: got %v, want ErrLookup", err)
	}
	if _, err := h.StructurePosition("CA1"); !errors.Is(err, ErrLookup) {
		t.Errorf("StructurePosition: got %v, want ErrLookup", err)
	}
	if _, err := h.Score("CA1"); !errors.Is(err, ErrLookup) {
		t.Errorf("Score: got %v, want ErrLookup", err)
	}
	if _, err := h.CanonicalName("VISx"); !errors.Is(err, ErrLookup) {
		t.Errorf("CanonicalName: got %v, want ErrLookup", err)
	}
	if _, err := h.Members("nope"); !errors.Is(err, ErrLookup) {
		t.Errorf("Members: got %v, want ErrLookup", err)
	}
}

func TestCanonicalName(t *testing.T) {
	h := Default()
	for acr, want := range map[string]string{"LGd": "LGN", "VISp": "V1", "VISam": "AM", "LP": "LP"} {
		got, err := h.CanonicalName(acr)
		if err != nil || got != want {
			t.Errorf("CanonicalName(%q) = %q, %v; want %q", acr, got, err, want)
		}
	}
}

func TestEveryStructureHasScoreAndColor(t *testing.T) {
	h := Default()
	for _, s := range h.Structures() {
		if _, err := h.Score(s); err != nil {
			t.Error(err)
		}
		if _, err := h.Color(s); err != nil {
			t.Error(err)
		}
		g, err := h.GroupOf(s)
		if err != nil {
			t.Error(err)
		}
		if h.IsThalamic(s) != (g == Thalamus) {
			t.Errorf("IsThalamic(%s) disagrees with group %s", s, g)
		}
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
