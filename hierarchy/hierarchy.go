// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hierarchy describes the anatomical structures of the mouse
// visual system that figures are drawn for: their position in the
// processing hierarchy, the groups they belong to, their display colors,
// and where they sit on the x axis of grouped panels.
//
// A Hierarchy is built once and never modified. All lookups return
// errors wrapping ErrLookup for names outside the fixed sets.
package hierarchy

import (
	"fmt"
	"image/color"

	"github.com/hierlab/hierfig/internal/errs"
)

// ErrLookup is returned (wrapped) when a structure, group, or
// acronym is not part of the hierarchy.
var ErrLookup = errs.ErrLookup

// Group names, in drawing order.
const (
	Thalamus = "thalamus_grouped"
	V1       = "V1_grouped"
	Higher   = "higher_grouped"
)

// A Hierarchy maps structures to hierarchy scores, groups, colors, and
// x positions. The zero value is not usable; use Default.
type Hierarchy struct {
	scores   map[string]float64
	acronyms map[string]string
	groups   []group
	groupOf  map[string]string
	colors   map[string]color.RGBA
	layout   layout
}

type group struct {
	name    string
	members []string
}

var defaultHierarchy = newDefault()

// Default returns the hierarchy of the Allen Brain Observatory
// Neuropixels structures. The result is shared and must be treated as
// read-only.
func Default() *Hierarchy {
	return defaultHierarchy
}

func newDefault() *Hierarchy {
	h := &Hierarchy{
		scores: map[string]float64{
			"LGN": -0.515,
			"V1":  -0.357,
			"LM":  -0.093,
			"RL":  -0.059,
			"LP":  0.105,
			"AL":  0.152,
			"PM":  0.327,
			"AM":  0.441,
		},
		acronyms: map[string]string{
			"LGd":   "LGN",
			"LP":    "LP",
			"VISp":  "V1",
			"VISl":  "LM",
			"VISrl": "RL",
			"VISal": "AL",
			"VISpm": "PM",
			"VISam": "AM",
		},
		groups: []group{
			{Thalamus, []string{"LGN", "LP"}},
			{V1, []string{"V1"}},
			{Higher, []string{"LM", "RL", "AL", "PM", "AM"}},
		},
		groupOf: make(map[string]string),
		colors: map[string]color.RGBA{
			"V1":  hex(0x9467BD),
			"LM":  hex(0x2078B4),
			"RL":  hex(0x1ABECF),
			"AL":  hex(0xBDBD21),
			"PM":  hex(0xFF7F0F),
			"AM":  hex(0xD62729),
			"LGN": hex(0xF4C9E7),
			"LP":  hex(0xAAD9AB),

			Thalamus: hex(0x999999),
			V1:       hex(0x4C4C4C),
			Higher:   hex(0x4C4C4C),
		},
	}
	for _, g := range h.groups {
		for _, s := range g.members {
			h.groupOf[s] = g.name
		}
	}
	h.layout = newLayout(h.groups)
	return h
}

func hex(x uint32) color.RGBA {
	return color.RGBA{uint8(x >> 16), uint8(x >> 8), uint8(x), 0xff}
}

// Groups returns the group names in drawing order.
func (h *Hierarchy) Groups() []string {
	names := make([]string, len(h.groups))
	for i, g := range h.groups {
		names[i] = g.name
	}
	return names
}

// Members returns the structures of group in their fixed order.
func (h *Hierarchy) Members(groupName string) ([]string, error) {
	for _, g := range h.groups {
		if g.name == groupName {
			return append([]string(nil), g.members...), nil
		}
	}
	return nil, fmt.Errorf("group %q: %w", groupName, ErrLookup)
}

// Structures returns every structure, ordered by group and then by
// position within the group.
func (h *Hierarchy) Structures() []string {
	var out []string
	for _, g := range h.groups {
		out = append(out, g.members...)
	}
	return out
}

// GroupOf returns the group a structure belongs to.
func (h *Hierarchy) GroupOf(structure string) (string, error) {
	g, ok := h.groupOf[structure]
	if !ok {
		return "", fmt.Errorf("structure %q: %w", structure, ErrLookup)
	}
	return g, nil
}

// Score returns the hierarchy score of structure.
func (h *Hierarchy) Score(structure string) (float64, error) {
	s, ok := h.scores[structure]
	if !ok {
		return 0, fmt.Errorf("hierarchy score of %q: %w", structure, ErrLookup)
	}
	return s, nil
}

// IsThalamic reports whether structure belongs to the thalamic group.
func (h *Hierarchy) IsThalamic(structure string) bool {
	return h.groupOf[structure] == Thalamus
}

// CanonicalName maps an ecephys structure acronym (for example
// "VISp") to the name used throughout figures ("V1").
func (h *Hierarchy) CanonicalName(acronym string) (string, error) {
	n, ok := h.acronyms[acronym]
	if !ok {
		return "", fmt.Errorf("structure acronym %q: %w", acronym, ErrLookup)
	}
	return n, nil
}

// Color returns the display color of a structure or group.
func (h *Hierarchy) Color(name string) (color.RGBA, error) {
	c, ok := h.colors[name]
	if !ok {
		return color.RGBA{}, fmt.Errorf("color of %q: %w", name, ErrLookup)
	}
	return c, nil
}
