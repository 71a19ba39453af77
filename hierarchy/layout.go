// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hierarchy

import "fmt"

// Spacing of the grouped layout, in x axis units.
const (
	GroupGap      = 0.5  // between the right edge of a group and the left edge of the next
	MarkerSpacing = 0.25 // between neighboring structure markers of a group
	GroupPadding  = 0.1  // between a group edge and its outermost marker
)

// groupSpan is where a group sits on the x axis.
type groupSpan struct {
	left, marker, right float64
}

// layout is a pure function of the group list and the spacing
// constants. It never depends on the data being plotted, so every
// grouped panel shares the same x axis.
type layout struct {
	groups     map[string]groupSpan
	structures map[string]float64
	order      []string
}

func newLayout(groups []group) layout {
	l := layout{
		groups:     make(map[string]groupSpan),
		structures: make(map[string]float64),
	}

	ref := GroupPadding
	for _, g := range groups {
		n := float64(len(g.members))
		var span groupSpan
		switch g.name {
		case Thalamus:
			// Members from the left edge, group marker to
			// their right.
			for i, s := range g.members {
				l.structures[s] = ref + float64(i)*MarkerSpacing
			}
			span = groupSpan{ref - GroupPadding, ref + n*MarkerSpacing, ref + n*MarkerSpacing + GroupPadding}
		case Higher:
			// Group marker at the left edge, members to its
			// right.
			for i, s := range g.members {
				l.structures[s] = ref + float64(i+1)*MarkerSpacing
			}
			span = groupSpan{ref - GroupPadding, ref, ref + n*MarkerSpacing + GroupPadding}
		default:
			// Single structures are centered and share their
			// position with the group marker.
			width := 1.5 * MarkerSpacing * n
			for i, s := range g.members {
				l.structures[s] = ref + width/2 + float64(i)*MarkerSpacing
			}
			span = groupSpan{ref - GroupPadding, ref + width/2, ref + width + GroupPadding}
		}
		l.groups[g.name] = span
		l.order = append(l.order, g.name)
		ref = span.right + GroupGap + GroupPadding
	}
	return l
}

// GroupPosition returns the left edge, marker center, and right edge
// of a group. It always holds that left < marker < right.
func (h *Hierarchy) GroupPosition(groupName string) (left, marker, right float64, err error) {
	s, ok := h.layout.groups[groupName]
	if !ok {
		return 0, 0, 0, fmt.Errorf("group position of %q: %w", groupName, ErrLookup)
	}
	return s.left, s.marker, s.right, nil
}

// GroupCenter returns the midpoint between the edges of a group. This
// is where significance brackets attach.
func (h *Hierarchy) GroupCenter(groupName string) (float64, error) {
	left, _, right, err := h.GroupPosition(groupName)
	if err != nil {
		return 0, err
	}
	return left + (right-left)/2, nil
}

// StructurePosition returns the x position of a single structure.
func (h *Hierarchy) StructurePosition(structure string) (float64, error) {
	x, ok := h.layout.structures[structure]
	if !ok {
		return 0, fmt.Errorf("position of %q: %w", structure, ErrLookup)
	}
	return x, nil
}

// GroupTicks returns the x tick positions and labels of the grouped
// layout.
func (h *Hierarchy) GroupTicks() (xs []float64, labels []string) {
	return []float64{0.4, 1.7, 2.9}, []string{"thalamus", "V1", "higher\ncortical"}
}
