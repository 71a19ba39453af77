// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"fmt"

	"github.com/hierlab/hierfig/hierarchy"
	"github.com/hierlab/hierfig/obs"
	"github.com/hierlab/hierfig/sigtest"
)

// groupComparisons lists the group pairs compared by AreasGrouped, in
// the order their brackets are stacked from the top.
var groupComparisons = [][2]string{
	{hierarchy.Thalamus, hierarchy.Higher},
	{hierarchy.V1, hierarchy.Higher},
	{hierarchy.Thalamus, hierarchy.V1},
}

// groupedLimits are the unpadded y limits of AreasGrouped.
var groupedLimits = map[string][2]float64{
	"tau_double": {0.175, 0.6},
	"tau_single": {0.175, 0.6},
	"tau_R":      {0.01, 0.07},
	"R_tot":      {0.04, 0.09},
}

// A Comparison is a two-sided Mann-Whitney U test between two groups.
type Comparison struct {
	A, B   string
	Result sigtest.Result
	Stars  string
}

// Grouped is the result of AreasGrouped.
type Grouped struct {
	Axes       *Axes
	Observable obs.Observable

	// Groups and Structures are the estimates of the drawn groups
	// and structures, in hierarchy order.
	Groups     []Estimate
	Structures []Estimate

	Comparisons []Comparison

	// Dropped is the number of rows excluded as implausible
	// timescales.
	Dropped int
}

// NumBootGrouped is the number of bootstrap resamples per estimate in
// AreasGrouped and HierarchyScore.
const NumBootGrouped = 1000

// AreasGrouped draws the median of observable for every hierarchy
// group and its member structures at the fixed layout positions, and
// annotates the Mann-Whitney U significance between groups.
//
// A group is drawn if any of its member structures occurs in t.
// Comparisons involving a group that is not drawn are skipped. For
// timescales, rows above obs.MaxTimescale are excluded from the
// estimates but not from the comparisons.
//
// AreasGrouped adds the structure name column to t if it is missing.
func AreasGrouped(t *obs.Table, h *hierarchy.Hierarchy, observable string) (*Grouped, error) {
	o, err := obs.Lookup(observable)
	if err != nil {
		return nil, err
	}
	if _, err := t.EnsureStructureNames(h); err != nil {
		return nil, err
	}
	logConditions("grouped "+observable, t)

	groupOf, err := structureGroups(t, h)
	if err != nil {
		return nil, err
	}
	kept, dropped, err := dropImplausible(t, o)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		Info.Printf("dropped %d rows with %s > %g", dropped, observable, obs.MaxTimescale)
	}
	allNames, _ := t.Strings(obs.ColStructure)
	allVals, err := t.Floats(observable)
	if err != nil {
		return nil, err
	}
	keptNames, _ := kept.Strings(obs.ColStructure)
	keptVals, _ := kept.Floats(observable)

	ax := NewAxes()
	g := &Grouped{Axes: ax, Observable: o, Dropped: dropped}

	drawn := make(map[string]bool)
	for _, group := range h.Groups() {
		members, _ := h.Members(group)
		perStructure := make(map[string][]float64)
		var groupVals []float64
		for i, name := range keptNames {
			if groupOf[name] == group {
				perStructure[name] = append(perStructure[name], keptVals[i])
				groupVals = append(groupVals, keptVals[i])
			}
		}
		present := presentMembers(members, allNames)
		if len(present) == 0 {
			Debug.Printf("%s has no rows", group)
			continue
		}
		drawn[group] = true
		Debug.Printf("%s has %d rows", group, len(groupVals))

		ge, err := estimate(group, groupVals, NumBootGrouped)
		if err != nil {
			return nil, err
		}
		Debug.Printf("%s median: %.3g bootstrap: %v", group, ge.Median, ge.Boot)
		g.Groups = append(g.Groups, ge)

		left, marker, right, err := h.GroupPosition(group)
		if err != nil {
			return nil, err
		}
		gc, err := h.Color(group)
		if err != nil {
			return nil, err
		}
		ax.Line(RoleGroupMedian, pair(left, right), pair(ge.Median, ge.Median), gc, 1.2)
		ax.Line(RoleGroupInterval, pair(marker, marker), pair(ge.Boot.Lo, ge.Boot.Hi), gc, 1.2)
		ax.Points(RoleGroupMarker, []float64{marker}, []float64{ge.Median}, gc, 0.05)

		for _, s := range present {
			se, err := estimate(s, perStructure[s], NumBootGrouped)
			if err != nil {
				return nil, err
			}
			g.Structures = append(g.Structures, se)
			x, err := h.StructurePosition(s)
			if err != nil {
				return nil, err
			}
			sc, err := h.Color(s)
			if err != nil {
				return nil, err
			}
			ax.Line(RoleStructureInterval, pair(x, x), pair(se.Boot.Lo, se.Boot.Hi), sc, 1.6)
			ax.HollowPoint(RoleStructureMarker, x, se.Median, sc, 0.12)
		}
	}

	for idx, gp := range groupComparisons {
		a, b := gp[0], gp[1]
		if !drawn[a] || !drawn[b] {
			Info.Printf("skipping %s vs. %s: no rows for one of the groups", a, b)
			continue
		}
		res, err := sigtest.MannWhitney(groupValues(allNames, allVals, groupOf, a), groupValues(allNames, allVals, groupOf, b))
		if err != nil {
			return nil, fmt.Errorf("comparing %s and %s: %w", a, b, err)
		}
		stars := sigtest.Stars(res.P)
		Debug.Printf("%d %s vs. %s Mann-Whitney p: %.3g", idx, a, b, res.P)
		g.Comparisons = append(g.Comparisons, Comparison{a, b, res, stars})

		x1, _ := h.GroupCenter(a)
		x2, _ := h.GroupCenter(b)
		yLine := 0.95 - 0.07*float64(idx+1)
		ax.Add(Mark{Kind: KindLine, Role: RoleBracket, Coords: CoordXData, X: pair(x1, x2), Y: pair(yLine, yLine), Stroke: black, Width: 1})
		ax.Text(RoleSignificance, CoordXData, (x1+x2)/2, yLine+0.05, stars)
	}

	ticks, labels := h.GroupTicks()
	for i := range ticks {
		ax.XTicks = append(ax.XTicks, Tick{ticks[i], labels[i]})
	}
	if lim, ok := groupedLimits[observable]; ok {
		ax.YRange = Padded(lim[0], lim[1])
	}
	if o.Timescale {
		ax.YFormat = obs.MillisecondLabel
	}
	ax.YLabel = o.AxisLabel(false)
	return g, nil
}

// structureGroups maps every structure in t to its hierarchy group.
func structureGroups(t *obs.Table, h *hierarchy.Hierarchy) (map[string]string, error) {
	names, err := t.Unique(obs.ColStructure)
	if err != nil {
		return nil, err
	}
	groupOf := make(map[string]string, len(names))
	for _, name := range names {
		if groupOf[name], err = h.GroupOf(name); err != nil {
			return nil, err
		}
	}
	return groupOf, nil
}

// presentMembers returns the members that occur in names, in member
// order.
func presentMembers(members, names []string) []string {
	have := make(map[string]bool)
	for _, n := range names {
		have[n] = true
	}
	var out []string
	for _, m := range members {
		if have[m] {
			out = append(out, m)
		}
	}
	return out
}

func groupValues(names []string, vals []float64, groupOf map[string]string, group string) []float64 {
	var out []float64
	for i, n := range names {
		if groupOf[n] == group {
			out = append(out, vals[i])
		}
	}
	return out
}
