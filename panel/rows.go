// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"github.com/hierlab/hierfig/hierarchy"
	"github.com/hierlab/hierfig/obs"
)

// RowObservables are the observables of a figure row, left to right.
var RowObservables = []string{"tau_double", "tau_R", "R_tot"}

// RowStructureGroups draws AreasGrouped for each of RowObservables and
// returns the panels keyed by observable.
func RowStructureGroups(t *obs.Table, h *hierarchy.Hierarchy) (map[string]*Grouped, error) {
	out := make(map[string]*Grouped, len(RowObservables))
	for _, o := range RowObservables {
		g, err := AreasGrouped(t, h, o)
		if err != nil {
			return nil, err
		}
		out[o] = g
	}
	return out, nil
}

// RowHierarchyScore draws HierarchyScore for each of RowObservables
// and returns the panels keyed by observable.
func RowHierarchyScore(t *obs.Table, h *hierarchy.Hierarchy) (map[string]*Regression, error) {
	out := make(map[string]*Regression, len(RowObservables))
	for _, o := range RowObservables {
		r, err := HierarchyScore(t, h, o)
		if err != nil {
			return nil, err
		}
		out[o] = r
	}
	return out, nil
}
