// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"fmt"

	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"

	"github.com/hierlab/hierfig/hierarchy"
	"github.com/hierlab/hierfig/obs"
	"github.com/hierlab/hierfig/sigtest"
)

// regressionLimits are the unpadded y limits of HierarchyScore.
var regressionLimits = map[string][2]float64{
	"tau_double": {0.15, 0.6},
	"tau_single": {0.15, 0.6},
	"tau_R":      {0.025, 0.07},
	"R_tot":      {0.06, 0.09},
}

// Regression is the result of HierarchyScore.
type Regression struct {
	Axes       *Axes
	Observable obs.Observable

	// Structures holds one estimate per cortical structure, in
	// order of first appearance, and Scores their hierarchy
	// scores.
	Structures []Estimate
	Scores     []float64

	// Line is the least-squares fit of the structure medians
	// against the hierarchy scores.
	Line sigtest.Line

	// Correlations holds the "pearson" and "spearman" correlation
	// of the structure medians with the hierarchy scores.
	Correlations map[string]sigtest.Correlation

	// DroppedThalamic and Dropped count rows excluded as thalamic
	// and as implausible timescales.
	DroppedThalamic, Dropped int
}

// HierarchyScore draws the median of observable of every cortical
// structure against its hierarchy score, with a least-squares trend
// over the structure medians and their Pearson and Spearman
// correlations.
//
// Thalamic structures are excluded. At least three structures must
// remain.
//
// HierarchyScore adds the structure name column to t if it is
// missing.
func HierarchyScore(t *obs.Table, h *hierarchy.Hierarchy, observable string) (*Regression, error) {
	o, err := obs.Lookup(observable)
	if err != nil {
		return nil, err
	}
	if _, err := t.EnsureStructureNames(h); err != nil {
		return nil, err
	}
	if _, err := structureGroups(t, h); err != nil {
		return nil, err
	}

	r := &Regression{Observable: o}
	names, _ := t.Strings(obs.ColStructure)
	cortex := t.Where(func(i int) bool { return !h.IsThalamic(names[i]) })
	if r.DroppedThalamic = t.Len() - cortex.Len(); r.DroppedThalamic > 0 {
		Info.Printf("dropping %d LGN and LP rows to focus on cortical hierarchy", r.DroppedThalamic)
	}
	logConditions(observable+" against hierarchy score", cortex)

	cortex, r.Dropped, err = dropImplausible(cortex, o)
	if err != nil {
		return nil, err
	}
	if r.Dropped > 0 {
		Info.Printf("dropped %d rows with %s > %g", r.Dropped, observable, obs.MaxTimescale)
	}

	structures, _ := cortex.Unique(obs.ColStructure)
	if len(structures) < 3 {
		return nil, fmt.Errorf("hierarchy regression over %d cortical structures: %w", len(structures), ErrInvalidInput)
	}
	names, _ = cortex.Strings(obs.ColStructure)
	vals, err := cortex.Floats(observable)
	if err != nil {
		return nil, err
	}
	perStructure := make(map[string][]float64)
	for i, n := range names {
		perStructure[n] = append(perStructure[n], vals[i])
	}

	ax := NewAxes()
	r.Axes = ax
	var medians []float64
	for _, s := range structures {
		score, err := h.Score(s)
		if err != nil {
			return nil, err
		}
		e, err := estimate(s, perStructure[s], NumBootGrouped)
		if err != nil {
			return nil, err
		}
		Debug.Printf("%s median: %.3g bootstrap: %v", s, e.Median, e.Boot)
		r.Structures = append(r.Structures, e)
		r.Scores = append(r.Scores, score)
		medians = append(medians, e.Median)

		c, err := h.Color(s)
		if err != nil {
			return nil, err
		}
		ax.Line(RoleStructureInterval, pair(score, score), pair(e.Boot.Lo, e.Boot.Hi), c, 1.6)
		ax.HollowPoint(RoleStructureMarker, score, e.Median, c, 0.12)
	}

	lsq := fit.PolynomialRegression(r.Scores, medians, nil, 1)
	r.Line = sigtest.Line{Intercept: lsq.Coefficients[0], Slope: lsq.Coefficients[1]}
	lo, hi := stats.Bounds(r.Scores)
	xs := vec.Linspace(lo, hi, 10)
	ax.Line(RoleTrend, xs, vec.Map(lsq.F, xs), gray50, 1.2)

	pearson, err := sigtest.Pearson(r.Scores, medians)
	if err != nil {
		return nil, err
	}
	spearman, err := sigtest.Spearman(r.Scores, medians)
	if err != nil {
		return nil, err
	}
	r.Correlations = map[string]sigtest.Correlation{
		"pearson":  pearson,
		"spearman": spearman,
	}
	ax.Text(RoleCorrelation, CoordAxes, 0.99, 0.1, fmt.Sprintf("rP = %.2f  PP = %.2f", pearson.R, pearson.P))
	ax.Text(RoleCorrelation, CoordAxes, 0.99, 0.03, fmt.Sprintf("rS = %.2f  PS = %.2f", spearman.R, spearman.P))

	if lim, ok := regressionLimits[observable]; ok {
		ax.YRange = Padded(lim[0], lim[1])
	}
	if o.Timescale {
		ax.YFormat = obs.MillisecondLabel
	}
	ax.XTicks = []Tick{{-0.25, "-0.25"}, {0, "0"}, {0.25, "0.25"}}
	ax.XLabel = "hierarchy score"
	ax.YLabel = o.AxisLabel(false)
	return r, nil
}
