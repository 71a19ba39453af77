// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"strconv"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	mstats "github.com/montanaflynn/stats"

	"github.com/hierlab/hierfig/colors"
	"github.com/hierlab/hierfig/obs"
	"github.com/hierlab/hierfig/sigtest"
)

// ViolinOptions configures StimulusViolins and FancyViolins. Zero
// fields take the documented defaults.
type ViolinOptions struct {
	// Category is the column whose values are drawn side by side.
	// Default obs.ColStimulus.
	Category string

	// Observable is the value column. Default "R_tot".
	Observable string

	// Palette orders and colors the categories. Categories absent
	// from the data are skipped. Default colors.DefaultViolin.
	Palette colors.Palette

	// NumSwarmPoints is the number of swarm points drawn per
	// category. Default 400.
	NumSwarmPoints int

	// PooledSwarm subsamples the swarm once from all categories
	// together instead of separately per category.
	PooledSwarm bool

	// Replace subsamples the swarm with replacement.
	Replace bool

	// Seed seeds the swarm subsampling. Default 44.
	Seed int64

	// NumBoot is the number of bootstrap resamples behind each
	// error stick. Default 500.
	NumBoot int

	// LogScale draws the base-10 logarithm of the observable.
	LogScale bool

	// Areawise annotates the percent change of the median and its
	// significance between two categories, and fixes the y limits for
	// comparing areas.
	Areawise bool

	// AreaName, if set, is written with the number of units at
	// x = AreaX.
	AreaName string
	AreaX    float64

	// Bonferroni multiplies the 0.05 significance threshold.
	// Default 1.
	Bonferroni float64

	// XLabels, if non-nil, label the categories in order.
	XLabels []string

	// ShortLabel selects the short y axis label.
	ShortLabel bool
}

func (o ViolinOptions) withDefaults() ViolinOptions {
	if o.Category == "" {
		o.Category = obs.ColStimulus
	}
	if o.Observable == "" {
		o.Observable = "R_tot"
	}
	if o.Palette == nil {
		o.Palette = colors.DefaultViolin
	}
	if o.NumSwarmPoints == 0 {
		o.NumSwarmPoints = 400
	}
	if o.Seed == 0 {
		o.Seed = 44
	}
	if o.NumBoot == 0 {
		o.NumBoot = 500
	}
	if o.Bonferroni == 0 {
		o.Bonferroni = 1
	}
	return o
}

// A PairedComparison compares two categories over the units they
// share.
type PairedComparison struct {
	A, B string

	// N is the number of paired units.
	N int

	// Wilcoxon is the signed-rank test of the per-unit
	// differences B - A.
	Wilcoxon sigtest.Result

	// MedianPercentChange is the median over units of
	// 100 * (B - A) / A. PercentChangeOfMedians is
	// 100 * (median(B) - median(A)) / median(A). Both are in
	// linear units even on a log scale.
	MedianPercentChange    float64
	PercentChangeOfMedians float64
}

// Violins is the result of StimulusViolins.
type Violins struct {
	Axes       *Axes
	Observable obs.Observable

	// Categories are the drawn categories, in palette order.
	Categories []string

	// Units is the number of units present in every category.
	Units int

	Estimates   []Estimate
	Comparisons []PairedComparison

	// DroppedMissing, DroppedLog, and DroppedUnpaired count rows
	// excluded for a missing value, an undefined logarithm, and a
	// unit missing from some category.
	DroppedMissing, DroppedLog, DroppedUnpaired int
}

// StimulusViolins draws a split violin and swarm of the observable for
// each category of the palette present in t, and tests every pair of
// categories with a Wilcoxon signed-rank test over the units present
// in all categories.
//
// Each unit must occur once per category. Units missing from any
// category are dropped and counted. A unit that occurs more than once
// in a category fails with ErrStatisticalPrecondition.
func StimulusViolins(t *obs.Table, opts ViolinOptions) (*Violins, error) {
	opts = opts.withDefaults()
	o, err := obs.Lookup(opts.Observable)
	if err != nil {
		return nil, err
	}
	v := &Violins{Observable: o}
	logConditions("violins of "+o.Name, t)

	t, err = toMilliseconds(t, o)
	if err != nil {
		return nil, err
	}
	if opts.LogScale {
		vals, err := t.Floats(o.Name)
		if err != nil {
			return nil, err
		}
		logs := make([]float64, len(vals))
		for i, x := range vals {
			logs[i] = math.Log10(x)
		}
		n := t.Len()
		t = t.With(o.Name, logs).Where(func(i int) bool {
			return !math.IsNaN(logs[i]) && !math.IsInf(logs[i], 0)
		})
		if v.DroppedLog = n - t.Len(); v.DroppedLog > 0 {
			Info.Printf("dropped %d rows with non-positive %s for log scale", v.DroppedLog, o.Name)
		}
	} else {
		if t, v.DroppedMissing, err = t.DropNaN(o.Name); err != nil {
			return nil, err
		}
		if v.DroppedMissing > 0 {
			Info.Printf("dropped %d rows with missing %s", v.DroppedMissing, o.Name)
		}
	}

	cats, err := keys(t, opts.Category)
	if err != nil {
		return nil, err
	}
	pal := opts.Palette.Restrict(uniq(cats))
	if len(pal) == 0 {
		return nil, fmt.Errorf("no %s of the palette in the data: %w", opts.Category, ErrInvalidInput)
	}
	if opts.XLabels != nil && len(opts.XLabels) != len(pal) {
		return nil, fmt.Errorf("%d x labels for %d categories: %w", len(opts.XLabels), len(pal), ErrInvalidInput)
	}
	v.Categories = pal.Keys()
	opts.Palette = pal

	t, v.DroppedUnpaired, err = pairUnits(t, opts.Category, v.Categories)
	if err != nil {
		return nil, err
	}
	if v.DroppedUnpaired > 0 {
		Info.Printf("dropped %d rows of units not present in every %s", v.DroppedUnpaired, opts.Category)
	}
	perUnit, units, err := unitValues(t, opts.Category, o.Name, v.Categories)
	if err != nil {
		return nil, err
	}
	v.Units = len(units)

	ax := NewAxes()
	v.Axes = ax
	if v.Estimates, err = FancyViolins(ax, t, opts); err != nil {
		return nil, err
	}

	for i := range v.Categories {
		for j := i + 1; j < len(v.Categories); j++ {
			c, err := pairedComparison(v.Categories[i], v.Categories[j], perUnit[i], perUnit[j], opts.LogScale)
			if err != nil {
				return nil, err
			}
			Debug.Printf("%s vs. %s: Wilcoxon p = %.3g, median change %.1f%%, change of medians %.1f%%",
				c.A, c.B, c.Wilcoxon.P, c.MedianPercentChange, c.PercentChangeOfMedians)
			v.Comparisons = append(v.Comparisons, c)
		}
	}
	if opts.Areawise && len(v.Comparisons) == 1 {
		c := v.Comparisons[0]
		if c.Wilcoxon.P < 0.05*opts.Bonferroni {
			ax.Text(RoleAnnotation, CoordAxes, 0.5, 1.05,
				fmt.Sprintf("Δ = %.1f %% ; %s", c.PercentChangeOfMedians, sigtest.FormatP(c.Wilcoxon.P)))
		}
	}

	violinLimits(ax, o, opts)
	if opts.LogScale {
		ax.YFormat = func(x float64) string {
			if x != math.Trunc(x) {
				return ""
			}
			return obs.LinToLog10Label(x)
		}
	}
	labels := opts.XLabels
	if labels == nil {
		labels = v.Categories
	}
	for k, l := range labels {
		ax.XTicks = append(ax.XTicks, Tick{float64(k), l})
	}
	if opts.AreaName != "" && o.Name == "tau_double" {
		ax.Text(RoleAnnotation, CoordData, opts.AreaX, 2.5, opts.AreaName)
		ax.Text(RoleAnnotation, CoordData, opts.AreaX, 1.5, fmt.Sprintf("n = %d", v.Units))
	}
	ax.YLabel = o.AxisLabel(opts.ShortLabel)
	return v, nil
}

func violinLimits(ax *Axes, o obs.Observable, opts ViolinOptions) {
	switch {
	case opts.Areawise && !opts.LogScale && o.Name == "R_tot":
		ax.YRange = Range{-0.08, 0.4}
	case opts.Areawise && opts.LogScale && o.Name == "tau_R":
		ax.YRange = Range{-0.5, 3}
	case opts.Areawise && opts.LogScale && o.Name == "tau_double":
		ax.YRange = Range{-0.5, 4}
	case o.Name == "R_tot":
		ax.YRange.Lo = -0.08
	case opts.LogScale && o.Timescale:
		ax.YRange.Lo = -0.5
	}
}

// FancyViolins draws, for the k'th palette category present in t, a
// left half violin at x = k with a bootstrap error stick on its edge
// and a swarm of subsampled points to its right. It returns the
// estimate behind each error stick.
//
// Every violin is scaled to the same maximum half width. The swarm is
// stacked in bins of the y range so the widest bin spans at most the
// same width.
func FancyViolins(ax *Axes, t *obs.Table, opts ViolinOptions) ([]Estimate, error) {
	opts = opts.withDefaults()
	cats, err := keys(t, opts.Category)
	if err != nil {
		return nil, err
	}
	vals, err := t.Floats(opts.Observable)
	if err != nil {
		return nil, err
	}
	pal := opts.Palette.Restrict(uniq(cats))

	rows := make([][]int, len(pal))
	index := make(map[string]int, len(pal))
	for k, e := range pal {
		index[e.Category] = k
	}
	var all []int
	var allVals []float64
	for i, c := range cats {
		if k, ok := index[c]; ok && !math.IsNaN(vals[i]) {
			rows[k] = append(rows[k], i)
			all = append(all, i)
			allVals = append(allVals, vals[i])
		}
	}

	// Pick the swarm rows of every category.
	r := rand.New(rand.NewSource(opts.Seed))
	swarm := make([][]float64, len(pal))
	if opts.PooledSwarm {
		for _, i := range subsample(all, opts.NumSwarmPoints, opts.Replace, r) {
			k := index[cats[i]]
			swarm[k] = append(swarm[k], vals[i])
		}
	} else {
		for k := range pal {
			for _, i := range subsample(rows[k], opts.NumSwarmPoints, opts.Replace, r) {
				swarm[k] = append(swarm[k], vals[i])
			}
		}
	}
	lo, hi := stats.Bounds(allVals)
	maxCount := 1
	for _, ys := range swarm {
		if c := maxBinCount(ys, lo, hi, swarmBins); c > maxCount {
			maxCount = c
		}
	}
	dx := halfWidth / float64(maxCount)

	var ests []Estimate
	for k, e := range pal {
		x := float64(k)
		ys := make([]float64, len(rows[k]))
		for j, i := range rows[k] {
			ys[j] = vals[i]
		}
		est, err := estimate(e.Category, ys, opts.NumBoot)
		if err != nil {
			return nil, err
		}
		Debug.Printf("%s: n = %d, median %.3g, bootstrap %v", e.Category, est.N, est.Median, est.Boot)
		ests = append(ests, est)

		halfViolin(ax, x, ys, e.Color)
		ax.Line(RoleErrorStick, pair(x, x), pair(est.Boot.Lo, est.Boot.Hi), e.Color, 4)
		ax.HollowPoint(RoleMedian, x, est.Boot.Median, e.Color, 0.08)

		sx := swarmXs(swarm[k], lo, hi, swarmBins, dx)
		for j := range sx {
			sx[j] += x + swarmOffset
		}
		ax.Points(RoleSwarm, sx, swarm[k], e.Color, 0.03)
	}
	return ests, nil
}

// halfViolin draws the kernel density of ys as a polygon extending
// left from x, cut at the range of ys and scaled to halfWidth.
func halfViolin(ax *Axes, x float64, ys []float64, c color.RGBA) {
	sample := stats.Sample{Xs: ys}
	lo, hi := sample.Bounds()
	fill := colors.AlphaOnBackground(c, 0.5, white)
	sd := sample.StdDev()
	if len(ys) < 2 || sd == 0 || math.IsNaN(sd) {
		// All values equal: the density is a spike.
		ax.Add(Mark{Kind: KindLine, Role: RoleViolin, X: pair(x-halfWidth, x), Y: pair(lo, lo), Stroke: c, Fill: fill, Width: 1})
		return
	}
	kde := stats.KDE{Sample: sample, Bandwidth: 0.1 * sd}
	grid := vec.Linspace(lo, hi, 100)
	dens := vec.Map(kde.PDF, grid)
	_, peak := stats.Bounds(dens)

	xs := make([]float64, 0, len(grid)+2)
	pys := make([]float64, 0, len(grid)+2)
	for i, y := range grid {
		xs = append(xs, x-halfWidth*dens[i]/peak)
		pys = append(pys, y)
	}
	xs = append(xs, x, x)
	pys = append(pys, hi, lo)
	ax.Add(Mark{Kind: KindPolygon, Role: RoleViolin, X: xs, Y: pys, Stroke: c, Fill: fill, Width: 1})
}

func pairedComparison(a, b string, va, vb []float64, logScale bool) (PairedComparison, error) {
	c := PairedComparison{A: a, B: b, N: len(va)}
	lin := func(x float64) float64 {
		if logScale {
			return math.Pow(10, x)
		}
		return x
	}
	la, lb := vec.Map(lin, va), vec.Map(lin, vb)
	diffs := make([]float64, len(la))
	var pct []float64
	for i := range la {
		diffs[i] = lb[i] - la[i]
		p := diffs[i] / la[i] * 100
		if !math.IsNaN(p) && !math.IsInf(p, 0) {
			pct = append(pct, p)
		}
	}
	var err error
	if c.Wilcoxon, err = sigtest.Wilcoxon(diffs); err != nil {
		return c, fmt.Errorf("comparing %s and %s: %w", a, b, err)
	}
	c.MedianPercentChange = math.NaN()
	if m, err := mstats.Median(pct); err == nil {
		c.MedianPercentChange = m
	}
	ma, errA := mstats.Median(la)
	mb, errB := mstats.Median(lb)
	c.PercentChangeOfMedians = math.NaN()
	if errA == nil && errB == nil {
		c.PercentChangeOfMedians = (mb - ma) / ma * 100
	}
	return c, nil
}

// pairUnits returns the rows of t whose unit occurs in every category
// of cats, and the number of other rows.
func pairUnits(t *obs.Table, catCol string, cats []string) (*obs.Table, int, error) {
	units, err := keys(t, obs.ColUnit)
	if err != nil {
		return nil, 0, err
	}
	rowCats, err := keys(t, catCol)
	if err != nil {
		return nil, 0, err
	}
	want := make(map[string]bool, len(cats))
	for _, c := range cats {
		want[c] = true
	}
	seen := make(map[string]map[string]bool)
	for i, u := range units {
		if !want[rowCats[i]] {
			continue
		}
		if seen[u] == nil {
			seen[u] = make(map[string]bool)
		}
		seen[u][rowCats[i]] = true
	}
	nt := t.Where(func(i int) bool {
		return want[rowCats[i]] && len(seen[units[i]]) == len(cats)
	})
	return nt, t.Len() - nt.Len(), nil
}

// unitValues returns the value of col for every unit in every
// category, aligned by unit, and the units in order of first
// appearance. Each unit must occur exactly once per category.
func unitValues(t *obs.Table, catCol, col string, cats []string) ([][]float64, []string, error) {
	units, err := keys(t, obs.ColUnit)
	if err != nil {
		return nil, nil, err
	}
	rowCats, err := keys(t, catCol)
	if err != nil {
		return nil, nil, err
	}
	vals, err := t.Floats(col)
	if err != nil {
		return nil, nil, err
	}
	index := make(map[string]int, len(cats))
	for k, c := range cats {
		index[c] = k
	}
	counts := make([]int, len(cats))
	byUnit := make([]map[string]float64, len(cats))
	for k := range byUnit {
		byUnit[k] = make(map[string]float64)
	}
	for i, u := range units {
		k := index[rowCats[i]]
		counts[k]++
		if _, dup := byUnit[k][u]; dup {
			return nil, nil, fmt.Errorf("unit %s occurs more than once in %s %s: %w", u, catCol, cats[k], ErrStatisticalPrecondition)
		}
		byUnit[k][u] = vals[i]
	}
	for k := range counts {
		if counts[k] != counts[0] {
			return nil, nil, fmt.Errorf("%d rows in %s %s but %d in %s: %w", counts[k], catCol, cats[k], counts[0], cats[0], ErrStatisticalPrecondition)
		}
	}

	order := uniq(units)
	out := make([][]float64, len(cats))
	for k := range cats {
		out[k] = make([]float64, len(order))
		for j, u := range order {
			out[k][j] = byUnit[k][u]
		}
	}
	return out, order, nil
}

// keys returns column col of t as strings. Numeric columns are
// formatted.
func keys(t *obs.Table, col string) ([]string, error) {
	if !t.Has(col) {
		return t.Strings(col)
	}
	if s, err := t.Strings(col); err == nil {
		return s, nil
	}
	fs, err := t.Floats(col)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return out, nil
}

// uniq returns the distinct elements of xs in order of first
// appearance.
func uniq(xs []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, x := range xs {
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	return out
}
