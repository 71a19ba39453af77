// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/aclements/go-gg/table"

	"github.com/hierlab/hierfig/obs"
)

const (
	movie = "merged_3.0_and_8.0"
	null  = "null"
)

// pairedTable returns a table of the observable col for units measured
// under the movie and null stimuli.
func pairedTable(col string, units []string, movieVals, nullVals []float64) *obs.Table {
	var us, stims []string
	var vals []float64
	for i, u := range units {
		us = append(us, u)
		stims = append(stims, movie)
		vals = append(vals, movieVals[i])
	}
	for i, u := range units {
		us = append(us, u)
		stims = append(stims, null)
		vals = append(vals, nullVals[i])
	}
	return obs.New(new(table.Builder).
		Add(obs.ColUnit, us).
		Add(obs.ColStimulus, stims).
		Add(col, vals).
		Done())
}

func unitNames(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("u%d", i)
	}
	return out
}

func randomValues(n int, seed int64) []float64 {
	r := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.05 + 0.1*r.Float64()
	}
	return out
}

func TestViolinsIdentical(t *testing.T) {
	vals := randomValues(30, 1)
	tab := pairedTable("R_tot", unitNames(30), vals, vals)
	v, err := StimulusViolins(tab, ViolinOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(v.Categories, []string{movie, null}) {
		t.Errorf("got categories %v", v.Categories)
	}
	if len(v.Comparisons) != 1 {
		t.Fatalf("got %d comparisons, want 1", len(v.Comparisons))
	}
	c := v.Comparisons[0]
	if c.Wilcoxon.P != 1 {
		t.Errorf("got p=%g, want 1", c.Wilcoxon.P)
	}
	if c.MedianPercentChange != 0 || c.PercentChangeOfMedians != 0 {
		t.Errorf("got percent changes %g and %g, want 0", c.MedianPercentChange, c.PercentChangeOfMedians)
	}
	if c.N != 30 || v.Units != 30 {
		t.Errorf("got N=%d units=%d, want 30", c.N, v.Units)
	}
	if got := v.Axes.Count(RoleViolin); got != 2 {
		t.Errorf("got %d violins, want 2", got)
	}
	if got := v.Axes.Count(RoleErrorStick); got != 2 {
		t.Errorf("got %d error sticks, want 2", got)
	}
	if v.Axes.YRange.Lo != -0.08 {
		t.Errorf("got y lower limit %g, want -0.08", v.Axes.YRange.Lo)
	}
}

func TestViolinsLogScale(t *testing.T) {
	units := unitNames(10)
	movieVals := []float64{0.1, 0.2, 0, 0.3, 0.15, 0.25, 0.12, 0.18, 0.22, 0.3}
	nullVals := []float64{0.11, 0.19, 0.21, 0.3, -0.1, 0.24, 0.13, 0.17, 0.2, 0.31}
	v, err := StimulusViolins(pairedTable("tau_double", units, movieVals, nullVals),
		ViolinOptions{Observable: "tau_double", LogScale: true})
	if err != nil {
		t.Fatal(err)
	}
	if v.DroppedLog != 2 {
		t.Errorf("got %d rows dropped for log scale, want 2", v.DroppedLog)
	}
	// The partners of the dropped rows are no longer paired.
	if v.DroppedUnpaired != 2 {
		t.Errorf("got %d unpaired rows, want 2", v.DroppedUnpaired)
	}
	if v.Units != 8 {
		t.Errorf("got %d paired units, want 8", v.Units)
	}
	for _, e := range v.Estimates {
		// 100 to 300 ms on a log scale.
		if e.Median < 2 || e.Median > 2.5 {
			t.Errorf("%s: got median %g, want log10 of milliseconds", e.Name, e.Median)
		}
	}
	if v.Axes.YRange.Lo != -0.5 {
		t.Errorf("got y lower limit %g, want -0.5", v.Axes.YRange.Lo)
	}
	if got := v.Axes.YFormat(2); got != "100" {
		t.Errorf("tick 2 labeled %q, want 100", got)
	}
	if got := v.Axes.YFormat(2.5); got != "" {
		t.Errorf("tick 2.5 labeled %q, want blank", got)
	}
}

func TestViolinsUnpaired(t *testing.T) {
	tab := pairedTable("R_tot", unitNames(5), randomValues(5, 2), randomValues(5, 3))
	extra := obs.New(new(table.Builder).
		Add(obs.ColUnit, []string{"u9"}).
		Add(obs.ColStimulus, []string{null}).
		Add("R_tot", []float64{0.1}).
		Done())
	tab = concat(tab, extra)
	v, err := StimulusViolins(tab, ViolinOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if v.DroppedUnpaired != 1 {
		t.Errorf("got %d unpaired rows, want 1", v.DroppedUnpaired)
	}
	if v.Units != 5 {
		t.Errorf("got %d units, want 5", v.Units)
	}
}

func TestViolinsErrors(t *testing.T) {
	dup := concat(pairedTable("R_tot", unitNames(5), randomValues(5, 4), randomValues(5, 5)),
		obs.New(new(table.Builder).
			Add(obs.ColUnit, []string{"u0"}).
			Add(obs.ColStimulus, []string{null}).
			Add("R_tot", []float64{0.1}).
			Done()))
	ok := pairedTable("R_tot", unitNames(5), randomValues(5, 6), randomValues(5, 7))
	other := obs.New(new(table.Builder).
		Add(obs.ColUnit, []string{"u0"}).
		Add(obs.ColStimulus, []string{"drifting_gratings"}).
		Add("R_tot", []float64{0.1}).
		Done())

	for _, test := range []struct {
		name string
		tab  *obs.Table
		opts ViolinOptions
		want error
	}{
		{"duplicate unit", dup, ViolinOptions{}, ErrStatisticalPrecondition},
		{"too many labels", ok, ViolinOptions{XLabels: []string{"a", "b", "c"}}, ErrInvalidInput},
		{"no palette category", other, ViolinOptions{}, ErrInvalidInput},
		{"unknown observable", ok, ViolinOptions{Observable: "tau"}, ErrLookup},
	} {
		if _, err := StimulusViolins(test.tab, test.opts); !errors.Is(err, test.want) {
			t.Errorf("%s: got %v, want %v", test.name, err, test.want)
		}
	}
}

func TestViolinsAreawise(t *testing.T) {
	// Half the units double from 0.05, the other half grow by 10%
	// from 0.15. The median of the per-unit changes is 55%, but the
	// medians themselves move from 0.1 to 0.1325.
	n := 20
	base := make([]float64, n)
	scaled := make([]float64, n)
	for i := range base {
		if i < n/2 {
			base[i], scaled[i] = 0.05, 0.1
		} else {
			base[i], scaled[i] = 0.15, 0.165
		}
	}
	v, err := StimulusViolins(pairedTable("R_tot", unitNames(n), base, scaled),
		ViolinOptions{Areawise: true, XLabels: []string{"movie", "spont."}})
	if err != nil {
		t.Fatal(err)
	}
	c := v.Comparisons[0]
	if math.Abs(c.PercentChangeOfMedians-32.5) > 1e-6 {
		t.Errorf("got change of medians %g, want 32.5", c.PercentChangeOfMedians)
	}
	if math.Abs(c.MedianPercentChange-55) > 1e-6 {
		t.Errorf("got median change %g, want 55", c.MedianPercentChange)
	}
	texts := v.Axes.Texts(RoleAnnotation)
	if len(texts) != 1 || !strings.HasPrefix(texts[0], "Δ = 32.5 %") {
		t.Errorf("got annotations %q, want Δ = 32.5 %%", texts)
	}
	if v.Axes.YRange != (Range{-0.08, 0.4}) {
		t.Errorf("got y range %v", v.Axes.YRange)
	}
	if v.Axes.XTicks[1].Label != "spont." {
		t.Errorf("got x ticks %v", v.Axes.XTicks)
	}

	// A strict enough threshold hides the annotation.
	v, err = StimulusViolins(pairedTable("R_tot", unitNames(n), base, scaled),
		ViolinOptions{Areawise: true, Bonferroni: 1e-9})
	if err != nil {
		t.Fatal(err)
	}
	if texts := v.Axes.Texts(RoleAnnotation); len(texts) != 0 {
		t.Errorf("got annotations %q, want none", texts)
	}
}

func TestFancyViolinsSwarm(t *testing.T) {
	n := 600
	tab := pairedTable("R_tot", unitNames(n), randomValues(n, 9), randomValues(n, 10))
	for _, pooled := range []bool{false, true} {
		ax := NewAxes()
		ests, err := FancyViolins(ax, tab, ViolinOptions{PooledSwarm: pooled})
		if err != nil {
			t.Fatal(err)
		}
		if len(ests) != 2 {
			t.Fatalf("got %d estimates, want 2", len(ests))
		}
		total := 0
		for k, m := range ax.Find(RoleSwarm) {
			x0 := float64(k) + swarmOffset
			for _, x := range m.X {
				if x < x0 || x >= x0+halfWidth {
					t.Errorf("pooled=%v: swarm point at %g outside [%g, %g)", pooled, x, x0, x0+halfWidth)
				}
			}
			if !pooled && len(m.X) != 400 {
				t.Errorf("got %d swarm points, want 400", len(m.X))
			}
			total += len(m.X)
		}
		if total != 800 && !pooled {
			t.Errorf("got %d swarm points, want 800", total)
		}
		if pooled && total != 400 {
			t.Errorf("pooled: got %d swarm points, want 400", total)
		}
		for _, m := range ax.Find(RoleViolin) {
			for _, x := range m.X {
				if x < -halfWidth-1e-9 || x > 1 {
					t.Errorf("violin point at %g", x)
				}
			}
		}
	}

	// Subsampling is seeded.
	a, b := NewAxes(), NewAxes()
	FancyViolins(a, tab, ViolinOptions{})
	FancyViolins(b, tab, ViolinOptions{})
	if !reflect.DeepEqual(a.Find(RoleSwarm), b.Find(RoleSwarm)) {
		t.Error("swarms differ between runs with the same seed")
	}
}

func TestSubsample(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	rows := []int{3, 5, 7, 9}
	if got := subsample(rows, 10, false, r); !reflect.DeepEqual(got, rows) {
		t.Errorf("got %v, want all rows", got)
	}
	got := subsample(rows, 2, false, r)
	if len(got) != 2 || got[0] >= got[1] {
		t.Errorf("got %v, want 2 rows in order", got)
	}
	if got := subsample(rows, 10, true, r); len(got) != 10 {
		t.Errorf("got %d rows with replacement, want 10", len(got))
	}
	if got := subsample(nil, 10, true, r); got != nil {
		t.Errorf("got %v from no rows", got)
	}
}

func TestSwarmXs(t *testing.T) {
	ys := []float64{0, 0.01, 0.02, 0.5, 1}
	if got := maxBinCount(ys, 0, 1, swarmBins); got != 3 {
		t.Errorf("got max bin count %d, want 3", got)
	}
	got := swarmXs(ys, 0, 1, swarmBins, 0.1)
	want := []float64{0, 0.1, 0.2, 0, 0}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
	if b := swarmBin(2, 0, 1, swarmBins); b != swarmBins-1 {
		t.Errorf("value above the range in bin %d", b)
	}
	if b := swarmBin(5, 5, 5, swarmBins); b != 0 {
		t.Errorf("value of an empty range in bin %d", b)
	}
}

// concat appends the rows of b to a. Both must have the same columns.
func concat(a, b *obs.Table) *obs.Table {
	bld := new(table.Builder)
	for _, col := range a.Raw().Columns() {
		if s, err := a.Strings(col); err == nil {
			s2, _ := b.Strings(col)
			bld.Add(col, append(append([]string(nil), s...), s2...))
			continue
		}
		f, _ := a.Floats(col)
		f2, _ := b.Floats(col)
		bld.Add(col, append(append([]float64(nil), f...), f2...))
	}
	return obs.New(bld.Done())
}
