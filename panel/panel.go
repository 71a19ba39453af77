// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package panel draws the figure panels of the timescale hierarchy
// study.
//
// Each panel takes an observation table, computes its statistics, and
// records the resulting primitives in an Axes, which can be rendered
// to SVG with go-gg. Panels return their statistics alongside the
// Axes so callers can report them.
//
// Rows dropped for missing or implausible values are counted in the
// panel results and logged to Info; they are never errors. Degenerate
// input, such as a structure with no usable rows, fails with an error
// wrapping ErrInvalidInput.
package panel

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/hierlab/hierfig/bootstrap"
	"github.com/hierlab/hierfig/colors"
	"github.com/hierlab/hierfig/internal/errs"
	"github.com/hierlab/hierfig/obs"
)

var (
	// ErrInvalidInput is returned (wrapped) for degenerate input.
	ErrInvalidInput = errs.ErrInvalidInput

	// ErrLookup is returned (wrapped) for an unknown observable,
	// structure, or group.
	ErrLookup = errs.ErrLookup

	// ErrStatisticalPrecondition is returned (wrapped) when a
	// paired comparison cannot pair every unit.
	ErrStatisticalPrecondition = errors.New("statistical precondition not met")
)

// Info reports dropped rows and per-panel summaries.
var Info = log.New(os.Stderr, "[panel] ", 0)

// Debug reports per-group detail. It is discarded unless redirected.
var Debug = log.New(io.Discard, "[panel] ", 0)

var (
	white = colors.White
	black = colors.Black
	red   = colors.MustHex("#ff0000")

	// gray50 is black at half opacity on white.
	gray50 = colors.AlphaOnBackground(black, 0.5, white)
)

// An Estimate is the sample median of one group of rows and the
// bootstrap interval of that median.
type Estimate struct {
	Name string

	// N is the number of non-missing values.
	N int

	// Median is the sample median.
	Median float64

	// Boot is the bootstrap median and its 95% interval.
	Boot bootstrap.Interval
}

func estimate(name string, xs []float64, numBoot int) (Estimate, error) {
	iv, err := bootstrap.Estimate(xs, bootstrap.Options{NumBoot: numBoot}, 0)
	if err != nil {
		return Estimate{}, fmt.Errorf("estimating %s: %w", name, err)
	}
	n := 0
	for _, x := range xs {
		if !math.IsNaN(x) {
			n++
		}
	}
	return Estimate{Name: name, N: n, Median: bootstrap.Median(xs), Boot: iv}, nil
}

// dropImplausible applies the timescale plausibility filter if o is a
// timescale.
func dropImplausible(t *obs.Table, o obs.Observable) (*obs.Table, int, error) {
	if !o.Timescale {
		return t, 0, nil
	}
	return obs.DropImplausible(t, o.Name)
}

// toMilliseconds returns t with the timescale column of o converted
// from seconds to milliseconds.
func toMilliseconds(t *obs.Table, o obs.Observable) (*obs.Table, error) {
	if !o.Timescale {
		return t, nil
	}
	vals, err := t.Floats(o.Name)
	if err != nil {
		return nil, err
	}
	ms := make([]float64, len(vals))
	for i, v := range vals {
		ms[i] = v * 1000
	}
	return t.With(o.Name, ms), nil
}

// logConditions logs the stimuli and blocks present in t.
func logConditions(what string, t *obs.Table) {
	stimuli, _ := t.Unique(obs.ColStimulus)
	blocks, _ := t.Unique(obs.ColBlock)
	Info.Printf("%s for %v %v with %d rows", what, stimuli, blocks, t.Len())
}

func pair(a, b float64) []float64 {
	return []float64{a, b}
}
