// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sigtest implements the significance tests and correlation
// statistics reported on the figure panels.
package sigtest

import (
	"errors"
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"

	"github.com/hierlab/hierfig/internal/errs"
)

// ErrSampleSize is returned (wrapped) when a sample is too small for
// the requested statistic. It matches ErrInvalidInput with errors.Is.
var ErrSampleSize = fmt.Errorf("sample is too small: %w", ErrInvalidInput)

// ErrInvalidInput is returned (wrapped) for degenerate input.
var ErrInvalidInput = errs.ErrInvalidInput

// A Result is the outcome of a two-sided test.
type Result struct {
	// N1 and N2 are the sample sizes the test was computed on,
	// after dropping missing values. For one-sample tests N2 is 0.
	N1, N2 int

	// Statistic is the test statistic (U for Mann-Whitney, the
	// smaller signed rank sum for Wilcoxon).
	Statistic float64

	// P is the two-sided p-value.
	P float64
}

// MannWhitney performs a two-sided Mann-Whitney U test of whether xs
// and ys have different locations. Missing values are ignored. If
// every value in both samples is identical the samples are
// indistinguishable and P is 1.
func MannWhitney(xs, ys []float64) (Result, error) {
	xs, ys = dropNaN(xs), dropNaN(ys)
	if len(xs) == 0 || len(ys) == 0 {
		return Result{}, fmt.Errorf("Mann-Whitney U test of %d and %d values: %w", len(xs), len(ys), ErrSampleSize)
	}
	res, err := stats.MannWhitneyUTest(xs, ys, stats.LocationDiffers)
	if errors.Is(err, stats.ErrSamplesEqual) {
		return Result{N1: len(xs), N2: len(ys), Statistic: float64(len(xs)*len(ys)) / 2, P: 1}, nil
	} else if err != nil {
		return Result{}, fmt.Errorf("Mann-Whitney U test: %w", err)
	}
	return Result{N1: res.N1, N2: res.N2, Statistic: res.U, P: res.P}, nil
}

// Stars returns the significance marker of p: "***" below 0.001, "**"
// below 0.01, "*" below 0.05 and "ns." otherwise.
func Stars(p float64) string {
	switch {
	case p < 0.001:
		return "***"
	case p < 0.01:
		return "**"
	case p < 0.05:
		return "*"
	}
	return "ns."
}

func dropNaN(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}
