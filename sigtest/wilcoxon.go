// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sigtest

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// MaxExactWilcoxon is the largest number of nonzero differences for
// which Wilcoxon computes the exact null distribution. Larger samples,
// samples with tied magnitudes, and samples that had zero differences
// use the normal approximation.
const MaxExactWilcoxon = 50

// Wilcoxon performs a two-sided Wilcoxon signed-rank test of whether
// the paired differences diffs are symmetric about zero.
//
// Zero and missing differences are discarded. If no differences
// remain, the pairs are identical and P is 1.
func Wilcoxon(diffs []float64) (Result, error) {
	var d []float64
	zeros := false
	for _, x := range diffs {
		switch {
		case x == 0:
			zeros = true
		case !math.IsNaN(x):
			d = append(d, x)
		}
	}
	n := len(d)
	if n == 0 {
		return Result{P: 1}, nil
	}

	abs := make([]float64, n)
	for i, x := range d {
		abs[i] = math.Abs(x)
	}
	ranks, ties := rank(abs)
	var wPlus, wMinus float64
	for i, x := range d {
		if x > 0 {
			wPlus += ranks[i]
		} else {
			wMinus += ranks[i]
		}
	}
	t := math.Min(wPlus, wMinus)
	res := Result{N1: n, Statistic: t}

	if n <= MaxExactWilcoxon && len(ties) == 0 && !zeros {
		res.P = math.Min(1, 2*signedRankCDF(n, int(t)))
		return res, nil
	}

	fn := float64(n)
	mean := fn * (fn + 1) / 4
	variance := fn * (fn + 1) * (2*fn + 1) / 24
	for _, c := range ties {
		tc := float64(c)
		variance -= (tc*tc*tc - tc) / 48
	}
	if variance <= 0 {
		return Result{}, fmt.Errorf("Wilcoxon test of %d differences has zero variance: %w", n, ErrSampleSize)
	}
	z := (t - mean) / math.Sqrt(variance)
	res.P = math.Min(1, 2*distuv.UnitNormal.CDF(-math.Abs(z)))
	return res, nil
}

// signedRankCDF returns P(W <= t) for the signed-rank statistic W of n
// untied nonzero differences under the null hypothesis.
func signedRankCDF(n, t int) float64 {
	if t < 0 {
		return 0
	}
	max := n * (n + 1) / 2
	if t >= max {
		return 1
	}
	// counts[s] is the number of subsets of {1..k} summing to s.
	counts := make([]float64, max+1)
	counts[0] = 1
	for k := 1; k <= n; k++ {
		for s := max; s >= k; s-- {
			counts[s] += counts[s-k]
		}
	}
	var le float64
	for s := 0; s <= t; s++ {
		le += counts[s]
	}
	return le / math.Exp2(float64(n))
}
