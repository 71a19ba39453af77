// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sigtest

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// A Correlation is a correlation coefficient and its two-sided
// p-value under the null hypothesis of no correlation.
type Correlation struct {
	R, P float64
}

func (c Correlation) String() string {
	return fmt.Sprintf("r=%.3f p=%.3g", c.R, c.P)
}

// Pearson returns the Pearson correlation of xs and ys. The p-value
// uses the Student's t distribution with n-2 degrees of freedom.
func Pearson(xs, ys []float64) (Correlation, error) {
	if err := checkPaired(xs, ys); err != nil {
		return Correlation{}, err
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return Correlation{}, fmt.Errorf("correlation of a constant sample: %w", ErrSampleSize)
	}
	return Correlation{R: r, P: correlationP(r, len(xs))}, nil
}

// Spearman returns the Spearman rank correlation of xs and ys. Tied
// values receive their average rank.
func Spearman(xs, ys []float64) (Correlation, error) {
	if err := checkPaired(xs, ys); err != nil {
		return Correlation{}, err
	}
	rx, _ := rank(xs)
	ry, _ := rank(ys)
	return Pearson(rx, ry)
}

func checkPaired(xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("correlating %d values with %d values: %w", len(xs), len(ys), ErrSampleSize)
	}
	if len(xs) < 3 {
		return fmt.Errorf("correlation of %d pairs: %w", len(xs), ErrSampleSize)
	}
	return nil
}

func correlationP(r float64, n int) float64 {
	if math.Abs(r) >= 1 {
		return 0
	}
	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.CDF(-math.Abs(t))
}

// A Line is a least-squares fit y = Intercept + Slope*x.
type Line struct {
	Intercept, Slope float64
}

// At evaluates l at x.
func (l Line) At(x float64) float64 {
	return l.Intercept + l.Slope*x
}

// LinearFit returns the ordinary least-squares line through (xs, ys).
func LinearFit(xs, ys []float64) (Line, error) {
	if len(xs) != len(ys) || len(xs) < 2 {
		return Line{}, fmt.Errorf("fitting a line to %d/%d values: %w", len(xs), len(ys), ErrSampleSize)
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(beta) {
		return Line{}, fmt.Errorf("fitting a line over a constant x: %w", ErrSampleSize)
	}
	return Line{Intercept: alpha, Slope: beta}, nil
}

// rank returns the 1-based ranks of xs, giving tied values the average
// of the ranks they span, and the sizes of each group of ties.
func rank(xs []float64) (ranks []float64, ties []int) {
	n := len(xs)
	sorted := append([]float64(nil), xs...)
	idx := make([]int, n)
	floats.Argsort(sorted, idx)
	ranks = make([]float64, n)
	for i := 0; i < n; {
		j := i + 1
		for j < n && sorted[j] == sorted[i] {
			j++
		}
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}
		if j-i > 1 {
			ties = append(ties, j-i)
		}
		i = j
	}
	return ranks, ties
}
