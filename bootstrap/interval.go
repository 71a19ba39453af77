// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bootstrap

import (
	"fmt"

	"github.com/aclements/go-moremath/stats"
)

// An Interval is a point estimate with a two-sided quantile interval.
type Interval struct {
	Median float64
	Lo, Hi float64

	// N is the number of estimates the interval was computed from.
	N int
}

func (iv Interval) String() string {
	return fmt.Sprintf("%.4g [%.4g, %.4g]", iv.Median, iv.Lo, iv.Hi)
}

// Summarize returns the median of estimates and the symmetric
// quantile interval covering level of them (0.95 gives the 2.5th and
// 97.5th percentiles). A level of 0 means DefaultLevel.
func Summarize(estimates []float64, level float64) (Interval, error) {
	if len(estimates) == 0 {
		return Interval{}, fmt.Errorf("summarizing no estimates: %w", ErrInvalidInput)
	}
	if level == 0 {
		level = DefaultLevel
	}
	if level < 0 || level >= 1 {
		return Interval{}, fmt.Errorf("interval level %g: %w", level, ErrInvalidInput)
	}
	s := stats.Sample{Xs: append([]float64(nil), estimates...)}
	s.Sort()
	tail := (1 - level) / 2
	return Interval{
		Median: s.Quantile(0.5),
		Lo:     s.Quantile(tail),
		Hi:     s.Quantile(1 - tail),
		N:      len(estimates),
	}, nil
}

// Estimate resamples xs and summarizes the estimates at level.
func Estimate(xs []float64, opts Options, level float64) (Interval, error) {
	est, err := Resample(xs, opts)
	if err != nil {
		return Interval{}, err
	}
	return Summarize(est, level)
}
