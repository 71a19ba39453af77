// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bootstrap estimates the sampling distribution of a summary
// statistic by resampling with replacement.
//
// Resampling is deterministic: resample i draws from a source seeded
// with Options.Seed+i, so the same input and options always give the
// same estimates.
package bootstrap

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/aclements/go-moremath/stats"

	"github.com/hierlab/hierfig/internal/errs"
	"github.com/hierlab/hierfig/obs"
)

// ErrInvalidInput is returned (wrapped) for degenerate input, such as
// an empty sample after missing values have been removed.
var ErrInvalidInput = errs.ErrInvalidInput

// Defaults for zero Options fields.
const (
	DefaultNumBoot       = 1000
	DefaultMaxSampleSize = 10000
	DefaultSeed          = 42
	DefaultLevel         = 0.95
)

// Options controls Resample. The zero value uses the defaults.
type Options struct {
	// NumBoot is the number of resamples. If 0, DefaultNumBoot
	// is used.
	NumBoot int

	// SampleSize is the size of each resample. If 0, it is the
	// number of input values (including missing ones), capped at
	// DefaultMaxSampleSize.
	SampleSize int

	// Reduce computes the statistic of one resample. If nil,
	// Median is used.
	Reduce func(xs []float64) float64

	// Seed is the base seed. If 0, DefaultSeed is used.
	Seed int64
}

// Resample drops the NaN values of xs and returns opts.NumBoot
// estimates of opts.Reduce, each over a resample of the remaining
// values drawn with replacement.
func Resample(xs []float64, opts Options) ([]float64, error) {
	if opts.NumBoot == 0 {
		opts.NumBoot = DefaultNumBoot
	}
	if opts.NumBoot < 0 {
		return nil, fmt.Errorf("%d bootstrap iterations: %w", opts.NumBoot, ErrInvalidInput)
	}
	if opts.SampleSize < 0 {
		return nil, fmt.Errorf("resample size %d: %w", opts.SampleSize, ErrInvalidInput)
	}
	if opts.SampleSize == 0 {
		opts.SampleSize = len(xs)
		if opts.SampleSize > DefaultMaxSampleSize {
			opts.SampleSize = DefaultMaxSampleSize
		}
	}
	if opts.Reduce == nil {
		opts.Reduce = Median
	}
	if opts.Seed == 0 {
		opts.Seed = DefaultSeed
	}

	data := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			data = append(data, x)
		}
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("resampling %d values, none of them present: %w", len(xs), ErrInvalidInput)
	}

	out := make([]float64, opts.NumBoot)
	sample := make([]float64, opts.SampleSize)
	for i := range out {
		rng := rand.New(rand.NewSource(opts.Seed + int64(i)))
		for j := range sample {
			sample[j] = data[rng.Intn(len(data))]
		}
		out[i] = opts.Reduce(sample)
	}
	return out, nil
}

// Column resamples column col of t.
func Column(t *obs.Table, col string, opts Options) ([]float64, error) {
	xs, err := t.Floats(col)
	if err != nil {
		return nil, err
	}
	return Resample(xs, opts)
}

// Median returns the median of the non-NaN values of xs, or NaN if
// there are none.
func Median(xs []float64) float64 {
	s := stats.Sample{Xs: make([]float64, 0, len(xs))}
	for _, x := range xs {
		if !math.IsNaN(x) {
			s.Xs = append(s.Xs, x)
		}
	}
	if len(s.Xs) == 0 {
		return math.NaN()
	}
	return s.Sort().Quantile(0.5)
}
