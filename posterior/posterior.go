// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package posterior holds posterior draws produced by an external
// sampler and summarizes them with highest-density intervals and
// point estimates.
package posterior

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	mstats "github.com/montanaflynn/stats"

	"github.com/hierlab/hierfig/internal/errs"
)

var (
	// ErrLookup is returned (wrapped) for an unknown variable,
	// coordinate, or point estimate.
	ErrLookup = errs.ErrLookup

	// ErrInvalidInput is returned (wrapped) for too few draws or an
	// out of range probability.
	ErrInvalidInput = errs.ErrInvalidInput
)

// NoCoord is the coordinate of a variable that has no coordinate
// dimension.
const NoCoord = -1

// Samples holds posterior draws keyed by variable name and coordinate
// (for example, session index). Samples is read-only once built.
type Samples struct {
	draws map[string]map[int][]float64
}

// New returns an empty sample set.
func New() *Samples {
	return &Samples{draws: make(map[string]map[int][]float64)}
}

// Add appends draws for variable name at coordinate coord.
func (s *Samples) Add(name string, coord int, draws ...float64) {
	m := s.draws[name]
	if m == nil {
		m = make(map[int][]float64)
		s.draws[name] = m
	}
	m[coord] = append(m[coord], draws...)
}

// Vars returns the variable names in s, sorted.
func (s *Samples) Vars() []string {
	var names []string
	for name := range s.draws {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Coords returns the coordinates of variable name, sorted.
func (s *Samples) Coords(name string) ([]int, error) {
	m, ok := s.draws[name]
	if !ok {
		return nil, fmt.Errorf("posterior variable %q: %w", name, ErrLookup)
	}
	coords := make([]int, 0, len(m))
	for c := range m {
		coords = append(coords, c)
	}
	sort.Ints(coords)
	return coords, nil
}

// A Slice is the draws of one variable at one coordinate.
type Slice struct {
	Var   string
	Coord int
	Draws []float64
}

// Select returns the slices of variable name at coords, in the given
// order. With no coords, every coordinate is selected.
func (s *Samples) Select(name string, coords ...int) ([]Slice, error) {
	if len(coords) == 0 {
		var err error
		if coords, err = s.Coords(name); err != nil {
			return nil, err
		}
	}
	m := s.draws[name]
	out := make([]Slice, 0, len(coords))
	for _, c := range coords {
		d, ok := m[c]
		if !ok {
			return nil, fmt.Errorf("posterior variable %q has no coordinate %d: %w", name, c, ErrLookup)
		}
		out = append(out, Slice{name, c, d})
	}
	return out, nil
}

// HDI returns the narrowest interval containing the fraction prob of
// values.
func HDI(values []float64, prob float64) (lo, hi float64, err error) {
	if prob <= 0 || prob >= 1 {
		return 0, 0, fmt.Errorf("HDI probability %g: %w", prob, ErrInvalidInput)
	}
	s := stats.Sample{Xs: dropNaN(values)}
	n := len(s.Xs)
	inc := int(math.Floor(prob * float64(n)))
	if inc < 1 || inc >= n {
		return 0, 0, fmt.Errorf("HDI of %d draws: %w", n, ErrInvalidInput)
	}
	s.Sort()
	best := 0
	for i := 1; i+inc < n; i++ {
		if s.Xs[i+inc]-s.Xs[i] < s.Xs[best+inc]-s.Xs[best] {
			best = i
		}
	}
	return s.Xs[best], s.Xs[best+inc], nil
}

// Point estimate kinds.
const (
	Median = "median"
	Mean   = "mean"
	Mode   = "mode"
)

// PointEstimate returns the median, mean or mode of values. The mode
// is the maximum of a Gaussian KDE with bandwidth bw times the sample
// standard deviation.
func PointEstimate(values []float64, kind string, bw float64) (float64, error) {
	xs := dropNaN(values)
	if len(xs) == 0 {
		return 0, fmt.Errorf("point estimate of no draws: %w", ErrInvalidInput)
	}
	switch kind {
	case Median, "":
		return mstats.Median(xs)
	case Mean:
		return mstats.Mean(xs)
	case Mode:
		kde := Density(xs, bw)
		lo, hi := stats.Bounds(xs)
		if lo == hi {
			return lo, nil
		}
		grid := vec.Linspace(lo, hi, 512)
		best, bestY := grid[0], math.Inf(-1)
		for _, x := range grid {
			if y := kde.PDF(x); y > bestY {
				best, bestY = x, y
			}
		}
		return best, nil
	}
	return 0, fmt.Errorf("point estimate %q: %w", kind, ErrLookup)
}

// Density returns a Gaussian KDE of xs with bandwidth bw times the
// sample standard deviation. If that is zero, Scott's rule is used.
func Density(xs []float64, bw float64) *stats.KDE {
	s := stats.Sample{Xs: xs}
	width := bw * s.StdDev()
	if !(width > 0) {
		width = stats.BandwidthScott(s)
	}
	if !(width > 0) {
		width = 1e-9
	}
	return &stats.KDE{Sample: s, Bandwidth: width}
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
