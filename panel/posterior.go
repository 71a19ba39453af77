// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"fmt"
	"image/color"
	"math"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"

	"github.com/hierlab/hierfig/colors"
	"github.com/hierlab/hierfig/posterior"
)

// PosteriorOptions configures Posterior. Zero fields take the
// documented defaults.
type PosteriorOptions struct {
	// Coords selects the slices to draw. If empty, every
	// coordinate of the variable is drawn.
	Coords []int

	// HDIProb is the mass of the highest density interval.
	// Default 0.95.
	HDIProb float64

	// PointEstimate is posterior.Median, posterior.Mean or
	// posterior.Mode. Default posterior.Median.
	PointEstimate string

	// Bandwidth is the density bandwidth as a fraction of the
	// sample standard deviation. Default 0.05.
	Bandwidth float64
}

// A PosteriorSlice summarizes the draws of one coordinate.
type PosteriorSlice struct {
	Coord int
	N     int

	// Lo and Hi bound the highest density interval.
	Lo, Hi float64

	Point float64
}

// PosteriorPanel is the result of Posterior.
type PosteriorPanel struct {
	Axes   *Axes
	Slices []PosteriorSlice
}

// densityN is the number of points each density curve is sampled at.
const densityN = 200

// Posterior draws the density of the posterior draws of variable name
// for each selected coordinate, with its highest density interval as
// a bar near the baseline and its point estimate as a dot on the bar.
//
// With more than one slice, each slice is colored by its coordinate
// from the session palette. A single slice is black.
func Posterior(s *posterior.Samples, name string, opts PosteriorOptions) (*PosteriorPanel, error) {
	if opts.HDIProb == 0 {
		opts.HDIProb = 0.95
	}
	if opts.PointEstimate == "" {
		opts.PointEstimate = posterior.Median
	}
	if opts.Bandwidth == 0 {
		opts.Bandwidth = 0.05
	}
	slices, err := s.Select(name, opts.Coords...)
	if err != nil {
		return nil, err
	}

	ax := NewAxes()
	pp := &PosteriorPanel{Axes: ax}
	type curve struct {
		xs, ys []float64
		c      color.RGBA
	}
	var curves []curve
	peak := 0.0
	for _, sl := range slices {
		ps := PosteriorSlice{Coord: sl.Coord, N: len(sl.Draws)}
		if ps.Lo, ps.Hi, err = posterior.HDI(sl.Draws, opts.HDIProb); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", name, sl.Coord, err)
		}
		if ps.Point, err = posterior.PointEstimate(sl.Draws, opts.PointEstimate, opts.Bandwidth); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", name, sl.Coord, err)
		}
		Debug.Printf("%s[%d]: %d draws, HDI [%.3g, %.3g], %s %.3g", name, sl.Coord, ps.N, ps.Lo, ps.Hi, opts.PointEstimate, ps.Point)
		pp.Slices = append(pp.Slices, ps)

		xs, ys := densityCurve(sl.Draws, opts.Bandwidth)
		c := black
		if len(slices) > 1 {
			c = colors.Session(sl.Coord)
		}
		curves = append(curves, curve{xs, ys, c})
		for _, y := range ys {
			peak = math.Max(peak, y)
		}
	}

	barY := 0.02 * peak
	for i, cv := range curves {
		ax.Line(RoleDensity, cv.xs, cv.ys, cv.c, 1.5)
		ps := pp.Slices[i]
		ax.Line(RoleHDI, pair(ps.Lo, ps.Hi), pair(barY, barY), black, 3)
		ax.Points(RolePointEstimate, []float64{ps.Point}, []float64{barY}, red, 0.05)
	}

	ax.YRange.Lo = 0
	ax.YFormat = func(float64) string { return "" }
	ax.XLabel = name
	return pp, nil
}

// densityCurve samples the Gaussian KDE of draws over their range.
func densityCurve(draws []float64, bw float64) (xs, ys []float64) {
	var finite []float64
	for _, d := range draws {
		if !math.IsNaN(d) {
			finite = append(finite, d)
		}
	}
	kde := posterior.Density(finite, bw)
	t := new(table.Builder).Add("x", kde.Sample.Xs).Done()
	g := ggstat.Density{X: "x", N: densityN, Domain: ggstat.DomainData{}, Bandwidth: kde.Bandwidth}.F(t)
	out := g.Table(g.Tables()[0])
	return out.MustColumn("x").([]float64), out.MustColumn("probability density").([]float64)
}
