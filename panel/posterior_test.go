// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/hierlab/hierfig/colors"
	"github.com/hierlab/hierfig/posterior"
)

func testSamples() *posterior.Samples {
	s := posterior.New()
	r := rand.New(rand.NewSource(1))
	for coord := 0; coord < 3; coord++ {
		draws := make([]float64, 2000)
		for i := range draws {
			draws[i] = float64(coord) + 0.5*r.NormFloat64()
		}
		s.Add("mu", coord, draws...)
	}
	s.Add("sigma", posterior.NoCoord, 1, 1.1, 0.9, 1.2, 0.8, 1.05, 0.95, 1, 1.15, 0.85)
	return s
}

func TestPosteriorSlices(t *testing.T) {
	p, err := Posterior(testSamples(), "mu", PosteriorOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Slices) != 3 {
		t.Fatalf("got %d slices, want 3", len(p.Slices))
	}
	densities := p.Axes.Find(RoleDensity)
	if len(densities) != 3 {
		t.Fatalf("got %d densities, want 3", len(densities))
	}
	for i, sl := range p.Slices {
		if sl.Coord != i || sl.N != 2000 {
			t.Errorf("slice %d: got coord %d N=%d", i, sl.Coord, sl.N)
		}
		if !(sl.Lo < sl.Point && sl.Point < sl.Hi) {
			t.Errorf("slice %d: point %g outside HDI [%g, %g]", i, sl.Point, sl.Lo, sl.Hi)
		}
		if w := sl.Hi - sl.Lo; w < 1.6 || w > 2.3 {
			t.Errorf("slice %d: HDI width %g, want about 1.96", i, w)
		}
		if densities[i].Stroke != colors.Session(i) {
			t.Errorf("slice %d drawn in %v, want %v", i, densities[i].Stroke, colors.Session(i))
		}
	}
	if got := p.Axes.Count(RoleHDI); got != 3 {
		t.Errorf("got %d HDI bars, want 3", got)
	}
	if got := p.Axes.Count(RolePointEstimate); got != 3 {
		t.Errorf("got %d point estimates, want 3", got)
	}
	if p.Axes.XLabel != "mu" {
		t.Errorf("got x label %q", p.Axes.XLabel)
	}
}

func TestPosteriorSingle(t *testing.T) {
	p, err := Posterior(testSamples(), "mu", PosteriorOptions{Coords: []int{1}, PointEstimate: posterior.Mean})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Slices) != 1 || p.Slices[0].Coord != 1 {
		t.Fatalf("got slices %+v", p.Slices)
	}
	if d := p.Axes.Find(RoleDensity); len(d) != 1 || d[0].Stroke != black {
		t.Errorf("single slice not drawn in black")
	}
	bar := p.Axes.Find(RoleHDI)[0]
	if bar.Y[0] <= 0 {
		t.Errorf("HDI bar at y=%g, want above the baseline", bar.Y[0])
	}
}

func TestPosteriorErrors(t *testing.T) {
	s := testSamples()
	for _, test := range []struct {
		name string
		v    string
		opts PosteriorOptions
		want error
	}{
		{"unknown variable", "tau", PosteriorOptions{}, ErrLookup},
		{"unknown coordinate", "mu", PosteriorOptions{Coords: []int{7}}, ErrLookup},
		{"unknown point estimate", "mu", PosteriorOptions{PointEstimate: "mean-ish"}, ErrLookup},
		{"bad probability", "sigma", PosteriorOptions{HDIProb: 1.5}, ErrInvalidInput},
	} {
		if _, err := Posterior(s, test.v, test.opts); !errors.Is(err, test.want) {
			t.Errorf("%s: got %v, want %v", test.name, err, test.want)
		}
	}
}

func TestDensityCurve(t *testing.T) {
	xs, ys := densityCurve([]float64{0, 1, 2, 3, math.NaN()}, 0.05)
	if len(xs) != densityN || len(ys) != densityN {
		t.Fatalf("got %d x and %d y points, want %d", len(xs), len(ys), densityN)
	}
	// The curve spans the range of the draws.
	if math.Abs(xs[0]) > 1e-9 || math.Abs(xs[len(xs)-1]-3) > 1e-9 {
		t.Errorf("got domain [%g, %g], want [0, 3]", xs[0], xs[len(xs)-1])
	}
	for i, y := range ys {
		if !(y > 0) {
			t.Errorf("density at %g is %g, want > 0", xs[i], y)
			break
		}
	}
}
