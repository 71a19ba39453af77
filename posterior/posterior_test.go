// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package posterior

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"
)

func TestHDIUniform(t *testing.T) {
	xs := make([]float64, 1000)
	for i := range xs {
		xs[i] = float64(i) / 1000
	}
	rand.New(rand.NewSource(1)).Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
	lo, hi, err := HDI(xs, 0.9)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs((hi-lo)-0.9) > 1e-9 {
		t.Errorf("HDI [%g, %g] has width %g, want 0.9", lo, hi, hi-lo)
	}
}

func TestHDISkewed(t *testing.T) {
	// Most mass is near 0; the narrowest interval starts there.
	r := rand.New(rand.NewSource(2))
	xs := make([]float64, 5000)
	for i := range xs {
		xs[i] = r.ExpFloat64()
	}
	lo, hi, err := HDI(xs, 0.95)
	if err != nil {
		t.Fatal(err)
	}
	if lo > 0.01 || hi < 2.5 || hi > 3.5 {
		t.Errorf("exponential HDI [%g, %g], want about [0, 3]", lo, hi)
	}
}

func TestHDIErrors(t *testing.T) {
	if _, _, err := HDI([]float64{1}, 0.95); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("one draw: got %v", err)
	}
	if _, _, err := HDI([]float64{1, 2, 3}, 1.5); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("prob 1.5: got %v", err)
	}
}

func TestPointEstimate(t *testing.T) {
	xs := []float64{1, 2, 2, 2, 3, 10}
	for _, test := range []struct {
		kind string
		want float64
	}{
		{Median, 2},
		{"", 2},
		{Mean, 20.0 / 6},
	} {
		got, err := PointEstimate(xs, test.kind, 0.05)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got-test.want) > 1e-12 {
			t.Errorf("%q estimate = %g, want %g", test.kind, got, test.want)
		}
	}

	mode, err := PointEstimate(xs, Mode, 0.05)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(mode-2) > 0.1 {
		t.Errorf("mode = %g, want about 2", mode)
	}

	if _, err := PointEstimate(xs, "max", 0.05); !errors.Is(err, ErrLookup) {
		t.Errorf("unknown kind: got %v", err)
	}
	if _, err := PointEstimate(nil, Median, 0.05); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("no draws: got %v", err)
	}
}

func TestSelect(t *testing.T) {
	s := New()
	s.Add("tau", 2, 1, 2)
	s.Add("tau", 0, 3)
	s.Add("tau", 2, 4)
	s.Add("a", NoCoord, 5)

	if got := s.Vars(); !reflect.DeepEqual(got, []string{"a", "tau"}) {
		t.Errorf("Vars() = %v", got)
	}
	all, err := s.Select("tau")
	if err != nil {
		t.Fatal(err)
	}
	want := []Slice{{"tau", 0, []float64{3}}, {"tau", 2, []float64{1, 2, 4}}}
	if !reflect.DeepEqual(all, want) {
		t.Errorf("Select(tau) = %v, want %v", all, want)
	}
	if _, err := s.Select("tau", 1); !errors.Is(err, ErrLookup) {
		t.Errorf("missing coordinate: got %v", err)
	}
	if _, err := s.Select("b"); !errors.Is(err, ErrLookup) {
		t.Errorf("missing variable: got %v", err)
	}
}
