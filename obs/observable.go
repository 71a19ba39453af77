// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obs

import (
	"fmt"
	"math"
	"strings"
)

// MaxTimescale is the largest plausible timescale, in seconds. Rows
// above it are excluded from timescale estimates.
const MaxTimescale = 10.0

// An Observable describes a measured quantity.
type Observable struct {
	Name string

	// Label and ShortLabel are the long and short axis labels.
	Label, ShortLabel string

	// Timescale indicates the values are durations in seconds that
	// are displayed in milliseconds.
	Timescale bool
}

var observables = map[string]Observable{
	"tau_double": {"tau_double", "correlation\ntimescale τc (ms)", "τc (ms)", true},
	"tau_single": {"tau_single", "correlation\ntimescale τc1 (ms)", "τc1 (ms)", true},
	"R_tot":      {"R_tot", "predictability Rtot", "Rtot", false},
	"tau_R":      {"tau_R", "information\ntimescale τR (ms)", "τR (ms)", true},
}

// Lookup returns the observable called name.
func Lookup(name string) (Observable, error) {
	o, ok := observables[name]
	if !ok {
		return Observable{}, fmt.Errorf("observable %q: %w", name, ErrLookup)
	}
	return o, nil
}

// AxisLabel returns the long or short label of o.
func (o Observable) AxisLabel(short bool) string {
	if short {
		return o.ShortLabel
	}
	return o.Label
}

// MillisecondLabel formats a tick in seconds as milliseconds.
func MillisecondLabel(x float64) string {
	return fmt.Sprintf("%.0f", x*1000)
}

// LinToLog10Label formats a tick of log10-transformed data in linear
// units: 1 → "10", 0 → "1", -1 → "0.1".
func LinToLog10Label(x float64) string {
	prec := int(math.Ceil(-math.Min(x, 0)))
	return fmt.Sprintf("%.*f", prec, math.Pow(10, x))
}

// DropImplausible removes rows of t whose timescale column col
// exceeds MaxTimescale. Missing values are kept. It returns the
// remaining rows and the number dropped.
func DropImplausible(t *Table, col string) (*Table, int, error) {
	vals, err := t.Floats(col)
	if err != nil {
		return nil, 0, err
	}
	nt := t.Where(func(i int) bool { return !(vals[i] > MaxTimescale) })
	return nt, t.Len() - nt.Len(), nil
}

// IsTimescale reports whether the observable called name is a
// timescale. Unknown names are treated by their "tau" prefix.
func IsTimescale(name string) bool {
	if o, ok := observables[name]; ok {
		return o.Timescale
	}
	return strings.HasPrefix(name, "tau")
}
