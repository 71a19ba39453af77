// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"image/color"
	"math"
)

// A Kind is the kind of a drawing primitive.
type Kind int

const (
	KindLine Kind = iota
	KindPoints
	KindPolygon
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindPoints:
		return "points"
	case KindPolygon:
		return "polygon"
	case KindText:
		return "text"
	}
	return "unknown"
}

// Coords selects the coordinate system of a mark.
type Coords int

const (
	// CoordData places X and Y in data coordinates.
	CoordData Coords = iota
	// CoordXData places X in data coordinates and Y as a fraction
	// of the y axis.
	CoordXData
	// CoordAxes places X and Y as fractions of the axes.
	CoordAxes
)

// Mark roles. Panels tag every primitive with the role it plays so
// callers can inspect what was drawn.
const (
	RoleGroupMedian       = "group median"
	RoleGroupInterval     = "group interval"
	RoleGroupMarker       = "group marker"
	RoleStructureInterval = "structure interval"
	RoleStructureMarker   = "structure marker"
	RoleBracket           = "significance bracket"
	RoleSignificance      = "significance"
	RoleTrend             = "trend"
	RoleCorrelation       = "correlation"
	RoleViolin            = "violin"
	RoleErrorStick        = "error stick"
	RoleMedian            = "median"
	RoleSwarm             = "swarm"
	RoleAnnotation        = "annotation"
	RoleScatter           = "scatter"
	RoleDensity           = "density"
	RoleHDI               = "hdi"
	RolePointEstimate     = "point estimate"
)

// A Mark is one drawing primitive.
type Mark struct {
	Kind   Kind
	Role   string
	Coords Coords

	X, Y []float64

	// Stroke is the line color, or the point color.
	Stroke color.RGBA

	// Fill is the polygon fill, or the inner color of hollow
	// points.
	Fill color.RGBA

	// Width is the nominal line width in points.
	Width float64

	// Size is the point size as a fraction of the largest
	// point size. If 0, a default is used.
	Size float64

	// Hollow points are drawn as a Stroke ring around a Fill
	// center.
	Hollow bool

	// Text is the label of a text mark, drawn at X[0], Y[0].
	Text string
}

// A Range is an axis range. A NaN bound is determined from the data.
type Range struct {
	Lo, Hi float64
}

// AutoRange is a Range determined entirely by the data.
var AutoRange = Range{math.NaN(), math.NaN()}

// Padded returns the range [lo, hi] widened by 1% of its span on both
// ends.
func Padded(lo, hi float64) Range {
	d := 0.01 * (hi - lo)
	return Range{lo - d, hi + d}
}

// A Tick is an explicitly placed, labeled axis tick.
type Tick struct {
	At    float64
	Label string
}

// Axes records the primitives, ranges, and labels of one panel.
// Panels draw into an Axes; Plot and WriteSVG render it.
type Axes struct {
	Title          string
	XLabel, YLabel string

	XRange, YRange Range

	// XFormat and YFormat format tick values. If nil, ticks
	// are formatted as numbers.
	XFormat, YFormat func(float64) string

	// XTicks and YTicks, if non-nil, replace the automatic tick
	// labels.
	XTicks, YTicks []Tick

	Marks []Mark
}

// NewAxes returns empty axes with automatic ranges.
func NewAxes() *Axes {
	return &Axes{XRange: AutoRange, YRange: AutoRange}
}

// Add records m.
func (a *Axes) Add(m Mark) {
	a.Marks = append(a.Marks, m)
}

// Line records a polyline in data coordinates.
func (a *Axes) Line(role string, xs, ys []float64, c color.RGBA, width float64) {
	a.Add(Mark{Kind: KindLine, Role: role, X: xs, Y: ys, Stroke: c, Width: width})
}

// Points records filled points in data coordinates.
func (a *Axes) Points(role string, xs, ys []float64, c color.RGBA, size float64) {
	a.Add(Mark{Kind: KindPoints, Role: role, X: xs, Y: ys, Stroke: c, Fill: c, Size: size})
}

// HollowPoint records a ring marker with a white center.
func (a *Axes) HollowPoint(role string, x, y float64, c color.RGBA, size float64) {
	a.Add(Mark{Kind: KindPoints, Role: role, X: []float64{x}, Y: []float64{y}, Stroke: c, Fill: white, Size: size, Hollow: true})
}

// Text records a label at (x, y) in the given coordinate system.
func (a *Axes) Text(role string, coords Coords, x, y float64, text string) {
	a.Add(Mark{Kind: KindText, Role: role, Coords: coords, X: []float64{x}, Y: []float64{y}, Stroke: black, Text: text})
}

// Find returns the marks with the given role, in drawing order.
func (a *Axes) Find(role string) []Mark {
	var out []Mark
	for _, m := range a.Marks {
		if m.Role == role {
			out = append(out, m)
		}
	}
	return out
}

// Count returns the number of marks with the given role.
func (a *Axes) Count(role string) int {
	return len(a.Find(role))
}

// Texts returns the labels of the text marks with the given role.
func (a *Axes) Texts(role string) []string {
	var out []string
	for _, m := range a.Find(role) {
		if m.Kind == KindText {
			out = append(out, m.Text)
		}
	}
	return out
}

// resolved returns the x and y ranges with automatic bounds filled in
// from the marks placed in data coordinates.
func (a *Axes) resolved() (x, y Range) {
	xlo, xhi := math.NaN(), math.NaN()
	ylo, yhi := math.NaN(), math.NaN()
	expand := func(lo, hi *float64, vs []float64) {
		for _, v := range vs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if math.IsNaN(*lo) || v < *lo {
				*lo = v
			}
			if math.IsNaN(*hi) || v > *hi {
				*hi = v
			}
		}
	}
	for _, m := range a.Marks {
		if m.Coords == CoordAxes {
			continue
		}
		expand(&xlo, &xhi, m.X)
		if m.Coords == CoordData {
			expand(&ylo, &yhi, m.Y)
		}
	}
	return fill(a.XRange, xlo, xhi), fill(a.YRange, ylo, yhi)
}

func fill(r Range, lo, hi float64) Range {
	if math.IsNaN(r.Lo) {
		r.Lo = lo
	}
	if math.IsNaN(r.Hi) {
		r.Hi = hi
	}
	switch {
	case math.IsNaN(r.Lo) && math.IsNaN(r.Hi):
		r = Range{0, 1}
	case math.IsNaN(r.Lo):
		r.Lo = r.Hi - 1
	case math.IsNaN(r.Hi):
		r.Hi = r.Lo + 1
	}
	if r.Lo == r.Hi {
		r.Lo, r.Hi = r.Lo-0.5, r.Hi+0.5
	}
	return r
}

// dataXY returns the points of m in data coordinates.
func (m *Mark) dataXY(x, y Range) (xs, ys []float64) {
	xs, ys = m.X, m.Y
	if m.Coords == CoordAxes {
		xs = make([]float64, len(m.X))
		for i, f := range m.X {
			xs[i] = x.Lo + f*(x.Hi-x.Lo)
		}
	}
	if m.Coords != CoordData {
		ys = make([]float64, len(m.Y))
		for i, f := range m.Y {
			ys[i] = y.Lo + f*(y.Hi-y.Lo)
		}
	}
	return xs, ys
}
