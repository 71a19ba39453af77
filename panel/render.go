// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"io"
	"math"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
)

// defaultPointSize is the size of points with a zero Size, as a
// fraction of the largest point size.
const defaultPointSize = 0.1

// Plot builds a go-gg plot of a. Each mark becomes its own layer over
// a table holding just that mark's points.
func (a *Axes) Plot() *gg.Plot {
	xr, yr := a.resolved()

	p := gg.NewPlot(new(table.Builder).Add("x", []float64{}).Add("y", []float64{}).Done())

	xs := gg.NewLinearScaler().SetMin(xr.Lo).SetMax(xr.Hi)
	ys := gg.NewLinearScaler().SetMin(yr.Lo).SetMax(yr.Hi)
	// Explicit x ticks are drawn as labels along the bottom edge,
	// since go-gg places ticks itself.
	if a.XTicks != nil {
		xs.SetFormatter(func(float64) string { return "" })
	} else if a.XFormat != nil {
		xs.SetFormatter(a.XFormat)
	}
	if a.YTicks != nil {
		ys.SetFormatter(tickLabeler(a.YTicks, yr))
	} else if a.YFormat != nil {
		ys.SetFormatter(a.YFormat)
	}
	p.SetScale("x", xs)
	p.SetScale("y", ys)

	for i := range a.Marks {
		addMark(p, &a.Marks[i], xr, yr)
	}
	for _, t := range a.XTicks {
		addMark(p, &Mark{Kind: KindText, Coords: CoordXData, X: []float64{t.At}, Y: []float64{0}, Text: t.Label}, xr, yr)
	}

	if a.XLabel != "" {
		p.Add(gg.AxisLabel("x", a.XLabel))
	}
	if a.YLabel != "" {
		p.Add(gg.AxisLabel("y", a.YLabel))
	}
	if a.Title != "" {
		p.Add(gg.Title(a.Title))
	}
	return p
}

// WriteSVG renders a as a width x height pixel SVG document.
func (a *Axes) WriteSVG(w io.Writer, width, height int) error {
	return a.Plot().WriteSVG(w, width, height)
}

func addMark(p *gg.Plot, m *Mark, xr, yr Range) {
	xs, ys := m.dataXY(xr, yr)
	if len(xs) == 0 || len(xs) != len(ys) {
		return
	}
	if (m.Kind == KindLine || m.Kind == KindPolygon) && len(xs) < 2 {
		return
	}

	defer p.Save().Restore()
	p.SetData(new(table.Builder).Add("x", xs).Add("y", ys).Done())

	switch m.Kind {
	case KindLine:
		p.Add(gg.LayerPaths{X: "x", Y: "y", Color: p.Const(m.Stroke)})

	case KindPolygon:
		closed := new(table.Builder).
			Add("x", append(append([]float64(nil), xs...), xs[0])).
			Add("y", append(append([]float64(nil), ys...), ys[0])).
			Done()
		p.SetData(closed)
		p.Add(gg.LayerPaths{X: "x", Y: "y", Color: p.Const(m.Stroke), Fill: p.Const(m.Fill)})

	case KindPoints:
		size := m.Size
		if size == 0 {
			size = defaultPointSize
		}
		p.Add(gg.LayerPoints{X: "x", Y: "y", Color: p.Const(m.Stroke), Size: p.Const(gg.Unscaled(size))})
		if m.Hollow {
			p.Add(gg.LayerPoints{X: "x", Y: "y", Color: p.Const(m.Fill), Size: p.Const(gg.Unscaled(size * 0.6))})
		}

	case KindText:
		p.Add(gg.LayerTags{X: "x", Y: "y", Label: p.Const(m.Text)})
	}
}

// tickLabeler returns a formatter that labels the automatic ticks
// coinciding with ticks and leaves the others blank.
func tickLabeler(ticks []Tick, r Range) func(float64) string {
	tol := 1e-9 * math.Abs(r.Hi-r.Lo)
	return func(x float64) string {
		for _, t := range ticks {
			if math.Abs(x-t.At) <= tol {
				return t.Label
			}
		}
		return ""
	}
}
