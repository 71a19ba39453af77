// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/aclements/go-moremath/stats"

	"github.com/hierlab/hierfig/colors"
	"github.com/hierlab/hierfig/obs"
	"github.com/hierlab/hierfig/sigtest"
)

// DefaultScatterColor is the point color of SelectivityScatter.
var DefaultScatterColor = colors.MustHex("#233954")

// scatterY holds the y axis of SelectivityScatter for an observable,
// in display units.
type scatterY struct {
	max   float64
	ticks []float64
}

var scatterYs = map[string]scatterY{
	"tau_double": {1501, []float64{0, 500, 1000, 1500}},
	"tau_R":      {201, []float64{0, 100, 200}},
	"R_tot":      {0.3, []float64{0, 0.1, 0.2, 0.3}},
}

// scatterX holds the x axis of SelectivityScatter for a metric.
type scatterX struct {
	lo, hi float64
	label  string
}

var scatterXs = map[string]scatterX{
	"g_dsi_dg":             {0, 1, "direction selectivity"},
	"image_selectivity_ns": {-0.3, 1, "image selectivity"},
}

// ScatterOptions configures SelectivityScatter. Zero fields take the
// documented defaults.
type ScatterOptions struct {
	// Color is the point color. Default DefaultScatterColor.
	Color color.RGBA

	// Bonferroni multiplies the 0.05 significance threshold.
	// Default 1.
	Bonferroni float64

	// AreaName, if set, is written with the number of units at
	// x = AreaX.
	AreaName string
	AreaX    float64

	// ShortLabel selects the short y axis label.
	ShortLabel bool

	// PointSize is the size of the points. Default 0.04.
	PointSize float64
}

// Scatter is the result of SelectivityScatter.
type Scatter struct {
	Axes       *Axes
	Observable obs.Observable

	// N is the number of plotted units and Dropped the number of
	// rows with a missing value.
	N, Dropped int

	Correlation sigtest.Correlation
	Line        sigtest.Line

	// Significant reports whether the correlation passed the
	// threshold. The trend and its label are drawn only then.
	Significant bool
}

// SelectivityScatter draws observable against the selectivity metric
// column of t, with the least-squares line and the Pearson correlation
// if it is significant.
func SelectivityScatter(t *obs.Table, observable, metric string, opts ScatterOptions) (*Scatter, error) {
	o, err := obs.Lookup(observable)
	if err != nil {
		return nil, err
	}
	if opts.Color == (color.RGBA{}) {
		opts.Color = DefaultScatterColor
	}
	if opts.Bonferroni == 0 {
		opts.Bonferroni = 1
	}
	if opts.PointSize == 0 {
		opts.PointSize = 0.04
	}

	s := &Scatter{Observable: o}
	t, s.Dropped, err = t.DropNaN(observable, metric)
	if err != nil {
		return nil, err
	}
	if s.Dropped > 0 {
		Info.Printf("dropped %d rows with missing %s or %s", s.Dropped, observable, metric)
	}
	if t, err = toMilliseconds(t, o); err != nil {
		return nil, err
	}
	xs, _ := t.Floats(metric)
	ys, _ := t.Floats(observable)
	s.N = len(xs)

	if s.Correlation, err = sigtest.Pearson(xs, ys); err != nil {
		return nil, err
	}
	if s.Line, err = sigtest.LinearFit(xs, ys); err != nil {
		return nil, err
	}
	s.Significant = s.Correlation.P < 0.05*opts.Bonferroni
	Debug.Printf("%s against %s: %v, %v", observable, metric, s.Correlation, s.Line)

	ax := NewAxes()
	s.Axes = ax
	ax.Points(RoleScatter, xs, ys, colors.AlphaOnBackground(opts.Color, 0.5, white), opts.PointSize)

	if s.Significant {
		lo, hi := stats.Bounds(xs)
		ax.Line(RoleTrend, pair(lo, hi), pair(s.Line.At(lo), s.Line.At(hi)), opts.Color, 1.5)
		textY := 0.88
		if observable == "R_tot" && metric != "image_selectivity_ns" {
			textY = 0.2
		}
		ax.Text(RoleCorrelation, CoordAxes, 0.95, textY,
			fmt.Sprintf("r = %.2f; %s", s.Correlation.R, sigtest.FormatP(s.Correlation.P)))
	}

	if sy, ok := scatterYs[observable]; ok {
		ax.YRange = Range{-sy.max / 100, sy.max * 1.03}
		for _, y := range sy.ticks {
			ax.YTicks = append(ax.YTicks, Tick{y, strconv.FormatFloat(y, 'g', -1, 64)})
		}
	}
	ax.XLabel = metric
	if sx, ok := scatterXs[metric]; ok {
		ax.XRange = Range{sx.lo, sx.hi}
		ax.XLabel = sx.label
	}
	if opts.AreaName != "" && observable == "tau_double" {
		ax.Text(RoleAnnotation, CoordData, opts.AreaX, 750, opts.AreaName)
		ax.Text(RoleAnnotation, CoordData, opts.AreaX, 500, fmt.Sprintf("n = %d", s.N))
	}
	ax.YLabel = o.AxisLabel(opts.ShortLabel)
	return s, nil
}
