// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"

	"github.com/hierlab/hierfig/hierarchy"
	"github.com/hierlab/hierfig/obs"
	"github.com/hierlab/hierfig/panel"
	"github.com/hierlab/hierfig/posterior"
)

// config holds the panel flags.
type config struct {
	panel      string
	observable string
	category   string
	logScale   bool
	areawise   bool
	area       string
	bonferroni float64
	metric     string
	variable   string
}

// plot draws the single panel selected by cfg and logs its statistics.
func plot(t *obs.Table, cfg config) (*panel.Axes, error) {
	h := hierarchy.Default()
	switch cfg.panel {
	case "grouped":
		g, err := panel.AreasGrouped(t, h, cfg.observable)
		if err != nil {
			return nil, err
		}
		for _, c := range g.Comparisons {
			log.Printf("%s vs. %s: U=%g p=%.3g %s", c.A, c.B, c.Result.Statistic, c.Result.P, c.Stars)
		}
		return g.Axes, nil

	case "hierarchy":
		r, err := panel.HierarchyScore(t, h, cfg.observable)
		if err != nil {
			return nil, err
		}
		log.Printf("pearson %v, spearman %v", r.Correlations["pearson"], r.Correlations["spearman"])
		return r.Axes, nil

	case "violins":
		v, err := panel.StimulusViolins(t, panel.ViolinOptions{
			Category:   cfg.category,
			Observable: cfg.observable,
			LogScale:   cfg.logScale,
			Areawise:   cfg.areawise,
			AreaName:   cfg.area,
			Bonferroni: cfg.bonferroni,
		})
		if err != nil {
			return nil, err
		}
		for _, c := range v.Comparisons {
			log.Printf("%s vs. %s over %d units: Wilcoxon p=%.3g, Δ=%.1f%%, Δ of medians=%.1f%%",
				c.A, c.B, c.N, c.Wilcoxon.P, c.MedianPercentChange, c.PercentChangeOfMedians)
		}
		return v.Axes, nil

	case "scatter":
		s, err := panel.SelectivityScatter(t, cfg.observable, cfg.metric, panel.ScatterOptions{
			Bonferroni: cfg.bonferroni,
			AreaName:   cfg.area,
		})
		if err != nil {
			return nil, err
		}
		log.Printf("%s against %s, n=%d: %v, slope %.3g, intercept %.3g",
			cfg.observable, cfg.metric, s.N, s.Correlation, s.Line.Slope, s.Line.Intercept)
		return s.Axes, nil
	}
	return nil, fmt.Errorf("unknown panel %q", cfg.panel)
}

// plotRow draws the row panel selected by cfg, keyed by observable.
func plotRow(t *obs.Table, cfg config) (map[string]*panel.Axes, error) {
	h := hierarchy.Default()
	out := make(map[string]*panel.Axes)
	switch cfg.panel {
	case "row-grouped":
		row, err := panel.RowStructureGroups(t, h)
		if err != nil {
			return nil, err
		}
		for o, g := range row {
			out[o] = g.Axes
		}
	case "row-hierarchy":
		row, err := panel.RowHierarchyScore(t, h)
		if err != nil {
			return nil, err
		}
		for o, r := range row {
			log.Printf("%s: pearson %v, spearman %v", o, r.Correlations["pearson"], r.Correlations["spearman"])
			out[o] = r.Axes
		}
	default:
		return nil, fmt.Errorf("unknown row panel %q", cfg.panel)
	}
	return out, nil
}

func plotPosterior(s *posterior.Samples, cfg config) (*panel.Axes, error) {
	name := cfg.variable
	if name == "" {
		vars := s.Vars()
		if len(vars) != 1 {
			return nil, fmt.Errorf("draws hold variables %v; choose one with -var", vars)
		}
		name = vars[0]
	}
	p, err := panel.Posterior(s, name, panel.PosteriorOptions{})
	if err != nil {
		return nil, err
	}
	for _, sl := range p.Slices {
		log.Printf("%s[%d]: HDI [%.3g, %.3g], median %.3g", name, sl.Coord, sl.Lo, sl.Hi, sl.Point)
	}
	return p.Axes, nil
}
