// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command hierfig draws the figure panels of the timescale hierarchy
// study from a CSV table of per-unit observations.
//
// The input has a header row and one row per recorded unit and
// condition. It needs a unit_id column, a structure_name or
// ecephys_structure_acronym column, the stimulus and block columns the
// chosen panel groups by, and the observable columns (tau_double,
// tau_R, R_tot, ...). For the posterior panel, the input instead holds
// posterior draws in var, coord and value columns.
//
// Panel statistics are logged to stderr. The SVG goes to -o, or to
// stdout.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"runtime/pprof"

	"github.com/aclements/go-gg/table"
	"github.com/aybabtme/uniplot/histogram"

	"github.com/hierlab/hierfig/obs"
	"github.com/hierlab/hierfig/panel"
)

func main() {
	log.SetPrefix("hierfig: ")
	log.SetFlags(0)

	var cfg config
	var (
		flagCPUProfile = flag.String("cpuprofile", "", "write CPU profile to `file`")
		flagOut        = flag.String("o", "", "write output to `file` (default: stdout); a file name prefix for row panels")
		flagTable      = flag.Bool("table", false, "print the filtered table instead of a plot")
		flagHist       = flag.Bool("hist", false, "print a histogram of the observable instead of a plot")
		flagVerbose    = flag.Bool("v", false, "log per-group detail")
		flagStimulus   = flag.String("stimulus", "", "keep only rows with stimulus `s`")
		flagBlock      = flag.String("block", "", "keep only rows of block `b`")
	)
	flag.StringVar(&cfg.panel, "panel", "grouped", "draw `panel`: grouped, hierarchy, violins, scatter, posterior, row-grouped or row-hierarchy")
	flag.StringVar(&cfg.observable, "obs", "R_tot", "plot observable `name`")
	flag.StringVar(&cfg.category, "category", obs.ColStimulus, "violin category `column`")
	flag.BoolVar(&cfg.logScale, "log", false, "log-scale violins")
	flag.BoolVar(&cfg.areawise, "areawise", false, "annotate the violin percent change")
	flag.StringVar(&cfg.area, "area", "", "annotate the panel with area `name`")
	flag.Float64Var(&cfg.bonferroni, "bonferroni", 1, "multiply the significance threshold by `f`")
	flag.StringVar(&cfg.metric, "metric", "g_dsi_dg", "scatter selectivity metric `column`")
	flag.StringVar(&cfg.variable, "var", "", "posterior `variable`")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] observations.csv\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	if *flagCPUProfile != "" {
		f, err := os.Create(*flagCPUProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}
	if *flagVerbose {
		panel.Debug.SetOutput(os.Stderr)
	}

	in := os.Stdin
	if flag.NArg() == 1 && flag.Arg(0) != "-" {
		var err error
		in, err = os.Open(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		defer in.Close()
	}

	if cfg.panel == "posterior" {
		s, err := loadDraws(in)
		if err != nil {
			log.Fatal(err)
		}
		ax, err := plotPosterior(s, cfg)
		if err != nil {
			log.Fatal(err)
		}
		writeSVG(*flagOut, ax)
		return
	}

	t, err := loadObservations(in)
	if err != nil {
		log.Fatal(err)
	}
	if *flagStimulus != "" {
		if t, err = t.WhereEq(obs.ColStimulus, *flagStimulus); err != nil {
			log.Fatal(err)
		}
	}
	if *flagBlock != "" {
		if t, err = t.WhereEq(obs.ColBlock, *flagBlock); err != nil {
			log.Fatal(err)
		}
	}

	switch {
	case *flagTable:
		out := create(*flagOut)
		defer out.Close()
		table.Fprint(out, t.Raw())
		return
	case *flagHist:
		out := create(*flagOut)
		defer out.Close()
		if err := printHist(out, t, cfg.observable); err != nil {
			log.Fatal(err)
		}
		return
	}

	switch cfg.panel {
	case "row-grouped", "row-hierarchy":
		if *flagOut == "" {
			log.Fatal("row panels need -o")
		}
		axes, err := plotRow(t, cfg)
		if err != nil {
			log.Fatal(err)
		}
		for _, o := range panel.RowObservables {
			writeSVG(*flagOut+"_"+o+".svg", axes[o])
		}
	default:
		ax, err := plot(t, cfg)
		if err != nil {
			log.Fatal(err)
		}
		writeSVG(*flagOut, ax)
	}
}

// create opens path for writing, or returns stdout if path is empty.
func create(path string) io.WriteCloser {
	if path == "" {
		return nopCloser{os.Stdout}
	}
	f, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	return f
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func writeSVG(path string, ax *panel.Axes) {
	out := create(path)
	if err := ax.WriteSVG(out, 500, 350); err != nil {
		log.Fatal(err)
	}
	if err := out.Close(); err != nil {
		log.Fatal(err)
	}
}

// printHist prints a terminal histogram of column col of t.
func printHist(w io.Writer, t *obs.Table, col string) error {
	vals, err := t.Floats(col)
	if err != nil {
		return err
	}
	var data []float64
	for _, v := range vals {
		if !math.IsNaN(v) {
			data = append(data, v)
		}
	}
	if len(data) == 0 {
		return fmt.Errorf("no %s values", col)
	}
	fmt.Fprintf(w, "%s (%d values)\n", col, len(data))
	return histogram.Fprint(w, histogram.Hist(20, data), histogram.Linear(40))
}
