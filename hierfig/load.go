// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/gocarina/gocsv"

	"github.com/hierlab/hierfig/obs"
	"github.com/hierlab/hierfig/posterior"
)

// labelCols are always loaded as strings, even if every value is a
// number.
var labelCols = map[string]bool{
	obs.ColUnit:      true,
	obs.ColAcronym:   true,
	obs.ColStructure: true,
	obs.ColStimulus:  true,
	obs.ColBlock:     true,
	obs.ColSession:   true,
}

// loadObservations reads a CSV file with a header row into a table.
// A column whose values all parse as numbers becomes a float64 column,
// with empty and "nan" cells as NaN. Other columns are strings.
func loadObservations(r io.Reader) (*obs.Table, error) {
	rows, err := gocsv.CSVToMaps(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return obs.New(nil), nil
	}

	var cols []string
	for col := range rows[0] {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	b := new(table.Builder)
	for _, col := range cols {
		strs := make([]string, len(rows))
		for i, row := range rows {
			strs[i] = row[col]
		}
		if fs, ok := parseFloats(strs); ok && !labelCols[col] {
			b.Add(col, fs)
		} else {
			b.Add(col, strs)
		}
	}
	return obs.New(b.Done()), nil
}

// parseFloats parses every element of strs as a float. Missing values
// become NaN.
func parseFloats(strs []string) ([]float64, bool) {
	out := make([]float64, len(strs))
	for i, s := range strs {
		s = strings.TrimSpace(s)
		if s == "" || strings.EqualFold(s, "nan") || s == "NA" {
			out[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// A draw is one posterior draw in a long-format CSV file. An empty
// coordinate marks a variable without coordinates.
type draw struct {
	Var   string  `csv:"var"`
	Coord string  `csv:"coord"`
	Value float64 `csv:"value"`
}

// loadDraws reads posterior draws from a CSV file with var, coord and
// value columns.
func loadDraws(r io.Reader) (*posterior.Samples, error) {
	var draws []*draw
	if err := gocsv.Unmarshal(r, &draws); err != nil {
		return nil, err
	}
	s := posterior.New()
	for i, d := range draws {
		coord := posterior.NoCoord
		if c := strings.TrimSpace(d.Coord); c != "" {
			n, err := strconv.Atoi(c)
			if err != nil {
				return nil, fmt.Errorf("draw %d: bad coordinate %q", i+1, d.Coord)
			}
			coord = n
		}
		s.Add(d.Var, coord, d.Value)
	}
	return s, nil
}
