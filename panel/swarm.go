// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"math"
	"math/rand"
)

// Swarm layout constants.
const (
	// swarmBins is the number of y bins points are stacked in.
	swarmBins = 20

	// swarmOffset is the gap between a category's axis position
	// and its first swarm column.
	swarmOffset = 0.05

	// halfWidth is the maximum width of a half violin and of a
	// swarm.
	halfWidth = 0.4
)

// subsample returns n of rows drawn by r. Without replacement, n is
// capped at len(rows) and the chosen rows keep their original order.
func subsample(rows []int, n int, replace bool, r *rand.Rand) []int {
	if replace {
		if len(rows) == 0 {
			return nil
		}
		out := make([]int, n)
		for i := range out {
			out[i] = rows[r.Intn(len(rows))]
		}
		return out
	}
	if n >= len(rows) {
		return append([]int(nil), rows...)
	}
	pick := r.Perm(len(rows))[:n]
	keep := make([]bool, len(rows))
	for _, i := range pick {
		keep[i] = true
	}
	out := make([]int, 0, n)
	for i, row := range rows {
		if keep[i] {
			out = append(out, row)
		}
	}
	return out
}

// swarmBin returns the index of the bin of y among nbins equal bins
// over [lo, hi].
func swarmBin(y, lo, hi float64, nbins int) int {
	if hi <= lo {
		return 0
	}
	b := int(math.Floor((y - lo) / (hi - lo) * float64(nbins)))
	if b < 0 {
		b = 0
	} else if b >= nbins {
		b = nbins - 1
	}
	return b
}

// maxBinCount returns the largest number of ys falling in one bin.
func maxBinCount(ys []float64, lo, hi float64, nbins int) int {
	counts := make([]int, nbins)
	most := 0
	for _, y := range ys {
		b := swarmBin(y, lo, hi, nbins)
		counts[b]++
		if counts[b] > most {
			most = counts[b]
		}
	}
	return most
}

// swarmXs returns the x offsets that stack ys rightwards within their
// bins, dx apart, starting at 0.
func swarmXs(ys []float64, lo, hi float64, nbins int, dx float64) []float64 {
	filled := make([]int, nbins)
	xs := make([]float64, len(ys))
	for i, y := range ys {
		b := swarmBin(y, lo, hi, nbins)
		xs[i] = float64(filled[b]) * dx
		filled[b]++
	}
	return xs
}
