// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obs holds per-unit observation tables and the metadata of
// the observables measured on them.
//
// A Table is a thin wrapper around a go-gg table. Rows are recorded
// units under one condition. Numeric observables are float64 columns
// in which NaN marks a missing value.
package obs

import (
	"fmt"
	"math"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"

	"github.com/hierlab/hierfig/hierarchy"
	"github.com/hierlab/hierfig/internal/errs"
)

var (
	// ErrLookup is returned (wrapped) for an unknown column or
	// observable.
	ErrLookup = errs.ErrLookup

	// ErrInvalidInput is returned (wrapped) when a column does not
	// hold the requested type.
	ErrInvalidInput = errs.ErrInvalidInput
)

// Well-known column names.
const (
	ColUnit      = "unit_id"
	ColAcronym   = "ecephys_structure_acronym"
	ColStructure = "structure_name"
	ColStimulus  = "stimulus"
	ColBlock     = "block"
	ColSession   = "session"
)

// Table is an observation table.
//
// Tables are immutable except for EnsureStructureNames, which may
// replace the wrapped table with one carrying an additional column.
type Table struct {
	t *table.Table
}

// New wraps t.
func New(t *table.Table) *Table {
	if t == nil {
		t = new(table.Builder).Done()
	}
	return &Table{t}
}

// Raw returns the wrapped go-gg table.
func (t *Table) Raw() *table.Table {
	return t.t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return t.t.Len()
}

// Has reports whether t has a column named col.
func (t *Table) Has(col string) bool {
	return t.t.Column(col) != nil
}

func (t *Table) column(col string) (table.Slice, error) {
	c := t.t.Column(col)
	if c == nil {
		return nil, fmt.Errorf("column %q: %w", col, ErrLookup)
	}
	return c, nil
}

// Floats returns a copy of column col converted to float64. The
// column must hold numbers.
func (t *Table) Floats(col string) ([]float64, error) {
	c, err := t.column(col)
	if err != nil {
		return nil, err
	}
	switch c := c.(type) {
	case []float64:
		return append([]float64(nil), c...), nil
	case []float32, []int, []int8, []int16, []int32, []int64,
		[]uint, []uint8, []uint16, []uint32, []uint64:
		var out []float64
		slice.Convert(&out, c)
		return out, nil
	}
	return nil, fmt.Errorf("column %q has type %T, want numbers: %w", col, c, ErrInvalidInput)
}

// Strings returns column col, which must hold strings.
func (t *Table) Strings(col string) ([]string, error) {
	c, err := t.column(col)
	if err != nil {
		return nil, err
	}
	s, ok := c.([]string)
	if !ok {
		return nil, fmt.Errorf("column %q has type %T, want []string: %w", col, c, ErrInvalidInput)
	}
	return s, nil
}

// Unique returns the distinct values of a string column in order of
// first appearance.
func (t *Table) Unique(col string) ([]string, error) {
	s, err := t.Strings(col)
	if err != nil {
		return nil, err
	}
	var out []string
	seen := make(map[string]bool)
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out, nil
}

// Select returns a new table holding the given rows of t, in order.
func (t *Table) Select(rows []int) *Table {
	b := new(table.Builder)
	for _, col := range t.t.Columns() {
		b.Add(col, slice.Select(t.t.Column(col), rows))
	}
	return &Table{b.Done()}
}

// Where returns the rows of t for which keep returns true.
func (t *Table) Where(keep func(row int) bool) *Table {
	var rows []int
	for i := 0; i < t.Len(); i++ {
		if keep(i) {
			rows = append(rows, i)
		}
	}
	return t.Select(rows)
}

// WhereIn returns the rows of t whose string column col holds one of
// vals.
func (t *Table) WhereIn(col string, vals ...string) (*Table, error) {
	s, err := t.Strings(col)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(vals))
	for _, v := range vals {
		set[v] = true
	}
	return t.Where(func(i int) bool { return set[s[i]] }), nil
}

// WhereEq returns the rows of t whose string column col equals val.
func (t *Table) WhereEq(col, val string) (*Table, error) {
	return t.WhereIn(col, val)
}

// DropNaN returns the rows of t in which none of cols is NaN, and the
// number of rows dropped.
func (t *Table) DropNaN(cols ...string) (*Table, int, error) {
	vals := make([][]float64, len(cols))
	for i, col := range cols {
		var err error
		if vals[i], err = t.Floats(col); err != nil {
			return nil, 0, err
		}
	}
	nt := t.Where(func(row int) bool {
		for _, v := range vals {
			if math.IsNaN(v[row]) {
				return false
			}
		}
		return true
	})
	return nt, t.Len() - nt.Len(), nil
}

// With returns a copy of t with column col set to data, replacing any
// existing column of that name.
func (t *Table) With(col string, data table.Slice) *Table {
	return &Table{table.NewBuilder(t.t).Add(col, data).Done()}
}

// EnsureStructureNames adds the structure name column, derived from
// the ecephys acronym column through h, if t does not already have
// it. Unlike the other methods, this modifies t in place. It reports
// whether the column was added.
func (t *Table) EnsureStructureNames(h *hierarchy.Hierarchy) (added bool, err error) {
	if t.Has(ColStructure) {
		return false, nil
	}
	acr, err := t.Strings(ColAcronym)
	if err != nil {
		return false, fmt.Errorf("deriving %s: %w", ColStructure, err)
	}
	names := make([]string, len(acr))
	for i, a := range acr {
		if names[i], err = h.CanonicalName(a); err != nil {
			return false, err
		}
	}
	t.t = table.NewBuilder(t.t).Add(ColStructure, names).Done()
	return true, nil
}
