// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errs holds the error sentinels shared by the hierfig
// packages. Each package re-exports the ones it returns.
package errs

import "errors"

var (
	// ErrLookup is returned (wrapped) for a name outside a fixed
	// set, such as an unknown structure, observable, or column.
	ErrLookup = errors.New("unknown name")

	// ErrInvalidInput is returned (wrapped) for degenerate input.
	ErrInvalidInput = errors.New("invalid input")
)
