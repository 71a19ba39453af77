// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sigtest

import (
	"fmt"
	"math"
)

// MinReportedP is the smallest p-value printed as a number.
const MinReportedP = 1e-8

// FormatBaseTen formats x with three decimals if its decimal exponent
// is within (-3, 3), and as "b.b × 10^e" otherwise.
func FormatBaseTen(x float64) string {
	if x == 0 {
		return "0"
	}
	e := math.Floor(math.Log10(math.Abs(x)))
	if math.Abs(e) < 3 {
		return fmt.Sprintf("%.3f", x)
	}
	return fmt.Sprintf("%.1f × 10^%d", x/math.Pow(10, e), int(e))
}

// FormatP formats a p-value for a panel annotation.
func FormatP(p float64) string {
	if p < MinReportedP {
		return "p < 10^-8"
	}
	return "p = " + FormatBaseTen(p)
}
