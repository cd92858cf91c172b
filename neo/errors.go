// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neo

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrConfig is returned for invalid construction parameters or learning rates:
	// zero widths, an empty layer list, ActiveRatio outside (0,1), and so on.
	ErrConfig = errors.New("invalid configuration")

	// ErrShape is returned when a vector does not have the width declared
	// for it at construction.  Nothing is modified when it is returned.
	ErrShape = errors.New("shape mismatch")

	// ErrNumeric reports NaN or Inf values, e.g., in weights after runaway learning.
	ErrNumeric = errors.New("numeric degeneracy")
)

// checkLen returns an ErrShape error if n != want
func checkLen(ctxt, what string, n, want int) error {
	if n != want {
		return fmt.Errorf("%s: %s length %d != %d: %w", ctxt, what, n, want, ErrShape)
	}
	return nil
}

// checkFinite returns an ErrNumeric error for the first NaN or Inf value in vals
func checkFinite(ctxt, what string, vals []float64) error {
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: %s[%d] = %v: %w", ctxt, what, i, v, ErrNumeric)
		}
	}
	return nil
}
