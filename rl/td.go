// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rl

import (
	"fmt"
	"math"

	"github.com/emer/neorl/neo"
)

// TDParams are the temporal differences parameters
type TDParams struct {

	// discount factor applied to the current value estimate: td = reward + Gamma * q - prevValue
	Gamma float64 `min:"0" max:"1" default:"0.99"`

	// learning rate for value estimates -- the QTraceRL value function, and the backward correction of replayed values
	Alpha float64 `min:"0" default:"0.01"`

	// if true, the reinforcement passed to gated learning is |td| divided by its running average, making learning rates invariant to the reward scale
	NormTD bool

	// rate at which the running average of |td| is updated, for NormTD
	AvgAbsDecay float64 `viewif:"NormTD" min:"0" max:"1" default:"0.01"`
}

func (tp *TDParams) Defaults() {
	tp.Gamma = 0.99
	tp.Alpha = 0.01
	tp.NormTD = false
	tp.AvgAbsDecay = 0.01
}

// Validate returns an ErrConfig error for out-of-range values
func (tp *TDParams) Validate() error {
	if !(tp.Gamma >= 0 && tp.Gamma <= 1) {
		return fmt.Errorf("TDParams: Gamma %g must be in [0,1]: %w", tp.Gamma, neo.ErrConfig)
	}
	if !(tp.Alpha >= 0) || math.IsInf(tp.Alpha, 0) {
		return fmt.Errorf("TDParams: Alpha %g must be finite and >= 0: %w", tp.Alpha, neo.ErrConfig)
	}
	if !(tp.AvgAbsDecay >= 0 && tp.AvgAbsDecay <= 1) {
		return fmt.Errorf("TDParams: AvgAbsDecay %g must be in [0,1]: %w", tp.AvgAbsDecay, neo.ErrConfig)
	}
	return nil
}

// TDErr returns the TD error: reward + Gamma * q - prevValue
func (tp *TDParams) TDErr(reward, q, prevValue float64) float64 {
	return reward + tp.Gamma*q - prevValue
}

// Reinforce returns the reinforcement magnitude for given td error.
// If NormTD, the running average avgAbs is updated first, and the result
// is |td| / avgAbs (0 while avgAbs is 0).
func (tp *TDParams) Reinforce(td float64, avgAbs *float64) float64 {
	atd := math.Abs(td)
	if !tp.NormTD {
		return atd
	}
	*avgAbs = (1-tp.AvgAbsDecay)*(*avgAbs) + tp.AvgAbsDecay*atd
	if *avgAbs <= 0 {
		return 0
	}
	return atd / *avgAbs
}
