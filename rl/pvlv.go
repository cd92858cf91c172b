// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rl

import (
	"fmt"

	"github.com/emer/neorl/neo"
)

// PVLVParams are the parameters of the primary value / learned value
// filtering used by the TDLambdaFiltered policy.  The primary value (PV)
// system learns to expect rewards, and the learned value (LV) system learns
// from PV to anticipate them earlier.  When a reward is present or expected
// (PVi or reward outside [ThetaMin, ThetaMax]), the TD error is the PV
// error, reward - PVi.  Otherwise it is the LV error, LVe - LVi.
type PVLVParams struct {

	// lower threshold -- PVi or reward values below this count as primary value events
	ThetaMin float64 `default:"0.2"`

	// upper threshold -- PVi or reward values above this count as primary value events
	ThetaMax float64 `default:"0.8"`

	// rate at which the inhibitory LVi estimate tracks the excitatory LVe estimate
	LViAlpha float64 `min:"0" max:"1" default:"0.05"`
}

func (pp *PVLVParams) Defaults() {
	pp.ThetaMin = 0.2
	pp.ThetaMax = 0.8
	pp.LViAlpha = 0.05
}

// Validate returns an ErrConfig error for out-of-range values
func (pp *PVLVParams) Validate() error {
	if !(pp.ThetaMin <= pp.ThetaMax) {
		return fmt.Errorf("PVLVParams: ThetaMin %g > ThetaMax %g: %w", pp.ThetaMin, pp.ThetaMax, neo.ErrConfig)
	}
	if !(pp.LViAlpha >= 0 && pp.LViAlpha <= 1) {
		return fmt.Errorf("PVLVParams: LViAlpha %g must be in [0,1]: %w", pp.LViAlpha, neo.ErrConfig)
	}
	return nil
}

// Filter returns true if this is a primary value event:
// PVi or reward outside of [ThetaMin, ThetaMax]
func (pp *PVLVParams) Filter(pvi, reward float64) bool {
	return pvi < pp.ThetaMin || reward < pp.ThetaMin || pvi > pp.ThetaMax || reward > pp.ThetaMax
}

// TDErr returns the filtered TD error
func (pp *PVLVParams) TDErr(reward, pvi, lve, lvi float64) float64 {
	if pp.Filter(pvi, reward) {
		return reward - pvi
	}
	return lve - lvi
}

// Targets returns the learning targets for the PVi, LVe and LVi value slots
func (pp *PVLVParams) Targets(reward, pvi, lve, lvi float64) (pviT, lveT, lviT float64) {
	pviT = reward
	if pp.Filter(pvi, reward) {
		lveT = reward
	} else {
		lveT = lve
	}
	lviT = pp.LViAlpha*(lve-lvi) + lvi
	return
}
