// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rl

import (
	"fmt"

	"github.com/emer/neorl/neo"
	"gonum.org/v1/gonum/mat"
)

// ValueFunc is a linear value function over a layer's state and its
// top-down feedback: q = W . state + FbW . feedback.
// It learns by TD(lambda) with one eligibility trace per weight.
type ValueFunc struct {

	// state weights
	W *mat.VecDense

	// feedback weights
	FbW *mat.VecDense

	// state eligibility trace
	Tr *mat.VecDense

	// feedback eligibility trace
	FbTr *mat.VecDense
}

// Init allocates for nState state and nFb feedback units, all zero
func (vf *ValueFunc) Init(nState, nFb int) {
	vf.W = mat.NewVecDense(nState, nil)
	vf.FbW = mat.NewVecDense(nFb, nil)
	vf.Tr = mat.NewVecDense(nState, nil)
	vf.FbTr = mat.NewVecDense(nFb, nil)
}

// InitTraces zeroes the eligibility traces
func (vf *ValueFunc) InitTraces() {
	vf.Tr.Zero()
	vf.FbTr.Zero()
}

// Value returns the value estimate for given state and feedback
func (vf *ValueFunc) Value(state, feedback mat.Vector) float64 {
	return mat.Dot(vf.W, state) + mat.Dot(vf.FbW, feedback)
}

// Learn applies td along the traces at rate alpha, which assigns the error
// to the states leading up to the current one, then decays the traces
// and adds the current state and feedback.
func (vf *ValueFunc) Learn(alpha, td, decay float64, state, feedback mat.Vector) {
	vf.W.AddScaledVec(vf.W, alpha*td, vf.Tr)
	vf.FbW.AddScaledVec(vf.FbW, alpha*td, vf.FbTr)
	vf.Tr.ScaleVec(decay, vf.Tr)
	vf.Tr.AddVec(vf.Tr, state)
	vf.FbTr.ScaleVec(decay, vf.FbTr)
	vf.FbTr.AddVec(vf.FbTr, feedback)
}

// CheckFinite returns an ErrNumeric error for any NaN or Inf weight or trace
func (vf *ValueFunc) CheckFinite() error {
	vs := []struct {
		nm string
		v  *mat.VecDense
	}{{"W", vf.W}, {"FbW", vf.FbW}, {"Tr", vf.Tr}, {"FbTr", vf.FbTr}}
	for _, v := range vs {
		for i, x := range v.v.RawVector().Data {
			if !isFinite(x) {
				return fmt.Errorf("rl.ValueFunc CheckFinite: %s[%d] = %v: %w", v.nm, i, x, neo.ErrNumeric)
			}
		}
	}
	return nil
}
