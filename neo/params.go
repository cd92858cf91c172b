// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neo

import (
	"fmt"
	"math"

	"github.com/emer/neorl/kwta"
)

///////////////////////////////////////////////////////////////////////
//  params.go contains the layer structure and learning rate params

// LayerParams are the construction-time parameters shared by all layers in a Hierarchy
type LayerParams struct {

	// k-winners-take-all inhibition -- ActiveRatio sets the fraction of active units in the sparse code
	Inhib kwta.Params `view:"inline"`

	// how active units are selected in the up pass
	Competition Competitions `default:"Single"`

	// learning rule for feedforward and recurrent weights
	Encoder EncoderRules `default:"TraceEncoder"`

	// learning rule for unit biases
	Bias BiasRules `default:"HomeostaticBias"`

	// output function for unthresholded predictions (the bottom layer of a Hierarchy)
	Squash SquashFuncs `default:"Linear"`

	// minimum initial weight (and bias) value, drawn uniformly in [InitMinWt, InitMaxWt]
	InitMinWt float64 `default:"-0.01"`

	// maximum initial weight (and bias) value, drawn uniformly in [InitMinWt, InitMaxWt]
	InitMaxWt float64 `default:"0.01"`
}

func (lp *LayerParams) Defaults() {
	lp.Inhib.Defaults()
	lp.Competition = Single
	lp.Encoder = TraceEncoder
	lp.Bias = HomeostaticBias
	lp.Squash = Linear
	lp.InitMinWt = -0.01
	lp.InitMaxWt = 0.01
	lp.Update()
}

// Update must be called after any changes to parameters
func (lp *LayerParams) Update() {
	lp.Inhib.Update()
}

// Validate returns an ErrConfig error describing the first invalid parameter
func (lp *LayerParams) Validate() error {
	if err := lp.Inhib.Validate(); err != nil {
		return fmt.Errorf("%v: %w", err, ErrConfig)
	}
	if lp.Competition < 0 || lp.Competition >= CompetitionsN {
		return fmt.Errorf("LayerParams: Competition %v: %w", lp.Competition, ErrConfig)
	}
	if lp.Encoder < 0 || lp.Encoder >= EncoderRulesN {
		return fmt.Errorf("LayerParams: Encoder %v: %w", lp.Encoder, ErrConfig)
	}
	if lp.Bias < 0 || lp.Bias >= BiasRulesN {
		return fmt.Errorf("LayerParams: Bias %v: %w", lp.Bias, ErrConfig)
	}
	if lp.Squash < 0 || lp.Squash >= SquashFuncsN {
		return fmt.Errorf("LayerParams: Squash %v: %w", lp.Squash, ErrConfig)
	}
	if !isFinite(lp.InitMinWt) || !isFinite(lp.InitMaxWt) || lp.InitMinWt > lp.InitMaxWt {
		return fmt.Errorf("LayerParams: initial weight range [%g, %g]: %w", lp.InitMinWt, lp.InitMaxWt, ErrConfig)
	}
	return nil
}

// LearnRates are the per-tick learning rates and trace decay,
// passed to every SimStep so they can be annealed over time.
type LearnRates struct {

	// learning rate for feedforward weights
	Encoder float64 `min:"0" default:"0.01"`

	// learning rate for recurrent weights
	Recurrent float64 `min:"0" default:"0.01"`

	// learning rate for predictive and feedback (decoder) weights
	Decoder float64 `min:"0" default:"0.1"`

	// learning rate for biases
	Bias float64 `min:"0" default:"0.01"`

	// per-tick decay of eligibility traces -- must be in [0,1)
	TraceDecay float64 `min:"0" max:"1" default:"0.95"`
}

func (lr *LearnRates) Defaults() {
	lr.Encoder = 0.01
	lr.Recurrent = 0.01
	lr.Decoder = 0.1
	lr.Bias = 0.01
	lr.TraceDecay = 0.95
}

// Validate returns an ErrConfig error if any rate is negative or not finite,
// or TraceDecay is outside [0,1)
func (lr *LearnRates) Validate() error {
	if lr == nil {
		return fmt.Errorf("LearnRates: nil: %w", ErrConfig)
	}
	rates := []float64{lr.Encoder, lr.Recurrent, lr.Decoder, lr.Bias}
	for _, r := range rates {
		if !isFinite(r) || r < 0 {
			return fmt.Errorf("LearnRates: invalid rate %g: %w", r, ErrConfig)
		}
	}
	if !(lr.TraceDecay >= 0 && lr.TraceDecay < 1) {
		return fmt.Errorf("LearnRates: TraceDecay %g must be in [0,1): %w", lr.TraceDecay, ErrConfig)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
