// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rl

import (
	"fmt"

	"github.com/emer/neorl/neo"
)

// Config has the construction parameters for an Agent
type Config struct {

	// name of the agent, used in error messages and reports
	Name string `default:"Agent"`

	// number of external input units
	NumInputs int `min:"1"`

	// number of action outputs, each in [-1,1]
	NumActions int `min:"1" default:"1"`

	// number of hidden units in each layer, bottom to top
	LayerSizes []int `default:"[64]"`

	// parameters shared by all layers -- the bottom layer's Squash applies to action and value slot predictions
	Layer neo.LayerParams `view:"add-fields"`

	// the learning policy
	Policy Policies `default:"QTraceRL"`

	// temporal differences parameters
	TD TDParams `view:"inline"`

	// primary value / learned value filtering, for TDLambdaFiltered
	PVLV PVLVParams `viewif:"Policy=TDLambdaFiltered" view:"inline"`

	// exploration parameters
	Explore ExploreParams `view:"inline"`

	// experience replay parameters, for QReplayRL
	Replay ReplayParams `viewif:"Policy=QReplayRL" view:"inline"`
}

// Defaults sets the parameters of the reinforcement learning layer
// variant: a single competition, competitive encoder learning,
// homeostatic biases and tanh output, which keeps actions in range.
func (cf *Config) Defaults() {
	cf.Name = "Agent"
	cf.NumActions = 1
	cf.LayerSizes = []int{64}
	cf.Layer.Defaults()
	cf.Layer.Inhib.ActiveRatio = 0.1
	cf.Layer.Competition = neo.Single
	cf.Layer.Encoder = neo.CompetitiveEncoder
	cf.Layer.Bias = neo.HomeostaticBias
	cf.Layer.Squash = neo.Tanh
	cf.Layer.InitMinWt = -0.1
	cf.Layer.InitMaxWt = 0.1
	cf.Layer.Update()
	cf.Policy = QTraceRL
	cf.TD.Defaults()
	cf.PVLV.Defaults()
	cf.Explore.Defaults()
	cf.Replay.Defaults()
}

// Validate returns an ErrConfig error describing the first invalid parameter
func (cf *Config) Validate() error {
	if cf.NumInputs < 1 {
		return fmt.Errorf("rl.Config %s: NumInputs %d must be >= 1: %w", cf.Name, cf.NumInputs, neo.ErrConfig)
	}
	if cf.NumActions < 1 {
		return fmt.Errorf("rl.Config %s: NumActions %d must be >= 1: %w", cf.Name, cf.NumActions, neo.ErrConfig)
	}
	if len(cf.LayerSizes) == 0 {
		return fmt.Errorf("rl.Config %s: no LayerSizes: %w", cf.Name, neo.ErrConfig)
	}
	if cf.Policy < 0 || cf.Policy >= PoliciesN {
		return fmt.Errorf("rl.Config %s: Policy %v: %w", cf.Name, cf.Policy, neo.ErrConfig)
	}
	return cf.validateParams()
}

func (cf *Config) validateParams() error {
	if err := cf.Layer.Validate(); err != nil {
		return fmt.Errorf("rl.Config %s: %w", cf.Name, err)
	}
	return validateParams(cf.Name, &cf.TD, &cf.PVLV, &cf.Explore, &cf.Replay)
}

// validateParams validates the params an Agent exposes for change between ticks
func validateParams(name string, td *TDParams, pv *PVLVParams, ex *ExploreParams, rp *ReplayParams) error {
	if err := td.Validate(); err != nil {
		return fmt.Errorf("rl %s: %w", name, err)
	}
	if err := pv.Validate(); err != nil {
		return fmt.Errorf("rl %s: %w", name, err)
	}
	if err := ex.Validate(); err != nil {
		return fmt.Errorf("rl %s: %w", name, err)
	}
	if err := rp.Validate(); err != nil {
		return fmt.Errorf("rl %s: %w", name, err)
	}
	return nil
}
