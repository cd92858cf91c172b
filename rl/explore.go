// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rl

import (
	"fmt"
	"math"

	"github.com/emer/neorl/neo"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// ExploreParams are the exploration parameters
type ExploreParams struct {

	// exploration process
	Type ExploreTypes `default:"GaussianExplore"`

	// standard deviation of the Gaussian exploration noise
	Std float64 `viewif:"Type=GaussianExplore" min:"0" default:"0.1"`

	// rate at which new noise replaces the smoothed noise: e = (1 - Decay) * e + Decay * N(0,1) * Std
	Decay float64 `viewif:"Type=GaussianExplore" min:"0" max:"1" default:"0.1"`

	// probability of replacing an action with a uniform random one
	Epsilon float64 `viewif:"Type=EpsilonExplore" min:"0" max:"1" default:"0.05"`
}

func (ep *ExploreParams) Defaults() {
	ep.Type = GaussianExplore
	ep.Std = 0.1
	ep.Decay = 0.1
	ep.Epsilon = 0.05
}

// Validate returns an ErrConfig error for out-of-range values
func (ep *ExploreParams) Validate() error {
	if ep.Type < 0 || ep.Type >= ExploreTypesN {
		return fmt.Errorf("ExploreParams: Type %v: %w", ep.Type, neo.ErrConfig)
	}
	if !(ep.Std >= 0) || math.IsInf(ep.Std, 0) {
		return fmt.Errorf("ExploreParams: Std %g must be finite and >= 0: %w", ep.Std, neo.ErrConfig)
	}
	if !(ep.Decay >= 0 && ep.Decay <= 1) {
		return fmt.Errorf("ExploreParams: Decay %g must be in [0,1]: %w", ep.Decay, neo.ErrConfig)
	}
	if !(ep.Epsilon >= 0 && ep.Epsilon <= 1) {
		return fmt.Errorf("ExploreParams: Epsilon %g must be in [0,1]: %w", ep.Epsilon, neo.ErrConfig)
	}
	return nil
}

// Explorer holds the exploration state, one process per action
type Explorer struct {

	// smoothed Gaussian noise per action
	Noise []float64

	norm distuv.Normal
	unif distuv.Uniform
	rnd  *rand.Rand
}

// Init allocates for nActions and resets the noise, drawing from rnd
func (ex *Explorer) Init(nActions int, rnd *rand.Rand) {
	ex.Noise = make([]float64, nActions)
	ex.rnd = rnd
	ex.norm = distuv.Normal{Mu: 0, Sigma: 1, Src: rnd}
	ex.unif = distuv.Uniform{Min: -1, Max: 1, Src: rnd}
}

// Explore sets the exploratory actions from the executed ones, updating the
// exploration process.  All actions are clipped to [-1,1].
func (ex *Explorer) Explore(ep *ExploreParams, actions, actionsExp []float64) {
	for i, a := range actions {
		switch ep.Type {
		case EpsilonExplore:
			if ex.rnd.Float64() < ep.Epsilon {
				actionsExp[i] = ex.unif.Rand()
			} else {
				actionsExp[i] = a
			}
		default:
			ex.Noise[i] = (1-ep.Decay)*ex.Noise[i] + ep.Decay*ex.norm.Rand()*ep.Std
			actionsExp[i] = a + ex.Noise[i]
		}
		actionsExp[i] = clip1(actionsExp[i])
	}
}

// clip1 clips v to [-1,1]
func clip1(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
