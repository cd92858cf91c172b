// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rl

import "github.com/goki/ki/kit"

// Policies are the learning policies an Agent can use
type Policies int32

//go:generate stringer -type=Policies

var KiT_Policies = kit.Enums.AddEnum(PoliciesN, kit.NotBitFlag, nil)

func (ev Policies) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Policies) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Predictive has no value estimate: q = td = 0 and learning is unmodulated,
	// so the action slots just learn to predict the exploratory actions taken.
	Predictive Policies = iota

	// TDLambdaFiltered reads PVi, LVe and LVi estimates from three value slots,
	// and uses the primary value (PV) TD error when a reward is present or
	// expected, else the learned value (LV) TD error.  Learning is unmodulated.
	TDLambdaFiltered

	// QTraceRL uses a separate linear value function over the bottom layer
	// state and feedback, learned with eligibility traces.
	// Decoder learning in the bottom layer is gated by the TD error.
	QTraceRL

	// QReplayRL reads the value estimate from one value slot, and replays
	// stored states with TD-corrected value targets.
	// Decoder learning in the bottom layer is gated by the TD error.
	QReplayRL

	PoliciesN
)

// ExploreTypes are the exploration processes
type ExploreTypes int32

//go:generate stringer -type=ExploreTypes

var KiT_ExploreTypes = kit.Enums.AddEnum(ExploreTypesN, kit.NotBitFlag, nil)

func (ev ExploreTypes) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *ExploreTypes) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// GaussianExplore adds exponentially smoothed Gaussian noise to each action
	GaussianExplore ExploreTypes = iota

	// EpsilonExplore replaces each action with a uniform random one in [-1,1]
	// with probability Epsilon
	EpsilonExplore

	ExploreTypesN
)
