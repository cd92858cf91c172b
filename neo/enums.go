// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neo

import "github.com/goki/ki/kit"

// Competitions are the ways the up pass can select the active units
type Competitions int32

//go:generate stringer -type=Competitions

var KiT_Competitions = kit.Enums.AddEnum(CompetitionsN, kit.NotBitFlag, nil)

func (ev Competitions) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Competitions) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Single runs one k-winners competition over bias + feedforward + recurrent drive.
	// Exactly k units are active after every up pass.
	Single Competitions = iota

	// Split runs separate k-winners competitions over bias + feedforward drive and
	// over recurrent drive from the previous state, and combines them with element-wise max.
	// Between k and 2k units are active, and the recurrent traces learn from
	// the difference between the feedforward and recurrent codes.
	Split

	CompetitionsN
)

// EncoderRules are the learning rules for the feedforward and recurrent (encoder) weights
type EncoderRules int32

//go:generate stringer -type=EncoderRules

var KiT_EncoderRules = kit.Enums.AddEnum(EncoderRulesN, kit.NotBitFlag, nil)

func (ev EncoderRules) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *EncoderRules) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// TraceEncoder learns from the hidden error (prediction error sent back through the
	// predictive weights, gated by the previous state) times eligibility traces of
	// recent unit / input co-activation.
	TraceEncoder EncoderRules = iota

	// CompetitiveEncoder moves the weights of each active unit toward its current input
	// (Hebbian target minus normalization), independent of prediction error.
	CompetitiveEncoder

	EncoderRulesN
)

// BiasRules are the learning rules for the unit biases
type BiasRules int32

//go:generate stringer -type=BiasRules

var KiT_BiasRules = kit.Enums.AddEnum(BiasRulesN, kit.NotBitFlag, nil)

func (ev BiasRules) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *BiasRules) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// PredErrBias adds the prediction error sent back through the predictive weights.
	// The bias rate must be far below the decoder rate (on the order of 1e-5 for a
	// decoder rate of 0.1): at comparable rates the biases chase the decoder's
	// own error and the sparse code stops tracking the input.
	PredErrBias BiasRules = iota

	// HomeostaticBias pushes each unit's activity toward ActiveRatio:
	// units that won lose bias, units that lost gain it.
	HomeostaticBias

	BiasRulesN
)

// SquashFuncs are the output functions applied to unthresholded predictions
type SquashFuncs int32

//go:generate stringer -type=SquashFuncs

var KiT_SquashFuncs = kit.Enums.AddEnum(SquashFuncsN, kit.NotBitFlag, nil)

func (ev SquashFuncs) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *SquashFuncs) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Linear leaves predictions as the raw weighted sum
	Linear SquashFuncs = iota

	// Tanh bounds predictions to (-1,1), for continuous outputs such as actions
	Tanh

	SquashFuncsN
)
