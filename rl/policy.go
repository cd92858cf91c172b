// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rl

import (
	"github.com/emer/neorl/neo"
	"gonum.org/v1/gonum/mat"
)

// LearningPolicy determines how an Agent estimates value, computes its TD
// error and learns from it.  Methods are called by Agent.SimStep in the
// order listed, once per tick.
type LearningPolicy interface {

	// Init is called by NewAgent once the hierarchy has been built
	Init(ag *Agent) error

	// ValueSlots returns the number of value slots appended to the bottom layer input
	ValueSlots() int

	// Gated returns true if bottom layer decoder learning is gated by the reinforcement signal
	Gated() bool

	// Estimate returns the value estimate q and TD error after the down pass
	Estimate(ag *Agent, reward float64) (q, td float64)

	// LearnValue updates any value estimator outside of the hierarchy
	LearnValue(ag *Agent, td float64, lr *neo.LearnRates)

	// ExploreTarget returns true if the action slots should learn toward
	// the exploratory actions, else the executed actions
	ExploreTarget(td float64) bool

	// ValueTargets sets the learning targets for the value slots
	ValueTargets(ag *Agent, reward, q, td float64, trg []float64)

	// PostStep is called after the new actions are computed
	PostStep(ag *Agent, td float64, lr *neo.LearnRates) error
}

// NewPolicy returns a new LearningPolicy of given type
func NewPolicy(pt Policies) LearningPolicy {
	switch pt {
	case TDLambdaFiltered:
		return &PVLVPolicy{}
	case QTraceRL:
		return &QTracePolicy{}
	case QReplayRL:
		return &QReplayPolicy{}
	default:
		return &PredictivePolicy{}
	}
}

///////////////////////////////////////////////////////////////////////
//  PredictivePolicy

// PredictivePolicy has no value estimate or reinforcement
type PredictivePolicy struct{}

func (pp *PredictivePolicy) Init(ag *Agent) error                                         { return nil }
func (pp *PredictivePolicy) ValueSlots() int                                              { return 0 }
func (pp *PredictivePolicy) Gated() bool                                                  { return false }
func (pp *PredictivePolicy) Estimate(ag *Agent, reward float64) (q, td float64)           { return 0, 0 }
func (pp *PredictivePolicy) LearnValue(ag *Agent, td float64, lr *neo.LearnRates)         {}
func (pp *PredictivePolicy) ExploreTarget(td float64) bool                                { return true }
func (pp *PredictivePolicy) ValueTargets(ag *Agent, reward, q, td float64, trg []float64) {}
func (pp *PredictivePolicy) PostStep(ag *Agent, td float64, lr *neo.LearnRates) error     { return nil }

///////////////////////////////////////////////////////////////////////
//  PVLVPolicy

// PVLVPolicy reads PVi, LVe and LVi from three value slots, and computes
// the TD error filtered by Agent.PVLV.
type PVLVPolicy struct {

	// PVi estimate from the last Estimate
	PVi float64

	// LVe estimate from the last Estimate
	LVe float64

	// LVi estimate from the last Estimate
	LVi float64
}

func (pp *PVLVPolicy) Init(ag *Agent) error { return nil }
func (pp *PVLVPolicy) ValueSlots() int      { return 3 }
func (pp *PVLVPolicy) Gated() bool          { return false }

func (pp *PVLVPolicy) Estimate(ag *Agent, reward float64) (q, td float64) {
	pp.PVi = ag.ValueSlot(0)
	pp.LVe = ag.ValueSlot(1)
	pp.LVi = ag.ValueSlot(2)
	return pp.PVi, ag.PVLV.TDErr(reward, pp.PVi, pp.LVe, pp.LVi)
}

func (pp *PVLVPolicy) LearnValue(ag *Agent, td float64, lr *neo.LearnRates) {}

func (pp *PVLVPolicy) ExploreTarget(td float64) bool { return td > 0 }

func (pp *PVLVPolicy) ValueTargets(ag *Agent, reward, q, td float64, trg []float64) {
	trg[0], trg[1], trg[2] = ag.PVLV.Targets(reward, pp.PVi, pp.LVe, pp.LVi)
}

func (pp *PVLVPolicy) PostStep(ag *Agent, td float64, lr *neo.LearnRates) error { return nil }

///////////////////////////////////////////////////////////////////////
//  QTracePolicy

// QTracePolicy estimates value with a separate linear ValueFunc over the
// bottom layer state and feedback.
type QTracePolicy struct {

	// the value function
	Value ValueFunc
}

func (qp *QTracePolicy) Init(ag *Agent) error {
	ly := ag.Net.Layer(0)
	qp.Value.Init(ly.NumHidden, ly.NumFeedback)
	return nil
}

func (qp *QTracePolicy) ValueSlots() int { return 0 }
func (qp *QTracePolicy) Gated() bool     { return true }

func (qp *QTracePolicy) Estimate(ag *Agent, reward float64) (q, td float64) {
	q = qp.Value.Value(ag.Net.Layer(0).State(), ag.Net.Feedback(0))
	return q, ag.TD.TDErr(reward, q, ag.PrevValue)
}

func (qp *QTracePolicy) LearnValue(ag *Agent, td float64, lr *neo.LearnRates) {
	qp.Value.Learn(ag.TD.Alpha, td, lr.TraceDecay, ag.Net.Layer(0).State(), ag.Net.Feedback(0))
}

func (qp *QTracePolicy) ExploreTarget(td float64) bool { return td > 0 }

func (qp *QTracePolicy) ValueTargets(ag *Agent, reward, q, td float64, trg []float64) {}

func (qp *QTracePolicy) PostStep(ag *Agent, td float64, lr *neo.LearnRates) error { return nil }

///////////////////////////////////////////////////////////////////////
//  QReplayPolicy

// QReplayPolicy reads the value estimate from one value slot, and replays
// stored states each tick, regressing the bottom layer's action and value
// predictions toward their TD-corrected targets.
type QReplayPolicy struct {

	// the replay buffer
	Buffer *ReplayBuffer
}

func (qp *QReplayPolicy) Init(ag *Agent) error {
	var err error
	qp.Buffer, err = NewReplayBuffer(ag.Replay.Capacity)
	return err
}

func (qp *QReplayPolicy) ValueSlots() int { return 1 }
func (qp *QReplayPolicy) Gated() bool     { return true }

func (qp *QReplayPolicy) Estimate(ag *Agent, reward float64) (q, td float64) {
	q = ag.ValueSlot(0)
	return q, ag.TD.TDErr(reward, q, ag.PrevValue)
}

func (qp *QReplayPolicy) LearnValue(ag *Agent, td float64, lr *neo.LearnRates) {}

func (qp *QReplayPolicy) ExploreTarget(td float64) bool { return td > 0 }

func (qp *QReplayPolicy) ValueTargets(ag *Agent, reward, q, td float64, trg []float64) {
	trg[0] = reward + ag.TD.Gamma*q
}

// PostStep corrects the stored values with td (the error of the previous
// tick's value), adds the current tick, and replays Agent.Replay.Samples
// randomly drawn samples.
func (qp *QReplayPolicy) PostStep(ag *Agent, td float64, lr *neo.LearnRates) error {
	qp.Buffer.Correct(td, ag.TD.Alpha, ag.TD.Gamma)
	ly := ag.Net.Layer(0)
	qp.Buffer.Push(ReplaySample{
		Tick:      ag.Tick,
		State:     mat.Col(nil, 0, ly.State()),
		Feedback:  mat.Col(nil, 0, ag.Net.Feedback(0)),
		Action:    append([]float64(nil), ag.actions...),
		ActionExp: append([]float64(nil), ag.actionsExp...),
		Value:     ag.value,
		Corrected: ag.value,
	})
	rate := lr.Decoder * ag.Replay.Rate
	if rate == 0 {
		return nil
	}
	vrow := ag.NumInputs + ag.NumActions
	for _, si := range qp.Buffer.Draw(ag.rnd, ag.Replay.Samples) {
		s := qp.Buffer.Sample(si)
		st := mat.NewVecDense(len(s.State), s.State)
		fb := mat.NewVecDense(len(s.Feedback), s.Feedback)
		better := s.Corrected > s.Value
		for a := 0; a < ag.NumActions; a++ {
			trg := s.Action[a]
			if better {
				trg = s.ActionExp[a]
			}
			if err := ly.RegressRow(ag.NumInputs+a, trg, st, fb, rate); err != nil {
				return err
			}
		}
		if err := ly.RegressRow(vrow, s.Corrected, st, fb, rate); err != nil {
			return err
		}
	}
	return nil
}
