// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rl

import (
	"fmt"
	"math"

	"github.com/emer/neorl/neo"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Agent is a reinforcement learning agent: a neo.Hierarchy whose bottom
// layer input is the external input, followed by the agent's own
// exploratory actions from the previous tick, followed by the value slots
// of its LearningPolicy (zero in the input, learned in the prediction).
type Agent struct {

	// name of the agent
	Name string

	// number of external input units
	NumInputs int

	// number of actions
	NumActions int

	// the learning policy -- fixed at construction
	Policy Policies `inactive:"+"`

	// temporal differences parameters -- can be changed between ticks
	TD TDParams `view:"inline"`

	// primary value / learned value filtering -- can be changed between ticks
	PVLV PVLVParams `view:"inline"`

	// exploration parameters -- can be changed between ticks
	Explore ExploreParams `view:"inline"`

	// experience replay parameters -- Capacity is only used at construction
	Replay ReplayParams `view:"inline"`

	// the hierarchy
	Net *neo.Hierarchy

	// exploration state
	Explorer Explorer `view:"-"`

	// running average of |td|, for TD.NormTD
	AvgAbsTD float64 `inactive:"+"`

	// value estimate from the previous tick
	PrevValue float64 `inactive:"+"`

	// number of ticks run
	Tick int `inactive:"+"`

	pol        LearningPolicy
	actions    []float64
	actionsExp []float64
	value      float64
	tdErr      float64
	reinforce  float64
	rnd        *rand.Rand
	inVec      *mat.VecDense
	trgVec     *mat.VecDense
}

// NewAgent returns a new agent built from cfg, with all weights and
// exploration drawn from rnd.  Returns an ErrConfig error for invalid config.
func NewAgent(cfg *Config, rnd *rand.Rand) (*Agent, error) {
	if cfg == nil {
		return nil, fmt.Errorf("rl.NewAgent: nil Config: %w", neo.ErrConfig)
	}
	if rnd == nil {
		return nil, fmt.Errorf("rl.NewAgent %s: nil rand source: %w", cfg.Name, neo.ErrConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ag := &Agent{Name: cfg.Name, NumInputs: cfg.NumInputs, NumActions: cfg.NumActions, Policy: cfg.Policy}
	ag.TD = cfg.TD
	ag.PVLV = cfg.PVLV
	ag.Explore = cfg.Explore
	ag.Replay = cfg.Replay
	ag.rnd = rnd
	ag.pol = NewPolicy(cfg.Policy)

	nin := ag.NumInputs + ag.NumActions + ag.pol.ValueSlots()
	var err error
	ag.Net, err = neo.NewHierarchy(cfg.Name, nin, cfg.LayerSizes, &cfg.Layer, rnd)
	if err != nil {
		return nil, err
	}
	if err := ag.pol.Init(ag); err != nil {
		return nil, err
	}
	ag.actions = make([]float64, ag.NumActions)
	ag.actionsExp = make([]float64, ag.NumActions)
	ag.inVec = mat.NewVecDense(nin, nil)
	ag.trgVec = mat.NewVecDense(nin, nil)
	ag.Explorer.Init(ag.NumActions, rnd)
	return ag, nil
}

// LearningPolicy returns the policy implementation
func (ag *Agent) LearningPolicy() LearningPolicy {
	return ag.pol
}

// ReplayBuffer returns the replay buffer, or nil if the policy does not replay
func (ag *Agent) ReplayBuffer() *ReplayBuffer {
	if qp, ok := ag.pol.(*QReplayPolicy); ok {
		return qp.Buffer
	}
	return nil
}

// InitActs resets the hierarchy states and traces, the actions, and the
// value and exploration state, leaving all weights as they are.
func (ag *Agent) InitActs() {
	ag.Net.InitActs()
	for i := range ag.actions {
		ag.actions[i] = 0
		ag.actionsExp[i] = 0
		ag.Explorer.Noise[i] = 0
	}
	ag.value, ag.tdErr, ag.reinforce = 0, 0, 0
	ag.PrevValue = 0
	ag.AvgAbsTD = 0
	switch pol := ag.pol.(type) {
	case *QTracePolicy:
		pol.Value.InitTraces()
	case *QReplayPolicy:
		pol.Buffer.Reset()
	}
}

// SimStep runs one tick: input and actions up, predictions down, value
// and TD error, learning toward the asymmetric target, and new actions.
// All arguments and params are validated before anything is changed.
func (ag *Agent) SimStep(reward float64, input []float64, lr *neo.LearnRates) error {
	if len(input) != ag.NumInputs {
		return fmt.Errorf("rl.Agent %s SimStep: input length %d != %d: %w", ag.Name, len(input), ag.NumInputs, neo.ErrShape)
	}
	if !isFinite(reward) {
		return fmt.Errorf("rl.Agent %s SimStep: reward = %v: %w", ag.Name, reward, neo.ErrNumeric)
	}
	if err := lr.Validate(); err != nil {
		return fmt.Errorf("rl.Agent %s SimStep: %w", ag.Name, err)
	}
	if err := validateParams(ag.Name, &ag.TD, &ag.PVLV, &ag.Explore, &ag.Replay); err != nil {
		return err
	}

	ni, na := ag.NumInputs, ag.NumActions
	in := ag.inVec.RawVector().Data
	copy(in, input)
	copy(in[ni:], ag.actionsExp)
	for i := ni + na; i < len(in); i++ {
		in[i] = 0
	}
	ag.Net.UpPass(ag.inVec)
	ag.Net.DownPass()

	q, td := ag.pol.Estimate(ag, reward)
	ag.reinforce = ag.TD.Reinforce(td, &ag.AvgAbsTD)
	ag.pol.LearnValue(ag, td, lr)

	trg := ag.trgVec.RawVector().Data
	copy(trg, input)
	if ag.pol.ExploreTarget(td) {
		copy(trg[ni:], ag.actionsExp)
	} else {
		copy(trg[ni:], ag.actions)
	}
	ag.pol.ValueTargets(ag, reward, q, td, trg[ni+na:])

	var err error
	if ag.pol.Gated() {
		err = ag.Net.LearnRL(ag.reinforce, ag.trgVec, lr)
	} else {
		err = ag.Net.Learn(ag.trgVec, lr)
	}
	if err != nil {
		return err
	}

	pred := ag.Net.Layer(0).Pred()
	for i := range ag.actions {
		ag.actions[i] = clip1(pred.AtVec(ni + i))
	}
	ag.Explorer.Explore(&ag.Explore, ag.actions, ag.actionsExp)

	ag.value = q
	ag.tdErr = td
	if err := ag.pol.PostStep(ag, td, lr); err != nil {
		return err
	}
	ag.PrevValue = q
	ag.Tick++
	return nil
}

// Actions returns a copy of the exploratory actions to execute, each in [-1,1]
func (ag *Agent) Actions() []float64 {
	return append([]float64(nil), ag.actionsExp...)
}

// GreedyActions returns a copy of the actions predicted by the network,
// before exploration, each in [-1,1]
func (ag *Agent) GreedyActions() []float64 {
	return append([]float64(nil), ag.actions...)
}

// Value returns the value estimate q from the last tick
func (ag *Agent) Value() float64 { return ag.value }

// TDErr returns the TD error from the last tick
func (ag *Agent) TDErr() float64 { return ag.tdErr }

// Reinforce returns the reinforcement magnitude from the last tick
func (ag *Agent) Reinforce() float64 { return ag.reinforce }

// Prediction returns a copy of the bottom layer's prediction, covering
// inputs, actions and value slots
func (ag *Agent) Prediction() []float64 {
	return ag.Net.Prediction()
}

// NumValueSlots returns the number of value slots in the bottom layer input
func (ag *Agent) NumValueSlots() int {
	return ag.pol.ValueSlots()
}

// ValueSlot returns the current prediction of value slot i
func (ag *Agent) ValueSlot(i int) float64 {
	return ag.Net.Layer(0).Pred().AtVec(ag.NumInputs + ag.NumActions + i)
}

// CheckFinite returns an ErrNumeric error for the first NaN or Inf value
// in the hierarchy, the value function, or the agent's own state.
func (ag *Agent) CheckFinite() error {
	if err := ag.Net.CheckFinite(); err != nil {
		return err
	}
	if qp, ok := ag.pol.(*QTracePolicy); ok {
		if err := qp.Value.CheckFinite(); err != nil {
			return err
		}
	}
	vals := []struct {
		nm string
		v  float64
	}{{"Value", ag.value}, {"TDErr", ag.tdErr}, {"AvgAbsTD", ag.AvgAbsTD}}
	for _, v := range vals {
		if !isFinite(v.v) {
			return fmt.Errorf("rl.Agent %s CheckFinite: %s = %v: %w", ag.Name, v.nm, v.v, neo.ErrNumeric)
		}
	}
	for i, a := range ag.actionsExp {
		if !isFinite(a) {
			return fmt.Errorf("rl.Agent %s CheckFinite: action %d = %v: %w", ag.Name, i, a, neo.ErrNumeric)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
