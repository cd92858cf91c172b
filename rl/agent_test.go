// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rl

import (
	"errors"
	"math"
	"testing"

	"github.com/emer/neorl/neo"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

func testConfig(pol Policies) *Config {
	cfg := &Config{}
	cfg.Defaults()
	cfg.Name = pol.String()
	cfg.NumInputs = 4
	cfg.NumActions = 1
	cfg.LayerSizes = []int{16}
	cfg.Layer.Inhib.ActiveRatio = 0.25
	cfg.Policy = pol
	if pol == TDLambdaFiltered {
		cfg.Layer.Squash = neo.Linear
	}
	return cfg
}

func testAgent(t *testing.T, cfg *Config, seed uint64) *Agent {
	t.Helper()
	ag, err := NewAgent(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatal(err)
	}
	return ag
}

func randBinary(rnd *rand.Rand, in []float64) {
	for i := range in {
		in[i] = 0
		if rnd.Float64() < 0.5 {
			in[i] = 1
		}
	}
}

func checkActions(t *testing.T, ag *Agent, tick int) {
	t.Helper()
	for i, a := range ag.Actions() {
		if !(a >= -1 && a <= 1) {
			t.Fatalf("tick %d: action %d = %v outside [-1,1]\n", tick, i, a)
		}
	}
	for i, a := range ag.GreedyActions() {
		if !(a >= -1 && a <= 1) {
			t.Fatalf("tick %d: greedy action %d = %v outside [-1,1]\n", tick, i, a)
		}
	}
}

func TestNewAgentConfig(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	cfg := testConfig(QTraceRL)
	cfg.NumInputs = 0
	if _, err := NewAgent(cfg, rnd); !errors.Is(err, neo.ErrConfig) {
		t.Errorf("zero inputs: got %v, want ErrConfig\n", err)
	}
	cfg = testConfig(QTraceRL)
	cfg.LayerSizes = nil
	if _, err := NewAgent(cfg, rnd); !errors.Is(err, neo.ErrConfig) {
		t.Errorf("no layers: got %v, want ErrConfig\n", err)
	}
	cfg = testConfig(QTraceRL)
	cfg.Layer.Inhib.ActiveRatio = 0
	if _, err := NewAgent(cfg, rnd); !errors.Is(err, neo.ErrConfig) {
		t.Errorf("ratio 0: got %v, want ErrConfig\n", err)
	}
	cfg = testConfig(QReplayRL)
	cfg.Replay.Capacity = 0
	if _, err := NewAgent(cfg, rnd); !errors.Is(err, neo.ErrConfig) {
		t.Errorf("replay capacity 0: got %v, want ErrConfig\n", err)
	}

	slots := map[Policies]int{Predictive: 0, TDLambdaFiltered: 3, QTraceRL: 0, QReplayRL: 1}
	for pol, ns := range slots {
		ag := testAgent(t, testConfig(pol), 2)
		if ag.NumValueSlots() != ns {
			t.Errorf("%v: value slots %d != %d\n", pol, ag.NumValueSlots(), ns)
		}
		if got, want := ag.Net.Layer(0).NumInputs, 4+1+ns; got != want {
			t.Errorf("%v: bottom layer inputs %d != %d\n", pol, got, want)
		}
		if (ag.ReplayBuffer() != nil) != (pol == QReplayRL) {
			t.Errorf("%v: unexpected ReplayBuffer %v\n", pol, ag.ReplayBuffer())
		}
	}
}

func TestAgentRejects(t *testing.T) {
	ag := testAgent(t, testConfig(QTraceRL), 3)
	lr := &neo.LearnRates{}
	lr.Defaults()
	rnd := rand.New(rand.NewSource(4))
	in := make([]float64, 4)
	for tick := 0; tick < 10; tick++ {
		randBinary(rnd, in)
		if err := ag.SimStep(0.1, in, lr); err != nil {
			t.Fatal(err)
		}
	}
	acts := ag.Actions()
	pred := ag.Prediction()
	tick := ag.Tick

	if err := ag.SimStep(0, make([]float64, 3), lr); !errors.Is(err, neo.ErrShape) {
		t.Errorf("short input: got %v, want ErrShape\n", err)
	}
	if err := ag.SimStep(math.NaN(), in, lr); !errors.Is(err, neo.ErrNumeric) {
		t.Errorf("NaN reward: got %v, want ErrNumeric\n", err)
	}
	bad := *lr
	bad.Bias = -1
	if err := ag.SimStep(0, in, &bad); !errors.Is(err, neo.ErrConfig) {
		t.Errorf("negative rate: got %v, want ErrConfig\n", err)
	}
	ag.TD.Gamma = 2
	if err := ag.SimStep(0, in, lr); !errors.Is(err, neo.ErrConfig) {
		t.Errorf("Gamma 2: got %v, want ErrConfig\n", err)
	}
	ag.TD.Gamma = 0.99

	if ag.Tick != tick {
		t.Errorf("Tick changed by rejected steps: %d != %d\n", ag.Tick, tick)
	}
	for i, a := range ag.Actions() {
		if a != acts[i] {
			t.Errorf("action %d changed by rejected steps\n", i)
		}
	}
	for i, p := range ag.Prediction() {
		if p != pred[i] {
			t.Errorf("prediction %d changed by rejected steps\n", i)
			break
		}
	}
}

func TestAgentActionClipping(t *testing.T) {
	lr := &neo.LearnRates{}
	lr.Defaults()
	for _, et := range []ExploreTypes{GaussianExplore, EpsilonExplore} {
		cfg := testConfig(QTraceRL)
		cfg.Explore.Type = et
		cfg.Explore.Std = 1e6
		cfg.Explore.Decay = 1
		cfg.Explore.Epsilon = 1
		ag := testAgent(t, cfg, 5)
		rnd := rand.New(rand.NewSource(6))
		in := make([]float64, 4)
		for tick := 0; tick < 500; tick++ {
			randBinary(rnd, in)
			if err := ag.SimStep(rnd.Float64(), in, lr); err != nil {
				t.Fatal(err)
			}
			checkActions(t, ag, tick)
		}
	}
}

// TestAgentStability runs a single layer agent with the default config and
// rates and constant zero reward, which must stay finite and bounded.
func TestAgentStability(t *testing.T) {
	cfg := &Config{}
	cfg.Defaults()
	cfg.NumInputs = 4
	cfg.NumActions = 1
	ag := testAgent(t, cfg, 7)
	if ag.Net.NumLayers() != 1 {
		t.Fatalf("default config has %d layers, want 1\n", ag.Net.NumLayers())
	}
	lr := &neo.LearnRates{}
	lr.Defaults()
	rnd := rand.New(rand.NewSource(8))
	in := make([]float64, 4)
	for tick := 0; tick < 10000; tick++ {
		randBinary(rnd, in)
		if err := ag.SimStep(0, in, lr); err != nil {
			t.Fatal(err)
		}
		checkActions(t, ag, tick)
	}
	if err := ag.CheckFinite(); err != nil {
		t.Error(err)
	}
	if nrm := mat.Norm(ag.Net.Layer(0).Predictive(), 2); math.IsNaN(nrm) || math.IsInf(nrm, 0) {
		t.Errorf("Predictive weight norm %v\n", nrm)
	}
}

func TestAgentPolicies(t *testing.T) {
	lr := &neo.LearnRates{}
	lr.Defaults()
	lr.Decoder = 0.05
	lr.TraceDecay = 0.5
	for pol := Predictive; pol < PoliciesN; pol++ {
		cfg := testConfig(pol)
		cfg.TD.Alpha = 0.005
		cfg.TD.NormTD = pol == QReplayRL
		ag := testAgent(t, cfg, 9)
		rnd := rand.New(rand.NewSource(10))
		in := make([]float64, 4)
		for tick := 0; tick < 2000; tick++ {
			randBinary(rnd, in)
			rew := 0.0
			if in[0] == 1 && ag.Actions()[0] > 0 {
				rew = 1
			}
			if err := ag.SimStep(rew, in, lr); err != nil {
				t.Fatalf("%v tick %d: %v\n", pol, tick, err)
			}
			checkActions(t, ag, tick)
		}
		if err := ag.CheckFinite(); err != nil {
			t.Errorf("%v: %v\n", pol, err)
		}
		if ag.Tick != 2000 {
			t.Errorf("%v: Tick %d != 2000\n", pol, ag.Tick)
		}
		if pol == Predictive && (ag.Value() != 0 || ag.TDErr() != 0) {
			t.Errorf("Predictive: value %v td %v, want 0\n", ag.Value(), ag.TDErr())
		}
	}
}

func TestAgentDeterminism(t *testing.T) {
	lr := &neo.LearnRates{}
	lr.Defaults()
	run := func(seed uint64) []float64 {
		cfg := testConfig(QReplayRL)
		ag := testAgent(t, cfg, seed)
		rnd := rand.New(rand.NewSource(11))
		in := make([]float64, 4)
		var acts []float64
		for tick := 0; tick < 300; tick++ {
			randBinary(rnd, in)
			ag.SimStep(in[1], in, lr)
			acts = append(acts, ag.Actions()...)
		}
		return acts
	}
	a, b, c := run(12), run(12), run(13)
	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed: action at step %d differs: %v vs %v\n", i, a[i], b[i])
		}
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Errorf("different seeds gave identical actions\n")
	}
}

func TestAgentReplayBuffer(t *testing.T) {
	cfg := testConfig(QReplayRL)
	cfg.Replay.Capacity = 8
	cfg.Replay.Samples = 4
	ag := testAgent(t, cfg, 14)
	lr := &neo.LearnRates{}
	lr.Defaults()
	rnd := rand.New(rand.NewSource(15))
	in := make([]float64, 4)
	for tick := 0; tick < 20; tick++ {
		randBinary(rnd, in)
		if err := ag.SimStep(0, in, lr); err != nil {
			t.Fatal(err)
		}
		rb := ag.ReplayBuffer()
		newest := rb.Sample(rb.Len() - 1)
		if newest.Tick != tick {
			t.Errorf("tick %d: newest sample Tick %d\n", tick, newest.Tick)
		}
		if newest.Value != ag.Value() || newest.Corrected != ag.Value() {
			t.Errorf("tick %d: newest sample value %v corrected %v, want %v\n", tick, newest.Value, newest.Corrected, ag.Value())
		}
		for i, a := range newest.ActionExp {
			if a != ag.Actions()[i] {
				t.Errorf("tick %d: sample action %v != agent action %v\n", tick, a, ag.Actions()[i])
			}
		}
	}
	rb := ag.ReplayBuffer()
	if rb.Len() != 8 {
		t.Fatalf("buffer Len %d != capacity 8\n", rb.Len())
	}
	for i := 0; i < 8; i++ {
		if got := rb.Sample(i).Tick; got != 12+i {
			t.Errorf("sample %d Tick %d != %d\n", i, got, 12+i)
		}
	}
	ag.InitActs()
	if rb.Len() != 0 {
		t.Errorf("InitActs left %d samples\n", rb.Len())
	}
}
