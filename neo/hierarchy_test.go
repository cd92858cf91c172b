// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neo

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

func oneHot(n, i int) []float64 {
	v := make([]float64, n)
	v[i] = 1
	return v
}

func TestNewHierarchy(t *testing.T) {
	lp := &LayerParams{}
	lp.Defaults()
	rnd := rand.New(rand.NewSource(1))
	if _, err := NewHierarchy("Empty", 4, nil, lp, rnd); !errors.Is(err, ErrConfig) {
		t.Errorf("no layers: got %v, want ErrConfig\n", err)
	}
	if _, err := NewHierarchy("BadWidth", 4, []int{10, 0}, lp, rnd); !errors.Is(err, ErrConfig) {
		t.Errorf("zero width: got %v, want ErrConfig\n", err)
	}
	hi, err := NewHierarchy("Test", 6, []int{20, 12, 8}, lp, rnd)
	if err != nil {
		t.Fatal(err)
	}
	if hi.NumLayers() != 3 {
		t.Fatalf("NumLayers: %d\n", hi.NumLayers())
	}
	want := [][3]int{{6, 20, 20}, {20, 12, 12}, {12, 8, 1}}
	for l, w := range want {
		ly := hi.Layer(l)
		got := [3]int{ly.NumInputs, ly.NumHidden, ly.NumFeedback}
		if got != w {
			t.Errorf("layer %d inputs, hidden, feedback: %v, want %v\n", l, got, w)
		}
	}
	if hi.SizeReport() == "" {
		t.Errorf("empty SizeReport\n")
	}
}

func TestHierarchyShape(t *testing.T) {
	lp := &LayerParams{}
	lp.Defaults()
	lr := &LearnRates{}
	lr.Defaults()
	hi, err := NewHierarchy("Test", 4, []int{10, 5}, lp, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatal(err)
	}
	hi.SimStep(oneHot(4, 0), lr)
	pr := hi.Prediction()
	st := mat.VecDenseCopyOf(hi.Layer(0).State())
	if err := hi.SimStep(make([]float64, 5), lr); !errors.Is(err, ErrShape) {
		t.Errorf("long input: got %v, want ErrShape\n", err)
	}
	if err := hi.SimStep(oneHot(4, 1), nil); !errors.Is(err, ErrConfig) {
		t.Errorf("nil rates: got %v, want ErrConfig\n", err)
	}
	if !mat.Equal(st, hi.Layer(0).State()) {
		t.Errorf("State changed by rejected SimStep\n")
	}
	for i, p := range hi.Prediction() {
		if p != pr[i] {
			t.Errorf("Prediction changed by rejected SimStep\n")
			break
		}
	}
}

// seqError runs a period-4 one-hot sequence through hi and returns the
// running average rate of thresholded prediction errors.
func seqError(t *testing.T, hi *Hierarchy, lr *LearnRates, ticks int) float64 {
	t.Helper()
	errAvg := 1.0
	for tick := 0; tick < ticks; tick++ {
		in := oneHot(4, tick%4)
		if tick > 0 {
			pr := hi.Prediction()
			miss := 0.0
			for i, p := range pr {
				pb := 0.0
				if p > 0.5 {
					pb = 1
				}
				if pb != in[i] {
					miss = 1
					break
				}
			}
			errAvg = 0.99*errAvg + 0.01*miss
		}
		if err := hi.SimStep(in, lr); err != nil {
			t.Fatal(err)
		}
	}
	return errAvg
}

func TestHierarchyConvergence(t *testing.T) {
	lp := &LayerParams{}
	lp.Defaults()
	lp.Inhib.ActiveRatio = 0.25
	lp.InitMinWt = -0.001
	lp.InitMaxWt = 0.001
	lr := &LearnRates{Encoder: 0.01, Recurrent: 0.01, Decoder: 0.1, Bias: 0.1, TraceDecay: 0.95}
	hi, err := NewHierarchy("Seq", 4, []int{4, 3}, lp, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if hi.Layer(0).Params.Bias != HomeostaticBias {
		t.Errorf("default Bias rule %v, want HomeostaticBias\n", hi.Layer(0).Params.Bias)
	}
	errAvg := seqError(t, hi, lr, 5000)
	if errAvg >= 0.1 {
		t.Errorf("prediction error rate %v after 5000 ticks, want < 0.1\n", errAvg)
	}
	if err := hi.CheckFinite(); err != nil {
		t.Error(err)
	}
}

// TestHierarchyConvergenceRules runs the period-4 sequence with each encoder
// and bias rule. PredErrBias needs a bias rate far below the decoder rate.
func TestHierarchyConvergenceRules(t *testing.T) {
	tests := []struct {
		enc  EncoderRules
		bias BiasRules
		rate float64
	}{
		{TraceEncoder, HomeostaticBias, 0.1},
		{TraceEncoder, HomeostaticBias, 1e-5},
		{TraceEncoder, PredErrBias, 1e-5},
		{CompetitiveEncoder, HomeostaticBias, 1e-5},
		{CompetitiveEncoder, PredErrBias, 1e-5},
	}
	for _, tt := range tests {
		lp := &LayerParams{}
		lp.Defaults()
		lp.Inhib.ActiveRatio = 0.25
		lp.Encoder = tt.enc
		lp.Bias = tt.bias
		lp.InitMinWt = -0.001
		lp.InitMaxWt = 0.001
		lr := &LearnRates{Encoder: 0.01, Recurrent: 0.01, Decoder: 0.1, Bias: tt.rate, TraceDecay: 0.95}
		hi, err := NewHierarchy("Seq", 4, []int{4, 3}, lp, rand.New(rand.NewSource(1)))
		if err != nil {
			t.Fatal(err)
		}
		errAvg := seqError(t, hi, lr, 5000)
		if errAvg >= 0.1 {
			t.Errorf("%v %v bias rate %g: prediction error rate %v after 5000 ticks, want < 0.1\n", tt.enc, tt.bias, tt.rate, errAvg)
		}
	}
}

func TestHierarchyDeterminism(t *testing.T) {
	lp := &LayerParams{}
	lp.Defaults()
	lp.Inhib.ActiveRatio = 0.2
	lr := &LearnRates{}
	lr.Defaults()
	run := func(seed uint64) []float64 {
		hi, err := NewHierarchy("Det", 4, []int{10, 5}, lp, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatal(err)
		}
		for tick := 0; tick < 100; tick++ {
			hi.SimStep(oneHot(4, (tick*3)%4), lr)
		}
		return hi.Prediction()
	}
	a, b, c := run(5), run(5), run(6)
	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("same seed: prediction %d differs: %v vs %v\n", i, a[i], b[i])
		}
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Errorf("different seeds gave identical predictions\n")
	}
}

func TestHierarchyWeightsJSON(t *testing.T) {
	lp := &LayerParams{}
	lp.Defaults()
	lr := &LearnRates{}
	lr.Defaults()
	hi, _ := NewHierarchy("Wts", 4, []int{10, 5}, lp, rand.New(rand.NewSource(3)))
	for tick := 0; tick < 50; tick++ {
		hi.SimStep(oneHot(4, tick%4), lr)
	}
	var b bytes.Buffer
	if err := hi.WriteWeightsJSON(&b); err != nil {
		t.Fatal(err)
	}
	h2, _ := NewHierarchy("Wts", 4, []int{10, 5}, lp, rand.New(rand.NewSource(4)))
	if err := h2.ReadWeightsJSON(&b); err != nil {
		t.Fatal(err)
	}
	h3, _ := NewHierarchy("Wts", 4, []int{10, 5}, lp, rand.New(rand.NewSource(5)))
	fn := filepath.Join(t.TempDir(), "wts.json.gz")
	if err := hi.SaveWeightsJSON(fn); err != nil {
		t.Fatal(err)
	}
	if err := h3.OpenWeightsJSON(fn); err != nil {
		t.Fatal(err)
	}
	for l := 0; l < hi.NumLayers(); l++ {
		for _, hc := range []*Hierarchy{h2, h3} {
			if !mat.Equal(hi.Layer(l).FeedForward(), hc.Layer(l).FeedForward()) {
				t.Errorf("layer %d FeedForward weights differ after load\n", l)
			}
			if !mat.Equal(hi.Layer(l).Predictive(), hc.Layer(l).Predictive()) {
				t.Errorf("layer %d Predictive weights differ after load\n", l)
			}
			if !mat.Equal(hi.Layer(l).Bias(), hc.Layer(l).Bias()) {
				t.Errorf("layer %d Bias differs after load\n", l)
			}
		}
	}

	h4, _ := NewHierarchy("Wts", 4, []int{10, 6}, lp, rand.New(rand.NewSource(5)))
	b.Reset()
	hi.WriteWeightsJSON(&b)
	if err := h4.ReadWeightsJSON(&b); !errors.Is(err, ErrShape) {
		t.Errorf("mismatched shapes: got %v, want ErrShape\n", err)
	}
}

func TestHierarchySetWeightsRejects(t *testing.T) {
	lp := &LayerParams{}
	lp.Defaults()
	src, _ := NewHierarchy("Wts", 4, []int{10, 5}, lp, rand.New(rand.NewSource(6)))
	hi, _ := NewHierarchy("Wts", 4, []int{10, 5}, lp, rand.New(rand.NewSource(7)))
	ff := mat.DenseCopyOf(hi.Layer(0).FeedForward())
	bias := mat.VecDenseCopyOf(hi.Layer(0).Bias())

	hw := src.Weights()
	hw.Layers[1].Bias = hw.Layers[1].Bias[:2]
	if err := hi.SetWeights(hw); !errors.Is(err, ErrShape) {
		t.Errorf("truncated layer 1 Bias: got %v, want ErrShape\n", err)
	}
	hw = src.Weights()
	hw.Layers[1].Recurrent = hw.Layers[1].Recurrent[1:]
	if err := hi.SetWeights(hw); !errors.Is(err, ErrShape) {
		t.Errorf("truncated layer 1 Recurrent: got %v, want ErrShape\n", err)
	}
	if !mat.Equal(ff, hi.Layer(0).FeedForward()) {
		t.Errorf("layer 0 FeedForward weights changed by rejected SetWeights\n")
	}
	if !mat.Equal(bias, hi.Layer(0).Bias()) {
		t.Errorf("layer 0 Bias changed by rejected SetWeights\n")
	}
}
