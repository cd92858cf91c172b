// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neo

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Hierarchy is an ordered stack of Layers.  Layer 0 receives the external
// input, and each layer l > 0 receives the state of layer l-1 as input.
// Each layer l below the top receives the prediction of layer l+1 as
// top-down feedback, and the top layer receives a single zero.
//
// The Hierarchy owns the layers and sequences all calls between them --
// layers never reference each other.
type Hierarchy struct {

	// name of the hierarchy, used in error messages and reports
	Name string

	// number of external input units -- the NumInputs of layer 0
	NumInputs int

	// the layers, bottom (0) to top
	Layers []*Layer

	// zero feedback for the top layer
	topFb *mat.VecDense

	// external input scratch
	inVec *mat.VecDense
}

// NewHierarchy returns a new hierarchy of len(sizes) layers with the given
// hidden unit counts, bottom to top, all built with the same LayerParams.
// Returns an ErrConfig error if sizes is empty or any width is not positive.
func NewHierarchy(name string, numInputs int, sizes []int, lp *LayerParams, rnd *rand.Rand) (*Hierarchy, error) {
	if len(sizes) == 0 {
		return nil, fmt.Errorf("neo.NewHierarchy %s: no layer sizes: %w", name, ErrConfig)
	}
	if numInputs <= 0 {
		return nil, fmt.Errorf("neo.NewHierarchy %s: numInputs %d must be > 0: %w", name, numInputs, ErrConfig)
	}
	hi := &Hierarchy{Name: name, NumInputs: numInputs}
	nl := len(sizes)
	for l, nh := range sizes {
		nin := numInputs
		if l > 0 {
			nin = sizes[l-1]
		}
		nfb := 1
		if l < nl-1 {
			nfb = nh // the prediction of layer l+1 is a prediction of this layer's state
		}
		ly, err := NewLayer(fmt.Sprintf("%s.Layer%d", name, l), nin, nh, nfb, lp, rnd)
		if err != nil {
			return nil, err
		}
		hi.Layers = append(hi.Layers, ly)
	}
	hi.topFb = mat.NewVecDense(1, nil)
	hi.inVec = mat.NewVecDense(numInputs, nil)
	return hi, nil
}

// NumLayers returns the number of layers
func (hi *Hierarchy) NumLayers() int {
	return len(hi.Layers)
}

// Layer returns layer at given index, bottom = 0
func (hi *Hierarchy) Layer(idx int) *Layer {
	return hi.Layers[idx]
}

// Top returns the top layer
func (hi *Hierarchy) Top() *Layer {
	return hi.Layers[len(hi.Layers)-1]
}

// InitWeights re-initializes all layer weights from rnd, and zeroes all states and traces
func (hi *Hierarchy) InitWeights(rnd *rand.Rand) {
	for _, ly := range hi.Layers {
		ly.InitWeights(rnd)
	}
}

// InitActs zeroes all states, predictions and traces
func (hi *Hierarchy) InitActs() {
	for _, ly := range hi.Layers {
		ly.InitActs()
	}
}

// SimStep runs one full tick on input: UpPass, DownPass, and Learn toward the input.
// input and rates are validated before anything is changed.
func (hi *Hierarchy) SimStep(input []float64, lr *LearnRates) error {
	if err := checkLen("neo.Hierarchy "+hi.Name+" SimStep", "input", len(input), hi.NumInputs); err != nil {
		return err
	}
	if err := lr.Validate(); err != nil {
		return fmt.Errorf("neo.Hierarchy %s SimStep: %w", hi.Name, err)
	}
	hi.inVec.CopyVec(mat.NewVecDense(len(input), input))
	hi.upPass(hi.inVec)
	hi.downPass()
	return hi.Learn(hi.inVec, lr)
}

// UpPass runs the up pass on the external input, bottom to top.
func (hi *Hierarchy) UpPass(input mat.Vector) error {
	if err := checkLen("neo.Hierarchy "+hi.Name+" UpPass", "input", input.Len(), hi.NumInputs); err != nil {
		return err
	}
	hi.upPass(input)
	return nil
}

func (hi *Hierarchy) upPass(input mat.Vector) {
	for l, ly := range hi.Layers {
		if l == 0 {
			ly.UpPass(input)
		} else {
			ly.UpPass(hi.Layers[l-1].State())
		}
	}
}

// DownPass runs the down pass, top to bottom.  All layers above the bottom
// produce thresholded predictions (they predict the binary state of the
// layer below), and the bottom layer applies its Squash function.
func (hi *Hierarchy) DownPass() {
	hi.downPass()
}

func (hi *Hierarchy) downPass() {
	for l := len(hi.Layers) - 1; l >= 0; l-- {
		hi.Layers[l].DownPass(hi.Feedback(l), l != 0)
	}
}

// Feedback returns the current feedback vector for layer l:
// the prediction of layer l+1, or zero for the top layer.
func (hi *Hierarchy) Feedback(l int) mat.Vector {
	if l < len(hi.Layers)-1 {
		return hi.Layers[l+1].Pred()
	}
	return hi.topFb
}

// FeedbackPrev returns the feedback vector that layer l received in the
// previous down pass: the previous prediction of layer l+1, or zero for the top layer.
func (hi *Hierarchy) FeedbackPrev(l int) mat.Vector {
	if l < len(hi.Layers)-1 {
		return hi.Layers[l+1].PredPrev()
	}
	return hi.topFb
}

// Learn runs the learn pass, bottom to top: layer 0 learns toward target0,
// and each layer above learns toward the state of the layer below.
func (hi *Hierarchy) Learn(target0 mat.Vector, lr *LearnRates) error {
	return hi.learn(target0, lr, 0, false)
}

// LearnRL is Learn with reinforcement-gated decoder learning in layer 0
// (see Layer.LearnRL).  Layers above the bottom learn as in Learn.
func (hi *Hierarchy) LearnRL(reinforce float64, target0 mat.Vector, lr *LearnRates) error {
	return hi.learn(target0, lr, reinforce, true)
}

func (hi *Hierarchy) learn(target0 mat.Vector, lr *LearnRates, reinforce float64, rl bool) error {
	bot := hi.Layers[0]
	if err := checkLen("neo.Hierarchy "+hi.Name+" Learn", "target", target0.Len(), bot.NumInputs); err != nil {
		return err
	}
	if err := lr.Validate(); err != nil {
		return fmt.Errorf("neo.Hierarchy %s Learn: %w", hi.Name, err)
	}
	for l, ly := range hi.Layers {
		var err error
		switch {
		case l == 0 && rl:
			err = ly.LearnRL(reinforce, target0, hi.FeedbackPrev(l), lr)
		case l == 0:
			err = ly.Learn(target0, hi.FeedbackPrev(l), lr)
		default:
			err = ly.Learn(hi.Layers[l-1].State(), hi.FeedbackPrev(l), lr)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Prediction returns a copy of the bottom layer's current prediction --
// the forecast of the next external input.
func (hi *Hierarchy) Prediction() []float64 {
	return mat.Col(nil, 0, hi.Layers[0].Pred())
}

// CheckFinite returns an ErrNumeric error naming the first layer
// with a NaN or Inf weight, trace or state value.
func (hi *Hierarchy) CheckFinite() error {
	for _, ly := range hi.Layers {
		if err := ly.CheckFinite(); err != nil {
			return err
		}
	}
	return nil
}
