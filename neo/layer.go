// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neo

import (
	"fmt"
	"log"
	"math"

	"github.com/emer/neorl/kwta"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Layer is a fully-connected sparse predictive layer.  It has NumInputs input
// units, NumHidden hidden units whose binary state is the sparse code, and
// receives a NumFeedback wide top-down feedback vector in the down pass.
//
// Weights:
//   - feedforward [NumHidden x NumInputs]: input -> hidden activation
//   - recurrent [NumHidden x NumHidden]: previous state -> hidden activation
//   - predictive [NumInputs x NumHidden]: state -> prediction of next input
//   - feedback [NumInputs x NumFeedback]: top-down feedback -> prediction
//   - bias [NumHidden]: added to hidden activation
//
// Each weight matrix has an eligibility trace matrix of the same shape.
type Layer struct {

	// name of the layer, used in error messages and reports
	Name string

	// number of input units -- length of input, target and prediction vectors
	NumInputs int

	// number of hidden units -- length of the state vector
	NumHidden int

	// length of the feedback vector
	NumFeedback int

	// construction parameters -- copied from the LayerParams passed to NewLayer
	Params LayerParams

	// state of the last k-winners competition -- the only one in Single mode,
	// the feedforward one in Split mode
	Inhib kwta.Inhib `view:"-"`

	// state of the last recurrent k-winners competition, Split mode only
	InhibRec kwta.Inhib `view:"-"`

	ff   *mat.Dense
	rec  *mat.Dense
	pred *mat.Dense
	fb   *mat.Dense
	bias *mat.VecDense

	ffTr   *mat.Dense
	recTr  *mat.Dense
	predTr *mat.Dense
	fbTr   *mat.Dense

	input     *mat.VecDense
	state     *mat.VecDense
	statePrev *mat.VecDense
	stateFF   *mat.VecDense
	stateRec  *mat.VecDense
	predAct   *mat.VecDense
	predPrev  *mat.VecDense

	// scratch
	act    *mat.VecDense
	actRec *mat.VecDense
	predFb *mat.VecDense
	predEr *mat.VecDense
	hidErr *mat.VecDense
	hidTmp *mat.VecDense
}

// NewLayer returns a new layer with weights initialized uniformly in
// [lp.InitMinWt, lp.InitMaxWt] from rnd, and all states and traces zero.
// Returns an ErrConfig error for zero widths or invalid params.
func NewLayer(name string, nIn, nHid, nFb int, lp *LayerParams, rnd *rand.Rand) (*Layer, error) {
	if nIn <= 0 || nHid <= 0 || nFb <= 0 {
		return nil, fmt.Errorf("neo.NewLayer %s: widths must be > 0, got inputs: %d hidden: %d feedback: %d: %w", name, nIn, nHid, nFb, ErrConfig)
	}
	if lp == nil {
		return nil, fmt.Errorf("neo.NewLayer %s: nil LayerParams: %w", name, ErrConfig)
	}
	if err := lp.Validate(); err != nil {
		return nil, fmt.Errorf("neo.NewLayer %s: %w", name, err)
	}
	if rnd == nil {
		return nil, fmt.Errorf("neo.NewLayer %s: nil rand source: %w", name, ErrConfig)
	}
	ly := &Layer{Name: name, NumInputs: nIn, NumHidden: nHid, NumFeedback: nFb, Params: *lp}
	if ly.Params.Inhib.K(nHid) == 0 {
		log.Printf("neo.NewLayer %s: ActiveRatio %g * %d hidden units rounds to 0 active units -- the sparse code will always be empty\n", name, lp.Inhib.ActiveRatio, nHid)
	}
	ly.build()
	ly.InitWeights(rnd)
	return ly, nil
}

func (ly *Layer) build() {
	ni, nh, nf := ly.NumInputs, ly.NumHidden, ly.NumFeedback
	ly.ff = mat.NewDense(nh, ni, nil)
	ly.rec = mat.NewDense(nh, nh, nil)
	ly.pred = mat.NewDense(ni, nh, nil)
	ly.fb = mat.NewDense(ni, nf, nil)
	ly.bias = mat.NewVecDense(nh, nil)

	ly.ffTr = mat.NewDense(nh, ni, nil)
	ly.recTr = mat.NewDense(nh, nh, nil)
	ly.predTr = mat.NewDense(ni, nh, nil)
	ly.fbTr = mat.NewDense(ni, nf, nil)

	ly.input = mat.NewVecDense(ni, nil)
	ly.state = mat.NewVecDense(nh, nil)
	ly.statePrev = mat.NewVecDense(nh, nil)
	ly.stateFF = mat.NewVecDense(nh, nil)
	ly.stateRec = mat.NewVecDense(nh, nil)
	ly.predAct = mat.NewVecDense(ni, nil)
	ly.predPrev = mat.NewVecDense(ni, nil)

	ly.act = mat.NewVecDense(nh, nil)
	ly.actRec = mat.NewVecDense(nh, nil)
	ly.predFb = mat.NewVecDense(ni, nil)
	ly.predEr = mat.NewVecDense(ni, nil)
	ly.hidErr = mat.NewVecDense(nh, nil)
	ly.hidTmp = mat.NewVecDense(nh, nil)
}

// InitWeights draws all weights and biases uniformly in
// [Params.InitMinWt, Params.InitMaxWt] from rnd, and calls InitActs.
func (ly *Layer) InitWeights(rnd *rand.Rand) {
	un := distuv.Uniform{Min: ly.Params.InitMinWt, Max: ly.Params.InitMaxWt, Src: rnd}
	for _, m := range []*mat.Dense{ly.ff, ly.rec, ly.pred, ly.fb} {
		wts := m.RawMatrix().Data
		for i := range wts {
			wts[i] = un.Rand()
		}
	}
	bs := ly.bias.RawVector().Data
	for i := range bs {
		bs[i] = un.Rand()
	}
	ly.InitActs()
}

// InitActs zeroes all states, predictions and traces, leaving weights as they are.
func (ly *Layer) InitActs() {
	for _, m := range []*mat.Dense{ly.ffTr, ly.recTr, ly.predTr, ly.fbTr} {
		m.Zero()
	}
	for _, v := range []*mat.VecDense{ly.input, ly.state, ly.statePrev, ly.stateFF, ly.stateRec, ly.predAct, ly.predPrev} {
		v.Zero()
	}
	ly.Inhib.Init()
	ly.InhibRec.Init()
}

func (ly *Layer) ctxt(method string) string {
	return "neo.Layer " + ly.Name + " " + method
}

///////////////////////////////////////////////////////////////////////
//  Accessors -- all vectors are owned by the layer and must not be modified

// Input returns the input from the most recent UpPass
func (ly *Layer) Input() mat.Vector { return ly.input }

// State returns the current binary sparse code
func (ly *Layer) State() mat.Vector { return ly.state }

// StatePrev returns the sparse code from the previous tick
func (ly *Layer) StatePrev() mat.Vector { return ly.statePrev }

// Pred returns the current prediction of the next input
func (ly *Layer) Pred() mat.Vector { return ly.predAct }

// PredPrev returns the prediction made on the previous tick
func (ly *Layer) PredPrev() mat.Vector { return ly.predPrev }

// FeedForward returns the [NumHidden x NumInputs] feedforward weights
func (ly *Layer) FeedForward() mat.Matrix { return ly.ff }

// Recurrent returns the [NumHidden x NumHidden] recurrent weights
func (ly *Layer) Recurrent() mat.Matrix { return ly.rec }

// Predictive returns the [NumInputs x NumHidden] predictive weights
func (ly *Layer) Predictive() mat.Matrix { return ly.pred }

// Feedback returns the [NumInputs x NumFeedback] feedback weights
func (ly *Layer) Feedback() mat.Matrix { return ly.fb }

// Bias returns the NumHidden unit biases
func (ly *Layer) Bias() mat.Vector { return ly.bias }

// NActive returns the number of active units in the current state
func (ly *Layer) NActive() int {
	n := 0
	for _, s := range ly.state.RawVector().Data {
		if s != 0 {
			n++
		}
	}
	return n
}

///////////////////////////////////////////////////////////////////////
//  Up and down passes

// UpPass computes the new sparse state from input: the previous state is
// saved in StatePrev, and the k units with highest bias + feedforward +
// recurrent drive become active (see Competitions for the Split variant).
// Returns an ErrShape error, without changing anything, if input is not
// NumInputs long.
func (ly *Layer) UpPass(input mat.Vector) error {
	if err := checkLen(ly.ctxt("UpPass"), "input", input.Len(), ly.NumInputs); err != nil {
		return err
	}
	ly.input.CopyVec(input)
	ly.statePrev.CopyVec(ly.state)

	ly.act.MulVec(ly.ff, ly.input)
	ly.act.AddVec(ly.act, ly.bias)
	ly.actRec.MulVec(ly.rec, ly.statePrev)

	st := ly.state.RawVector().Data
	switch ly.Params.Competition {
	case Split:
		sff := ly.stateFF.RawVector().Data
		srec := ly.stateRec.RawVector().Data
		ly.Params.Inhib.Select(ly.act.RawVector().Data, sff, &ly.Inhib)
		ly.Params.Inhib.Select(ly.actRec.RawVector().Data, srec, &ly.InhibRec)
		for i := range st {
			st[i] = math.Max(sff[i], srec[i])
		}
	default:
		ly.act.AddVec(ly.act, ly.actRec)
		ly.Params.Inhib.Select(ly.act.RawVector().Data, st, &ly.Inhib)
	}
	return nil
}

// DownPass computes the new prediction from the current state and the
// top-down feedback vector, saving the previous prediction in PredPrev.
// If thresholded, predictions are binarized (1 if > 0.5, else 0),
// otherwise the Params.Squash output function is applied.
// Returns an ErrShape error, without changing anything, if feedback is not
// NumFeedback long.
func (ly *Layer) DownPass(feedback mat.Vector, thresholded bool) error {
	if err := checkLen(ly.ctxt("DownPass"), "feedback", feedback.Len(), ly.NumFeedback); err != nil {
		return err
	}
	ly.predPrev.CopyVec(ly.predAct)
	ly.predAct.MulVec(ly.pred, ly.state)
	ly.predFb.MulVec(ly.fb, feedback)
	ly.predAct.AddVec(ly.predAct, ly.predFb)

	pr := ly.predAct.RawVector().Data
	switch {
	case thresholded:
		for i, p := range pr {
			if p > 0.5 {
				pr[i] = 1
			} else {
				pr[i] = 0
			}
		}
	case ly.Params.Squash == Tanh:
		for i, p := range pr {
			pr[i] = math.Tanh(p)
		}
	}
	return nil
}
