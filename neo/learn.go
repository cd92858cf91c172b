// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

///////////////////////////////////////////////////////////////////////
//  learn.go contains the local learning rules for Layer

// Learn updates all weights from the error between target and the prediction
// made on the previous tick (PredPrev).  feedbackPrev must be the feedback
// vector that was passed to the previous DownPass.  Decoder weights learn
// with the plain delta rule.
func (ly *Layer) Learn(target, feedbackPrev mat.Vector, lr *LearnRates) error {
	if err := ly.checkLearn("Learn", target, feedbackPrev, lr); err != nil {
		return err
	}
	ly.learnErr(target)
	ly.learnEncoder(lr)
	ly.pred.RankOne(ly.pred, lr.Decoder, ly.predEr, ly.statePrev)
	ly.fb.RankOne(ly.fb, lr.Decoder, ly.predEr, feedbackPrev)
	ly.learnBias(lr)
	return nil
}

// LearnRL is Learn with reinforcement-gated decoder learning: the decoder
// weights move along eligibility traces of the prediction error, scaled by
// reinforce.  Encoder and bias learning are the same as Learn.
func (ly *Layer) LearnRL(reinforce float64, target, feedbackPrev mat.Vector, lr *LearnRates) error {
	if err := ly.checkLearn("LearnRL", target, feedbackPrev, lr); err != nil {
		return err
	}
	if !isFinite(reinforce) {
		return fmt.Errorf("%s: reinforce = %v: %w", ly.ctxt("LearnRL"), reinforce, ErrNumeric)
	}
	ly.learnErr(target)
	ly.learnEncoder(lr)

	ly.predTr.Scale(lr.TraceDecay, ly.predTr)
	ly.predTr.RankOne(ly.predTr, 1, ly.predEr, ly.statePrev)
	ly.fbTr.Scale(lr.TraceDecay, ly.fbTr)
	ly.fbTr.RankOne(ly.fbTr, 1, ly.predEr, feedbackPrev)

	dw := lr.Decoder * reinforce
	if dw != 0 {
		addScaledDense(ly.pred, dw, ly.predTr)
		addScaledDense(ly.fb, dw, ly.fbTr)
	}
	ly.learnBias(lr)
	return nil
}

func (ly *Layer) checkLearn(method string, target, feedbackPrev mat.Vector, lr *LearnRates) error {
	ctxt := ly.ctxt(method)
	if err := checkLen(ctxt, "target", target.Len(), ly.NumInputs); err != nil {
		return err
	}
	if err := checkLen(ctxt, "feedbackPrev", feedbackPrev.Len(), ly.NumFeedback); err != nil {
		return err
	}
	if err := lr.Validate(); err != nil {
		return fmt.Errorf("%s: %w", ctxt, err)
	}
	return nil
}

// learnErr computes the prediction error vs. PredPrev, and the hidden error:
// the prediction error sent back through the predictive weights, restricted
// to the units that were active when the prediction was made.
func (ly *Layer) learnErr(target mat.Vector) {
	ly.predEr.SubVec(target, ly.predPrev)
	ly.hidErr.MulVec(ly.pred.T(), ly.predEr)
	ly.hidErr.MulElemVec(ly.hidErr, ly.statePrev)
}

func (ly *Layer) learnEncoder(lr *LearnRates) {
	switch ly.Params.Encoder {
	case CompetitiveEncoder:
		ly.learnEncoderCompetitive(lr)
	default:
		ly.learnEncoderTrace(lr)
	}
}

// learnEncoderTrace applies the hidden error along the eligibility traces
// (which end at the previous tick), then adds the current co-activation to the traces.
func (ly *Layer) learnEncoderTrace(lr *LearnRates) {
	for i, he := range ly.hidErr.RawVector().Data {
		if he == 0 {
			continue
		}
		floats.AddScaled(ly.ff.RawRowView(i), lr.Encoder*he, ly.ffTr.RawRowView(i))
		floats.AddScaled(ly.rec.RawRowView(i), lr.Recurrent*he, ly.recTr.RawRowView(i))
	}

	ly.ffTr.Scale(lr.TraceDecay, ly.ffTr)
	ly.ffTr.RankOne(ly.ffTr, 1, ly.state, ly.input)
	ly.recTr.Scale(lr.TraceDecay, ly.recTr)
	if ly.Params.Competition == Split {
		ly.hidTmp.SubVec(ly.stateFF, ly.stateRec)
		ly.recTr.RankOne(ly.recTr, 1, ly.hidTmp, ly.statePrev)
	} else {
		ly.recTr.RankOne(ly.recTr, 1, ly.state, ly.statePrev)
	}
}

// learnEncoderCompetitive moves the feedforward weights of each active unit
// toward the input, and its recurrent weights toward the previous state.
func (ly *Layer) learnEncoderCompetitive(lr *LearnRates) {
	in := ly.input.RawVector().Data
	sp := ly.statePrev.RawVector().Data
	for i, s := range ly.state.RawVector().Data {
		if s == 0 {
			continue
		}
		moveToward(ly.ff.RawRowView(i), in, lr.Encoder*s)
		moveToward(ly.rec.RawRowView(i), sp, lr.Recurrent*s)
	}
}

func (ly *Layer) learnBias(lr *LearnRates) {
	switch ly.Params.Bias {
	case HomeostaticBias:
		ar := ly.Params.Inhib.ActiveRatio
		bs := ly.bias.RawVector().Data
		for i, s := range ly.state.RawVector().Data {
			bs[i] += lr.Bias * (ar - s)
		}
	default:
		ly.hidTmp.MulVec(ly.pred.T(), ly.predEr)
		ly.bias.AddScaledVec(ly.bias, lr.Bias, ly.hidTmp)
	}
}

// RegressRow moves the prediction of input unit row, as computed from the
// given state and feedback (through Params.Squash), toward target with the
// delta rule on the predictive and feedback weights of that row.  No traces
// are used or changed.  Used for replaying stored states.
func (ly *Layer) RegressRow(row int, target float64, state, feedback mat.Vector, rate float64) error {
	ctxt := ly.ctxt("RegressRow")
	if row < 0 || row >= ly.NumInputs {
		return fmt.Errorf("%s: row %d out of range [0, %d): %w", ctxt, row, ly.NumInputs, ErrShape)
	}
	if err := checkLen(ctxt, "state", state.Len(), ly.NumHidden); err != nil {
		return err
	}
	if err := checkLen(ctxt, "feedback", feedback.Len(), ly.NumFeedback); err != nil {
		return err
	}
	if !isFinite(target) || !isFinite(rate) {
		return fmt.Errorf("%s: target %v rate %v: %w", ctxt, target, rate, ErrNumeric)
	}
	pw := ly.pred.RawRowView(row)
	fw := ly.fb.RawRowView(row)
	p := 0.0
	for j, w := range pw {
		p += w * state.AtVec(j)
	}
	for j, w := range fw {
		p += w * feedback.AtVec(j)
	}
	if ly.Params.Squash == Tanh {
		p = math.Tanh(p)
	}
	dw := rate * (target - p)
	for j := range pw {
		pw[j] += dw * state.AtVec(j)
	}
	for j := range fw {
		fw[j] += dw * feedback.AtVec(j)
	}
	return nil
}

// moveToward sets w += rate * (trg - w)
func moveToward(w, trg []float64, rate float64) {
	for j := range w {
		w[j] += rate * (trg[j] - w[j])
	}
}

// addScaledDense sets dst += alpha * src.  Both must be the same shape and
// contiguous (as made by mat.NewDense).
func addScaledDense(dst *mat.Dense, alpha float64, src *mat.Dense) {
	floats.AddScaled(dst.RawMatrix().Data, alpha, src.RawMatrix().Data)
}
