// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neo

import (
	"fmt"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/emer/etable/v2/minmax"
	"github.com/goki/mat32"
	"gonum.org/v1/gonum/mat"
)

// WeightStats has the average and max absolute values of each weight matrix in a Layer
type WeightStats struct {
	FeedForward minmax.AvgMax32 `view:"inline"`
	Recurrent   minmax.AvgMax32 `view:"inline"`
	Predictive  minmax.AvgMax32 `view:"inline"`
	Feedback    minmax.AvgMax32 `view:"inline"`
	Bias        minmax.AvgMax32 `view:"inline"`
}

// absAvgMax computes avg and max of |v| over vals
func absAvgMax(am *minmax.AvgMax32, vals []float64) {
	am.Init()
	for i, v := range vals {
		am.UpdateVal(mat32.Abs(float32(v)), int32(i))
	}
	am.CalcAvg()
}

// WeightStats returns the current absolute weight statistics
func (ly *Layer) WeightStats() WeightStats {
	var ws WeightStats
	absAvgMax(&ws.FeedForward, ly.ff.RawMatrix().Data)
	absAvgMax(&ws.Recurrent, ly.rec.RawMatrix().Data)
	absAvgMax(&ws.Predictive, ly.pred.RawMatrix().Data)
	absAvgMax(&ws.Feedback, ly.fb.RawMatrix().Data)
	absAvgMax(&ws.Bias, ly.bias.RawVector().Data)
	return ws
}

// CheckFinite returns an ErrNumeric error naming the first weight matrix,
// trace or state with a NaN or Inf value.
func (ly *Layer) CheckFinite() error {
	ctxt := ly.ctxt("CheckFinite")
	mats := []struct {
		nm string
		m  *mat.Dense
	}{
		{"FeedForward", ly.ff}, {"Recurrent", ly.rec}, {"Predictive", ly.pred}, {"Feedback", ly.fb},
		{"FeedForwardTrace", ly.ffTr}, {"RecurrentTrace", ly.recTr}, {"PredictiveTrace", ly.predTr}, {"FeedbackTrace", ly.fbTr},
	}
	for _, m := range mats {
		if err := checkFinite(ctxt, m.nm, m.m.RawMatrix().Data); err != nil {
			return err
		}
	}
	vecs := []struct {
		nm string
		v  *mat.VecDense
	}{
		{"Bias", ly.bias}, {"Pred", ly.predAct}, {"PredPrev", ly.predPrev},
	}
	for _, v := range vecs {
		if err := checkFinite(ctxt, v.nm, v.v.RawVector().Data); err != nil {
			return err
		}
	}
	return nil
}

// NumWeights returns the number of weights (and biases) in the layer
func (ly *Layer) NumWeights() int {
	ni, nh, nf := ly.NumInputs, ly.NumHidden, ly.NumFeedback
	return nh*ni + nh*nh + ni*nh + ni*nf + nh
}

// SizeReport returns a string reporting the size of each layer
// in the hierarchy, and total memory footprint.
// Memory counts weights and their traces as 8-byte values.
func (hi *Hierarchy) SizeReport() string {
	var b strings.Builder
	units := 0
	wts := 0
	for _, ly := range hi.Layers {
		nw := ly.NumWeights()
		units += ly.NumHidden
		wts += nw
		wmem := 2 * 8 * nw
		fmt.Fprintf(&b, "%14s:\t Inputs: %d\t Hidden: %d\t Feedback: %d\t Wts: %d\t WtMem: %v\n", ly.Name, ly.NumInputs, ly.NumHidden, ly.NumFeedback, nw, (datasize.ByteSize)(wmem).HumanReadable())
	}
	fmt.Fprintf(&b, "\n\n%14s:\t Hidden: %d\t Wts: %d\t WtMem: %v\n", hi.Name, units, wts, (datasize.ByteSize)(2*8*wts).HumanReadable())
	return b.String()
}
