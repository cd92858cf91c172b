// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package kwta provides k-Winners-Take-All (kWTA) competitive inhibition:
the k units with the highest activation in a layer become active (1)
and all others are suppressed (0), where k = round(ActiveRatio * N).

This produces an exact sparse distributed code with a fixed number
of active units on every update.  Selection is rank based (not a
graded function of activation), and ties between equal activations
are always broken in favor of the lowest unit index, so that the
same activations always yield the same code.
*/
package kwta

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Params parameterizes k-winners-take-all inhibition
type Params struct {

	// proportion of units that are active after inhibition -- must be in (0,1) exclusive.  The number of winners is round(ActiveRatio * N)
	ActiveRatio float64 `min:"0" max:"1" default:"0.1"`
}

func (kp *Params) Defaults() {
	kp.ActiveRatio = 0.1
}

func (kp *Params) Update() {
}

// Validate returns an error if ActiveRatio is not in (0,1)
func (kp *Params) Validate() error {
	if !(kp.ActiveRatio > 0 && kp.ActiveRatio < 1) {
		return fmt.Errorf("kwta.Params: ActiveRatio %g must be in (0,1)", kp.ActiveRatio)
	}
	return nil
}

// K returns the number of winners for a layer of n units
func (kp *Params) K(n int) int {
	k := int(math.Round(kp.ActiveRatio * float64(n)))
	if k > n {
		k = n
	}
	return k
}

// Select sets out[i] = 1 for the k units with the largest act values and
// out[i] = 0 for all others, recording the competition in inh.
// Equal activations are ranked by index, lowest index first.
// act and out must have the same length, and may not be the same slice.
func (kp *Params) Select(act, out []float64, inh *Inhib) {
	n := len(act)
	inh.alloc(n)
	k := kp.K(n)
	for i, a := range act {
		inh.srt[i] = -a // ascending stable sort of -act == descending by act, index order kept on ties
		out[i] = 0
	}
	floats.ArgsortStable(inh.srt, inh.idx)
	for _, wi := range inh.idx[:k] {
		out[wi] = 1
	}
	inh.K = k
	if k > 0 {
		inh.Thr = act[inh.idx[k-1]]
	} else {
		inh.Thr = math.Inf(1)
	}
	inh.UpdateAct(act)
}
