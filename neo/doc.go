// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package neo implements sparse predictive layers and hierarchies of them.

A Layer encodes its input into a sparse binary code (k-winners-take-all
over bias + feedforward + recurrent drive), predicts its next input from
that code plus top-down feedback, and learns all of its weights online
with local, trace-based rules.  No error is ever propagated beyond one
layer boundary, so the cost of a tick is O(H*I) per layer regardless of
how many layers are stacked.

A Hierarchy stacks Layers: each layer's input is the code of the layer
below, and its feedback is the prediction of the layer above.  Each tick
runs an up pass (bottom to top), a down pass (top to bottom), and a learn
pass (bottom to top), and Prediction returns the bottom layer's forecast
of the next external input.

Timing: every Layer keeps the previous tick's state and prediction
(StatePrev, PredPrev), and Learn always compares the current target
against PredPrev -- the prediction made on the previous tick for this
tick.  This one-tick alignment is what lets the layer learn sequences.

All matrices are gonum mat.Dense, and all randomness comes from the
*rand.Rand passed in at construction, so runs are exactly reproducible
given a seed.

Invalid configurations return ErrConfig, wrong-sized vectors return
ErrShape, and in neither case is any state modified.  Runaway learning
that produces NaN or Inf values is not corrected automatically -- call
CheckFinite to detect it (ErrNumeric).
*/
package neo
