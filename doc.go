// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package neorl is the overall repository for sparse predictive hierarchies
with reinforcement learning, implemented in the Go language (golang).

This top-level of the repository has no functional code -- everything is organized
into the following sub-packages:

* kwta: k-winners-take-all selection of the most active units in a layer,
with ties going to the lowest index.

* neo: the sparse predictive layer, which encodes its input into a sparse binary
state with a single k-winner competition or separate feed-forward and recurrent
competitions, predicts the next input from that state and top-down feedback, and learns
online with local traces.  A Hierarchy stacks layers with an up pass, a down pass
and a learning pass per tick.

* rl: the ReinforcementAgent, which drives a Hierarchy to predict its own actions
and value estimates, with TD error, exploration, and the Predictive, TDLambdaFiltered
(PV / LV filtered), QTraceRL and QReplayRL learning policies.

* examples: these compile into runnable programs: examples/seqpred learns to predict
a cyclic sequence, and examples/pong learns to play a headless pong game.
*/
package neorl
