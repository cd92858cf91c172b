// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package rl provides a reinforcement learning Agent built on a neo.Hierarchy.

The Agent appends its own exploratory actions (and, for some policies, value
estimates) to the external input of the bottom layer, so perception, action
and value are all predicted by the same sparse predictive network.  Each tick
a temporal differences (TD) error is computed, and its sign selects the
learning target for the action slots: the exploratory action if things went
better than expected, otherwise the action the network actually predicted.

* `policy.go` defines the LearningPolicy interface and the four policies
  selected by Config.Policy: Predictive (no reinforcement), TDLambdaFiltered
  (PV / LV filtered TD, as in the pvlv framework), QTraceRL (separate linear
  value function with eligibility traces) and QReplayRL (value slot plus
  experience replay).

* `td.go` has the TD error and its running normalization.

* `explore.go` has the exploration processes.

* `replay.go` has the bounded ReplayBuffer of past states, whose stored
  values are corrected backward in time by each new TD error.
*/
package rl
