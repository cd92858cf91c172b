// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kwta

import "github.com/emer/etable/v2/minmax"

// Inhib contains state values for the most recent kWTA competition
type Inhib struct {

	// number of winners selected
	K int

	// activation of the weakest winner -- units at or above this value (subject to index tie-breaking) won the competition.  +Inf when K == 0
	Thr float64

	// average and max activation values over all units that entered the competition
	Act minmax.AvgMax32

	// sort scratch -- negated activations
	srt []float64

	// sort scratch -- ranked unit indexes
	idx []int
}

func (inh *Inhib) Init() {
	inh.K = 0
	inh.Thr = 0
	inh.Act.Init()
}

// UpdateAct recomputes the Act average and max over given activations
func (inh *Inhib) UpdateAct(act []float64) {
	inh.Act.Init()
	for i, a := range act {
		inh.Act.UpdateVal(float32(a), int32(i))
	}
	inh.Act.CalcAvg()
}

// Winners returns the indexes of the winning units from the last
// competition, strongest first.  The returned slice is only valid
// until the next call to Select.
func (inh *Inhib) Winners() []int {
	return inh.idx[:inh.K]
}

func (inh *Inhib) alloc(n int) {
	if len(inh.idx) == n {
		return
	}
	inh.srt = make([]float64, n)
	inh.idx = make([]int, n)
}
