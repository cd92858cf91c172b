// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kwta

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

func countActive(out []float64) int {
	n := 0
	for _, v := range out {
		if v == 1 {
			n++
		} else if v != 0 {
			return -1
		}
	}
	return n
}

func TestSelectK(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	ratios := []float64{0.01, 0.04, 0.1, 0.25, 0.5, 0.75, 0.99}
	for _, ar := range ratios {
		kp := Params{ActiveRatio: ar}
		inh := Inhib{}
		for n := 1; n <= 64; n++ {
			act := make([]float64, n)
			out := make([]float64, n)
			for i := range act {
				act[i] = rnd.NormFloat64()
			}
			kp.Select(act, out, &inh)
			k := int(math.Round(ar * float64(n)))
			if got := countActive(out); got != k {
				t.Errorf("ratio: %v n: %v active: %v want: %v\n", ar, n, got, k)
			}
			if inh.K != k {
				t.Errorf("ratio: %v n: %v inh.K: %v want: %v\n", ar, n, inh.K, k)
			}
			for i := range act {
				if out[i] == 0 && k > 0 && act[i] > inh.Thr {
					t.Errorf("loser %v act %v above threshold %v\n", i, act[i], inh.Thr)
				}
			}
		}
	}
}

func TestSelectTies(t *testing.T) {
	kp := Params{ActiveRatio: 0.4}
	inh := Inhib{}
	act := []float64{0.5, 1, 0.5, 1, 0.5}
	out := make([]float64, len(act))
	kp.Select(act, out, &inh)
	trg := []float64{0, 1, 0, 1, 0}
	for i := range trg {
		if out[i] != trg[i] {
			t.Errorf("ties top: idx: %v got: %v trg: %v\n", i, out[i], trg[i])
		}
	}

	act = []float64{0.2, 0.2, 0.2, 0.2, 0.2}
	kp.Select(act, out, &inh)
	trg = []float64{1, 1, 0, 0, 0}
	for i := range trg {
		if out[i] != trg[i] {
			t.Errorf("all equal: idx: %v got: %v trg: %v\n", i, out[i], trg[i])
		}
	}
	if w := inh.Winners(); len(w) != 2 || w[0] != 0 || w[1] != 1 {
		t.Errorf("winners: %v want [0 1]\n", w)
	}
}

func TestSelectStats(t *testing.T) {
	kp := Params{ActiveRatio: 0.5}
	inh := Inhib{}
	act := []float64{1, 2, 3, 4}
	out := make([]float64, len(act))
	kp.Select(act, out, &inh)
	if inh.Act.Max != 4 || inh.Act.Avg != 2.5 {
		t.Errorf("act stats: max: %v avg: %v want 4, 2.5\n", inh.Act.Max, inh.Act.Avg)
	}
	if inh.Thr != 3 {
		t.Errorf("thr: %v want 3\n", inh.Thr)
	}
}

func TestValidate(t *testing.T) {
	for _, ar := range []float64{0, 1, -0.1, 1.5, math.NaN()} {
		kp := Params{ActiveRatio: ar}
		if kp.Validate() == nil {
			t.Errorf("ActiveRatio %v should be invalid\n", ar)
		}
	}
	kp := Params{}
	kp.Defaults()
	if err := kp.Validate(); err != nil {
		t.Error(err)
	}
}
