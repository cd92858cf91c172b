// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rl

import (
	"errors"
	"math"
	"testing"

	"github.com/emer/neorl/neo"
	"golang.org/x/exp/rand"
)

// difTol is the numerical difference tolerance for comparing values
const difTol = 1.0e-12

func TestReplayBufferFIFO(t *testing.T) {
	if _, err := NewReplayBuffer(0); !errors.Is(err, neo.ErrConfig) {
		t.Errorf("capacity 0: got %v, want ErrConfig\n", err)
	}
	rb, err := NewReplayBuffer(5)
	if err != nil {
		t.Fatal(err)
	}
	if s := rb.Sample(0); s != nil {
		t.Errorf("empty buffer: Sample(0) = %v, want nil\n", s)
	}
	for tick := 0; tick < 13; tick++ {
		rb.Push(ReplaySample{Tick: tick})
		wantLen := tick + 1
		if wantLen > 5 {
			wantLen = 5
		}
		if rb.Len() != wantLen {
			t.Errorf("tick %d: Len %d != %d\n", tick, rb.Len(), wantLen)
		}
		for i := 0; i < rb.Len(); i++ {
			want := tick - rb.Len() + 1 + i
			if got := rb.Sample(i).Tick; got != want {
				t.Errorf("tick %d: sample %d Tick %d != %d\n", tick, i, got, want)
			}
		}
	}
	if rb.Sample(5) != nil || rb.Sample(-1) != nil {
		t.Errorf("Sample outside [0, Len()) not nil\n")
	}
	ss := rb.Samples()
	if len(ss) != 5 || ss[0].Tick != 8 || ss[4].Tick != 12 {
		t.Errorf("Samples not oldest first: %v\n", ss)
	}
	if rb.Cap() != 5 {
		t.Errorf("Cap %d != 5\n", rb.Cap())
	}
}

func TestReplayBufferCorrect(t *testing.T) {
	rb, _ := NewReplayBuffer(4)
	for tick := 0; tick < 6; tick++ {
		rb.Push(ReplaySample{Tick: tick, Value: 1, Corrected: 1})
	}
	rb.Correct(2, 0.5, 0.9)
	// newest first: d = 0, 1, 2, 3
	for d := 0; d < 4; d++ {
		s := rb.Sample(3 - d)
		want := 1 + 0.5*math.Pow(0.9, float64(d))*2
		if math.Abs(s.Corrected-want) > difTol {
			t.Errorf("distance %d: Corrected %v != %v\n", d, s.Corrected, want)
		}
		if s.Value != 1 {
			t.Errorf("distance %d: Value changed to %v\n", d, s.Value)
		}
	}
}

func TestReplayBufferDraw(t *testing.T) {
	rb, _ := NewReplayBuffer(10)
	rnd := rand.New(rand.NewSource(1))
	if idx := rb.Draw(rnd, 3); idx != nil {
		t.Errorf("empty buffer Draw: %v\n", idx)
	}
	for tick := 0; tick < 4; tick++ {
		rb.Push(ReplaySample{Tick: tick})
	}
	cnt := make([]int, 4)
	for _, i := range rb.Draw(rnd, 4000) {
		if i < 0 || i >= 4 {
			t.Fatalf("index %d out of range\n", i)
		}
		cnt[i]++
	}
	for i, c := range cnt {
		if c < 800 || c > 1200 {
			t.Errorf("index %d drawn %d of 4000 times\n", i, c)
		}
	}
}
