// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rl

import (
	"fmt"

	"github.com/emer/neorl/neo"
	"golang.org/x/exp/rand"
)

// ReplayParams are the experience replay parameters, used by QReplayRL
type ReplayParams struct {

	// maximum number of samples kept -- the oldest is evicted beyond this
	Capacity int `min:"1" default:"256"`

	// number of samples drawn and replayed each tick
	Samples int `min:"0" default:"8"`

	// replay learning rate, as a multiplier on the decoder learning rate
	Rate float64 `min:"0" default:"1"`
}

func (rp *ReplayParams) Defaults() {
	rp.Capacity = 256
	rp.Samples = 8
	rp.Rate = 1
}

// Validate returns an ErrConfig error for out-of-range values
func (rp *ReplayParams) Validate() error {
	if rp.Capacity < 1 {
		return fmt.Errorf("ReplayParams: Capacity %d must be >= 1: %w", rp.Capacity, neo.ErrConfig)
	}
	if rp.Samples < 0 {
		return fmt.Errorf("ReplayParams: Samples %d must be >= 0: %w", rp.Samples, neo.ErrConfig)
	}
	if !isFinite(rp.Rate) || rp.Rate < 0 {
		return fmt.Errorf("ReplayParams: Rate %g must be finite and >= 0: %w", rp.Rate, neo.ErrConfig)
	}
	return nil
}

// ReplaySample is a snapshot of one tick, taken after the down pass
type ReplaySample struct {

	// agent tick at which the sample was taken
	Tick int

	// bottom layer state
	State []float64

	// bottom layer feedback
	Feedback []float64

	// executed (greedy) actions predicted from State
	Action []float64

	// exploratory actions taken
	ActionExp []float64

	// value estimate at the time
	Value float64

	// value target, corrected backward by the TD errors of later ticks
	Corrected float64
}

// ReplayBuffer is a bounded FIFO of ReplaySamples, oldest first
type ReplayBuffer struct {
	samps []ReplaySample
	start int
	cap   int
}

// NewReplayBuffer returns a new empty buffer holding at most capacity samples
func NewReplayBuffer(capacity int) (*ReplayBuffer, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("rl.NewReplayBuffer: capacity %d must be >= 1: %w", capacity, neo.ErrConfig)
	}
	return &ReplayBuffer{samps: make([]ReplaySample, 0, capacity), cap: capacity}, nil
}

// Len returns the number of samples
func (rb *ReplayBuffer) Len() int {
	return len(rb.samps)
}

// Cap returns the capacity
func (rb *ReplayBuffer) Cap() int {
	return rb.cap
}

// Sample returns the sample at index i, 0 = oldest,
// or nil if i is outside [0, Len())
func (rb *ReplayBuffer) Sample(i int) *ReplaySample {
	if i < 0 || i >= len(rb.samps) {
		return nil
	}
	return &rb.samps[(rb.start+i)%len(rb.samps)]
}

// Samples returns copies of all samples, oldest first
func (rb *ReplayBuffer) Samples() []ReplaySample {
	ss := make([]ReplaySample, rb.Len())
	for i := range ss {
		ss[i] = *rb.Sample(i)
	}
	return ss
}

// Push adds s as the newest sample, evicting the oldest if at capacity
func (rb *ReplayBuffer) Push(s ReplaySample) {
	if len(rb.samps) < rb.cap {
		rb.samps = append(rb.samps, s)
		return
	}
	rb.samps[rb.start] = s
	rb.start = (rb.start + 1) % rb.cap
}

// Correct adds alpha * gamma^d * td to the Corrected value of each sample,
// where d is the distance back from the newest sample (d = 0).
func (rb *ReplayBuffer) Correct(td, alpha, gamma float64) {
	g := 1.0
	for d := 0; d < rb.Len(); d++ {
		rb.Sample(rb.Len() - 1 - d).Corrected += alpha * g * td
		g *= gamma
	}
}

// Draw returns n sample indexes drawn uniformly with replacement.
// Returns nil if the buffer is empty.
func (rb *ReplayBuffer) Draw(rnd *rand.Rand, n int) []int {
	if rb.Len() == 0 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = rnd.Intn(rb.Len())
	}
	return idx
}

// Reset removes all samples
func (rb *ReplayBuffer) Reset() {
	rb.samps = rb.samps[:0]
	rb.start = 0
}
