// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package popnet

import "runtime"

// PopParams are the construction-time parameters of a Population.
type PopParams struct {

	// initial rate of every neuron.  2 is deliberately not a resting value,
	// so that neurons that were never updated can be told apart.
	RateInit float32 `def:"2"`

	// integration time step, passed to the neuron model on each StateUpdate.
	Dt float32 `def:"1" min:"0"`

	// parameters for the delay history
	Delay DelayParams `view:"inline"`
}

func (pp *PopParams) Defaults() {
	pp.RateInit = 2
	pp.Dt = 1
	pp.Delay.Defaults()
}

func (pp *PopParams) Update() {
	pp.Delay.Update()
}

// DelayParams determine what newly added delay history slots contain
// before any real output has been rotated into them.
type DelayParams struct {

	// value written into every neuron of a newly added history slot
	Init float32 `def:"2"`

	// fill each new slot with its own slot index instead of Init.
	// Reproduces the historical seeding, where a delay of d read back
	// d-1 until real output reached that depth.
	LegacySeed bool `def:"false"`
}

func (dp *DelayParams) Defaults() {
	dp.Init = 2
	dp.LegacySeed = false
}

func (dp *DelayParams) Update() {
}

// Fill returns the placeholder for the history slot at the given
// zero-based physical position.
func (dp *DelayParams) Fill(slot int) float32 {
	if dp.LegacySeed {
		return float32(slot)
	}
	return dp.Init
}

// ThreadParams configure the worker pool shared by all populations of a Network.
type ThreadParams struct {

	// number of worker goroutines.  0 = runtime.NumCPU(), 1 = everything runs
	// serially in the calling goroutine.
	NThreads int `def:"0" min:"0"`

	// minimum number of neurons handed to one worker.  Populations smaller
	// than this run on fewer workers.
	MinChunk int `def:"16" min:"1"`

	// record per-function and per-thread timing, see Network.TimerReport
	Timing bool `def:"false"`

	// if non-empty (and Timing is on), each population writes its per-step
	// summation and learning times in msec to files in this directory
	ProfileDir string
}

func (tp *ThreadParams) Defaults() {
	tp.NThreads = 0
	tp.MinChunk = 16
	tp.Timing = false
}

func (tp *ThreadParams) Update() {
	if tp.MinChunk < 1 {
		tp.MinChunk = 1
	}
}

// Workers returns the effective number of worker goroutines.
func (tp *ThreadParams) Workers() int {
	if tp.NThreads <= 0 {
		return runtime.NumCPU()
	}
	return tp.NThreads
}
