// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package popnet

// Time is the simulation clock of a Network
type Time struct {

	// accumulated simulation time, in time units
	Time float64

	// number of completed steps since the last Reset
	Step int

	// total number of completed steps, not cleared by Reset
	StepTot int

	// amount of time to increment per step
	Dt float64 `def:"1"`
}

// NewTime returns a new Time struct with default parameters
func NewTime() *Time {
	tm := &Time{}
	tm.Defaults()
	return tm
}

// Defaults sets default values
func (tm *Time) Defaults() {
	tm.Dt = 1
}

// Reset resets the step counter and time back to zero
func (tm *Time) Reset() {
	tm.Time = 0
	tm.Step = 0
	if tm.Dt == 0 {
		tm.Defaults()
	}
}

// StepInc advances the clock by one step
func (tm *Time) StepInc() {
	tm.Step++
	tm.StepTot++
	tm.Time += tm.Dt
}
