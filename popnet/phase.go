// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package popnet

import "github.com/goki/ki/kit"

// Phases are the stages that each Population goes through, in order, on every
// simulation step.  Any other ordering is rejected with a PhaseError.
type Phases int32

//go:generate stringer -type=Phases

var KiT_Phases = kit.Enums.AddEnum(PhasesN, kit.NotBitFlag, nil)

func (ev Phases) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Phases) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The per-step phases
const (
	// Idle is between steps -- topology may only change while all populations are Idle.
	Idle Phases = iota

	// Summation recomputes the cached sum of every projection.
	Summation

	// StateUpdate runs the neuron model to produce new rates from the sums.
	StateUpdate

	// LearningGlobal runs learning rules that depend on population-level signals.
	LearningGlobal

	// LearningLocal runs learning rules that depend only on the connection's own pre / post values.
	LearningLocal

	// GlobalOps computes population-wide statistics and inhibition.
	GlobalOps

	// DelayRotate pushes the new rates into the delay history.
	DelayRotate

	PhasesN
)

// Next returns the phase that must follow this one.
func (ph Phases) Next() Phases {
	if ph >= DelayRotate {
		return Idle
	}
	return ph + 1
}

// Target is the synaptic channel label carried by a projection.
// Neuron models select which sums they combine by Target.
// Values beyond the named ones are valid labels.
type Target int32

//go:generate stringer -type=Target

var KiT_Target = kit.Enums.AddEnum(TargetN, kit.NotBitFlag, nil)

func (ev Target) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Target) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The standard targets
const (
	// Exc is excitatory input
	Exc Target = iota

	// Inh is inhibitory input
	Inh

	// Mod is modulatory input, e.g., a gain or dopamine-like signal
	Mod

	TargetN
)
