// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package chans provides the conductance channels of a point neuron in the
equivalent RC circuit model: excitatory, leak, inhibitory and potassium.
A Chans value holds one number per channel, e.g., the maximal conductances
or the reversal potentials.
*/
package chans

// Chans has one value per ion channel
type Chans struct {
	E float32 `desc:"excitatory sodium (Na) AMPA channels activated by synaptic glutamate"`
	L float32 `desc:"constant leak (potassium, K+) channels -- determines resting potential"`
	I float32 `desc:"inhibitory chloride (Cl-) channels activated by synaptic GABA"`
	K float32 `desc:"gated / active potassium channels -- hyperpolarizing relative to leak"`
}

// SetAll sets all the values
func (ch *Chans) SetAll(e, l, i, k float32) {
	ch.E, ch.L, ch.I, ch.K = e, l, i, k
}

// SetFmOtherMinus sets all the values from other Chans minus given value
func (ch *Chans) SetFmOtherMinus(oth Chans, minus float32) {
	ch.E, ch.L, ch.I, ch.K = oth.E-minus, oth.L-minus, oth.I-minus, oth.K-minus
}

// SetFmMinusOther sets all the values from given value minus other Chans
func (ch *Chans) SetFmMinusOther(minus float32, oth Chans) {
	ch.E, ch.L, ch.I, ch.K = minus-oth.E, minus-oth.L, minus-oth.I, minus-oth.K
}

// Total is the sum over all channels of ch times g
func (ch *Chans) Total(g Chans) float32 {
	return ch.E*g.E + ch.L*g.L + ch.I*g.I + ch.K*g.K
}

// EquilVm returns the equilibrium membrane potential for conductances g
// when ch holds the reversal potentials: sum(g * erev) / sum(g).
// Returns erev.L if all conductances are 0.
func (ch *Chans) EquilVm(g Chans) float32 {
	gt := g.E + g.L + g.I + g.K
	if gt <= 0 {
		return ch.L
	}
	return ch.Total(g) / gt
}
