// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rates

import (
	"github.com/emer/popnet/popnet"
	"github.com/goki/mat32"
)

// LeakyParams are the parameters of a leaky integrator rate neuron:
//
//	tau dr/dt + r = f(exc - inh - gi + baseline)
//
// where exc and inh are the Exc and Inh input sums, gi is the population
// inhibition and f is the transfer function.  Mod input multiplies the
// drive when ModGain > 0.
type LeakyParams struct {
	Tau      float32        `def:"10" min:"0" desc:"time constant in time units -- 0 = the rate jumps to f(net) on each step"`
	Baseline float32        `def:"0" desc:"constant added to the net input"`
	InhGain  float32        `def:"1" min:"0" desc:"multiplier on the Inh input sum"`
	GiGain   float32        `def:"1" min:"0" desc:"multiplier on the population inhibition"`
	ModGain  float32        `def:"0" min:"0" desc:"if > 0, the drive is multiplied by 1 + ModGain * mod"`
	Act      TransferParams `view:"inline" desc:"transfer function"`
}

func (lp *LeakyParams) Defaults() {
	lp.Tau = 10
	lp.Baseline = 0
	lp.InhGain = 1
	lp.GiGain = 1
	lp.ModGain = 0
	lp.Act.Defaults()
}

func (lp *LeakyParams) Update() {
	lp.Act.Update()
}

// Net returns the net input for the given input sums and inhibition
func (lp *LeakyParams) Net(exc, inh, mod, gi float32) float32 {
	net := exc - lp.InhGain*inh - lp.GiGain*gi + lp.Baseline
	if lp.ModGain > 0 {
		net *= 1 + lp.ModGain*mod
	}
	return net
}

// RateFmNet integrates the rate toward f(net) over dt
func (lp *LeakyParams) RateFmNet(prev, net, dt float32) float32 {
	trg := lp.Act.Transfer(net)
	if lp.Tau <= 0 {
		return trg
	}
	dtc := mat32.Min(dt/lp.Tau, 1)
	return prev + dtc*(trg-prev)
}

// UpdateRate computes the new rate of one neuron
func (lp *LeakyParams) UpdateRate(in popnet.Inputs, prev, dt float32) float32 {
	net := lp.Net(in.Sum(popnet.Exc), in.Sum(popnet.Inh), in.Sum(popnet.Mod), in.Gi())
	return lp.RateFmNet(prev, net, dt)
}

// NewLeaky returns a neuron type running the leaky integrator with lp,
// which is read on every update and may be changed between steps.
func NewLeaky(name string, lp *LeakyParams) *popnet.NeuronType {
	return &popnet.NeuronType{Name: name, Update: lp.UpdateRate}
}
