// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rates

import (
	"github.com/emer/popnet/chans"
	"github.com/emer/popnet/popnet"
	"github.com/goki/mat32"
)

// ConductParams are the parameters of a conductance-based rate neuron.
// The Exc input drives the excitatory conductance, Inh input plus the
// population inhibition drive the inhibitory one, and Mod input drives
// potassium adaptation.  The rate integrates toward the noisy x/(x+1)
// function of the excitatory conductance above its threshold value, the
// level at which the membrane potential would sit exactly at Thr.
type ConductParams struct {
	Thr  float32     `def:"0.5" desc:"threshold membrane potential for firing"`
	Tau  float32     `def:"3.3" min:"0" desc:"time constant for integrating the rate -- 0 = no integration"`
	Gbar chans.Chans `view:"inline" desc:"maximal conductances"`
	Erev chans.Chans `view:"inline" desc:"reversal potentials"`
	XX1  XX1Params   `view:"inline"`

	ErevSubThr chans.Chans `inactive:"+" view:"-" json:"-" xml:"-" desc:"Erev - Thr"`
	ThrSubErev chans.Chans `inactive:"+" view:"-" json:"-" xml:"-" desc:"Thr - Erev"`
}

func (cp *ConductParams) Defaults() {
	cp.Thr = 0.5
	cp.Tau = 3.3
	cp.Gbar.SetAll(1.0, 0.1, 1.0, 1.0)
	cp.Erev.SetAll(1.0, 0.3, 0.25, 0.25)
	cp.XX1.Defaults()
	cp.Update()
}

// Update must be called after any changes to parameters
func (cp *ConductParams) Update() {
	cp.ErevSubThr.SetFmOtherMinus(cp.Erev, cp.Thr)
	cp.ThrSubErev.SetFmMinusOther(cp.Thr, cp.Erev)
	cp.XX1.Update()
}

// Conductances returns the conductances for the given input sums and inhibition
func (cp *ConductParams) Conductances(exc, inh, mod, gi float32) chans.Chans {
	g := chans.Chans{}
	g.SetAll(cp.Gbar.E*mat32.Max(exc, 0), cp.Gbar.L, cp.Gbar.I*mat32.Max(inh+gi, 0), cp.Gbar.K*mat32.Max(mod, 0))
	return g
}

// GeThr is the excitatory conductance that puts the membrane potential at Thr,
// given the other conductances in g
func (cp *ConductParams) GeThr(g chans.Chans) float32 {
	return (g.I*cp.ErevSubThr.I + g.L*cp.ErevSubThr.L + g.K*cp.ErevSubThr.K) / cp.ThrSubErev.E
}

// RateFmG integrates the rate toward its value for conductances g
func (cp *ConductParams) RateFmG(prev float32, g chans.Chans, dt float32) float32 {
	trg := cp.XX1.NoisyXX1(g.E - cp.GeThr(g))
	if cp.Tau <= 0 {
		return trg
	}
	return prev + mat32.Min(dt/cp.Tau, 1)*(trg-prev)
}

// Vm is the equilibrium membrane potential for conductances g
func (cp *ConductParams) Vm(g chans.Chans) float32 {
	return cp.Erev.EquilVm(g)
}

// UpdateRate computes the new rate of one neuron
func (cp *ConductParams) UpdateRate(in popnet.Inputs, prev, dt float32) float32 {
	g := cp.Conductances(in.Sum(popnet.Exc), in.Sum(popnet.Inh), in.Sum(popnet.Mod), in.Gi())
	return cp.RateFmG(prev, g, dt)
}

// NewConduct returns a neuron type running the conductance model with cp
func NewConduct(name string, cp *ConductParams) *popnet.NeuronType {
	return &popnet.NeuronType{Name: name, Update: cp.UpdateRate}
}
