// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package fffb provides population-wide feedforward (FF) and feedback (FB)
inhibition, computed once per step from the average (or maximum) excitatory
input to a population (FF) and from its average rate (FB).

The resulting Gi is available to neuron models on the following step, and
produces a graded k-winners-take-all dynamic when subtracted from the
excitatory drive.
*/
package fffb

// Params parameterizes feedforward (FF) and feedback (FB) inhibition
// based on the excitatory input (FF) and rate (FB) of a population.
type Params struct {
	On       bool    `desc:"enable inhibition"`
	Gi       float32 `min:"0" def:"1.8" desc:"overall inhibition gain, scaling both the ff and fb terms"`
	FF       float32 `viewif:"On" min:"0" def:"1" desc:"feedforward contribution, multiplying the average excitatory input above FF0"`
	FB       float32 `viewif:"On" min:"0" def:"1" desc:"feedback contribution, multiplying the average rate"`
	FBTau    float32 `viewif:"On" min:"0" def:"1.4" desc:"time constant in steps for integrating feedback inhibition -- 0 = no integration"`
	MaxVsAvg float32 `viewif:"On" def:"0,0.5,1" desc:"proportion of max vs. average excitatory input used for ff inhibition: ff_net = avg + MaxVsAvg * (max - avg)"`
	FF0      float32 `viewif:"On" def:"0.1" desc:"feedforward zero point: no ff inhibition below this input level, and it is subtracted above it"`

	FBDt float32 `inactive:"+" view:"-" json:"-" xml:"-" desc:"rate = 1 / tau"`
}

func (fb *Params) Update() {
	if fb.FBTau <= 0 {
		fb.FBDt = 1
		return
	}
	fb.FBDt = 1 / fb.FBTau
	if fb.FBDt > 1 {
		fb.FBDt = 1
	}
}

func (fb *Params) Defaults() {
	fb.Gi = 1.8
	fb.FF = 1
	fb.FB = 1
	fb.FBTau = 1.4
	fb.MaxVsAvg = 0
	fb.FF0 = 0.1
	fb.Update()
}

// FFInhib returns the feedforward inhibition from the average and max excitatory input.
func (fb *Params) FFInhib(avgNet, maxNet float32) float32 {
	ffNet := avgNet + fb.MaxVsAvg*(maxNet-avgNet)
	if ffNet <= fb.FF0 {
		return 0
	}
	return fb.FF * (ffNet - fb.FF0)
}

// FBInhib returns the feedback inhibition for the average rate.
func (fb *Params) FBInhib(avgRate float32) float32 {
	return fb.FB * avgRate
}

// FBUpdt integrates feedback inhibition toward newFbi.
func (fb *Params) FBUpdt(fbi *float32, newFbi float32) {
	*fbi += fb.FBDt * (newFbi - *fbi)
}

// Inhib computes inh.Gi from the Net and Rate statistics, which must already
// hold the current step's values.  Resets inh when off.
func (fb *Params) Inhib(inh *Inhib) {
	if !fb.On {
		inh.Init()
		return
	}
	inh.FFi = fb.FFInhib(inh.Net.Avg, inh.Net.Max)
	fb.FBUpdt(&inh.FBi, fb.FBInhib(inh.Rate.Avg))
	inh.Gi = fb.Gi * (inh.FFi + inh.FBi)
	inh.GiOrig = inh.Gi
}
