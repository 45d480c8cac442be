// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rates

import "github.com/goki/mat32"

// XX1Params are the parameters of the noisy x/(x+1) transfer function:
// the saturating x/(x+1) function convolved with gaussian noise, which gives
// graded output slightly below threshold.  A piece-wise approximation of the
// convolution is used instead of a lookup table.
type XX1Params struct {
	Gain         float32 `def:"100" min:"0" desc:"gain of the x/(x+1) function -- lower values give more graded output"`
	NVar         float32 `def:"0.005,0.01" min:"0" desc:"variance of the gaussian noise kernel -- sets the curvature near threshold"`
	SigMult      float32 `def:"0.33" view:"-" json:"-" xml:"-" desc:"multiplier on sigmoid used for computing values for x < 0"`
	SigMultPow   float32 `def:"0.8" view:"-" json:"-" xml:"-" desc:"power for computing SigMultEff as function of gain * nvar"`
	SigGain      float32 `def:"3" view:"-" json:"-" xml:"-" desc:"gain multipler on x for sigmoid used for computing values for x < 0"`
	InterpRange  float32 `def:"0.01" view:"-" json:"-" xml:"-" desc:"interpolation range above zero"`
	GainCorRange float32 `def:"10" view:"-" json:"-" xml:"-" desc:"range in units of nvar over which to apply gain correction"`
	GainCor      float32 `def:"0.1" view:"-" json:"-" xml:"-" desc:"gain correction multiplier"`

	SigGainNVar float32 `view:"-" json:"-" xml:"-" desc:"sig_gain / nvar"`
	SigMultEff  float32 `view:"-" json:"-" xml:"-" desc:"sig_mult * pow(gain * nvar, sig_mult_pow)"`
	SigValAt0   float32 `view:"-" json:"-" xml:"-" desc:"0.5 * sig_mult_eff"`
	InterpVal   float32 `view:"-" json:"-" xml:"-" desc:"function value at interp_range - sig_val_at_0"`
}

func (xp *XX1Params) Update() {
	xp.SigGainNVar = xp.SigGain / xp.NVar
	xp.SigMultEff = xp.SigMult * mat32.Pow(xp.Gain*xp.NVar, xp.SigMultPow)
	xp.SigValAt0 = 0.5 * xp.SigMultEff
	xp.InterpVal = xp.XX1GainCor(xp.InterpRange) - xp.SigValAt0
}

func (xp *XX1Params) Defaults() {
	xp.Gain = 100
	xp.NVar = 0.005
	xp.SigMult = 0.33
	xp.SigMultPow = 0.8
	xp.SigGain = 3.0
	xp.InterpRange = 0.01
	xp.GainCorRange = 10.0
	xp.GainCor = 0.1
	xp.Update()
}

// XX1 is x/(x+1)
func XX1(x float32) float32 { return x / (x + 1) }

// XX1GainCor is x/(x+1) at Gain, reduced within GainCorRange of 0 to
// compensate for the convolution
func (xp *XX1Params) XX1GainCor(x float32) float32 {
	gainCorFact := (xp.GainCorRange - (x / xp.NVar)) / xp.GainCorRange
	if gainCorFact < 0 {
		return XX1(xp.Gain * x)
	}
	newGain := xp.Gain * (1 - xp.GainCor*gainCorFact)
	return XX1(newGain * x)
}

// NoisyXX1 is the noisy x/(x+1) function of x, which is the input above threshold.
func (xp *XX1Params) NoisyXX1(x float32) float32 {
	switch {
	case x < 0:
		return xp.SigMultEff / (1 + mat32.Exp(-(x * xp.SigGainNVar)))
	case x < xp.InterpRange:
		interp := 1 - ((xp.InterpRange - x) / xp.InterpRange)
		return xp.SigValAt0 + interp*xp.InterpVal
	default:
		return xp.XX1GainCor(x)
	}
}
