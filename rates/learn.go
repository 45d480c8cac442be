// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rates

import (
	"github.com/emer/popnet/popnet"
	"github.com/goki/mat32"
)

// WtBounds optionally clips weights after learning
type WtBounds struct {
	On  bool    `desc:"clip weights to [Min, Max]"`
	Min float32 `viewif:"On" def:"0"`
	Max float32 `viewif:"On" def:"1"`
}

func (wb *WtBounds) Defaults() {
	wb.On = false
	wb.Min = 0
	wb.Max = 1
}

// Clip clips wt if On
func (wb *WtBounds) Clip(wt float32) float32 {
	if !wb.On {
		return wt
	}
	return mat32.Min(mat32.Max(wt, wb.Min), wb.Max)
}

// HebbParams parameterize the local Hebbian rule: dw = Lrate * pre * post
type HebbParams struct {
	Lrate  float32  `def:"0.01" min:"0" desc:"learning rate, per time unit"`
	Bounds WtBounds `view:"inline"`
}

func (hp *HebbParams) Defaults() {
	hp.Lrate = 0.01
	hp.Bounds.Defaults()
}

// Hebb returns the local Hebbian learning rule
func Hebb(hp *HebbParams) popnet.LearnFunc {
	return func(pj *popnet.Prjn, post, dt float32) {
		lr := hp.Lrate * dt * post
		pre := pj.PreVals()
		for ci := range pj.Wts {
			pj.Wts[ci] = hp.Bounds.Clip(pj.Wts[ci] + lr*pre[ci])
		}
	}
}

// OjaParams parameterize Oja's normalized Hebbian rule:
// dw = Lrate * (pre * post - Alpha * post^2 * w)
type OjaParams struct {
	Lrate float32 `def:"0.01" min:"0" desc:"learning rate, per time unit"`
	Alpha float32 `def:"1" min:"0" desc:"weight decay factor, sets the norm the weights converge to"`
}

func (op *OjaParams) Defaults() {
	op.Lrate = 0.01
	op.Alpha = 1
}

// Oja returns the local Oja learning rule
func Oja(op *OjaParams) popnet.LearnFunc {
	return func(pj *popnet.Prjn, post, dt float32) {
		lr := op.Lrate * dt
		dec := op.Alpha * post * post
		pre := pj.PreVals()
		for ci, w := range pj.Wts {
			pj.Wts[ci] = w + lr*(pre[ci]*post-dec*w)
		}
	}
}

// BCMParams parameterize the BCM rule, with a sliding threshold set by the
// average rate of the receiving population:
// dw = Lrate * pre * post * (post - theta), theta = ThrGain * avg(post rate)^2
type BCMParams struct {
	Lrate   float32  `def:"0.01" min:"0" desc:"learning rate, per time unit"`
	ThrGain float32  `def:"1" min:"0" desc:"multiplier on the squared average post rate giving the threshold"`
	Bounds  WtBounds `view:"inline"`
}

func (bp *BCMParams) Defaults() {
	bp.Lrate = 0.01
	bp.ThrGain = 1
	bp.Bounds.Defaults()
}

// Theta is the threshold for a population with the given average rate
func (bp *BCMParams) Theta(avg float32) float32 {
	return bp.ThrGain * avg * avg
}

// BCM returns the global BCM learning rule
func BCM(bp *BCMParams) popnet.LearnFunc {
	return func(pj *popnet.Prjn, post, dt float32) {
		theta := bp.Theta(pj.Post.Stats.Rate.Avg)
		lr := bp.Lrate * dt * post * (post - theta)
		pre := pj.PreVals()
		for ci := range pj.Wts {
			pj.Wts[ci] = bp.Bounds.Clip(pj.Wts[ci] + lr*pre[ci])
		}
	}
}

// CovParams parameterize the covariance rule:
// dw = Lrate * (pre - avg(pre rate)) * (post - avg(post rate))
type CovParams struct {
	Lrate  float32  `def:"0.01" min:"0" desc:"learning rate, per time unit"`
	Bounds WtBounds `view:"inline"`
}

func (cp *CovParams) Defaults() {
	cp.Lrate = 0.01
	cp.Bounds.Defaults()
}

// Covariance returns the global covariance learning rule
func Covariance(cp *CovParams) popnet.LearnFunc {
	return func(pj *popnet.Prjn, post, dt float32) {
		lr := cp.Lrate * dt * (post - pj.Post.Stats.Rate.Avg)
		preAvg := pj.Pre.Stats.Rate.Avg
		pre := pj.PreVals()
		for ci := range pj.Wts {
			pj.Wts[ci] = cp.Bounds.Clip(pj.Wts[ci] + lr*(pre[ci]-preAvg))
		}
	}
}

// NewPrjnType returns a projection type with the given summation and
// learning functions, any of which may be nil.
func NewPrjnType(name string, sum popnet.SumFunc, global, local popnet.LearnFunc) *popnet.PrjnType {
	return &popnet.PrjnType{Name: name, Sum: sum, GlobalLearn: global, LocalLearn: local}
}
