// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rates

import (
	"math/rand"

	"github.com/emer/popnet/popnet"
)

// WtInit returns the initial weight from pre neuron si to post neuron ri
type WtInit func(si, ri int) float32

// UniformWts gives every connection the weight wt
func UniformWts(wt float32) WtInit {
	return func(si, ri int) float32 { return wt }
}

// RandomWts draws weights uniformly from [mean - vr, mean + vr] using rnd,
// which must not be shared with concurrently running code.
func RandomWts(rnd *rand.Rand, mean, vr float32) WtInit {
	return func(si, ri int) float32 {
		return mean + vr*(2*rnd.Float32()-1)
	}
}

// ConnectFull gives every neuron of post one projection from all neurons of
// pre.  If selfCon is false and pre == post, a neuron does not connect to
// itself.  Returns the projections, one per post neuron.
func ConnectFull(nt *popnet.Network, pre, post *popnet.Population, tg popnet.Target, selfCon bool, wts WtInit, typ *popnet.PrjnType) ([]*popnet.Prjn, error) {
	pjs := make([]*popnet.Prjn, post.N)
	for ri := 0; ri < post.N; ri++ {
		idx := make([]int, 0, pre.N)
		for si := 0; si < pre.N; si++ {
			if !selfCon && pre == post && si == ri {
				continue
			}
			idx = append(idx, si)
		}
		w := make([]float32, len(idx))
		for ci, si := range idx {
			w[ci] = wts(si, ri)
		}
		pj, err := nt.Connect(pre, post, ri, tg, idx, w, typ)
		if err != nil {
			return nil, err
		}
		pjs[ri] = pj
	}
	return pjs, nil
}

// ConnectOneToOne connects neuron i of pre to neuron i of post, for the
// first min(pre.N, post.N) neurons.
func ConnectOneToOne(nt *popnet.Network, pre, post *popnet.Population, tg popnet.Target, wts WtInit, typ *popnet.PrjnType) ([]*popnet.Prjn, error) {
	n := pre.N
	if post.N < n {
		n = post.N
	}
	pjs := make([]*popnet.Prjn, n)
	for i := 0; i < n; i++ {
		pj, err := nt.Connect(pre, post, i, tg, []int{i}, []float32{wts(i, i)}, typ)
		if err != nil {
			return nil, err
		}
		pjs[i] = pj
	}
	return pjs, nil
}

// SetDelays sets the delay of every connection of pjs to d(si, ri)
func SetDelays(pjs []*popnet.Prjn, d func(si, ri int) int) error {
	for _, pj := range pjs {
		dl := make([]int, pj.Size())
		for ci, si := range pj.PreRanks() {
			dl[ci] = d(si, pj.PostIdx)
		}
		if err := pj.SetDelays(dl); err != nil {
			return err
		}
	}
	return nil
}
