// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package popnet

import "github.com/emer/etable/v2/minmax"

// PopStats are population-wide statistics computed in the GlobalOps phase.
// Global learning rules and neuron models on the next step read them.
type PopStats struct {

	// average and max rate
	Rate minmax.AvgMax32

	// average and max excitatory input sum
	Net minmax.AvgMax32
}

func (ps *PopStats) Init() {
	ps.Rate.Init()
	ps.Net.Init()
}

// Compute updates the statistics from the current rates and excitatory sums.
func (ps *PopStats) Compute(ly *Population) {
	ps.Init()
	if ly.N == 0 {
		return
	}
	for ni, r := range ly.Rates {
		ps.Rate.UpdateVal(r, int32(ni))
		ps.Net.UpdateVal(ly.Sum(ni, Exc), int32(ni))
	}
	ps.Rate.CalcAvg()
	ps.Net.CalcAvg()
}
