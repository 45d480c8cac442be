// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fffb

import "github.com/emer/etable/v2/minmax"

// Inhib is the inhibition state of one population
type Inhib struct {

	// computed feedforward inhibition
	FFi float32

	// computed feedback inhibition, integrated over steps
	FBi float32

	// overall inhibition, read by neuron models on the next step
	Gi float32

	// inhibition computed from this population alone, before inhibition from other populations
	GiOrig float32

	// average and max excitatory input, driving FF inhibition
	Net minmax.AvgMax32

	// average and max rate, driving FB inhibition
	Rate minmax.AvgMax32
}

// Init resets inhibition and the input statistics
func (fi *Inhib) Init() {
	*fi = Inhib{}
	fi.Net.Init()
	fi.Rate.Init()
}
