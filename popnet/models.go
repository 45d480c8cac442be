// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package popnet

// SumFunc combines the gathered pre-synaptic values with the weights of one
// projection into a single sum.  delayed is true when pre holds values read
// from the delay history rather than the current rates.  pre and wts have the
// same length and must not be retained.
type SumFunc func(pre []float32, delayed bool, wts []float32) float32

// StateFunc computes the new rate of one neuron from its current inputs,
// its previous rate and the population time step.
type StateFunc func(in Inputs, prev, dt float32) float32

// LearnFunc updates the weights of one projection in place.  post is the
// current rate of the receiving neuron.  The pre-synaptic values used in the
// last summation are available as pj.PreVals().  A LearnFunc may read any
// population's rates and stats, but may only write pj.Wts.
type LearnFunc func(pj *Prjn, post, dt float32)

// NeuronType is the injected state update model of a population.
type NeuronType struct {
	Name   string
	Update StateFunc
}

// PrjnType is the injected summation and learning behavior of a projection.
// A nil Sum is a weighted sum; nil learning functions do nothing.
type PrjnType struct {
	Name        string
	Sum         SumFunc
	GlobalLearn LearnFunc
	LocalLearn  LearnFunc
}

// Inputs gives a StateFunc read access to the inputs of the neuron being updated.
type Inputs struct {
	Pop *Population
	Ni  int
}

// Sum is the current summed input of the neuron on target tg.
func (in Inputs) Sum(tg Target) float32 {
	return in.Pop.Sum(in.Ni, tg)
}

// Gi is the population inhibition computed in the last GlobalOps phase.
func (in Inputs) Gi() float32 {
	return in.Pop.Inhib.Gi
}

// Rate is the rate of the neuron before this update.
func (in Inputs) Rate() float32 {
	return in.Pop.Rates[in.Ni]
}

// WeightedSum is the default SumFunc: sum_i pre[i] * wts[i].
func WeightedSum(pre []float32, delayed bool, wts []float32) float32 {
	sum := float32(0)
	for i, w := range wts {
		sum += pre[i] * w
	}
	return sum
}
