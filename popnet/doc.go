// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package popnet is the core discrete-time engine for networks of rate-coded
neural populations connected through weighted, optionally delayed projections.

A Population holds the output (rate) of each of its neurons, and for each neuron
the ordered list of incoming Prjn projections that it owns. Each Prjn connects a
set of neurons in a pre-synaptic Population to one post-synaptic neuron, and
carries a Target label (e.g., Exc, Inh) so that the receiving neuron model can
combine its inputs per channel.

Every simulation step runs the same phase sequence on every population:

	Summation -> StateUpdate -> LearningGlobal -> LearningLocal -> GlobalOps -> DelayRotate

The Network runs each phase across all populations before starting the next one,
so that a projection always reads the pre-synaptic output of the previous step.
Within a population, each phase is a parallel-for over neurons on the shared
ThreadPool: a neuron's projection list is touched only by the worker handling
that neuron, so no locking is needed.

The actual neuron and synapse equations are injected as function tables:
NeuronType (state update) and PrjnType (summation and learning). The rates
package provides standard implementations.
*/
package popnet
