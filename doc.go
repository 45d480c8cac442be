// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package popnet is the overall repository for the discrete-time rate-coded
population network engine.

This top-level of the repository has no functional code -- everything is organized
into the following sub-packages:

* popnet: the core engine: populations of rate neurons, projections between them
with per-connection delays held in ring buffers, the per-step pipeline
(summation, state update, global and local learning, global ops, delay rotation)
and the Network orchestrator that runs it, optionally over a worker pool.

* rates: standard neuron and projection models: summation ops, transfer
functions including noisy x/(x+1), leaky and conductance-based rate neurons,
Hebbian, Oja, BCM and covariance learning rules, and connection helpers.

* fffb: feedforward and feedback pooled inhibition within a population.

* interinhib: inhibition between populations.

* chans: the conductance channels used by the conductance-based neuron.

* monitor: records population rates over steps into etable tables.

* examples: these compile into runnable programs: chain is a two-population
delayed chain configured from a TOML file, bench is the threading benchmark
and eqplot tabulates the transfer functions.
*/
package popnet
