// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package rates provides standard neuron and synapse models for popnet:
summation operations over a projection, rate transfer functions including
the noisy x/(x+1) function, leaky integrator and conductance-based neuron
models, and Hebbian,
Oja, BCM and covariance learning rules, along with helpers that wire up
common connectivity patterns.

Each model is configured with a Params struct (Defaults / Update) and turned
into the popnet function tables (NeuronType, PrjnType) by its constructor.
*/
package rates
