// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package popnet

import (
	"fmt"
	"math"
	"unsafe"
)

// Prjn is a projection from a set of neurons in a pre-synaptic population
// onto a single neuron of the post-synaptic population that owns it.
// The pre-synaptic population is referenced, not owned: removing it must go
// through Population.RemoveConnections (Network.RemovePopulation does this).
type Prjn struct {

	// synaptic channel label, used by Population.Sum
	Target Target

	// sending population
	Pre *Population

	// receiving population, set by Population.AddConnection
	Post *Population

	// index of the receiving neuron in Post
	PostIdx int

	// indexes of the wired neurons in Pre
	PreIdx []int

	// one weight per wired pre neuron
	Wts []float32

	// one delay per wired pre neuron, in steps -- nil = no delays
	Delays []int

	// injected summation and learning, nil = weighted sum, no learning
	Type *PrjnType

	// maximum of Delays
	MaxDelay int

	sum float32
	pre []float32
}

// NewPrjn returns a new projection from the neurons preIdx of pre, with the
// given initial weights (copied).  A nil preIdx wires all neurons of pre in
// order.  The projection is attached to its receiving neuron with
// Population.AddConnection.
func NewPrjn(pre *Population, target Target, preIdx []int, wts []float32, typ *PrjnType) (*Prjn, error) {
	if pre == nil {
		return nil, fmt.Errorf("popnet: NewPrjn: nil pre-synaptic population")
	}
	if preIdx == nil {
		preIdx = make([]int, pre.N)
		for i := range preIdx {
			preIdx[i] = i
		}
	}
	if len(wts) != len(preIdx) {
		return nil, &SizeMismatchError{What: "weights vs. pre-synaptic neurons", Got: len(wts), Want: len(preIdx)}
	}
	for _, si := range preIdx {
		if si < 0 || si >= pre.N {
			return nil, &RangeError{What: "pre-synaptic neuron of " + pre.Nm, Index: si, N: pre.N}
		}
	}
	pj := &Prjn{Target: target, Pre: pre, Type: typ, PostIdx: -1}
	pj.PreIdx = append([]int(nil), preIdx...)
	pj.Wts = append([]float32(nil), wts...)
	pj.pre = make([]float32, len(preIdx))
	return pj, nil
}

// Name is a diagnostic label: Pre -> Post[PostIdx].
func (pj *Prjn) Name() string {
	pnm := "<nil>"
	if pj.Pre != nil {
		pnm = pj.Pre.Nm
	}
	if pj.Post == nil {
		return pnm + "->?"
	}
	return fmt.Sprintf("%s->%s[%d]", pnm, pj.Post.Nm, pj.PostIdx)
}

// SetDelays sets the per-connection delays, in steps (copied).  A delay of 0
// reads the current pre rates.  The delay history of Pre is grown as needed.
func (pj *Prjn) SetDelays(delays []int) error {
	if len(delays) != len(pj.PreIdx) {
		return &SizeMismatchError{What: "delays vs. pre-synaptic neurons", Got: len(delays), Want: len(pj.PreIdx)}
	}
	mx := 0
	for i, d := range delays {
		if d < 0 {
			return &RangeError{What: "delay of connection " + fmt.Sprint(i), Index: d, N: math.MaxInt}
		}
		if d > mx {
			mx = d
		}
	}
	if mx == 0 {
		pj.Delays = nil
		pj.MaxDelay = 0
		return nil
	}
	pj.Delays = append([]int(nil), delays...)
	pj.MaxDelay = mx
	pj.Pre.EnsureDelayCapacity(mx)
	return nil
}

// gatherPre fills the pre buffer from the current or delayed pre rates,
// returning true if any delayed values were read.
func (pj *Prjn) gatherPre() bool {
	rates := pj.Pre.Rates
	if pj.MaxDelay == 0 {
		for ci, si := range pj.PreIdx {
			pj.pre[ci] = rates[si]
		}
		return false
	}
	db := &pj.Pre.Delay
	for ci, si := range pj.PreIdx {
		d := pj.Delays[ci]
		if d <= 0 {
			pj.pre[ci] = rates[si]
		} else {
			pj.pre[ci] = db.Value(d, si)
		}
	}
	return true
}

// ComputeSum recomputes and caches the sum of this projection from the
// pre-synaptic output (delayed where configured).  Touches no other projection.
func (pj *Prjn) ComputeSum() {
	delayed := pj.gatherPre()
	sf := WeightedSum
	if pj.Type != nil && pj.Type.Sum != nil {
		sf = pj.Type.Sum
	}
	pj.sum = sf(pj.pre, delayed, pj.Wts)
}

// CurrentSum is the sum cached by the last ComputeSum.
func (pj *Prjn) CurrentSum() float32 {
	return pj.sum
}

// GetTarget returns the synaptic channel label.
func (pj *Prjn) GetTarget() Target {
	return pj.Target
}

// GetPrePopulation returns the sending population.
func (pj *Prjn) GetPrePopulation() *Population {
	return pj.Pre
}

func (pj *Prjn) postRate() float32 {
	if pj.Post == nil || pj.PostIdx < 0 {
		return 0
	}
	return pj.Post.Rates[pj.PostIdx]
}

// GlobalLearn runs the global learning rule of the projection type, if any.
func (pj *Prjn) GlobalLearn(dt float32) {
	if pj.Type == nil || pj.Type.GlobalLearn == nil {
		return
	}
	pj.Type.GlobalLearn(pj, pj.postRate(), dt)
}

// LocalLearn runs the local learning rule of the projection type, if any.
func (pj *Prjn) LocalLearn(dt float32) {
	if pj.Type == nil || pj.Type.LocalLearn == nil {
		return
	}
	pj.Type.LocalLearn(pj, pj.postRate(), dt)
}

// Destroy releases the weight storage.  The projection must already be
// detached from its receiving neuron.
func (pj *Prjn) Destroy() {
	pj.Wts = nil
	pj.PreIdx = nil
	pj.Delays = nil
	pj.pre = nil
	pj.MaxDelay = 0
	pj.sum = 0
	pj.Pre = nil
	pj.Post = nil
}

// Size is the number of wired pre-synaptic neurons.
func (pj *Prjn) Size() int {
	return len(pj.PreIdx)
}

// PreRanks returns the wired pre-synaptic neuron indexes.  Do not modify.
func (pj *Prjn) PreRanks() []int {
	return pj.PreIdx
}

// PreVals returns the pre-synaptic values gathered by the last ComputeSum,
// in connection order.  Do not modify.
func (pj *Prjn) PreVals() []float32 {
	return pj.pre
}

// Weight returns the weight of connection ci.
func (pj *Prjn) Weight(ci int) (float32, error) {
	if ci < 0 || ci >= len(pj.Wts) {
		return 0, &RangeError{What: "connection", Index: ci, N: len(pj.Wts)}
	}
	return pj.Wts[ci], nil
}

// SetWeight sets the weight of connection ci.
func (pj *Prjn) SetWeight(ci int, wt float32) error {
	if ci < 0 || ci >= len(pj.Wts) {
		return &RangeError{What: "connection", Index: ci, N: len(pj.Wts)}
	}
	pj.Wts[ci] = wt
	return nil
}

// SetWeights sets all the weights (copied).
func (pj *Prjn) SetWeights(wts []float32) error {
	if len(wts) != len(pj.Wts) {
		return &SizeMismatchError{What: "weights", Got: len(wts), Want: len(pj.Wts)}
	}
	copy(pj.Wts, wts)
	return nil
}

// Bytes is the memory used by the projection.
func (pj *Prjn) Bytes() int {
	return int(unsafe.Sizeof(*pj)) + len(pj.Wts)*4 + len(pj.pre)*4 +
		(len(pj.PreIdx)+len(pj.Delays))*int(unsafe.Sizeof(int(0)))
}
