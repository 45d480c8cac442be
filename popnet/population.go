// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package popnet

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/emer/emergent/v2/timer"
	"github.com/emer/etable/v2/etensor"
	"github.com/emer/popnet/fffb"
)

// Population is a set of N rate-coded neurons, together with the incoming
// projections of each neuron, which it owns.
type Population struct {

	// name of the population, for diagnostics and lookup
	Nm string

	// index in the network, assigned by Network.AddPopulation
	ID int

	// number of neurons, fixed at construction
	N int

	// parameters
	Params PopParams

	// injected state update -- nil leaves the rates unchanged (e.g., an input population)
	Type *NeuronType

	// current output of each neuron
	Rates []float32

	// incoming projections of each neuron, in insertion order
	Prjns [][]*Prjn

	// output history, read by delayed projections from this population
	Delay DelayBuffer

	// integration time step passed to the neuron model and learning rules
	Dt float32

	// rate and input statistics from the last GlobalOps
	Stats PopStats

	// inhibition parameters
	InhibParams fffb.Params `view:"inline"`

	// inhibition state from the last GlobalOps
	Inhib fffb.Inhib `inactive:"+"`

	// optional extra work at the end of GlobalOps
	GlobalFun func(ly *Population) `view:"-" json:"-"`

	// current position in the per-step phase sequence
	Phase Phases `inactive:"+"`

	// shared worker pool -- nil = serial
	Pool *ThreadPool `view:"-" json:"-"`

	// per-step timing files -- nil = off
	Prof *ProfileSinks `view:"-" json:"-"`

	prfTmr timer.Time
}

// NewPopulation returns a new population of n neurons with default
// parameters, all rates at Params.RateInit and no projections.
func NewPopulation(name string, n int, typ *NeuronType) (*Population, error) {
	if n < 0 {
		return nil, &RangeError{What: "neuron count of " + name, Index: n, N: 0}
	}
	ly := &Population{Nm: name, N: n, Type: typ}
	ly.Defaults()
	ly.Rates = make([]float32, n)
	ly.Prjns = make([][]*Prjn, n)
	ly.Delay.Init(n)
	ly.InitRates()
	return ly, nil
}

// Defaults sets default parameters
func (ly *Population) Defaults() {
	ly.Params.Defaults()
	ly.Dt = ly.Params.Dt
	ly.InhibParams.Defaults()
	ly.Inhib.Init()
	ly.Stats.Init()
}

// UpdateParams must be called after changing parameters
func (ly *Population) UpdateParams() {
	ly.Params.Update()
	ly.Dt = ly.Params.Dt
	ly.InhibParams.Update()
}

// Name returns the population name.
func (ly *Population) Name() string {
	return ly.Nm
}

// InitRates sets all rates to Params.RateInit and clears inhibition.
// The delay history is left as is.
func (ly *Population) InitRates() {
	for ni := range ly.Rates {
		ly.Rates[ni] = ly.Params.RateInit
	}
	ly.Inhib.Init()
}

// SetRates copies rates into the population, e.g., for an input population.
// Only allowed between steps.
func (ly *Population) SetRates(rates []float32) error {
	if ly.Phase != Idle {
		return &PhaseError{Pop: ly.Nm, From: ly.Phase, To: Idle}
	}
	if len(rates) != ly.N {
		return &SizeMismatchError{What: "rates of " + ly.Nm, Got: len(rates), Want: ly.N}
	}
	copy(ly.Rates, rates)
	return nil
}

// Rate returns the current rate of neuron ni.
func (ly *Population) Rate(ni int) (float32, error) {
	if ni < 0 || ni >= ly.N {
		return 0, &RangeError{What: "neuron of " + ly.Nm, Index: ni, N: ly.N}
	}
	return ly.Rates[ni], nil
}

// AddConnection attaches pj as the last incoming projection of neuron ni.
// Duplicates are not detected.  The delay history of the pre-synaptic
// population is grown to cover the projection's delays.
func (ly *Population) AddConnection(ni int, pj *Prjn) error {
	if ni < 0 || ni >= ly.N {
		return &RangeError{What: "post-synaptic neuron of " + ly.Nm, Index: ni, N: ly.N}
	}
	if ly.Phase != Idle {
		return fmt.Errorf("popnet: AddConnection to %q: %w", ly.Nm, ErrRunning)
	}
	pj.Post = ly
	pj.PostIdx = ni
	ly.Prjns[ni] = append(ly.Prjns[ni], pj)
	if pj.MaxDelay > 0 {
		pj.Pre.EnsureDelayCapacity(pj.MaxDelay)
	}
	return nil
}

// RemoveConnections detaches and destroys every projection coming from pre,
// keeping the order of the others, and returns how many were removed.
func (ly *Population) RemoveConnections(pre *Population) int {
	nrm := 0
	for ni, pjs := range ly.Prjns {
		k := 0
		for _, pj := range pjs {
			if pj.Pre == pre {
				pj.Destroy()
				nrm++
				continue
			}
			pjs[k] = pj
			k++
		}
		for i := k; i < len(pjs); i++ {
			pjs[i] = nil
		}
		ly.Prjns[ni] = pjs[:k]
	}
	return nrm
}

// NPrjns is the number of incoming projections of neuron ni,
// which must be in [0, N).
func (ly *Population) NPrjns(ni int) int {
	return len(ly.Prjns[ni])
}

// PrjnsFrom returns all projections, over all neurons, coming from pre.
func (ly *Population) PrjnsFrom(pre *Population) []*Prjn {
	var pjs []*Prjn
	for _, npj := range ly.Prjns {
		for _, pj := range npj {
			if pj.Pre == pre {
				pjs = append(pjs, pj)
			}
		}
	}
	return pjs
}

// Sum returns the summed input of neuron ni on target tg, from the sums
// cached in the last Summation.  0 if no projection has that target.
// ni must be in [0, N): see SumTry for a checked version.
func (ly *Population) Sum(ni int, tg Target) float32 {
	sum := float32(0)
	for _, pj := range ly.Prjns[ni] {
		if pj.Target == tg {
			sum += pj.sum
		}
	}
	return sum
}

// SumTry is Sum with a RangeError for a neuron index outside [0, N).
func (ly *Population) SumTry(ni int, tg Target) (float32, error) {
	if ni < 0 || ni >= ly.N {
		err := &RangeError{What: "neuron of " + ly.Nm, Index: ni, N: ly.N}
		log.Println(err)
		return 0, err
	}
	return ly.Sum(ni, tg), nil
}

// EnsureDelayCapacity grows the delay history to hold at least d past
// outputs.  Never shrinks.
func (ly *Population) EnsureDelayCapacity(d int) {
	ly.Delay.Grow(d, ly.Params.Delay.Fill)
}

// MaxDelay is the current depth of the delay history.
func (ly *Population) MaxDelay() int {
	return ly.Delay.MaxDelay()
}

// DelayedRates returns, for each i, the output of neuron idxs[i] from
// delays[i] steps ago (0 = current rates).  Mismatched lengths or any
// out of range value give an empty result and an error.
func (ly *Population) DelayedRates(delays, idxs []int) ([]float32, error) {
	if len(delays) != len(idxs) {
		err := &SizeMismatchError{What: "delays vs. neuron indexes", Got: len(delays), Want: len(idxs)}
		log.Println(err)
		return []float32{}, err
	}
	vals := make([]float32, len(idxs))
	for i, ni := range idxs {
		if ni < 0 || ni >= ly.N {
			err := &RangeError{What: "neuron of " + ly.Nm, Index: ni, N: ly.N}
			log.Println(err)
			return []float32{}, err
		}
		d := delays[i]
		switch {
		case d <= 0:
			vals[i] = ly.Rates[ni]
		case d > ly.Delay.MaxDelay():
			err := &RangeError{What: "delay of " + ly.Nm, Index: d, N: ly.Delay.MaxDelay() + 1}
			log.Println(err)
			return []float32{}, err
		default:
			vals[i] = ly.Delay.Value(d, ni)
		}
	}
	return vals, nil
}

// enterPhase moves to phase to, which must directly follow the current one.
func (ly *Population) enterPhase(to Phases) error {
	if ly.Phase.Next() != to {
		return &PhaseError{Pop: ly.Nm, From: ly.Phase, To: to}
	}
	ly.Phase = to
	return nil
}

// ResetPhase returns to Idle, e.g., after a failed step.
func (ly *Population) ResetPhase() {
	ly.Phase = Idle
}

// neurFun runs fun over all neurons, on the pool if present
func (ly *Population) neurFun(fun func(ni int), funame string) {
	if ly.Pool == nil {
		for ni := 0; ni < ly.N; ni++ {
			fun(ni)
		}
		return
	}
	ly.Pool.NeurFun(ly.N, fun, funame)
}

func (ly *Population) profStart() {
	if ly.Prof == nil {
		return
	}
	ly.prfTmr.Reset()
	ly.prfTmr.Start()
}

func (ly *Population) profStop(w io.Writer) {
	if ly.Prof == nil {
		return
	}
	ly.prfTmr.Stop()
	writeMSecs(w, ly.prfTmr.TotalSecs()*1000)
}

// StepSummation recomputes the sum of every incoming projection.
func (ly *Population) StepSummation() error {
	if err := ly.enterPhase(Summation); err != nil {
		return err
	}
	ly.profStart()
	ly.neurFun(func(ni int) {
		for _, pj := range ly.Prjns[ni] {
			pj.ComputeSum()
		}
	}, "Summation")
	if ly.Prof != nil {
		ly.profStop(ly.Prof.Sum)
	}
	return nil
}

// StepStateUpdate computes the new rates with the neuron model.
func (ly *Population) StepStateUpdate() error {
	if err := ly.enterPhase(StateUpdate); err != nil {
		return err
	}
	if ly.Type == nil || ly.Type.Update == nil {
		return nil
	}
	upd := ly.Type.Update
	dt := ly.Dt
	ly.neurFun(func(ni int) {
		ly.Rates[ni] = upd(Inputs{Pop: ly, Ni: ni}, ly.Rates[ni], dt)
	}, "StateUpdate")
	return nil
}

// StepLearningGlobal runs the global learning rule of every projection.
func (ly *Population) StepLearningGlobal() error {
	if err := ly.enterPhase(LearningGlobal); err != nil {
		return err
	}
	ly.profStart()
	dt := ly.Dt
	ly.neurFun(func(ni int) {
		for _, pj := range ly.Prjns[ni] {
			pj.GlobalLearn(dt)
		}
	}, "LearningGlobal")
	if ly.Prof != nil {
		ly.profStop(ly.Prof.Global)
	}
	return nil
}

// StepLearningLocal runs the local learning rule of every projection.
func (ly *Population) StepLearningLocal() error {
	if err := ly.enterPhase(LearningLocal); err != nil {
		return err
	}
	ly.profStart()
	dt := ly.Dt
	ly.neurFun(func(ni int) {
		for _, pj := range ly.Prjns[ni] {
			pj.LocalLearn(dt)
		}
	}, "LearningLocal")
	if ly.Prof != nil {
		ly.profStop(ly.Prof.Local)
	}
	return nil
}

// StepLearning runs the global learning pass to completion for all neurons,
// then the local pass, so that no global rule sees locally updated weights.
func (ly *Population) StepLearning() error {
	if err := ly.StepLearningGlobal(); err != nil {
		return err
	}
	return ly.StepLearningLocal()
}

// StepGlobalOps computes the population statistics and inhibition.
func (ly *Population) StepGlobalOps() error {
	if err := ly.enterPhase(GlobalOps); err != nil {
		return err
	}
	ly.Stats.Compute(ly)
	ly.Inhib.Net = ly.Stats.Net
	ly.Inhib.Rate = ly.Stats.Rate
	ly.InhibParams.Inhib(&ly.Inhib)
	if ly.GlobalFun != nil {
		ly.GlobalFun(ly)
	}
	return nil
}

// RotateDelayBuffer records the rates of this step in the delay history
// and ends the step.
func (ly *Population) RotateDelayBuffer() error {
	if err := ly.enterPhase(DelayRotate); err != nil {
		return err
	}
	ly.Delay.Rotate(ly.Rates)
	ly.Phase = Idle
	return nil
}

// Destroy destroys all owned projections and releases the rates and
// delay history.
func (ly *Population) Destroy() {
	for ni, pjs := range ly.Prjns {
		for _, pj := range pjs {
			pj.Destroy()
		}
		ly.Prjns[ni] = nil
	}
	ly.Prjns = nil
	ly.Rates = nil
	ly.Delay.Init(0)
	ly.N = 0
	if ly.Prof != nil {
		ly.Prof.Close()
		ly.Prof = nil
	}
	ly.Pool = nil
}

// RatesString returns the rates formatted with 2 decimals, 10 per line.
func (ly *Population) RatesString() string {
	var b strings.Builder
	for ni, r := range ly.Rates {
		fmt.Fprintf(&b, "%.02f ", r)
		if (ni+1)%10 == 0 {
			b.WriteString("\n")
		}
	}
	if ly.N%10 != 0 {
		b.WriteString("\n")
	}
	return b.String()
}

// WriteRates writes the RatesString of the population, with a header line.
func (ly *Population) WriteRates(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s (%d):\n%s", ly.Nm, ly.N, ly.RatesString())
	return err
}

// RatesTensor returns a copy of the rates as a 1D tensor.
func (ly *Population) RatesTensor() *etensor.Float32 {
	tsr := etensor.NewFloat32([]int{ly.N}, nil, []string{"Neuron"})
	copy(tsr.Values, ly.Rates)
	return tsr
}

// Bytes is the memory used by the rates, delay history and projections.
func (ly *Population) Bytes() (neur, syn int) {
	neur = len(ly.Rates)*4 + ly.Delay.Bytes()
	for _, pjs := range ly.Prjns {
		for _, pj := range pjs {
			syn += pj.Bytes()
		}
	}
	return
}
