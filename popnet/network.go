// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package popnet

import (
	"context"
	"fmt"
	"log"

	"github.com/goki/kigen/ordmap"
)

// Network is the registry of populations and the driver of the per-step
// phase sequence.  Each phase runs to completion on every population before
// the next phase starts on any of them.  Topology (populations and
// projections) may only change between steps.
type Network struct {

	// name of the network
	Nm string

	// populations in the order added, keyed by name
	Pops *ordmap.Map[string, *Population] `view:"-"`

	// worker pool configuration, applied by Build
	Threads ThreadParams

	// worker pool shared by all populations, created by Build
	Pool *ThreadPool `view:"-" json:"-"`

	// simulation clock
	Time Time

	// true once Build has been called
	Built bool `inactive:"+"`

	stepping bool
	nextID   int
}

// NewNetwork returns a new, empty network with default parameters.
func NewNetwork(name string) *Network {
	nt := &Network{Nm: name}
	nt.Pops = ordmap.New[string, *Population]()
	nt.Defaults()
	return nt
}

// Defaults sets default parameters
func (nt *Network) Defaults() {
	nt.Threads.Defaults()
	nt.Time.Defaults()
}

// NPops is the number of populations
func (nt *Network) NPops() int {
	return nt.Pops.Len()
}

// Pop returns the population at index idx, in the order added
func (nt *Network) Pop(idx int) *Population {
	return nt.Pops.Order[idx].Val
}

// PopByName returns a population by name, nil if not found
func (nt *Network) PopByName(name string) *Population {
	idx, ok := nt.Pops.Map[name]
	if !ok {
		return nil
	}
	return nt.Pops.Order[idx].Val
}

// PopByNameTry returns a population by name, with an error if not found
func (nt *Network) PopByNameTry(name string) (*Population, error) {
	ly := nt.PopByName(name)
	if ly == nil {
		err := fmt.Errorf("popnet: population %q not found in network %q", name, nt.Nm)
		log.Println(err)
		return nil, err
	}
	return ly, nil
}

// AddPopulation registers ly, which must have a name unique in the network.
func (nt *Network) AddPopulation(ly *Population) error {
	if nt.stepping {
		return fmt.Errorf("popnet: AddPopulation %q: %w", ly.Nm, ErrRunning)
	}
	if _, has := nt.Pops.Map[ly.Nm]; has {
		return fmt.Errorf("popnet: population %q already exists in network %q", ly.Nm, nt.Nm)
	}
	ly.ID = nt.nextID
	nt.nextID++
	nt.Pops.Add(ly.Nm, ly)
	if nt.Built {
		nt.attach(ly)
	}
	return nil
}

// NewPopulation creates a population and adds it to the network.
func (nt *Network) NewPopulation(name string, n int, typ *NeuronType) (*Population, error) {
	ly, err := NewPopulation(name, n, typ)
	if err != nil {
		return nil, err
	}
	if err := nt.AddPopulation(ly); err != nil {
		return nil, err
	}
	return ly, nil
}

// RemovePopulation removes every projection coming from the named
// population, in all populations, and then destroys it.
func (nt *Network) RemovePopulation(name string) error {
	if nt.stepping {
		return fmt.Errorf("popnet: RemovePopulation %q: %w", name, ErrRunning)
	}
	rm, err := nt.PopByNameTry(name)
	if err != nil {
		return err
	}
	pops := ordmap.New[string, *Population]()
	for _, kv := range nt.Pops.Order {
		if kv.Val == rm {
			continue
		}
		kv.Val.RemoveConnections(rm)
		pops.Add(kv.Key, kv.Val)
	}
	nt.Pops = pops
	rm.Destroy()
	return nil
}

// Connect creates a projection from the neurons preIdx of pre (nil = all)
// onto neuron postIdx of post and attaches it.
func (nt *Network) Connect(pre, post *Population, postIdx int, tg Target, preIdx []int, wts []float32, typ *PrjnType) (*Prjn, error) {
	if nt.stepping {
		return nil, fmt.Errorf("popnet: Connect %s -> %s: %w", pre.Nm, post.Nm, ErrRunning)
	}
	pj, err := NewPrjn(pre, tg, preIdx, wts, typ)
	if err != nil {
		return nil, err
	}
	if err := post.AddConnection(postIdx, pj); err != nil {
		return nil, err
	}
	return pj, nil
}

// Build creates the worker pool and attaches it, and the profile files if
// configured, to all populations.  Failure to open a profile file is logged
// and only disables that file.
func (nt *Network) Build() error {
	if nt.stepping {
		return fmt.Errorf("popnet: Build %q: %w", nt.Nm, ErrRunning)
	}
	if nt.Pool != nil {
		nt.Pool.Stop()
	}
	nt.Pool = NewThreadPool(&nt.Threads)
	nt.Pool.Start()
	for _, kv := range nt.Pops.Order {
		nt.attach(kv.Val)
	}
	nt.Built = true
	return nil
}

func (nt *Network) attach(ly *Population) {
	ly.Pool = nt.Pool
	if ly.Prof != nil {
		ly.Prof.Close()
		ly.Prof = nil
	}
	if nt.Threads.Timing && nt.Threads.ProfileDir != "" {
		// errors are already logged, and the sinks degrade to nil
		ly.Prof, _ = OpenProfileSinks(nt.Threads.ProfileDir, ly.Nm, nt.Pool.NThreads)
	}
}

// Validate checks that the network can step: every population is Idle, and
// every projection comes from a population of this network with enough
// delay history.
func (nt *Network) Validate() error {
	for _, kv := range nt.Pops.Order {
		ly := kv.Val
		if ly.Phase != Idle {
			return &PhaseError{Pop: ly.Nm, From: ly.Phase, To: Summation}
		}
		for ni, pjs := range ly.Prjns {
			for _, pj := range pjs {
				if pj.Pre == nil || nt.PopByName(pj.Pre.Nm) != pj.Pre {
					return fmt.Errorf("popnet: projection %s onto neuron %d of %q comes from a population not in network %q", pj.Name(), ni, ly.Nm, nt.Nm)
				}
				if pj.MaxDelay > pj.Pre.MaxDelay() {
					return &RangeError{What: "delay of " + pj.Name(), Index: pj.MaxDelay, N: pj.Pre.MaxDelay() + 1}
				}
			}
		}
	}
	return nil
}

// ResetPhases returns all populations to Idle, e.g., after a failed step.
func (nt *Network) ResetPhases() {
	for _, kv := range nt.Pops.Order {
		kv.Val.ResetPhase()
	}
}

// InitRates resets the rates of all populations and the clock.
func (nt *Network) InitRates() {
	for _, kv := range nt.Pops.Order {
		kv.Val.InitRates()
	}
	nt.Time.Reset()
}

// popsFun runs fun on each population in order, stopping on the first error.
func (nt *Network) popsFun(fun func(ly *Population) error) error {
	for _, kv := range nt.Pops.Order {
		if err := fun(kv.Val); err != nil {
			return err
		}
	}
	return nil
}

// Step runs one full simulation step on all populations and advances the
// clock.  Build must have been called, or the populations run serially.
// On error all populations are returned to Idle and the clock is unchanged.
func (nt *Network) Step() error {
	nt.stepping = true
	defer func() { nt.stepping = false }()
	phases := []func(ly *Population) error{
		(*Population).StepSummation,
		(*Population).StepStateUpdate,
		(*Population).StepLearningGlobal,
		(*Population).StepLearningLocal,
		(*Population).StepGlobalOps,
		(*Population).RotateDelayBuffer,
	}
	for _, ph := range phases {
		if err := nt.popsFun(ph); err != nil {
			nt.ResetPhases()
			return err
		}
	}
	nt.Time.StepInc()
	return nil
}

// Run runs n steps.  See RunContext.
func (nt *Network) Run(n int) error {
	return nt.RunContext(context.Background(), n)
}

// RunContext validates the network, builds it if needed and runs n steps,
// checking ctx between steps.  A validation error is returned before any
// state changes.  A failed step returns all populations to Idle.
func (nt *Network) RunContext(ctx context.Context, n int) error {
	if err := nt.Validate(); err != nil {
		return err
	}
	if !nt.Built {
		if err := nt.Build(); err != nil {
			return err
		}
	}
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := nt.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Destroy stops the worker pool and destroys all populations.
func (nt *Network) Destroy() {
	if nt.Pool != nil {
		nt.Pool.Stop()
		nt.Pool = nil
	}
	for _, kv := range nt.Pops.Order {
		kv.Val.Destroy()
	}
	nt.Pops = ordmap.New[string, *Population]()
	nt.Built = false
}
