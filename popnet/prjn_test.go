// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package popnet

import (
	"errors"
	"testing"
)

func TestNewPrjnErrors(t *testing.T) {
	a := newPop(t, "A", 3)
	pj, err := NewPrjn(a, Exc, []int{0, 1}, []float32{1}, nil)
	if pj != nil || !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("weight count mismatch: got %v, %v", pj, err)
	}
	pj, err = NewPrjn(a, Exc, []int{0, 3}, []float32{1, 1}, nil)
	if pj != nil || !errors.Is(err, ErrRange) {
		t.Errorf("bad pre index: got %v, %v", pj, err)
	}
	pj, err = NewPrjn(a, Inh, nil, []float32{1, 2, 3}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if pj.Size() != 3 || pj.PreRanks()[2] != 2 || pj.GetPrePopulation() != a || pj.GetTarget() != Inh {
		t.Errorf("accessors wrong: %+v", pj)
	}
}

func TestPrjnWeights(t *testing.T) {
	a := newPop(t, "A", 3)
	wts := []float32{1, 2, 3}
	pj, _ := NewPrjn(a, Exc, nil, wts, nil)
	wts[0] = 10
	if w, _ := pj.Weight(0); w != 1 {
		t.Errorf("weights not copied: %v", w)
	}
	if err := pj.SetWeight(1, 5); err != nil {
		t.Fatal(err)
	}
	if _, err := pj.Weight(3); !errors.Is(err, ErrRange) {
		t.Errorf("Weight(3): %v", err)
	}
	if err := pj.SetWeight(-1, 0); !errors.Is(err, ErrRange) {
		t.Errorf("SetWeight(-1): %v", err)
	}
	if err := pj.SetWeights([]float32{1}); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("SetWeights short: %v", err)
	}
	CmprFloats(pj.Wts, []float32{1, 5, 3}, "weights", t)
	pj.Destroy()
	if pj.Wts != nil || pj.Size() != 0 {
		t.Errorf("destroy did not release weights")
	}
}

// Scenario: A = [1, 3] with weights [0.5, 0.5] onto B[0] gives 2.
func TestComputeSum(t *testing.T) {
	a := newPop(t, "A", 2)
	b := newPop(t, "B", 1)
	a.SetRates([]float32{1, 3})
	pj, err := NewPrjn(a, Exc, nil, []float32{0.5, 0.5}, nil)
	if err != nil {
		t.Fatal(err)
	}
	b.AddConnection(0, pj)
	pj.ComputeSum()
	if pj.CurrentSum() != 2 || b.Sum(0, Exc) != 2 {
		t.Errorf("sum: got %v, %v, want 2", pj.CurrentSum(), b.Sum(0, Exc))
	}
	CmprFloats(pj.PreVals(), []float32{1, 3}, "pre vals", t)

	maxTyp := &PrjnType{Name: "Max", Sum: func(pre []float32, delayed bool, wts []float32) float32 {
		mx := float32(0)
		for i := range pre {
			if v := pre[i] * wts[i]; v > mx {
				mx = v
			}
		}
		return mx
	}}
	pj.Type = maxTyp
	pj.ComputeSum()
	if pj.CurrentSum() != 1.5 {
		t.Errorf("max sum: got %v, want 1.5", pj.CurrentSum())
	}
}

func TestSetDelays(t *testing.T) {
	a := newPop(t, "A", 2)
	b := newPop(t, "B", 1)
	pj, _ := NewPrjn(a, Exc, nil, []float32{1, 1}, nil)
	if err := pj.SetDelays([]int{1}); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("short delays: %v", err)
	}
	if err := pj.SetDelays([]int{1, -1}); !errors.Is(err, ErrRange) {
		t.Errorf("negative delay: %v", err)
	}
	if err := pj.SetDelays([]int{0, 3}); err != nil {
		t.Fatal(err)
	}
	if pj.MaxDelay != 3 || a.MaxDelay() != 3 {
		t.Errorf("max delay: prjn %d, pre %d", pj.MaxDelay, a.MaxDelay())
	}
	b.AddConnection(0, pj)
	a.SetRates([]float32{5, 7})
	pj.ComputeSum()
	// neuron 0 is undelayed, neuron 1 reads the placeholder
	if pj.CurrentSum() != 5+a.Params.Delay.Init {
		t.Errorf("delayed sum: %v", pj.CurrentSum())
	}
	var gotDelayed bool
	pj.Type = &PrjnType{Sum: func(pre []float32, delayed bool, wts []float32) float32 {
		gotDelayed = delayed
		return 0
	}}
	pj.ComputeSum()
	if !gotDelayed {
		t.Errorf("delayed flag not passed to Sum")
	}
	if err := pj.SetDelays([]int{0, 0}); err != nil || pj.Delays != nil {
		t.Errorf("clearing delays: %v, %v", err, pj.Delays)
	}
}

func TestPrjnLearn(t *testing.T) {
	a := newPop(t, "A", 2)
	b := newPop(t, "B", 2)
	var gotPost float32
	typ := &PrjnType{
		LocalLearn: func(pj *Prjn, post, dt float32) {
			gotPost = post
			for ci := range pj.Wts {
				pj.Wts[ci] += dt * pj.PreVals()[ci]
			}
		},
	}
	pj, _ := NewPrjn(a, Exc, nil, []float32{0, 0}, typ)
	b.AddConnection(1, pj)
	a.SetRates([]float32{1, 2})
	b.SetRates([]float32{3, 4})
	pj.ComputeSum()
	pj.GlobalLearn(0.5)
	CmprFloats(pj.Wts, []float32{0, 0}, "no global rule", t)
	pj.LocalLearn(0.5)
	CmprFloats(pj.Wts, []float32{0.5, 1}, "local rule", t)
	if gotPost != 4 {
		t.Errorf("post rate: got %v, want 4", gotPost)
	}
}
