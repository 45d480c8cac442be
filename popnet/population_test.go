// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package popnet

import (
	"errors"
	"strings"
	"testing"

	"github.com/goki/mat32"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

func CmprFloats(got, trg []float32, msg string, t *testing.T) {
	if len(got) != len(trg) {
		t.Errorf("%v err: got len: %v, trg len: %v\n", msg, len(got), len(trg))
		return
	}
	for i := range got {
		dif := mat32.Abs(got[i] - trg[i])
		if dif > difTol { // allow for small numerical diffs
			t.Errorf("%v err: got: %v, trg: %v, dif: %v\n", msg, got[i], trg[i], dif)
		}
	}
}

func newPop(t *testing.T, name string, n int) *Population {
	t.Helper()
	ly, err := NewPopulation(name, n, nil)
	if err != nil {
		t.Fatal(err)
	}
	return ly
}

func TestNewPopulation(t *testing.T) {
	for _, n := range []int{0, 1, 5, 100} {
		ly := newPop(t, "P", n)
		if len(ly.Rates) != n || len(ly.Prjns) != n {
			t.Errorf("N=%d: got %d rates, %d prjn lists", n, len(ly.Rates), len(ly.Prjns))
		}
		for ni := 0; ni < n; ni++ {
			if ly.Rates[ni] != 2 {
				t.Errorf("N=%d: rate %d = %v, want 2", n, ni, ly.Rates[ni])
			}
			if ly.NPrjns(ni) != 0 {
				t.Errorf("N=%d: neuron %d has %d prjns", n, ni, ly.NPrjns(ni))
			}
		}
		if ly.Dt != 1 {
			t.Errorf("Dt = %v, want 1", ly.Dt)
		}
		if ly.MaxDelay() != 0 {
			t.Errorf("MaxDelay = %v, want 0", ly.MaxDelay())
		}
	}
	_, err := NewPopulation("Bad", -1, nil)
	if !errors.Is(err, ErrRange) {
		t.Errorf("negative size: got %v, want range error", err)
	}
}

func TestAddConnectionRange(t *testing.T) {
	a := newPop(t, "A", 2)
	b := newPop(t, "B", 3)
	for _, ni := range []int{-1, 3, 10} {
		pj, err := NewPrjn(a, Exc, nil, []float32{1, 1}, nil)
		if err != nil {
			t.Fatal(err)
		}
		if err := b.AddConnection(ni, pj); !errors.Is(err, ErrRange) {
			t.Errorf("neuron %d: got %v, want range error", ni, err)
		}
	}
	for ni := 0; ni < 3; ni++ {
		if b.NPrjns(ni) != 0 {
			t.Errorf("neuron %d changed by failed AddConnection", ni)
		}
	}
	pj, _ := NewPrjn(a, Exc, nil, []float32{1, 1}, nil)
	if err := b.AddConnection(2, pj); err != nil {
		t.Fatal(err)
	}
	if pj.Post != b || pj.PostIdx != 2 || b.NPrjns(2) != 1 {
		t.Errorf("projection not attached: post %v idx %d n %d", pj.Post, pj.PostIdx, b.NPrjns(2))
	}
}

func TestSumByTarget(t *testing.T) {
	a := newPop(t, "A", 2)
	b := newPop(t, "B", 1)
	a.SetRates([]float32{1, 3})
	wts := [][]float32{{0.5, 0.5}, {1, 0}, {0, 1}, {1, 1}}
	tgs := []Target{Exc, Inh, Exc, Target(7)}
	for i := range wts {
		pj, err := NewPrjn(a, tgs[i], nil, wts[i], nil)
		if err != nil {
			t.Fatal(err)
		}
		if err := b.AddConnection(0, pj); err != nil {
			t.Fatal(err)
		}
		pj.ComputeSum()
	}
	cases := []struct {
		tg  Target
		sum float32
	}{
		{Exc, 2 + 3},
		{Inh, 1},
		{Target(7), 4},
		{Mod, 0},
	}
	for _, c := range cases {
		if got := b.Sum(0, c.tg); mat32.Abs(got-c.sum) > difTol {
			t.Errorf("Sum(0, %v) = %v, want %v", c.tg, got, c.sum)
		}
	}
	// sum by target equals the total of matching projections
	tot := float32(0)
	for _, pj := range b.Prjns[0] {
		if pj.GetTarget() == Exc {
			tot += pj.CurrentSum()
		}
	}
	if tot != b.Sum(0, Exc) {
		t.Errorf("Sum(0, Exc) = %v, prjn total %v", b.Sum(0, Exc), tot)
	}
}

func TestRemoveConnections(t *testing.T) {
	a := newPop(t, "A", 2)
	c := newPop(t, "C", 2)
	b := newPop(t, "B", 3)
	for ni := 0; ni < 3; ni++ {
		for _, pre := range []*Population{a, c, a} {
			pj, err := NewPrjn(pre, Exc, nil, []float32{1, 1}, nil)
			if err != nil {
				t.Fatal(err)
			}
			b.AddConnection(ni, pj)
		}
	}
	if n := b.RemoveConnections(newPop(t, "X", 1)); n != 0 {
		t.Errorf("removed %d from unconnected population", n)
	}
	pjs := b.PrjnsFrom(a)
	if n := b.RemoveConnections(a); n != 6 {
		t.Errorf("removed %d, want 6", n)
	}
	for _, pj := range pjs {
		if pj.Wts != nil || pj.Pre != nil {
			t.Errorf("removed projection not destroyed")
		}
	}
	for ni := 0; ni < 3; ni++ {
		if b.NPrjns(ni) != 1 || b.Prjns[ni][0].Pre != c {
			t.Errorf("neuron %d: remaining prjns wrong", ni)
		}
	}
	if len(b.PrjnsFrom(a)) != 0 {
		t.Errorf("projections from A remain")
	}
}

func TestDelayedRates(t *testing.T) {
	a := newPop(t, "A", 3)
	vals, err := a.DelayedRates([]int{1, 2}, []int{0})
	if !errors.Is(err, ErrSizeMismatch) || len(vals) != 0 {
		t.Errorf("mismatch: got %v, %v", vals, err)
	}
	vals, err = a.DelayedRates([]int{0, 0}, []int{0, 2})
	if err != nil {
		t.Fatal(err)
	}
	CmprFloats(vals, []float32{2, 2}, "no delay", t)
	if _, err := a.DelayedRates([]int{1}, []int{0}); !errors.Is(err, ErrRange) {
		t.Errorf("delay beyond history: got %v", err)
	}
	if _, err := a.DelayedRates([]int{0}, []int{3}); !errors.Is(err, ErrRange) {
		t.Errorf("neuron out of range: got %v", err)
	}

	a.EnsureDelayCapacity(2)
	a.SetRates([]float32{1, 2, 3})
	a.Phase = GlobalOps
	a.RotateDelayBuffer()
	a.SetRates([]float32{4, 5, 6})
	a.Phase = GlobalOps
	a.RotateDelayBuffer()
	vals, err = a.DelayedRates([]int{1, 2, 2, 0}, []int{0, 0, 2, 1})
	if err != nil {
		t.Fatal(err)
	}
	CmprFloats(vals, []float32{4, 1, 3, 5}, "delayed", t)
}

func TestEnsureDelayCapacity(t *testing.T) {
	a := newPop(t, "A", 4)
	a.EnsureDelayCapacity(3)
	if a.MaxDelay() != 3 {
		t.Fatalf("MaxDelay = %d", a.MaxDelay())
	}
	for i := 0; i < 3; i++ {
		a.SetRates([]float32{float32(i), float32(i) + 0.25, float32(i) + 0.5, float32(i) + 0.75})
		a.Phase = GlobalOps
		a.RotateDelayBuffer()
	}
	before := make([][]float32, 3)
	for d := 1; d <= 3; d++ {
		before[d-1] = append([]float32(nil), a.Delay.Snapshot(d)...)
	}
	a.EnsureDelayCapacity(2)
	if a.MaxDelay() != 3 {
		t.Errorf("shrunk to %d", a.MaxDelay())
	}
	a.EnsureDelayCapacity(6)
	if a.MaxDelay() != 6 {
		t.Errorf("MaxDelay = %d, want 6", a.MaxDelay())
	}
	for d := 1; d <= 3; d++ {
		sn := a.Delay.Snapshot(d)
		for ni := range sn {
			if sn[ni] != before[d-1][ni] {
				t.Errorf("delay %d neuron %d: %v, was %v", d, ni, sn[ni], before[d-1][ni])
			}
		}
	}
	for d := 4; d <= 6; d++ {
		for _, v := range a.Delay.Snapshot(d) {
			if v != a.Params.Delay.Init {
				t.Errorf("new delay %d: %v, want %v", d, v, a.Params.Delay.Init)
			}
		}
	}
}

func TestPhaseOrder(t *testing.T) {
	a := newPop(t, "A", 2)
	if err := a.StepStateUpdate(); !errors.Is(err, ErrPhase) {
		t.Errorf("StateUpdate from Idle: got %v", err)
	}
	if err := a.StepSummation(); err != nil {
		t.Fatal(err)
	}
	if err := a.StepSummation(); !errors.Is(err, ErrPhase) {
		t.Errorf("repeated Summation: got %v", err)
	}
	if err := a.SetRates([]float32{0, 0}); !errors.Is(err, ErrPhase) {
		t.Errorf("SetRates mid-step: got %v", err)
	}
	steps := []func() error{a.StepStateUpdate, a.StepLearning, a.StepGlobalOps, a.RotateDelayBuffer}
	for i, st := range steps {
		if err := st(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if a.Phase != Idle {
		t.Errorf("phase after rotate: %v", a.Phase)
	}
	for ph := Idle; ph < PhasesN; ph++ {
		if ph.Next() == ph {
			t.Errorf("%v.Next() is itself", ph)
		}
	}
}

func TestRatesString(t *testing.T) {
	a := newPop(t, "A", 12)
	s := a.RatesString()
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), s)
	}
	if f := strings.Fields(lines[0]); len(f) != 10 || f[0] != "2.00" {
		t.Errorf("first line: %q", lines[0])
	}
	if f := strings.Fields(lines[1]); len(f) != 2 {
		t.Errorf("second line: %q", lines[1])
	}
	var b strings.Builder
	if err := a.WriteRates(&b); err != nil || !strings.HasPrefix(b.String(), "A (12):\n") {
		t.Errorf("WriteRates: %q, %v", b.String(), err)
	}
}

func TestPopulationDestroy(t *testing.T) {
	a := newPop(t, "A", 2)
	b := newPop(t, "B", 2)
	pj, _ := NewPrjn(a, Exc, nil, []float32{1, 2}, nil)
	b.AddConnection(1, pj)
	b.Destroy()
	if b.Rates != nil || b.Prjns != nil || pj.Wts != nil {
		t.Errorf("destroy did not release storage")
	}
	if a.N != 2 || len(a.Rates) != 2 {
		t.Errorf("pre-synaptic population affected by destroy")
	}
}

func TestRatesTensor(t *testing.T) {
	a := newPop(t, "A", 3)
	a.SetRates([]float32{1, 2, 3})
	tsr := a.RatesTensor()
	CmprFloats(tsr.Values, []float32{1, 2, 3}, "tensor", t)
	tsr.Values[0] = 9
	if a.Rates[0] != 1 {
		t.Errorf("RatesTensor is not a copy")
	}
}

func TestPopStats(t *testing.T) {
	a := newPop(t, "A", 3)
	b := newPop(t, "B", 2)
	a.SetRates([]float32{1, 3, 2})
	pj, _ := NewPrjn(a, Exc, nil, []float32{1, 1, 1}, nil)
	b.AddConnection(1, pj)
	pj.ComputeSum()
	a.Stats.Compute(a)
	if a.Stats.Rate.Avg != 2 || a.Stats.Rate.Max != 3 {
		t.Errorf("A rate stats: avg %v max %v, want 2, 3", a.Stats.Rate.Avg, a.Stats.Rate.Max)
	}
	if a.Stats.Net.Max != 0 {
		t.Errorf("A net max: %v, want 0", a.Stats.Net.Max)
	}
	b.Stats.Compute(b)
	if b.Stats.Net.Avg != 3 || b.Stats.Net.Max != 6 {
		t.Errorf("B net stats: avg %v max %v, want 3, 6", b.Stats.Net.Avg, b.Stats.Net.Max)
	}
	if b.Stats.Rate.Avg != 2 {
		t.Errorf("B rate avg: %v, want 2", b.Stats.Rate.Avg)
	}
}

func TestSumTry(t *testing.T) {
	a := newPop(t, "A", 2)
	b := newPop(t, "B", 2)
	a.SetRates([]float32{1, 3})
	pj, _ := NewPrjn(a, Exc, nil, []float32{0.5, 0.5}, nil)
	b.AddConnection(1, pj)
	pj.ComputeSum()
	if sum, err := b.SumTry(1, Exc); err != nil || sum != 2 {
		t.Errorf("SumTry(1): %v, %v", sum, err)
	}
	for _, ni := range []int{-1, 2} {
		if _, err := b.SumTry(ni, Exc); !errors.Is(err, ErrRange) {
			t.Errorf("SumTry(%d): got %v, want range error", ni, err)
		}
	}
}
