// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package popnet

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/emer/emergent/v2/timer"
	"github.com/goki/ki/ints"
)

// NeurFunChan is a channel that runs a range of neurons
type NeurFunChan chan func()

// ThreadPool is a fixed set of worker goroutines shared by all the populations
// of a network.  Work is handed out as a parallel-for over a neuron index
// range, and every call waits for all of its chunks to finish before
// returning, which is the barrier between phases.
// NeurFun must not be called concurrently from multiple goroutines.
type ThreadPool struct {
	NThreads int                    `desc:"number of worker goroutines -- 1 = no goroutines, run in the caller"`
	MinChunk int                    `desc:"minimum number of neurons per worker"`
	Timing   bool                   `desc:"record FunTimes and ThrTimes"`
	ThrChans []NeurFunChan          `view:"-" desc:"neuron range function channels, per thread"`
	ThrTimes []timer.Time           `view:"-" desc:"timers for each thread, so you can see how evenly the workload is being distributed"`
	FunTimes map[string]*timer.Time `view:"-" desc:"timers for each major function (step of processing)"`
	WaitGp   sync.WaitGroup         `view:"-" desc:"wait group for synchronizing threaded neuron calls"`
	started  bool
}

// NewThreadPool returns a pool configured from tp.  Call Start before use.
func NewThreadPool(tp *ThreadParams) *ThreadPool {
	tp.Update()
	pl := &ThreadPool{NThreads: tp.Workers(), MinChunk: tp.MinChunk, Timing: tp.Timing}
	if pl.MinChunk < 1 {
		pl.MinChunk = 1
	}
	pl.ThrChans = make([]NeurFunChan, pl.NThreads)
	pl.ThrTimes = make([]timer.Time, pl.NThreads)
	pl.FunTimes = make(map[string]*timer.Time)
	return pl
}

// Start starts up the worker goroutines, which monitor the channels for work.
func (pl *ThreadPool) Start() {
	if pl.started || pl.NThreads <= 1 {
		return
	}
	for th := 0; th < pl.NThreads; th++ {
		pl.ThrChans[th] = make(NeurFunChan)
		go pl.ThrWorker(th)
	}
	pl.started = true
}

// Stop stops the worker goroutines.
func (pl *ThreadPool) Stop() {
	if !pl.started {
		return
	}
	for th := 0; th < pl.NThreads; th++ {
		close(pl.ThrChans[th])
	}
	pl.started = false
}

// ThrWorker is the worker function run by the worker goroutines
func (pl *ThreadPool) ThrWorker(th int) {
	for fun := range pl.ThrChans[th] {
		if pl.Timing {
			pl.ThrTimes[th].Start()
		}
		fun()
		if pl.Timing {
			pl.ThrTimes[th].Stop()
		}
		pl.WaitGp.Done()
	}
}

// NChunks returns how many workers a range of n neurons is split over.
func (pl *ThreadPool) NChunks(n int) int {
	if n <= 0 {
		return 0
	}
	if !pl.started {
		return 1
	}
	nc := (n + pl.MinChunk - 1) / pl.MinChunk
	return ints.MaxInt(1, ints.MinInt(nc, pl.NThreads))
}

// NeurFun calls fun for every neuron index in [0, n), in contiguous chunks on
// the worker goroutines if the pool is started, and otherwise in the calling
// goroutine.  Returns when all calls are done.
func (pl *ThreadPool) NeurFun(n int, fun func(ni int), funame string) {
	pl.FunTimerStart(funame)
	nc := pl.NChunks(n)
	if nc <= 1 {
		for ni := 0; ni < n; ni++ {
			fun(ni)
		}
	} else {
		for th := 0; th < nc; th++ {
			st := th * n / nc
			ed := (th + 1) * n / nc
			pl.WaitGp.Add(1)
			pl.ThrChans[th] <- func() {
				for ni := st; ni < ed; ni++ {
					fun(ni)
				}
			}
		}
		pl.WaitGp.Wait()
	}
	pl.FunTimerStop(funame)
}

// FunTimerStart starts function timer for given function name -- ensures creation of timer
func (pl *ThreadPool) FunTimerStart(fun string) {
	if !pl.Timing {
		return
	}
	ft, ok := pl.FunTimes[fun]
	if !ok {
		ft = &timer.Time{}
		pl.FunTimes[fun] = ft
	}
	ft.Start()
}

// FunTimerStop stops function timer -- timer must already exist
func (pl *ThreadPool) FunTimerStop(fun string) {
	if !pl.Timing {
		return
	}
	pl.FunTimes[fun].Stop()
}

// TimerReset resets all function and thread timers
func (pl *ThreadPool) TimerReset() {
	for th := range pl.ThrTimes {
		pl.ThrTimes[th].Reset()
	}
	for _, ft := range pl.FunTimes {
		ft.Reset()
	}
}

// TimerReport reports the amount of time spent in each function, and in each thread
func (pl *ThreadPool) TimerReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\tFunction Name\tTotal Secs\tPct\n")
	fnms := make([]string, 0, len(pl.FunTimes))
	for k := range pl.FunTimes {
		fnms = append(fnms, k)
	}
	sort.Strings(fnms)
	pcts := make([]float64, len(fnms))
	tot := 0.0
	for i, fn := range fnms {
		pcts[i] = pl.FunTimes[fn].TotalSecs()
		tot += pcts[i]
	}
	for i, fn := range fnms {
		fmt.Fprintf(&b, "\t%v \t%6.4g\t%6.4g\n", fn, pcts[i], 100*(pcts[i]/tot))
	}
	fmt.Fprintf(&b, "\tTotal   \t%6.4g\n", tot)

	if !pl.started {
		return b.String()
	}
	fmt.Fprintf(&b, "\n\tThr\tTotal Secs\tPct\n")
	pcts = make([]float64, pl.NThreads)
	tot = 0.0
	for th := 0; th < pl.NThreads; th++ {
		pcts[th] = pl.ThrTimes[th].TotalSecs()
		tot += pcts[th]
	}
	for th := 0; th < pl.NThreads; th++ {
		fmt.Fprintf(&b, "\t%v \t%6.4g\t%6.4g\n", th, pcts[th], 100*(pcts[th]/tot))
	}
	return b.String()
}
