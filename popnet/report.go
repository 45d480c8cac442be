// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package popnet

import (
	"fmt"
	"strings"

	"github.com/c2h5oh/datasize"
)

// SizeReport returns a string reporting the size of each population and its
// incoming projections, and the total memory footprint.
func (nt *Network) SizeReport() string {
	var b strings.Builder
	neur := 0
	neurMem := 0
	syn := 0
	synMem := 0
	for _, kv := range nt.Pops.Order {
		ly := kv.Val
		nmem, smem := ly.Bytes()
		ns := 0
		npj := 0
		for _, pjs := range ly.Prjns {
			npj += len(pjs)
			for _, pj := range pjs {
				ns += pj.Size()
			}
		}
		neur += ly.N
		neurMem += nmem
		syn += ns
		synMem += smem
		fmt.Fprintf(&b, "%14s:\t Neurons: %d\t MaxDelay: %d\t NeurMem: %v \t Prjns: %d\t Syns: %d\t SynMem: %v\n", ly.Nm, ly.N, ly.MaxDelay(), (datasize.ByteSize)(nmem).HumanReadable(), npj, ns, (datasize.ByteSize)(smem).HumanReadable())
	}
	fmt.Fprintf(&b, "\n\n%14s:\t Neurons: %d\t NeurMem: %v \t Syns: %d \t SynMem: %v\n", nt.Nm, neur, (datasize.ByteSize)(neurMem).HumanReadable(), syn, (datasize.ByteSize)(synMem).HumanReadable())
	return b.String()
}

// TimerReport reports the amount of time spent in each phase and in each
// worker.  Requires Threads.Timing.
func (nt *Network) TimerReport() string {
	if nt.Pool == nil {
		return fmt.Sprintf("TimerReport: %v, not built\n", nt.Nm)
	}
	return fmt.Sprintf("TimerReport: %v, NThreads: %v\n", nt.Nm, nt.Pool.NThreads) + nt.Pool.TimerReport()
}

// ThreadReport reports how many workers each population's phases are split over.
func (nt *Network) ThreadReport() string {
	var b strings.Builder
	if nt.Pool == nil {
		fmt.Fprintf(&b, "ThreadReport: %v, not built\n", nt.Nm)
		return b.String()
	}
	fmt.Fprintf(&b, "ThreadReport: %v, NThreads: %v, MinChunk: %v\n", nt.Nm, nt.Pool.NThreads, nt.Pool.MinChunk)
	for _, kv := range nt.Pops.Order {
		fmt.Fprintf(&b, "%14s:\t Neurons: %d\t Chunks: %d\n", kv.Key, kv.Val.N, nt.Pool.NChunks(kv.Val.N))
	}
	return b.String()
}
