// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package popnet

// DelayBuffer holds the recent output history of one population as a ring
// of snapshots.  Logical delay d (1-based) is the output produced d steps
// ago, so d = 1 is the output of the previous step.
type DelayBuffer struct {

	// snapshots, each of length N
	Snaps [][]float32

	// physical slot of delay = 1
	Head int

	// number of neurons per snapshot
	N int
}

// Init resets the buffer to hold no history for n neurons.
func (db *DelayBuffer) Init(n int) {
	db.Snaps = nil
	db.Head = 0
	db.N = n
}

// MaxDelay is the deepest delay that can be read back.
func (db *DelayBuffer) MaxDelay() int {
	return len(db.Snaps)
}

func (db *DelayBuffer) slot(d int) int {
	return (db.Head + d - 1) % len(db.Snaps)
}

// Snapshot returns the stored output from d steps ago.  d must be in
// [1, MaxDelay()].  The returned slice is owned by the buffer.
func (db *DelayBuffer) Snapshot(d int) []float32 {
	return db.Snaps[db.slot(d)]
}

// Value returns the output of neuron ni from d steps ago.
func (db *DelayBuffer) Value(d, ni int) float32 {
	return db.Snaps[db.slot(d)][ni]
}

// Grow extends the history to at least d snapshots.  Existing snapshots
// keep their logical delay and their contents.  New snapshots are filled
// with fill(slot), where slot is the new snapshot's zero-based position.
// Never shrinks.
func (db *DelayBuffer) Grow(d int, fill func(slot int) float32) {
	cur := len(db.Snaps)
	if d <= cur {
		return
	}
	ns := make([][]float32, d)
	for i := 0; i < cur; i++ {
		ns[i] = db.Snaps[db.slot(i+1)]
	}
	for i := cur; i < d; i++ {
		sn := make([]float32, db.N)
		v := fill(i)
		for j := range sn {
			sn[j] = v
		}
		ns[i] = sn
	}
	db.Snaps = ns
	db.Head = 0
}

// Rotate records rates as the newest snapshot (delay = 1), discarding the
// oldest one.  Does nothing if there is no history.
func (db *DelayBuffer) Rotate(rates []float32) {
	n := len(db.Snaps)
	if n == 0 {
		return
	}
	db.Head = (db.Head + n - 1) % n
	copy(db.Snaps[db.Head], rates)
}

// Bytes is the memory held by the snapshots.
func (db *DelayBuffer) Bytes() int {
	return len(db.Snaps) * db.N * 4
}
