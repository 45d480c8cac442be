// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package monitor

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/emer/etable/v2/etensor"
	"github.com/emer/popnet/popnet"
)

var counter = &popnet.NeuronType{Name: "Counter", Update: func(in popnet.Inputs, prev, dt float32) float32 {
	return prev + 1
}}

func TestRecord(t *testing.T) {
	nt := popnet.NewNetwork("Mon")
	nt.Threads.NThreads = 1
	nt.NewPopulation("A", 3, counter)
	nt.NewPopulation("B", 2, nil)
	mr, err := NewRates(nt, "A")
	if err != nil {
		t.Fatal(err)
	}
	mr.Interval = 2
	if err := mr.Run(context.Background(), 6); err != nil {
		t.Fatal(err)
	}
	dt := mr.Table
	if dt.Rows != 3 {
		t.Fatalf("rows: %d, want 3", dt.Rows)
	}
	for row := 0; row < 3; row++ {
		step := 2 * (row + 1)
		if s := dt.CellFloat("Step", row); int(s) != step {
			t.Errorf("row %d step %v, want %d", row, s, step)
		}
		tsr := dt.CellTensor("A", row).(*etensor.Float32)
		if want := float32(2 + step); tsr.Values[0] != want {
			t.Errorf("row %d rate %v, want %v", row, tsr.Values[0], want)
		}
	}
	var buf bytes.Buffer
	if err := mr.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Errorf("csv lines: %d\n%s", len(lines), buf.String())
	}
	mr.Reset()
	if mr.Table.Rows != 0 {
		t.Errorf("rows after reset: %d", mr.Table.Rows)
	}
	if _, err := NewRates(nt, "Missing"); err == nil {
		t.Errorf("missing population accepted")
	}
	all, _ := NewRates(nt)
	if len(all.Pops) != 2 {
		t.Errorf("default pops: %d", len(all.Pops))
	}
}
