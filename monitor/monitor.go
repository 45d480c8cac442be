// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package monitor records the rates of popnet populations over steps into
// an etable.Table, one row per recorded step.
package monitor

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"

	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
	"github.com/emer/popnet/popnet"
)

// Rates records the rates of a set of populations of a network.
// Columns are Step, Time and one float32 tensor column per population.
type Rates struct {

	// network being recorded
	Net *popnet.Network

	// recorded populations
	Pops []*popnet.Population

	// recorded rates, one row per recorded step
	Table *etable.Table

	// record every Interval steps in Run
	Interval int `def:"1" min:"1"`
}

// NewRates returns a monitor for the named populations of nt
// (all populations if none are named).
func NewRates(nt *popnet.Network, pops ...string) (*Rates, error) {
	mr := &Rates{Net: nt, Interval: 1}
	if len(pops) == 0 {
		for pi := 0; pi < nt.NPops(); pi++ {
			mr.Pops = append(mr.Pops, nt.Pop(pi))
		}
	}
	for _, nm := range pops {
		ly, err := nt.PopByNameTry(nm)
		if err != nil {
			return nil, err
		}
		mr.Pops = append(mr.Pops, ly)
	}
	mr.ConfigTable()
	return mr, nil
}

// ConfigTable (re)creates the empty table
func (mr *Rates) ConfigTable() {
	dt := &etable.Table{}
	dt.SetMetaData("name", mr.Net.Nm+"Rates")
	dt.SetMetaData("desc", "population rates per step")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", "4")
	sch := etable.Schema{
		{Name: "Step", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "Time", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	}
	for _, ly := range mr.Pops {
		sch = append(sch, etable.Column{Name: ly.Nm, Type: etensor.FLOAT32, CellShape: []int{ly.N}, DimNames: []string{"Neuron"}})
	}
	dt.SetFromSchema(sch, 0)
	mr.Table = dt
}

// Record adds a row with the current rates
func (mr *Rates) Record() {
	dt := mr.Table
	row := dt.Rows
	dt.SetNumRows(row + 1)
	dt.SetCellFloat("Step", row, float64(mr.Net.Time.Step))
	dt.SetCellFloat("Time", row, mr.Net.Time.Time)
	for _, ly := range mr.Pops {
		dt.SetCellTensor(ly.Nm, row, ly.RatesTensor())
	}
}

// Run runs n steps of the network, recording every Interval steps.
func (mr *Rates) Run(ctx context.Context, n int) error {
	iv := mr.Interval
	if iv < 1 {
		iv = 1
	}
	for i := 0; i < n; i++ {
		if err := mr.Net.RunContext(ctx, 1); err != nil {
			return err
		}
		if mr.Net.Time.Step%iv == 0 {
			mr.Record()
		}
	}
	return nil
}

// Reset removes all recorded rows
func (mr *Rates) Reset() {
	mr.Table.SetNumRows(0)
}

// WriteCSV writes the table as tab-separated values with a header line
func (mr *Rates) WriteCSV(w io.Writer) error {
	return mr.Table.WriteCSV(w, etable.Tab, etable.Headers)
}

// SaveCSV saves the table to a tab-separated file
func (mr *Rates) SaveCSV(filename string) error {
	fp, err := os.Create(filename)
	if err != nil {
		log.Println(err)
		return err
	}
	defer fp.Close()
	bw := bufio.NewWriter(fp)
	if err := mr.WriteCSV(bw); err != nil {
		return err
	}
	return bw.Flush()
}
