// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package popnet

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/goki/ki/indent"
)

// NetWts is the decoded weights file of a network
type NetWts struct {
	Network string
	Pops    []PopWts
}

// PopWts are the weights of the projections received by one population
type PopWts struct {
	Pop     string
	Neurons []NeurWts
}

// NeurWts are the weights of the projections of one neuron, in order
type NeurWts struct {
	Ni    int
	Prjns []PrjnWts
}

// PrjnWts are the weights of one projection
type PrjnWts struct {
	From   string
	Target int32
	Si     []int
	Wt     []float32
}

// SaveWtsJSON saves network weights to a JSON-formatted file.
// If filename has .gz extension, then file is gzip compressed.
func (nt *Network) SaveWtsJSON(filename string) error {
	fp, err := os.Create(filename)
	if err != nil {
		log.Println(err)
		return err
	}
	defer fp.Close()
	if filepath.Ext(filename) == ".gz" {
		gzr := gzip.NewWriter(fp)
		err = nt.WriteWtsJSON(gzr)
		if cerr := gzr.Close(); err == nil {
			err = cerr
		}
	} else {
		bw := bufio.NewWriter(fp)
		err = nt.WriteWtsJSON(bw)
		if ferr := bw.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}

// OpenWtsJSON opens network weights from a JSON-formatted file.
// If filename has .gz extension, then file is gzip uncompressed.
func (nt *Network) OpenWtsJSON(filename string) error {
	fp, err := os.Open(filename)
	if err != nil {
		log.Println(err)
		return err
	}
	defer fp.Close()
	if filepath.Ext(filename) == ".gz" {
		gzr, err := gzip.NewReader(fp)
		if err != nil {
			log.Println(err)
			return err
		}
		defer gzr.Close()
		return nt.ReadWtsJSON(gzr)
	}
	return nt.ReadWtsJSON(bufio.NewReader(fp))
}

// WriteWtsJSON writes the weights of all projections, from the receiving
// perspective, in a JSON text format.  Neurons with no projections are skipped.
func (nt *Network) WriteWtsJSON(w io.Writer) error {
	depth := 0
	w.Write([]byte("{\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"Network\": %q,\n", nt.Nm)))
	w.Write(indent.TabBytes(depth))
	np := nt.Pops.Len()
	if np == 0 {
		w.Write([]byte("\"Pops\": null\n"))
	} else {
		w.Write([]byte("\"Pops\": [\n"))
		depth++
		for pi, kv := range nt.Pops.Order {
			kv.Val.WriteWtsJSON(w, depth)
			if pi == np-1 {
				w.Write([]byte("\n"))
			} else {
				w.Write([]byte(",\n"))
			}
		}
		depth--
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("]\n"))
	}
	_, err := w.Write([]byte("}\n"))
	return err
}

// WriteWtsJSON writes the weights received by this population, leaving the
// object unterminated for the caller to add , or \n
func (ly *Population) WriteWtsJSON(w io.Writer, depth int) {
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("{\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"Pop\": %q,\n", ly.Nm)))
	w.Write(indent.TabBytes(depth))
	var nis []int
	for ni, pjs := range ly.Prjns {
		if len(pjs) > 0 {
			nis = append(nis, ni)
		}
	}
	if len(nis) == 0 {
		w.Write([]byte("\"Neurons\": null\n"))
	} else {
		w.Write([]byte("\"Neurons\": [\n"))
		depth++
		for i, ni := range nis {
			ly.writeNeurWtsJSON(w, depth, ni)
			if i == len(nis)-1 {
				w.Write([]byte("\n"))
			} else {
				w.Write([]byte(",\n"))
			}
		}
		depth--
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("]\n"))
	}
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("}"))
}

func (ly *Population) writeNeurWtsJSON(w io.Writer, depth int, ni int) {
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("{\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"Ni\": %d,\n", ni)))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("\"Prjns\": [\n"))
	depth++
	pjs := ly.Prjns[ni]
	for pi, pj := range pjs {
		pj.WriteWtsJSON(w, depth)
		if pi == len(pjs)-1 {
			w.Write([]byte("\n"))
		} else {
			w.Write([]byte(",\n"))
		}
	}
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("]\n"))
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("}"))
}

// WriteWtsJSON writes the weights of this projection, unterminated
func (pj *Prjn) WriteWtsJSON(w io.Writer, depth int) {
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("{\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"From\": %q,\n", pj.Pre.Nm)))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"Target\": %d,\n", int32(pj.Target))))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("\"Si\": [ "))
	for ci, si := range pj.PreIdx {
		w.Write([]byte(fmt.Sprintf("%d", si)))
		if ci < len(pj.PreIdx)-1 {
			w.Write([]byte(", "))
		}
	}
	w.Write([]byte(" ],\n"))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("\"Wt\": [ "))
	for ci, wt := range pj.Wts {
		w.Write([]byte(fmt.Sprintf("%g", wt)))
		if ci < len(pj.Wts)-1 {
			w.Write([]byte(", "))
		}
	}
	w.Write([]byte(" ]\n"))
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("}"))
}

// ReadWtsJSON reads network weights written by WriteWtsJSON and applies
// them with SetWts.
func (nt *Network) ReadWtsJSON(r io.Reader) error {
	nw := &NetWts{}
	if err := json.NewDecoder(r).Decode(nw); err != nil {
		log.Println(err)
		return err
	}
	return nt.SetWts(nw)
}

// SetWts sets the weights of all matching projections.  Within a neuron,
// each entry is applied to the next projection with the same sending
// population and target, and its Si must list the same pre-synaptic
// neurons as the projection (an empty Si is not checked).  Populations, neurons or projections that do not
// exist are reported in the returned error, and the rest is still applied.
func (nt *Network) SetWts(nw *NetWts) error {
	var errs []error
	for _, pw := range nw.Pops {
		ly := nt.PopByName(pw.Pop)
		if ly == nil {
			errs = append(errs, fmt.Errorf("popnet: SetWts: population %q not found", pw.Pop))
			continue
		}
		for _, nwt := range pw.Neurons {
			if nwt.Ni < 0 || nwt.Ni >= ly.N {
				errs = append(errs, &RangeError{What: "neuron of " + ly.Nm, Index: nwt.Ni, N: ly.N})
				continue
			}
			used := make([]bool, len(ly.Prjns[nwt.Ni]))
			for _, jw := range nwt.Prjns {
				pj := ly.matchPrjn(nwt.Ni, jw.From, Target(jw.Target), used)
				if pj == nil {
					errs = append(errs, fmt.Errorf("popnet: SetWts: no projection from %q with target %d onto %s[%d]", jw.From, jw.Target, ly.Nm, nwt.Ni))
					continue
				}
				if err := pj.checkWiring(jw.Si); err != nil {
					errs = append(errs, err)
					continue
				}
				if err := pj.SetWeights(jw.Wt); err != nil {
					errs = append(errs, err)
				}
			}
		}
	}
	err := errors.Join(errs...)
	if err != nil {
		log.Println(err)
	}
	return err
}

func (ly *Population) matchPrjn(ni int, from string, tg Target, used []bool) *Prjn {
	for i, pj := range ly.Prjns[ni] {
		if used[i] || pj.Target != tg || pj.Pre == nil || pj.Pre.Nm != from {
			continue
		}
		used[i] = true
		return pj
	}
	return nil
}

// checkWiring checks the pre-synaptic neurons si of a weights file entry
// against the wiring of pj.
func (pj *Prjn) checkWiring(si []int) error {
	if len(si) == 0 {
		return nil
	}
	if len(si) != len(pj.PreIdx) {
		return &SizeMismatchError{What: "pre-synaptic neurons of " + pj.Name(), Got: len(si), Want: len(pj.PreIdx)}
	}
	for ci, pi := range pj.PreIdx {
		if si[ci] != pi {
			return fmt.Errorf("popnet: %s connection %d is from neuron %d, weights file has %d: %w", pj.Name(), ci, pi, si[ci], ErrSizeMismatch)
		}
	}
	return nil
}
