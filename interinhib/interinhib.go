// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package interinhib provides inhibition between populations: the receiving
population either adds or takes the max of a portion of the FFFB inhibition
computed by other populations.  Install it on a population with Attach, which
runs it at the end of the population's GlobalOps phase:

	ii := &interinhib.InterInhib{}
	ii.Defaults()
	ii.Pops = []string{"Hidden2"}
	ii.Attach(net, hid1)

Values from populations earlier in the network order are from the current
step, others from the previous step.
*/
package interinhib

import (
	"github.com/emer/popnet/popnet"
	"github.com/goki/mat32"
)

// InterInhib specifies inhibition between populations, where
// the receiving population either does a Max or Add of portion of
// inhibition from other populations.
type InterInhib struct {
	Pops []string `desc:"populations to receive inhibition from"`
	Gi   float32  `def:"0.5" desc:"multiplier on Gi from other populations"`
	Add  bool     `desc:"add inhibition -- otherwise Max"`
}

func (il *InterInhib) Defaults() {
	il.Gi = 0.5
}

// Inhib updates the inhibition of ly from that of the other populations in nt
func (il *InterInhib) Inhib(nt *popnet.Network, ly *popnet.Population) {
	ogi := il.Gi * il.OtherGi(nt)
	if il.Add {
		ly.Inhib.Gi += ogi
	} else {
		ly.Inhib.Gi = mat32.Max(ogi, ly.Inhib.Gi)
	}
}

// OtherGi returns either the Sum (for Add) or Max of other population Gi
// values, before their own inter-population inhibition.  Unknown names are skipped.
func (il *InterInhib) OtherGi(nt *popnet.Network) float32 {
	gi := float32(0)
	for _, nm := range il.Pops {
		ol := nt.PopByName(nm)
		if ol == nil {
			continue
		}
		ogi := ol.Inhib.GiOrig
		if il.Add {
			gi += ogi
		} else {
			gi = mat32.Max(gi, ogi)
		}
	}
	return gi
}

// Attach runs Inhib at the end of every GlobalOps phase of ly, after any
// GlobalFun already installed.
func (il *InterInhib) Attach(nt *popnet.Network, ly *popnet.Population) {
	prev := ly.GlobalFun
	ly.GlobalFun = func(ly *popnet.Population) {
		if prev != nil {
			prev(ly)
		}
		il.Inhib(nt, ly)
	}
}
