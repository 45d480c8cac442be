// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rates

import (
	"github.com/goki/ki/kit"
	"github.com/goki/mat32"
)

// Transfers are the rate transfer functions, mapping net input to rate
type Transfers int32

//go:generate stringer -type=Transfers

var KiT_Transfers = kit.Enums.AddEnum(TransfersN, kit.NotBitFlag, nil)

func (ev Transfers) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Transfers) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Linear is Gain * (x - Thr)
	Linear Transfers = iota

	// Positive is Gain * (x - Thr), rectified at 0
	Positive

	// Sigmoid is 1 / (1 + exp(-Gain * (x - Thr)))
	Sigmoid

	// Tanh is tanh(Gain * (x - Thr))
	Tanh

	// NoisyXX1 is the noisy x/(x+1) function of x - Thr, see XX1Params
	NoisyXX1

	TransfersN
)

// TransferParams select and parameterize the transfer function
type TransferParams struct {
	Fun  Transfers `desc:"transfer function"`
	Gain float32   `def:"1" desc:"gain on the input, for all but NoisyXX1, which uses XX1.Gain"`
	Thr  float32   `def:"0" desc:"threshold subtracted from the input"`
	Max  float32   `def:"0" desc:"if > 0, output is clipped to this maximum"`
	XX1  XX1Params `viewif:"Fun=NoisyXX1" view:"inline"`
}

func (tp *TransferParams) Defaults() {
	tp.Fun = Positive
	tp.Gain = 1
	tp.Thr = 0
	tp.Max = 0
	tp.XX1.Defaults()
}

func (tp *TransferParams) Update() {
	tp.XX1.Update()
}

// Transfer returns the rate for net input x
func (tp *TransferParams) Transfer(x float32) float32 {
	x -= tp.Thr
	var r float32
	switch tp.Fun {
	case Linear:
		r = tp.Gain * x
	case Positive:
		r = mat32.Max(tp.Gain*x, 0)
	case Sigmoid:
		r = 1 / (1 + mat32.Exp(-tp.Gain*x))
	case Tanh:
		r = mat32.Tanh(tp.Gain * x)
	case NoisyXX1:
		r = tp.XX1.NoisyXX1(x)
	}
	if tp.Max > 0 && r > tp.Max {
		r = tp.Max
	}
	return r
}
