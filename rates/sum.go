// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rates

import (
	"fmt"

	"github.com/emer/popnet/popnet"
)

// WeightedSum is sum_i pre[i] * wts[i]
var WeightedSum popnet.SumFunc = popnet.WeightedSum

// WeightedMax is max_i pre[i] * wts[i], 0 for an empty projection
func WeightedMax(pre []float32, delayed bool, wts []float32) float32 {
	if len(wts) == 0 {
		return 0
	}
	mx := pre[0] * wts[0]
	for i := 1; i < len(wts); i++ {
		if v := pre[i] * wts[i]; v > mx {
			mx = v
		}
	}
	return mx
}

// WeightedMin is min_i pre[i] * wts[i], 0 for an empty projection
func WeightedMin(pre []float32, delayed bool, wts []float32) float32 {
	if len(wts) == 0 {
		return 0
	}
	mn := pre[0] * wts[0]
	for i := 1; i < len(wts); i++ {
		if v := pre[i] * wts[i]; v < mn {
			mn = v
		}
	}
	return mn
}

// WeightedMean is the mean of pre[i] * wts[i], 0 for an empty projection
func WeightedMean(pre []float32, delayed bool, wts []float32) float32 {
	if len(wts) == 0 {
		return 0
	}
	return popnet.WeightedSum(pre, delayed, wts) / float32(len(wts))
}

// SumByName returns the summation operation named sum, max, min or mean.
func SumByName(op string) (popnet.SumFunc, error) {
	switch op {
	case "sum", "":
		return WeightedSum, nil
	case "max":
		return WeightedMax, nil
	case "min":
		return WeightedMin, nil
	case "mean":
		return WeightedMean, nil
	}
	return nil, fmt.Errorf("rates: unknown summation operation %q, must be one of sum, max, min, mean", op)
}
