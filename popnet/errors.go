// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package popnet

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is -- the typed errors below all match
// their corresponding sentinel.
var (
	// ErrRange is an out-of-bounds neuron, connection or delay index.
	ErrRange = errors.New("index out of range")

	// ErrSizeMismatch is a mismatch between lengths that must agree,
	// e.g., weights vs. wired pre-synaptic neurons.
	ErrSizeMismatch = errors.New("size mismatch")

	// ErrResource is a failure to acquire an optional diagnostic resource.
	ErrResource = errors.New("resource unavailable")

	// ErrPhase is an attempt to run a step phase out of order.
	ErrPhase = errors.New("invalid phase transition")

	// ErrRunning is a topology change attempted while a step is in progress.
	ErrRunning = errors.New("network is running")
)

// RangeError reports an index outside of its valid range [0, N).
type RangeError struct {
	What  string
	Index int
	N     int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("popnet: %s index %d out of range [0, %d)", e.What, e.Index, e.N)
}

func (e *RangeError) Is(target error) bool { return target == ErrRange }

// SizeMismatchError reports two lengths that should have been equal.
type SizeMismatchError struct {
	What string
	Got  int
	Want int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("popnet: %s size mismatch: got %d, want %d", e.What, e.Got, e.Want)
}

func (e *SizeMismatchError) Is(target error) bool { return target == ErrSizeMismatch }

// ResourceError reports a diagnostic sink that could not be opened.
// These are never fatal: the feature is disabled for the run.
type ResourceError struct {
	Resource string
	Err      error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("popnet: could not open %s: %v", e.Resource, e.Err)
}

func (e *ResourceError) Is(target error) bool { return target == ErrResource }

func (e *ResourceError) Unwrap() error { return e.Err }

// PhaseError reports an attempted transition that skips or reorders
// the per-step phase sequence.
type PhaseError struct {
	Pop  string
	From Phases
	To   Phases
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("popnet: population %q cannot go from phase %v to %v", e.Pop, e.From, e.To)
}

func (e *PhaseError) Is(target error) bool { return target == ErrPhase }
