// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package popnet

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// ProfileSinks are the per-population timing files, one line per step
// holding the msec spent in summation, global and local learning.
// A nil sink is skipped.
type ProfileSinks struct {
	Sum    io.WriteCloser
	Global io.WriteCloser
	Local  io.WriteCloser
}

// ProfileFileName returns the name of the profile file of population pop
// for the given thread count and kind (sum, global, local).
func ProfileFileName(pop string, nthr int, kind string) string {
	return fmt.Sprintf("%s(%02d)_%s.txt", pop, nthr, kind)
}

// OpenProfileSinks creates the three profile files of population pop in dir.
// Files that cannot be created are logged and left nil, and the returned
// error joins one ResourceError per failure.  The sinks are always usable.
func OpenProfileSinks(dir, pop string, nthr int) (*ProfileSinks, error) {
	ps := &ProfileSinks{}
	var errs []error
	open := func(kind string) io.WriteCloser {
		fn := filepath.Join(dir, ProfileFileName(pop, nthr, kind))
		fp, err := os.Create(fn)
		if err != nil {
			rerr := &ResourceError{Resource: fn, Err: err}
			log.Println(rerr)
			errs = append(errs, rerr)
			return nil
		}
		return fp
	}
	ps.Sum = open("sum")
	ps.Global = open("global")
	ps.Local = open("local")
	return ps, errors.Join(errs...)
}

func writeMSecs(w io.Writer, msecs float64) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, "%g\n", msecs)
}

// Close closes all open sinks.
func (ps *ProfileSinks) Close() error {
	var errs []error
	for _, w := range []io.WriteCloser{ps.Sum, ps.Global, ps.Local} {
		if w == nil {
			continue
		}
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	ps.Sum, ps.Global, ps.Local = nil, nil, nil
	return errors.Join(errs...)
}
