// This file is part of intcode - https://github.com/aegamesi/intcode
//
// Copyright 2019 The intcode Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package host

import (
	"github.com/aegamesi/intcode/vm"
	"github.com/pkg/errors"
)

// Ring is a set of machines running the same program where the output of each
// machine is fed to the next one, and the output of the last one back to the
// first.
type Ring struct {
	machines []*vm.Machine
}

// NewRing creates a ring of len(phases) machines running p. Each machine gets
// its phase as first input. The options are applied to every machine.
func NewRing(p vm.Program, phases []vm.Cell, opts ...vm.Option) (*Ring, error) {
	if len(phases) == 0 {
		return nil, errors.New("empty ring")
	}
	r := &Ring{machines: make([]*vm.Machine, len(phases))}
	for i, ph := range phases {
		m, err := vm.New(p, append(opts[:len(opts):len(opts)], vm.Input(ph))...)
		if err != nil {
			return nil, errors.Wrapf(err, "machine %d", i)
		}
		r.machines[i] = m
	}
	return r, nil
}

// Len returns the number of machines in the ring.
func (r *Ring) Len() int {
	return len(r.machines)
}

// Run feeds seed to the first machine and passes values around the ring until
// the last machine halts. It returns the last value output by the last machine.
//
// Each machine must output at least one value per input, otherwise Run fails
// with ErrNoOutput. Only the most recent output of a machine is passed on. If
// a machine halts before the last one, the ring cannot make progress and
// ErrRingBroken is returned. A Ring cannot be run again once Run returns.
func (r *Ring) Run(seed vm.Cell) (vm.Cell, error) {
	v := seed
	last := len(r.machines) - 1
	for round := 1; ; round++ {
		for i, m := range r.machines {
			if m.Status().Terminal() {
				return 0, errors.Wrapf(ErrRingBroken, "round %d: machine %d %v", round, i, m.Status())
			}
			m.AddInput(v)
			if err := run(m); err != nil {
				return 0, errors.Wrapf(err, "round %d: machine %d", round, i)
			}
			out := drain(m)
			if len(out) == 0 {
				return 0, errors.Wrapf(ErrNoOutput, "round %d: machine %d", round, i)
			}
			v = out[len(out)-1]
			if i == last && m.Status().State == vm.Finished {
				logger().Debugf("ring of %d halted after %d round(s), signal %d", len(r.machines), round, v)
				return v, nil
			}
		}
	}
}

// Permutations calls fn for each permutation of values, until fn returns
// false. The slice passed to fn is reused between calls and must not be
// retained. values is not modified.
func Permutations(values []vm.Cell, fn func([]vm.Cell) bool) {
	a := append([]vm.Cell(nil), values...)
	c := make([]int, len(a))
	if !fn(a) {
		return
	}
	// Heap's algorithm
	for i := 0; i < len(a); {
		if c[i] >= i {
			c[i] = 0
			i++
			continue
		}
		if i%2 == 0 {
			a[0], a[i] = a[i], a[0]
		} else {
			a[c[i]], a[i] = a[i], a[c[i]]
		}
		if !fn(a) {
			return
		}
		c[i]++
		i = 0
	}
}

// MaxSignal runs a ring for each ordering of phases and returns the highest
// signal along with the phase order that produced it. The options apply to
// every machine of every ring.
func MaxSignal(p vm.Program, phases []vm.Cell, seed vm.Cell, opts ...vm.Option) (best vm.Cell, order []vm.Cell, err error) {
	n := 0
	Permutations(phases, func(perm []vm.Cell) bool {
		n++
		r, e := NewRing(p, perm, opts...)
		if e != nil {
			err = e
			return false
		}
		v, e := r.Run(seed)
		if e != nil {
			err = errors.Wrapf(e, "phases %v", perm)
			return false
		}
		if order == nil || v > best {
			best = v
			order = append(order[:0], perm...)
		}
		return true
	})
	if err != nil {
		return 0, nil, err
	}
	logger().Debugf("tried %d phase order(s), best %v: %d", n, order, best)
	return best, order, nil
}
