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

// Package host implements the usual ways of driving intcode machines from Go:
// single-shot runs, feedback rings, interactive agents and maze exploration by
// deterministic replay.
//
// All the patterns here are single threaded: the host feeds a machine, runs it
// until it blocks or halts, collects its output and decides what to do next.
// At most one machine is running at any given time.
package host

import (
	"github.com/aegamesi/intcode/vm"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

// Host protocol errors.
var (
	ErrStarved    = errors.New("machine blocked on input")
	ErrNoOutput   = errors.New("no output")
	ErrRingBroken = errors.New("ring broken")
	ErrProtocol   = errors.New("protocol error")
)

func logger() commonlog.Logger {
	return commonlog.GetLogger("intcode.host")
}

// RunOnce runs p with the given inputs and returns all its output. The machine
// must halt without needing more input, otherwise ErrStarved is returned along
// with the output produced so far.
func RunOnce(p vm.Program, inputs ...vm.Cell) ([]vm.Cell, error) {
	m, err := vm.New(p, vm.Input(inputs...))
	if err != nil {
		return nil, err
	}
	if err = m.Run(); err != nil {
		return m.Outputs(), err
	}
	switch m.Status().State {
	case vm.Blocked:
		return m.Outputs(), errors.Wrapf(ErrStarved, "pc %d, %d input(s)", m.PC(), len(inputs))
	case vm.Faulted:
		return m.Outputs(), m.Err()
	}
	return m.Outputs(), nil
}

// run resumes m and reports faults as errors.
func run(m *vm.Machine) error {
	if err := m.Run(); err != nil {
		return err
	}
	if m.Status().State == vm.Faulted {
		return m.Err()
	}
	return nil
}

// drain returns the outputs of m not yet consumed.
func drain(m *vm.Machine) []vm.Cell {
	var out []vm.Cell
	for v, ok := m.Output(); ok; v, ok = m.Output() {
		out = append(out, v)
	}
	return out
}
