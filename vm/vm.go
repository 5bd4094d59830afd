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

package vm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/aegamesi/intcode/internal/errw"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

// Cell is the raw type stored in a memory location.
type Cell int64

// State is the execution state of a Machine.
type State uint8

// Machine states. Finished and Faulted are terminal.
const (
	Runnable State = iota
	Blocked
	Finished
	Faulted
)

var stateNames = [...]string{"runnable", "blocked", "finished", "faulted"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "state(" + strconv.Itoa(int(s)) + ")"
}

// Status is the status of a Machine. Opcode is only meaningful for the Faulted
// state, where it holds the opcode of the faulting instruction.
type Status struct {
	State  State
	Opcode Opcode
}

// Terminal returns true if s is either Finished or Faulted.
func (s Status) Terminal() bool {
	return s.State == Finished || s.State == Faulted
}

func (s Status) String() string {
	if s.State == Faulted {
		return "faulted(" + strconv.FormatInt(int64(s.Opcode), 10) + ")"
	}
	return s.State.String()
}

// TraceFunc is the prototype for trace hooks. It is called before each
// instruction with the machine's PC pointing at the instruction about to
// execute.
type TraceFunc func(m *Machine)

// Machine represents an intcode VM instance.
type Machine struct {
	mem     *Memory
	pc      int
	rb      Cell
	status  Status
	err     error
	in      []Cell
	inPos   int
	out     []Cell
	outPos  int
	steps   int64
	limit   int
	patches []patch
	trace   TraceFunc
	log     commonlog.Logger
}

type patch struct {
	addr, v Cell
}

// Option is a functional option for New.
type Option func(*Machine) error

// Input appends the given values to the input queue.
func Input(values ...Cell) Option {
	return func(m *Machine) error {
		m.in = append(m.in, values...)
		return nil
	}
}

// MemoryLimit sets the number of addressable cells. The default is
// DefaultMemoryLimit. Programs larger than the limit are rejected by New.
func MemoryLimit(cells int) Option {
	return func(m *Machine) error {
		if cells < 0 {
			return errors.Errorf("invalid memory limit %d", cells)
		}
		m.limit = cells
		return nil
	}
}

// Patch overwrites the cell at address addr with v before the machine starts.
// A typical use is setting up program parameters stored at fixed addresses.
func Patch(addr, v Cell) Option {
	return func(m *Machine) error {
		m.patches = append(m.patches, patch{addr, v})
		return nil
	}
}

// Trace installs a trace hook called before each instruction.
func Trace(fn TraceFunc) Option {
	return func(m *Machine) error {
		m.trace = fn
		return nil
	}
}

// Logger sets the logger used to report state changes. The default is the
// "intcode.vm" logger.
func Logger(l commonlog.Logger) Option {
	return func(m *Machine) error {
		m.log = l
		return nil
	}
}

// New creates a new Machine from a program.
//
// The program is copied into the machine's memory, so that any number of
// machines can be created from the same Program. The new machine is Runnable,
// with PC and relative base set to 0.
func New(p Program, opts ...Option) (*Machine, error) {
	m := &Machine{}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	mem, err := NewMemory(p, m.limit)
	if err != nil {
		return nil, err
	}
	m.mem = mem
	for _, p := range m.patches {
		if err = m.mem.Write(p.addr, p.v); err != nil {
			return nil, errors.Wrap(err, "patch failed")
		}
	}
	m.patches = nil
	if m.log == nil {
		m.log = commonlog.GetLogger("intcode.vm")
	}
	return m, nil
}

// Clone returns a deep copy of m: memory, registers, status and both queues,
// including read positions. The clone shares the trace hook and logger of m.
func (m *Machine) Clone() *Machine {
	c := *m
	c.mem = m.mem.Clone()
	c.in = append([]Cell(nil), m.in...)
	c.out = append([]Cell(nil), m.out...)
	return &c
}

// AddInput appends v to the input queue. Input sent to a Finished or Faulted
// machine is discarded.
func (m *Machine) AddInput(v Cell) {
	m.AddInputs(v)
}

// AddInputs appends the given values to the input queue. Input sent to a
// Finished or Faulted machine is discarded.
func (m *Machine) AddInputs(values ...Cell) {
	if m.status.Terminal() {
		m.log.Debugf("discarding %d input(s) sent to %s machine", len(values), m.status)
		return
	}
	m.in = append(m.in, values...)
}

// Queued returns the number of input values not yet consumed.
func (m *Machine) Queued() int {
	return len(m.in) - m.inPos
}

// Output returns the next output value not yet returned by Output. The second
// return value is false if no such value is available.
func (m *Machine) Output() (Cell, bool) {
	if m.outPos >= len(m.out) {
		return 0, false
	}
	v := m.out[m.outPos]
	m.outPos++
	return v, true
}

// Outputs returns a copy of all values output so far, including those already
// returned by Output.
func (m *Machine) Outputs() []Cell {
	return append([]Cell(nil), m.out...)
}

// Pending returns the number of output values not yet returned by Output.
func (m *Machine) Pending() int {
	return len(m.out) - m.outPos
}

// Status returns the machine status.
func (m *Machine) Status() Status {
	return m.status
}

// Err returns the cause of a fault, nil if the machine is not Faulted.
func (m *Machine) Err() error {
	return m.err
}

// PC returns the program counter.
func (m *Machine) PC() int {
	return m.pc
}

// RelativeBase returns the relative base register.
func (m *Machine) RelativeBase() Cell {
	return m.rb
}

// Steps returns the number of instructions executed so far.
func (m *Machine) Steps() int64 {
	return m.steps
}

// Peek returns the value at address addr.
func (m *Machine) Peek(addr Cell) (Cell, error) {
	return m.mem.Read(addr)
}

// Poke stores v at address addr. Terminal machines cannot be modified.
func (m *Machine) Poke(addr, v Cell) error {
	if m.status.Terminal() {
		return errors.Errorf("poke %d: machine %s", addr, m.status)
	}
	return m.mem.Write(addr, v)
}

// Memory returns a copy of the machine's memory, up to the highest address
// written to.
func (m *Machine) Memory() []Cell {
	return append([]Cell(nil), m.mem.Cells()...)
}

// Dump writes the machine registers, status and memory to the specified
// io.Writer.
func (m *Machine) Dump(w io.Writer) error {
	ew := errw.New(w)
	fmt.Fprintf(ew, "status: %v\npc: %d\nrb: %d\nsteps: %d\n", m.status, m.pc, m.rb, m.steps)
	if m.err != nil {
		fmt.Fprintf(ew, "error: %v\n", m.err)
	}
	fmt.Fprintf(ew, "input: %d/%d\noutput: %d/%d\nmemory:\n", m.inPos, len(m.in), m.outPos, len(m.out))
	errw.WriteInts(ew, m.mem.Cells(), ',')
	ew.Write([]byte{'\n'})
	return ew.Err
}
