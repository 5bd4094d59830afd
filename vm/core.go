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

import "github.com/pkg/errors"

// Instruction errors.
var (
	ErrInvalidWriteMode = errors.New("immediate mode destination")
	ErrInvalidMode      = errors.New("invalid addressing mode")
	ErrUnknownOpcode    = errors.New("unknown opcode")
)

// param returns the raw value of parameter i of the current instruction.
func (m *Machine) param(i int) (Cell, error) {
	return m.mem.Read(Cell(m.pc + 1 + i))
}

// load resolves parameter i of in for reading.
func (m *Machine) load(in Instruction, i int) (Cell, error) {
	v, err := m.param(i)
	if err != nil {
		return 0, err
	}
	switch in.Modes[i] {
	case ModePosition:
		return m.mem.Read(v)
	case ModeImmediate:
		return v, nil
	case ModeRelative:
		return m.mem.Read(m.rb + v)
	}
	return 0, errors.Wrapf(ErrInvalidMode, "parameter %d: mode %d", i+1, in.Modes[i])
}

// addr resolves parameter i of in as a destination address. The address is
// range checked so that instructions never fail after having modified memory.
func (m *Machine) addr(in Instruction, i int) (Cell, error) {
	v, err := m.param(i)
	if err != nil {
		return 0, err
	}
	switch in.Modes[i] {
	case ModePosition:
	case ModeRelative:
		v += m.rb
	case ModeImmediate:
		return 0, errors.Wrapf(ErrInvalidWriteMode, "parameter %d", i+1)
	default:
		return 0, errors.Wrapf(ErrInvalidMode, "parameter %d: mode %d", i+1, in.Modes[i])
	}
	return v, m.mem.check(v)
}

// args3 resolves the operands of a three parameter instruction.
func (m *Machine) args3(in Instruction) (a, b, dst Cell, err error) {
	if a, err = m.load(in, 0); err != nil {
		return
	}
	if b, err = m.load(in, 1); err != nil {
		return
	}
	dst, err = m.addr(in, 2)
	return
}

// jump resolves the operands of a conditional jump. The target is range
// checked.
func (m *Machine) jump(in Instruction) (cond, target Cell, err error) {
	if cond, err = m.load(in, 0); err != nil {
		return
	}
	if target, err = m.load(in, 1); err != nil {
		return
	}
	err = m.mem.check(target)
	return
}

func (m *Machine) fault(op Opcode, err error) error {
	m.status = Status{Faulted, op}
	m.err = errors.Wrapf(err, "pc %d", m.pc)
	return m.err
}

// step executes a single instruction. The returned error is non-nil only for
// instruction faults.
func (m *Machine) step() error {
	if m.trace != nil {
		m.trace(m)
	}
	word, err := m.mem.Read(Cell(m.pc))
	if err != nil {
		return m.fault(0, err)
	}
	in := Decode(word)
	switch in.Op {
	case OpAdd:
		a, b, dst, err := m.args3(in)
		if err != nil {
			return m.fault(in.Op, err)
		}
		m.mem.set(dst, a+b)
		m.pc += 4
	case OpMul:
		a, b, dst, err := m.args3(in)
		if err != nil {
			return m.fault(in.Op, err)
		}
		m.mem.set(dst, a*b)
		m.pc += 4
	case OpIn:
		if m.inPos >= len(m.in) {
			m.status.State = Blocked
			return nil
		}
		dst, err := m.addr(in, 0)
		if err != nil {
			return m.fault(in.Op, err)
		}
		m.mem.set(dst, m.in[m.inPos])
		m.inPos++
		m.pc += 2
	case OpOut:
		v, err := m.load(in, 0)
		if err != nil {
			return m.fault(in.Op, err)
		}
		m.out = append(m.out, v)
		m.pc += 2
	case OpJnz:
		cond, target, err := m.jump(in)
		if err != nil {
			return m.fault(in.Op, err)
		}
		if cond != 0 {
			m.pc = int(target)
		} else {
			m.pc += 3
		}
	case OpJz:
		cond, target, err := m.jump(in)
		if err != nil {
			return m.fault(in.Op, err)
		}
		if cond == 0 {
			m.pc = int(target)
		} else {
			m.pc += 3
		}
	case OpLt:
		a, b, dst, err := m.args3(in)
		if err != nil {
			return m.fault(in.Op, err)
		}
		var v Cell
		if a < b {
			v = 1
		}
		m.mem.set(dst, v)
		m.pc += 4
	case OpEq:
		a, b, dst, err := m.args3(in)
		if err != nil {
			return m.fault(in.Op, err)
		}
		var v Cell
		if a == b {
			v = 1
		}
		m.mem.set(dst, v)
		m.pc += 4
	case OpArb:
		v, err := m.load(in, 0)
		if err != nil {
			return m.fault(in.Op, err)
		}
		m.rb += v
		m.pc += 2
	case OpHalt:
		m.status.State = Finished
	default:
		// not an error for the caller, who inspects the status.
		m.fault(in.Op, errors.Wrapf(ErrUnknownOpcode, "opcode %d", in.Op))
		return nil
	}
	m.steps++
	return nil
}

// Run starts or resumes execution of the machine.
//
// Run returns when the machine halts, when it executes an unknown opcode, or
// when it needs input and the input queue is empty. The caller tells these
// apart with Status: after feeding a Blocked machine with AddInput, Run can be
// called again to resume execution at the same input instruction.
//
// Memory access and addressing mode errors fault the machine and are
// returned. In this case, the PC points to the instruction that triggered the
// error and the instruction has no effect. Unknown opcodes also fault the
// machine but Run returns nil; use Err to get the details.
//
// Calling Run on a Finished or Faulted machine does nothing.
func (m *Machine) Run() (err error) {
	if m.status.Terminal() {
		return nil
	}
	m.status.State = Runnable
	for m.status.State == Runnable {
		if err = m.step(); err != nil {
			break
		}
	}
	m.logStatus()
	return err
}

// Step executes a single instruction, with the same semantics as Run.
func (m *Machine) Step() (err error) {
	if m.status.Terminal() {
		return nil
	}
	m.status.State = Runnable
	err = m.step()
	if m.status.State != Runnable {
		m.logStatus()
	}
	return err
}

func (m *Machine) logStatus() {
	switch m.status.State {
	case Blocked:
		m.log.Debugf("blocked on input at pc %d, %d step(s)", m.pc, m.steps)
	case Finished:
		m.log.Debugf("halted at pc %d, %d step(s), %d output(s)", m.pc, m.steps, len(m.out))
	case Faulted:
		m.log.Debugf("%v", m.err)
	}
}
