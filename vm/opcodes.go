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

import "strconv"

// Opcode is the operation part of an instruction word (its two least
// significant decimal digits).
type Opcode Cell

// Intcode opcodes.
const (
	OpAdd  Opcode = 1
	OpMul  Opcode = 2
	OpIn   Opcode = 3
	OpOut  Opcode = 4
	OpJnz  Opcode = 5
	OpJz   Opcode = 6
	OpLt   Opcode = 7
	OpEq   Opcode = 8
	OpArb  Opcode = 9
	OpHalt Opcode = 99
)

// MaxParams is the largest parameter count of any instruction.
const MaxParams = 3

type opInfo struct {
	name   string
	params int
	dst    int // destination parameter, -1 if none
}

var opcodes = [...]opInfo{
	OpAdd: {"add", 3, 2},
	OpMul: {"mul", 3, 2},
	OpIn:  {"in", 1, 0},
	OpOut: {"out", 1, -1},
	OpJnz: {"jnz", 2, -1},
	OpJz:  {"jz", 2, -1},
	OpLt:  {"lt", 3, 2},
	OpEq:  {"eq", 3, 2},
	OpArb: {"arb", 1, -1},
}

var haltInfo = opInfo{"hlt", 0, -1}

func (op Opcode) info() (opInfo, bool) {
	if op == OpHalt {
		return haltInfo, true
	}
	if op <= 0 || int(op) >= len(opcodes) {
		return opInfo{}, false
	}
	return opcodes[op], true
}

// Valid returns true if op is a known opcode.
func (op Opcode) Valid() bool {
	_, ok := op.info()
	return ok
}

// Params returns the number of parameters of op, 0 for unknown opcodes.
func (op Opcode) Params() int {
	i, _ := op.info()
	return i.params
}

// Dst returns the index of the parameter that op writes to, or -1 if op does not
// write to memory.
func (op Opcode) Dst() int {
	i, ok := op.info()
	if !ok {
		return -1
	}
	return i.dst
}

// String returns the assembler mnemonic of op.
func (op Opcode) String() string {
	if i, ok := op.info(); ok {
		return i.name
	}
	return "op(" + strconv.FormatInt(int64(op), 10) + ")"
}

// Mode is a parameter addressing mode.
type Mode uint8

// Addressing modes.
const (
	ModePosition  Mode = 0 // operand is memory[literal]
	ModeImmediate Mode = 1 // operand is the literal itself
	ModeRelative  Mode = 2 // operand is memory[relative base + literal]
)

var modeNames = [...]string{"position", "immediate", "relative"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Op    Opcode
	Modes [MaxParams]Mode
}

// Decode splits an instruction word into its opcode and parameter modes. It
// does not validate either of them.
func Decode(word Cell) Instruction {
	in := Instruction{Op: Opcode(word % 100)}
	m := word / 100
	for i := range in.Modes {
		in.Modes[i] = Mode(m % 10)
		m /= 10
	}
	return in
}

// Encode returns the instruction word for op with the given parameter modes.
func Encode(op Opcode, modes ...Mode) Cell {
	w := Cell(op)
	f := Cell(100)
	for _, m := range modes {
		w += Cell(m) * f
		f *= 10
	}
	return w
}
