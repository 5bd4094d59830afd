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

package asm

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/aegamesi/intcode/internal/errw"
	"github.com/aegamesi/intcode/vm"
	"github.com/pkg/errors"
)

var opcodes = [...]struct {
	op    vm.Opcode
	names []string
}{
	{vm.OpAdd, []string{"add"}},
	{vm.OpMul, []string{"mul"}},
	{vm.OpIn, []string{"in"}},
	{vm.OpOut, []string{"out"}},
	{vm.OpJnz, []string{"jnz", "jt"}},
	{vm.OpJz, []string{"jz", "jf"}},
	{vm.OpLt, []string{"lt"}},
	{vm.OpEq, []string{"eq"}},
	{vm.OpArb, []string{"arb", "rb"}},
	{vm.OpHalt, []string{"hlt", "halt"}},
}

var mnemonics = make(map[string]vm.Opcode)

func init() {
	for _, o := range opcodes {
		for _, n := range o.names {
			mnemonics[n] = o.op
		}
	}
}

const maxErrors = 10

// Error is an assembler error at a given position in the source.
type Error struct {
	Pos scanner.Position
	Msg string
}

func (e Error) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// ErrAsm encapsulates errors generated by the assembler.
type ErrAsm []Error

func (e ErrAsm) Error() string {
	var b strings.Builder
	for i, err := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting program and error if any.
//
// The name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (vm.Program, error) {
	p := newParser()
	if err := p.Parse(name, r); err != nil {
		return nil, err
	}
	return vm.Program(p.i[:p.size]), nil
}

// decode returns the instruction at pc if it can be disassembled back to the
// exact same cells.
func decode(mem []vm.Cell, pc int) (vm.Instruction, int, bool) {
	in := vm.Decode(mem[pc])
	if !in.Op.Valid() {
		return in, 0, false
	}
	n := in.Op.Params()
	if pc+n >= len(mem) || vm.Encode(in.Op, in.Modes[:n]...) != mem[pc] {
		return in, 0, false
	}
	for i := 0; i < n; i++ {
		if in.Modes[i] > vm.ModeRelative || (in.Modes[i] == vm.ModeImmediate && i == in.Op.Dst()) {
			return in, 0, false
		}
	}
	return in, n, true
}

// Disassemble writes a disassembly of the cells in the given slice at position
// pc to the specified io.Writer and returns the position of the next
// instruction and any write error. Cells that do not form a valid instruction
// are written as data. An out of range pc returns an error.
func Disassemble(mem []vm.Cell, pc int, w io.Writer) (next int, err error) {
	if pc < 0 || pc >= len(mem) {
		return pc, errors.Errorf("disassemble: address %d out of range [0, %d)", pc, len(mem))
	}
	ew := errw.New(w)
	in, n, ok := decode(mem, pc)
	if !ok {
		io.WriteString(ew, strconv.FormatInt(int64(mem[pc]), 10))
		return pc + 1, ew.Err
	}
	io.WriteString(ew, in.Op.String())
	for i := 0; i < n; i++ {
		v := strconv.FormatInt(int64(mem[pc+1+i]), 10)
		ew.Write([]byte{' '})
		switch in.Modes[i] {
		case vm.ModePosition:
			io.WriteString(ew, "["+v+"]")
		case vm.ModeImmediate:
			io.WriteString(ew, v)
		case vm.ModeRelative:
			io.WriteString(ew, "rb["+v+"]")
		}
	}
	return pc + 1 + n, ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer. The base argument specifies the real address of the
// first cell (mem[0]). It will return any write error.
func DisassembleAll(mem []vm.Cell, base int, w io.Writer) error {
	ew := errw.New(w)
	for pc := 0; pc < len(mem); {
		fmt.Fprintf(ew, "% 6d\t", base+pc)
		pc, _ = Disassemble(mem, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
