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

package asm_test

import (
	"strings"
	"testing"

	"github.com/aegamesi/intcode/asm"
	"github.com/aegamesi/intcode/vm"
)

func equal(a, b []vm.Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAssemble(t *testing.T) {
	var data = [...]struct {
		name string
		code string
		exp  []vm.Cell
	}{
		{"modes", "add 1 2 [0] hlt", []vm.Cell{1101, 1, 2, 0, 99}},
		{"relative", "arb 10 out rb[-1] hlt", []vm.Cell{109, 10, 204, -1, 99}},
		{"chars", "'a' 'b'", []vm.Cell{97, 98}},
		{"hex", "0x10", []vm.Cell{16}},
		{"equ", ".equ N 5 add [N] N [N+1]", []vm.Cell{1001, 5, 5, 6}},
		{"org", "1 .org 4 2", []vm.Cell{1, 0, 0, 0, 2}},
		{"label_offset", "out [end-1] 7 :end", []vm.Cell{4, 2, 7}},
		{"forward_label", "jnz 1 done 0 :done hlt", []vm.Cell{1105, 1, 4, 0, 99}},
		{"aliases", "jt 1 0 jf 0 0 rb 1 halt", []vm.Cell{1105, 1, 0, 1106, 0, 0, 109, 1, 99}},
		{"comments", "( leading ) add 1 2 [0] ( trailing\n comment ) hlt", []vm.Cell{1101, 1, 2, 0, 99}},
	}
	for _, test := range data {
		p, err := asm.Assemble(test.name, strings.NewReader(test.code))
		if err != nil {
			t.Errorf("%s: %v", test.name, err)
			continue
		}
		if !equal(p, test.exp) {
			t.Errorf("%s: expected %d, got %d", test.name, test.exp, p)
		}
	}
}

// check that errors are reported, and point at the offending token.
func TestAssemble_errors(t *testing.T) {
	var data = [...]struct {
		code string
		msg  string
		line int
		col  int
	}{
		{"add 1 2 3", "immediate destination", 1, 9},
		{"add 1 2", "missing operand", 0, 0},
		{"hlt\njz 0 nowhere", "undefined label nowhere", 2, 6},
		{":a 0 :a", "label redefinition", 1, 6},
		{".foo", "unknown directive", 1, 1},
		{"hlt ( unterminated", "unterminated comment", 0, 0},
		{"'ab'", "invalid character literal", 1, 1},
		{"add 1 :x [0]", "unexpected :x", 1, 7},
		{".org -1", "negative address", 1, 6},
		{".org 1000000000000 hlt", "address out of range", 1, 6},
		{".org 16777216", "address out of range", 1, 6},
		{"[5]", "invalid value", 1, 1},
		{".equ N 1 :N", "previously defined as a constant", 1, 10},
	}
	for _, test := range data {
		_, err := asm.Assemble("test_errors", strings.NewReader(test.code))
		if err == nil {
			t.Errorf("%q: expected error", test.code)
			continue
		}
		errs := err.(asm.ErrAsm)
		e := errs[0]
		if !strings.Contains(e.Msg, test.msg) {
			t.Errorf("%q: expected %q, got %q", test.code, test.msg, e.Msg)
		}
		if test.line > 0 && (e.Pos.Line != test.line || e.Pos.Column != test.col) {
			t.Errorf("%q: expected error at %d:%d, got %v", test.code, test.line, test.col, e.Pos)
		}
		if !strings.HasPrefix(err.Error(), "test_errors:") {
			t.Errorf("%q: error does not name its source: %v", test.code, err)
		}
	}
}

func TestAssemble_maxErrors(t *testing.T) {
	_, err := asm.Assemble("many", strings.NewReader(strings.Repeat(".bad ", 50)))
	if errs, ok := err.(asm.ErrAsm); !ok || len(errs) != 10 {
		t.Errorf("expected 10 errors, got %v", err)
	}
}

// programs must survive a disassemble/assemble cycle unchanged.
func TestDisassemble_roundTrip(t *testing.T) {
	progs := [...]string{
		"109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99",
		"3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31,1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104,999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99",
		"11101,1,2,3,1,2,99,-7,1,5",
	}
	for _, text := range progs {
		p, err := vm.Parse(text)
		if err != nil {
			t.Fatal(err)
		}
		var b strings.Builder
		for pc := 0; pc < len(p); {
			pc, _ = asm.Disassemble(p, pc, &b)
			b.WriteByte('\n')
		}
		q, err := asm.Assemble("round_trip", strings.NewReader(b.String()))
		if err != nil {
			t.Errorf("%v\n%s", err, b.String())
			continue
		}
		if !equal(p, q) {
			t.Errorf("round trip failed:\n%d\n%d\n%s", p, q, b.String())
		}
	}
}

func TestDisassemble_outOfRange(t *testing.T) {
	p := []vm.Cell{1101, 1, 2, 3, 99}
	for _, pc := range [...]int{-1, len(p), 1000} {
		var b strings.Builder
		next, err := asm.Disassemble(p, pc, &b)
		if err == nil {
			t.Errorf("pc %d: expected error", pc)
		}
		if next != pc || b.Len() != 0 {
			t.Errorf("pc %d: unexpected output %q, next %d", pc, b.String(), next)
		}
	}
	var b strings.Builder
	if next, err := asm.Disassemble(p, 4, &b); err != nil || next != 5 || b.String() != "hlt" {
		t.Errorf("unexpected disassembly %q, %d, %v", b.String(), next, err)
	}
}
