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

// Package asm provides utility functions to assemble and disassemble intcode
// programs.
//
// Supported assembler mnemonics:
//
//	opcode	asm		params	description
//	------	---		------	----------------------------------------------------
//	1	add		a b d	d = a + b
//	2	mul		a b d	d = a * b
//	3	in		d	d = next input value. Blocks if no input is available.
//	4	out		a	output a
//	5	jnz, jt		c t	jump to t if c != 0
//	6	jz, jf		c t	jump to t if c == 0
//	7	lt		a b d	d = 1 if a < b, 0 otherwise
//	8	eq		a b d	d = 1 if a == b, 0 otherwise
//	9	arb, rb		a	add a to the relative base
//	99	hlt, halt		halt
//
// Operands:
//
// Each mnemonic must be followed by exactly as many operands as the
// instruction has parameters. The addressing mode of an operand is given by
// its form:
//
//	42		immediate: the value 42
//	[42]		position: the value at address 42
//	rb[-3]		relative: the value at address relative base - 3
//
// Destination operands (d above) cannot be immediate.
//
// The value of an operand may be an integer literal (any form accepted by
// strconv.ParseInt with base 0), a Go character literal between single quotes,
// a constant, or a label. Constants and labels may be followed by an offset:
// "[buf+2]" is the value at address buf+2, "next-1" is the address of the cell
// before label next.
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space:
//
//	( this is a valid comment )
//	(this is not)
//
// Tokens:
//
// Input is split at white space into tokens, so that an operand like "[ 42 ]"
// is invalid and must be written "[42]". As a consequence, the space character
// cannot be written as a character literal. Use 32 or a constant instead.
//
// Data:
//
// Where the parser is expecting an instruction, any value (integer literal,
// character literal, constant or label) is compiled as-is into the next cell:
//
//	:table	1 2 3 'a' table	( five cells: 1, 2, 3, 97 and the address of table )
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:). They can be used as
// values anywhere, forward references included:
//
//		jz 0 start	( unconditional jump )
//	:x	0		( a variable )
//	:start	in [x]
//		out [x]
//		hlt
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant. The value must be an integer, character literal or
// previously defined constant.
//
//	.org <value>
//
// places the next cell at the given address. Cells skipped over are zero.
package asm
