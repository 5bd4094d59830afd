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

// Package vm implements the intcode virtual machine.
//
// An intcode program is a flat sequence of integers that serves as the initial
// memory image of a Machine. Instructions are variable length: the first word
// holds the opcode in its two least significant decimal digits and one
// addressing mode digit per parameter above them (0: position, 1: immediate,
// 2: relative to the machine's relative base).
//
// Machines communicate with their host through two FIFO queues. The input
// instruction is the only place where a machine suspends itself: when the input
// queue is empty, Run returns with the machine in the Blocked state, without
// side effects, and the same instruction is attempted again on the next call to
// Run. This makes it possible to drive one or several machines from a single
// goroutine, feeding each one as its outputs become available. See the host
// package for common orchestration patterns.
//
// Memory grows on demand and reads of never written addresses return 0.
// Accessing an address at or above the machine's memory limit (see
// MemoryLimit) faults the machine.
//
// A Machine is not safe for concurrent use. Machines never share memory, even
// when built from the same Program, so independent machines may run in
// different goroutines.
package vm
