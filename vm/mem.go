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

// DefaultMemoryLimit is the default number of addressable cells of a Machine.
const DefaultMemoryLimit = 1 << 24

// Memory access errors.
var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrMemoryLimit    = errors.New("memory limit exceeded")
)

// Memory is a growable Cell array. Cells that have never been written read as
// 0. Valid addresses range from 0 to Limit()-1.
type Memory struct {
	cells []Cell
	limit int
}

// NewMemory returns a new Memory initialized with a copy of cells. A limit less
// than or equal to 0 selects DefaultMemoryLimit.
func NewMemory(cells []Cell, limit int) (*Memory, error) {
	if limit <= 0 {
		limit = DefaultMemoryLimit
	}
	if len(cells) > limit {
		return nil, errors.Errorf("image size %d exceeds memory limit %d", len(cells), limit)
	}
	m := &Memory{
		cells: make([]Cell, len(cells)),
		limit: limit,
	}
	copy(m.cells, cells)
	return m, nil
}

func (m *Memory) check(addr Cell) error {
	if addr < 0 {
		return errors.Wrapf(ErrInvalidAddress, "address %d", addr)
	}
	if addr >= Cell(m.limit) {
		return errors.Wrapf(ErrMemoryLimit, "address %d, limit %d", addr, m.limit)
	}
	return nil
}

// Read returns the value stored at address addr.
func (m *Memory) Read(addr Cell) (Cell, error) {
	if err := m.check(addr); err != nil {
		return 0, err
	}
	if addr >= Cell(len(m.cells)) {
		return 0, nil
	}
	return m.cells[addr], nil
}

// Write stores v at address addr, growing the memory as needed.
func (m *Memory) Write(addr, v Cell) error {
	if err := m.check(addr); err != nil {
		return err
	}
	m.set(addr, v)
	return nil
}

// set stores v at an address already validated with check.
func (m *Memory) set(addr, v Cell) {
	if n := int(addr); n >= len(m.cells) {
		m.grow(n + 1)
	}
	m.cells[addr] = v
}

// grow extends the written part of the memory to size cells. New cells are
// zero.
func (m *Memory) grow(size int) {
	if size <= cap(m.cells) {
		m.cells = m.cells[:size]
		return
	}
	c := 2 * cap(m.cells)
	if c < size {
		c = size
	}
	if c > m.limit {
		c = m.limit
	}
	t := make([]Cell, size, c)
	copy(t, m.cells)
	m.cells = t
}

// Len returns the number of cells between address 0 and the highest address
// written to so far, inclusive, or the initial image size if larger.
func (m *Memory) Len() int { return len(m.cells) }

// Limit returns the number of addressable cells.
func (m *Memory) Limit() int { return m.limit }

// Cells returns the first Len() cells of memory. Value changes will be
// reflected in the memory, but re-slicing will not affect it.
func (m *Memory) Cells() []Cell { return m.cells }

// Clone returns an independent copy of m.
func (m *Memory) Clone() *Memory {
	c := &Memory{
		cells: make([]Cell, len(m.cells)),
		limit: m.limit,
	}
	copy(c.cells, m.cells)
	return c
}
