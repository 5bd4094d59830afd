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

package vm_test

import (
	"testing"

	"github.com/aegamesi/intcode/vm"
	"github.com/pkg/errors"
)

func TestMemory(t *testing.T) {
	src := []vm.Cell{1, 2, 3}
	m, err := vm.NewMemory(src, 0)
	if err != nil {
		t.Fatal(err)
	}
	if m.Limit() != vm.DefaultMemoryLimit {
		t.Errorf("expected default limit, got %d", m.Limit())
	}
	src[0] = 42
	if v, _ := m.Read(0); v != 1 {
		t.Errorf("memory shares storage with source slice")
	}
	if v, err := m.Read(1000); err != nil || v != 0 {
		t.Errorf("unwritten cell: got %d, %v", v, err)
	}
	if m.Len() != 3 {
		t.Errorf("read grew memory to %d cells", m.Len())
	}
	if err = m.Write(1000, 7); err != nil {
		t.Fatal(err)
	}
	if m.Len() != 1001 {
		t.Errorf("expected 1001 cells, got %d", m.Len())
	}
	if v, _ := m.Read(500); v != 0 {
		t.Errorf("gap not zeroed: %d", v)
	}
	if v, _ := m.Read(1000); v != 7 {
		t.Errorf("expected 7, got %d", v)
	}

	c := m.Clone()
	c.Write(0, 99)
	if v, _ := m.Read(0); v != 1 {
		t.Errorf("clone shares storage with original")
	}
}

func TestMemory_errors(t *testing.T) {
	m, err := vm.NewMemory([]vm.Cell{1, 2, 3}, 8)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = m.Read(-1); errors.Cause(err) != vm.ErrInvalidAddress {
		t.Errorf("read -1: %v", err)
	}
	if err = m.Write(-1, 0); errors.Cause(err) != vm.ErrInvalidAddress {
		t.Errorf("write -1: %v", err)
	}
	if _, err = m.Read(8); errors.Cause(err) != vm.ErrMemoryLimit {
		t.Errorf("read 8: %v", err)
	}
	if err = m.Write(8, 0); errors.Cause(err) != vm.ErrMemoryLimit {
		t.Errorf("write 8: %v", err)
	}
	if err = m.Write(7, 1); err != nil {
		t.Errorf("write 7: %v", err)
	}
	if m.Len() != 8 {
		t.Errorf("expected 8 cells, got %d", m.Len())
	}
	if _, err = vm.NewMemory(make([]vm.Cell, 9), 8); err == nil {
		t.Errorf("image larger than limit accepted")
	}
}
