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

package main

import (
	"bufio"
	"strings"
	"testing"

	"github.com/aegamesi/intcode/host"
	"github.com/aegamesi/intcode/vm"
	"github.com/pkg/errors"
)

func newConsole(input string, ascii, raw bool) (*console, *strings.Builder) {
	var b strings.Builder
	return &console{
		in:    bufio.NewReader(strings.NewReader(input)),
		out:   bufio.NewWriter(&b),
		ascii: ascii,
		raw:   raw,
	}, &b
}

func TestConsole_readLine(t *testing.T) {
	c, out := newConsole("ab\x7fc\rxy\x08\x04z\n\x04", true, true)
	s, err := c.readLine()
	if err != nil || s != "ac\n" {
		t.Errorf("unexpected line %q, %v", s, err)
	}
	if s, err = c.readLine(); err != nil || s != "xz\n" {
		t.Errorf("unexpected line %q, %v", s, err)
	}
	if _, err = c.readLine(); err == nil {
		t.Errorf("expected EOF")
	}
	if exp := "ab\b \bc\nxy\b \bz\n"; out.String() != exp {
		t.Errorf("unexpected echo %q", out.String())
	}

	c, _ = newConsole("1,2\nlast", false, false)
	if s, _ = c.readLine(); s != "1,2\n" {
		t.Errorf("unexpected line %q", s)
	}
	if s, _ = c.readLine(); s != "last\n" {
		t.Errorf("unterminated last line: %q", s)
	}
}

func TestConsole_run(t *testing.T) {
	// adds pairs of numbers until it reads 0.
	p, _ := vm.Parse("3,100,1006,100,16,3,101,1,100,101,102,4,102,1105,1,0,99")
	c, out := newConsole("1,2\n\n 3, 4\n0\n", false, false)
	m, _ := vm.New(p)
	if err := c.run(m); err != nil {
		t.Fatalf("%+v", err)
	}
	if out.String() != "3\n7\n" {
		t.Errorf("unexpected output %q", out.String())
	}

	c, _ = newConsole("1,2\n", false, false)
	m, _ = vm.New(p)
	if err := c.run(m); errors.Cause(err) != host.ErrStarved {
		t.Errorf("expected starved machine, got %v", err)
	}

	c, _ = newConsole("1,x\n", false, false)
	m, _ = vm.New(p)
	if err := c.run(m); err == nil {
		t.Errorf("bad input accepted")
	}
}

func TestConsole_ascii(t *testing.T) {
	// echoes characters until it reads a newline, then outputs 1000.
	p, _ := vm.Parse("3,100,1008,100,10,101,1005,101,14,4,100,1105,1,0,104,1000,99")
	c, out := newConsole("hi\n", true, false)
	m, _ := vm.New(p)
	if err := c.run(m); err != nil {
		t.Fatalf("%+v", err)
	}
	if out.String() != "hi1000\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}
