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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aegamesi/intcode/vm"
	"github.com/klauspost/compress/zstd"
)

func TestParse(t *testing.T) {
	p, err := vm.Parse(" 1, -2 ,3\n")
	if err != nil {
		t.Fatal(err)
	}
	if !equal(p, C{1, -2, 3}) {
		t.Errorf("unexpected program %d", p)
	}
	if s := p.String(); s != "1,-2,3" {
		t.Errorf("unexpected text form %q", s)
	}
	for _, bad := range []string{"", "  \n", "1,,2", "1,2,", "1,x", "99999999999999999999"} {
		if _, err = vm.Parse(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}

func TestRead(t *testing.T) {
	p, err := vm.Read(strings.NewReader("\n1,2,3\n\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !equal(p, C{1, 2, 3}) {
		t.Errorf("unexpected program %d", p)
	}
	_, err = vm.Read(strings.NewReader("1,2\n3,4\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected error on line 2, got %v", err)
	}
	if _, err = vm.Read(strings.NewReader("\n\n")); err == nil {
		t.Errorf("empty input accepted")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	text := vm.Program(quine).String() + "\n"

	plain := filepath.Join(dir, "quine.txt")
	if err := os.WriteFile(plain, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	compressed := filepath.Join(dir, "quine.txt.zst")
	err = os.WriteFile(compressed, enc.EncodeAll([]byte(text), nil), 0o644)
	enc.Close()
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{plain, compressed} {
		p, err := vm.Load(name)
		if err != nil {
			t.Errorf("%+v", err)
			continue
		}
		if !equal(p, quine) {
			t.Errorf("%s: unexpected program %d", name, p)
		}
	}
	if _, err = vm.Load(filepath.Join(dir, "missing")); err == nil {
		t.Errorf("missing file loaded")
	}
}
