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

package errw_test

import (
	"strings"
	"testing"

	"github.com/aegamesi/intcode/internal/errw"
	"github.com/pkg/errors"
)

type failWriter struct {
	n int
}

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errors.New("disk full")
	}
	w.n--
	return len(p), nil
}

func TestWriteInts(t *testing.T) {
	var b strings.Builder
	if err := errw.WriteInts(&b, []int64{1, -2, 300}, ','); err != nil {
		t.Fatal(err)
	}
	if b.String() != "1,-2,300" {
		t.Errorf("unexpected output %q", b.String())
	}
	b.Reset()
	errw.WriteInts(&b, []int64(nil), ',')
	if b.Len() != 0 {
		t.Errorf("unexpected output %q", b.String())
	}
}

func TestWriter(t *testing.T) {
	fw := &failWriter{n: 1}
	w := errw.New(fw)
	if errw.New(w) != w {
		t.Errorf("New wrapped an errw.Writer")
	}
	if err := errw.WriteInts(w, []int64{1, 2, 3}, ' '); err == nil {
		t.Fatal("expected error")
	}
	// sticky
	if _, err := w.Write([]byte("x")); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("unexpected error %v", err)
	}
	if fw.n != 0 {
		t.Errorf("writes not stopped after error")
	}
}
