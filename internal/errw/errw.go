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

// Package errw provides a sticky error writer and helpers for writing integer
// lists.
package errw

import (
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Writer is a simple wrapper to track io errors. Write will keep returning the
// first error over and over.
type Writer struct {
	w   io.Writer
	Err error
}

func (w *Writer) Write(p []byte) (n int, err error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.Err = errors.Wrap(err, "write failed")
	}
	return n, w.Err
}

// New returns w if it is already a *Writer, or a new Writer wrapping w.
func New(w io.Writer) *Writer {
	if ew, ok := w.(*Writer); ok {
		return ew
	}
	return &Writer{w, nil}
}

// WriteInts writes the values of a in base 10, separated by sep.
func WriteInts[T ~int64](w io.Writer, a []T, sep byte) error {
	ew := New(w)
	b := make([]byte, 0, 24)
	for i, v := range a {
		b = b[:0]
		if i > 0 {
			b = append(b, sep)
		}
		b = strconv.AppendInt(b, int64(v), 10)
		if _, err := ew.Write(b); err != nil {
			break
		}
	}
	return ew.Err
}
