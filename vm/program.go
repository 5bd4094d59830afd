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

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aegamesi/intcode/internal/errw"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// Program is the initial memory image of a machine.
type Program []Cell

// Clone returns a copy of p.
func (p Program) Clone() Program {
	return append(Program(nil), p...)
}

// String returns p in text form.
func (p Program) String() string {
	var b strings.Builder
	p.WriteTo(&b)
	return b.String()
}

// WriteTo writes p in text form, without a trailing newline.
func (p Program) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	err := errw.WriteInts(cw, p, ',')
	return cw.n, err
}

type countWriter struct {
	w io.Writer
	n int64
}

func (w *countWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.n += int64(n)
	return n, err
}

// Parse parses the text form of a program: comma separated integers. Spaces
// around values are ignored.
func Parse(text string) (Program, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("empty program")
	}
	fields := strings.Split(text, ",")
	p := make(Program, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			return nil, errors.Errorf("value %d: empty field", i)
		}
		n, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "value %d", i)
		}
		p[i] = Cell(n)
	}
	return p, nil
}

// Read reads a program from r. The program must be on a single line; blank
// lines are ignored.
func Read(r io.Reader) (Program, error) {
	var (
		text  string
		found bool
		line  int
	)
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for s.Scan() {
		line++
		l := strings.TrimSpace(s.Text())
		if l == "" {
			continue
		}
		if found {
			return nil, errors.Errorf("line %d: unexpected data after program", line)
		}
		text, found = l, true
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	if !found {
		return nil, errors.New("empty program")
	}
	return Parse(text)
}

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Load loads a program from file fileName. Zstandard compressed files are
// decompressed on the fly.
func Load(fileName string) (Program, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	br := bufio.NewReader(f)
	var r io.Reader = br
	if magic, _ := br.Peek(len(zstdMagic)); bytes.Equal(magic, zstdMagic) {
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, errors.Wrapf(err, "Load %v", fileName)
		}
		defer zr.Close()
		r = zr
	}
	p, err := Read(r)
	if err != nil {
		return nil, errors.Wrapf(err, "Load %v", fileName)
	}
	return p, nil
}
