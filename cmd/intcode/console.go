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
	"io"
	"strconv"
	"strings"

	"github.com/aegamesi/intcode/host"
	"github.com/aegamesi/intcode/vm"
	"github.com/pkg/errors"
)

// console feeds a blocked machine from an input stream and prints its output.
type console struct {
	in    *bufio.Reader
	out   *bufio.Writer
	ascii bool
	raw   bool
}

// readLine reads a line of input. In raw mode, echo and backspace handling are
// done here, and CTRL-D on an empty line ends the input.
func (c *console) readLine() (string, error) {
	if !c.raw {
		s, err := c.in.ReadString('\n')
		if err == io.EOF && s != "" {
			return s + "\n", nil
		}
		return s, err
	}
	var b []byte
	for {
		ch, err := c.in.ReadByte()
		if err != nil {
			return "", err
		}
		switch ch {
		case 4:
			if len(b) == 0 {
				return "", io.EOF
			}
		case 8, 127:
			if len(b) > 0 {
				b = b[:len(b)-1]
				c.out.WriteString("\b \b")
			}
		case '\r', '\n':
			c.out.WriteByte('\n')
			c.out.Flush()
			return string(append(b, '\n')), nil
		default:
			b = append(b, ch)
			c.out.WriteByte(ch)
		}
		if err = c.out.Flush(); err != nil {
			return "", err
		}
	}
}

// read returns the next batch of input values: the characters of a line in
// ASCII mode, or a line of comma separated integers. Blank lines are skipped
// in the latter case.
func (c *console) read() ([]vm.Cell, error) {
	for {
		s, err := c.readLine()
		if err != nil {
			return nil, err
		}
		if c.ascii {
			return host.EncodeASCII(s), nil
		}
		if strings.TrimSpace(s) == "" {
			continue
		}
		p, err := vm.Parse(s)
		if err != nil {
			return nil, errors.Wrap(err, "bad input")
		}
		return p, nil
	}
}

// write prints the pending output of m. In ASCII mode, values in the ASCII
// range are printed as characters.
func (c *console) write(m *vm.Machine) error {
	for v, ok := m.Output(); ok; v, ok = m.Output() {
		if c.ascii && v >= 0 && v < 128 {
			c.out.WriteByte(byte(v))
			continue
		}
		c.out.WriteString(strconv.FormatInt(int64(v), 10))
		c.out.WriteByte('\n')
	}
	return c.out.Flush()
}

// run runs m to completion, feeding it from the console whenever it blocks.
func (c *console) run(m *vm.Machine) error {
	for {
		err := m.Run()
		if werr := c.write(m); err == nil {
			err = werr
		}
		if err != nil {
			return err
		}
		switch m.Status().State {
		case vm.Finished:
			return nil
		case vm.Faulted:
			return m.Err()
		}
		values, err := c.read()
		if err == io.EOF {
			return errors.Wrapf(host.ErrStarved, "end of input at pc %d", m.PC())
		}
		if err != nil {
			return err
		}
		m.AddInputs(values...)
	}
}
