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
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/aegamesi/intcode/asm"
	"github.com/aegamesi/intcode/host"
	"github.com/aegamesi/intcode/vm"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

// tracer returns a trace hook that disassembles each instruction to w.
func tracer(w io.Writer) vm.TraceFunc {
	var cells [vm.MaxParams + 1]vm.Cell
	return func(m *vm.Machine) {
		pc := m.PC()
		n := 0
		for ; n < len(cells); n++ {
			v, err := m.Peek(vm.Cell(pc + n))
			if err != nil {
				break
			}
			cells[n] = v
		}
		if n == 0 {
			return
		}
		fmt.Fprintf(w, "% 6d\trb=%d\t", pc, m.RelativeBase())
		asm.Disassemble(cells[:n], 0, w)
		fmt.Fprintln(w)
	}
}

func atExit(m *vm.Machine, debug bool, err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	if m != nil {
		w, _ := m.Peek(vm.Cell(m.PC()))
		fmt.Fprintf(os.Stderr, "PC: %v (%v), RB: %v, status: %v, steps: %v\n", m.PC(), w, m.RelativeBase(), m.Status(), m.Steps())
	}
	os.Exit(1)
}

func main() {
	var (
		err error
		m   *vm.Machine
		cfg = defaultConfig()
	)

	stdout := bufio.NewWriter(os.Stdout)

	// flush output, catch and log errors
	defer func() {
		stdout.Flush()
		if err == nil && cfg.Dump && m != nil {
			err = m.Dump(os.Stdout)
		}
		atExit(m, cfg.Debug, err)
	}()

	configFile := flag.String("config", "", "load settings from TOML `file`")
	cfg.bind(flag.CommandLine)
	flag.Parse()

	if *configFile != "" {
		if err = cfg.load(*configFile, flag.CommandLine); err != nil {
			return
		}
	}
	if flag.NArg() > 0 {
		cfg.Program = flag.Arg(0)
	}
	if cfg.Program == "" {
		err = errors.New("no program file")
		return
	}
	if err = cfg.validate(); err != nil {
		return
	}

	var logPath *string
	if cfg.Log != "" {
		logPath = &cfg.Log
	}
	commonlog.Configure(cfg.Verbosity, logPath)
	log := commonlog.GetLogger("intcode")
	session := uuid.New()
	log.Infof("session %s: %s %s", session, cfg.Mode, cfg.Program)

	p, err := vm.Load(cfg.Program)
	if err != nil {
		return
	}
	log.Debugf("session %s: loaded %d cell(s)", session, len(p))

	opts := []vm.Option{
		vm.MemoryLimit(cfg.MemLimit),
		vm.Logger(commonlog.GetLogger("intcode.vm")),
	}
	if cfg.Trace {
		opts = append(opts, vm.Trace(tracer(os.Stderr)))
	}

	switch cfg.Mode {
	case "run":
		c := &console{
			in:    bufio.NewReader(os.Stdin),
			out:   stdout,
			ascii: cfg.ASCII,
		}
		// try to switch the terminal to raw mode.
		if cfg.ASCII && !cfg.NoRaw && isatty.IsTerminal(os.Stdin.Fd()) {
			tearDown, rerr := setRawIO(os.Stdin.Fd())
			if rerr != nil {
				log.Noticef("session %s: %v, using cooked mode", session, rerr)
			} else {
				c.raw = true
				defer tearDown()
			}
		}
		m, err = vm.New(p, append(opts, vm.Input(cfg.Input...))...)
		if err != nil {
			return
		}
		err = c.run(m)
	case "ring":
		var r *host.Ring
		if r, err = host.NewRing(p, cfg.Phases, opts...); err != nil {
			return
		}
		var v vm.Cell
		if v, err = r.Run(vm.Cell(cfg.Seed)); err != nil {
			return
		}
		fmt.Fprintln(stdout, v)
	case "max":
		best, order, merr := host.MaxSignal(p, cfg.Phases, vm.Cell(cfg.Seed), opts...)
		if err = merr; err != nil {
			return
		}
		fmt.Fprintf(stdout, "%d %s\n", best, vm.Program(order))
	case "paint":
		var g *host.Grid
		if g, err = host.Paint(p, vm.Cell(cfg.Start), opts...); err != nil {
			return
		}
		fmt.Fprintf(stdout, "%d panel(s) painted\n", g.Count())
		err = g.Render(stdout)
	case "explore":
		s, _ := cfg.strategy()
		var z *host.Maze
		z, err = host.Explore(p, host.WithStrategy(s), host.WithMachineOptions(opts...))
		if err != nil {
			return
		}
		if err = z.Render(stdout); err != nil {
			return
		}
		target, ok := z.Find(host.Target)
		if !ok {
			fmt.Fprintln(stdout, "target not found")
			break
		}
		_, fill := z.Farthest(target)
		fmt.Fprintf(stdout, "target at %v, distance %d, fill time %d\n", target, len(z.Path(target)), fill)
		log.Infof("session %s: %d probe(s), %d step(s)", session, z.Probes(), z.Steps())
	}
	log.Infof("session %s: done", session)
}
