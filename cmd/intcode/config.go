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
	"flag"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/aegamesi/intcode/host"
	"github.com/aegamesi/intcode/vm"
	"github.com/pkg/errors"
)

// cellList is a comma separated list of values, usable both as a flag and as
// a TOML array.
type cellList []vm.Cell

func (l *cellList) String() string {
	if l == nil {
		return ""
	}
	return vm.Program(*l).String()
}

func (l *cellList) Set(s string) error {
	if strings.TrimSpace(s) == "" {
		*l = nil
		return nil
	}
	p, err := vm.Parse(s)
	if err != nil {
		return err
	}
	*l = cellList(p)
	return nil
}

// Config holds the command line settings. A config file uses the flag names as
// keys.
type Config struct {
	Program   string   `toml:"program"`
	Mode      string   `toml:"mode"`
	Input     cellList `toml:"input"`
	Phases    cellList `toml:"phases"`
	Seed      int64    `toml:"seed"`
	Start     int64    `toml:"start"`
	Strategy  string   `toml:"strategy"`
	ASCII     bool     `toml:"ascii"`
	NoRaw     bool     `toml:"noraw"`
	MemLimit  int      `toml:"memlimit"`
	Trace     bool     `toml:"trace"`
	Dump      bool     `toml:"dump"`
	Debug     bool     `toml:"debug"`
	Verbosity int      `toml:"v"`
	Log       string   `toml:"log"`
}

var modes = []string{"run", "ring", "max", "paint", "explore"}

func defaultConfig() *Config {
	return &Config{
		Mode:     "run",
		Phases:   cellList{5, 6, 7, 8, 9},
		Strategy: "replay",
		MemLimit: vm.DefaultMemoryLimit,
	}
}

// bind registers the config fields as flags of fs.
func (c *Config) bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Mode, "mode", c.Mode, "run mode: "+strings.Join(modes, ", "))
	fs.Var(&c.Input, "input", "comma separated initial `values`")
	fs.Var(&c.Phases, "phases", "comma separated phase `values` for ring and max modes")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "input `value` of the first machine of a ring")
	fs.Int64Var(&c.Start, "start", c.Start, "color of the starting panel in paint mode")
	fs.StringVar(&c.Strategy, "strategy", c.Strategy, "exploration strategy: replay or clone")
	fs.BoolVar(&c.ASCII, "ascii", c.ASCII, "ASCII input and output in run mode")
	fs.BoolVar(&c.NoRaw, "noraw", c.NoRaw, "disable raw terminal IO")
	fs.IntVar(&c.MemLimit, "memlimit", c.MemLimit, "memory limit in `cells`")
	fs.BoolVar(&c.Trace, "trace", c.Trace, "print a disassembly of each instruction to stderr")
	fs.BoolVar(&c.Dump, "dump", c.Dump, "dump the machine upon exit")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "enable debug diagnostics")
	fs.IntVar(&c.Verbosity, "v", c.Verbosity, "log verbosity")
	fs.StringVar(&c.Log, "log", c.Log, "log to `file` instead of stderr")
}

// load reads the config file fileName. Flags explicitly set in fs take
// precedence over file values.
func (c *Config) load(fileName string, fs *flag.FlagSet) error {
	set := make(map[string]string)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = f.Value.String()
	})
	md, err := toml.DecodeFile(fileName, c)
	if err != nil {
		return errors.Wrapf(err, "config %s", fileName)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return errors.Errorf("config %s: unknown key %s", fileName, keys[0])
	}
	for name, v := range set {
		if err = fs.Set(name, v); err != nil {
			return errors.Wrapf(err, "flag -%s", name)
		}
	}
	return nil
}

func (c *Config) validate() error {
	ok := false
	for _, m := range modes {
		ok = ok || c.Mode == m
	}
	if !ok {
		return errors.Errorf("unknown mode %q", c.Mode)
	}
	if _, err := c.strategy(); err != nil {
		return err
	}
	if c.MemLimit <= 0 {
		return errors.Errorf("invalid memory limit %d", c.MemLimit)
	}
	if (c.Mode == "ring" || c.Mode == "max") && len(c.Phases) == 0 {
		return errors.Errorf("%s mode needs phases", c.Mode)
	}
	return nil
}

func (c *Config) strategy() (host.Strategy, error) {
	switch c.Strategy {
	case "replay":
		return host.Replay, nil
	case "clone":
		return host.Clone, nil
	}
	return 0, errors.Errorf("unknown exploration strategy %q", c.Strategy)
}
