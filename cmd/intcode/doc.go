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

// The intcode command line tool runs intcode programs, either interactively
// or with one of the host patterns of package github.com/aegamesi/intcode/host.
//
// Usage:
//
//	intcode [flags] program-file
//
//	-ascii
//		  ASCII input and output in run mode
//	-config file
//		  load settings from TOML file
//	-debug
//		  enable debug diagnostics
//	-dump
//		  dump the machine upon exit
//	-input values
//		  comma separated initial values
//	-log file
//		  log to file instead of stderr
//	-memlimit cells
//		  memory limit in cells (default 16777216)
//	-mode string
//		  run mode: run, ring, max, paint, explore (default "run")
//	-noraw
//		  disable raw terminal IO
//	-phases values
//		  comma separated phase values for ring and max modes (default 5,6,7,8,9)
//	-seed value
//		  input value of the first machine of a ring
//	-start int
//		  color of the starting panel in paint mode
//	-strategy string
//		  exploration strategy: replay or clone (default "replay")
//	-trace
//		  print a disassembly of each instruction to stderr
//	-v int
//		  log verbosity
//
// Program files contain a single line of comma separated integers, and may be
// zstd compressed.
//
// In run mode, the program gets the -input values, then each time it blocks
// on input, a line is read from stdin and fed to it: comma separated integers,
// or the line's characters with -ascii. Output values are printed one per
// line, or as characters in ASCII mode. With -ascii and stdin attached to a
// terminal, the terminal is switched to raw mode unless -noraw is given.
//
// ring runs a feedback ring of machines, one per phase, and prints the final
// signal. max tries every ordering of the phases and prints the best signal
// and its phase order. paint runs a hull painting robot and draws the result.
// explore maps a repair droid's maze and prints the distance to the target and
// the time needed to fill the maze from there.
//
// Keys of the -config file are the flag names, plus "program" for the program
// file. Flags given on the command line override values from the file:
//
//	program = "day09.txt"
//	mode = "run"
//	input = [2]
//	v = 1
package main
