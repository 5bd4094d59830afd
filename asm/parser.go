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

package asm

import (
	"io"
	"sort"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/aegamesi/intcode/vm"
)

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type labelUse struct {
	labelSite
	offset vm.Cell
}

type label struct {
	labelSite
	uses []labelUse
}

type parser struct {
	i      []vm.Cell
	pc     int
	size   int
	s      scanner.Scanner
	labels map[string]*label
	consts map[string]vm.Cell
	errs   ErrAsm
}

func newParser() *parser {
	p := new(parser)
	p.labels = make(map[string]*label)
	p.consts = make(map[string]vm.Cell)
	return p
}

func (p *parser) write(v vm.Cell) {
	for p.pc >= len(p.i) {
		p.i = append(p.i, make([]vm.Cell, 1024)...)
	}
	p.i[p.pc] = v
	p.pc++
	if p.pc > p.size {
		p.size = p.pc
	}
}

func (p *parser) fail(pos scanner.Position, msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, Error{pos, msg})
	}
}

func (p *parser) pos() scanner.Position {
	pos := p.s.Position
	if !pos.IsValid() {
		pos = p.s.Pos()
	}
	return pos
}

func (p *parser) useLabel(name string, addr int, offset vm.Cell) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{
			// use current position as valid temp position
			labelSite{p.pos(), -1},
			nil,
		}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelUse{labelSite{p.pos(), addr}, offset})
}

func validName(s string) bool {
	return s != "" && s[0] != ':' && s[0] != '.' && strings.IndexAny(s, "[]") < 0
}

// literal parses integer and character literals.
func (p *parser) literal(s string) (v vm.Cell, ok bool) {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return vm.Cell(n), true
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, tail, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err != nil || tail != "" {
			p.fail(p.pos(), "invalid character literal "+s)
		}
		return vm.Cell(r), true
	}
	return 0, false
}

// split splits s into a name and an optional offset.
func split(s string) (name string, offset vm.Cell) {
	if k := strings.LastIndexAny(s, "+-"); k > 0 {
		if n, err := strconv.ParseInt(s[k:], 0, 64); err == nil {
			return s[:k], vm.Cell(n)
		}
	}
	return s, 0
}

// value returns the value of s, to be stored at address addr. Label references
// are recorded and resolved at the end of parsing, in which case the returned
// value is 0.
func (p *parser) value(s string, addr int) vm.Cell {
	if v, ok := p.literal(s); ok {
		return v
	}
	name, off := split(s)
	if !validName(name) {
		p.fail(p.pos(), "invalid value "+s)
		return 0
	}
	if c, ok := p.consts[name]; ok {
		return c + off
	}
	p.useLabel(name, addr, off)
	return 0
}

// constant returns the value of s, which must not depend on labels.
func (p *parser) constant(s string) (vm.Cell, bool) {
	if v, ok := p.literal(s); ok {
		return v, true
	}
	name, off := split(s)
	if c, ok := p.consts[name]; ok {
		return c + off, true
	}
	p.fail(p.pos(), "expected integer or constant, got "+s)
	return 0, false
}

// operand splits an operand into its addressing mode and value.
func operand(s string) (vm.Mode, string) {
	switch {
	case strings.HasPrefix(s, "rb[") && strings.HasSuffix(s, "]"):
		return vm.ModeRelative, s[3 : len(s)-1]
	case strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"):
		return vm.ModePosition, s[1 : len(s)-1]
	}
	return vm.ModeImmediate, s
}

// next returns the next token, skipping comments.
func (p *parser) next() (string, bool) {
	for tok := p.s.Scan(); tok != scanner.EOF; tok = p.s.Scan() {
		if tok != scanner.Ident {
			p.fail(p.pos(), "unexpected character "+strconv.QuoteRune(tok))
			continue
		}
		s := p.s.TokenText()
		if s != "(" {
			return s, true
		}
		if !p.skipComment() {
			break
		}
	}
	return "", false
}

// skipComment skips tokens up to the closing parenthesis of a comment.
func (p *parser) skipComment() bool {
	for tok := p.s.Scan(); tok != scanner.EOF; tok = p.s.Scan() {
		if tok == scanner.Ident && p.s.TokenText() == ")" {
			return true
		}
	}
	p.fail(p.pos(), "unterminated comment")
	return false
}

func (p *parser) defineLabel(n string) {
	pos := p.pos()
	if n == "" {
		p.fail(pos, "empty label name")
		return
	}
	if _, ok := p.consts[n]; ok {
		p.fail(pos, "label redefinition: "+n+", previously defined as a constant")
		return
	}
	if l, ok := p.labels[n]; ok {
		if l.address != -1 {
			p.fail(pos, "label redefinition: "+n+", previous definition here: "+l.pos.String())
			return
		}
		l.address = p.pc
		l.pos = pos
		return
	}
	p.labels[n] = &label{labelSite{pos, p.pc}, nil}
}

func (p *parser) directive(d string) {
	switch d {
	case ".org":
		s, ok := p.next()
		if !ok {
			p.fail(p.pos(), ".org: missing address")
			return
		}
		if v, ok := p.constant(s); ok {
			if v < 0 {
				p.fail(p.pos(), ".org: negative address "+s)
				return
			}
			if v >= vm.DefaultMemoryLimit {
				p.fail(p.pos(), ".org: address out of range "+s)
				return
			}
			p.pc = int(v)
		}
	case ".equ":
		n, ok := p.next()
		if !ok || !validName(n) {
			p.fail(p.pos(), ".equ: expected identifier, got "+n)
			return
		}
		if l, ok := p.labels[n]; ok {
			p.fail(p.pos(), ".equ: redefinition of "+n+", previously defined/used as a label here: "+l.pos.String())
			return
		}
		s, ok := p.next()
		if !ok {
			p.fail(p.pos(), ".equ: missing value for "+n)
			return
		}
		if v, ok := p.constant(s); ok {
			p.consts[n] = v
		}
	default:
		p.fail(p.pos(), "unknown directive: "+d)
	}
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) error {
	var (
		op    vm.Opcode
		args  int // operands left to parse for op
		n     int // operands parsed so far
		start int // address of op
		modes [vm.MaxParams]vm.Mode
	)

	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.fail(p.pos(), msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for s, ok := p.next(); ok && len(p.errs) < maxErrors; s, ok = p.next() {
		if args > 0 {
			if s[0] == ':' || s[0] == '.' {
				p.fail(p.pos(), "unexpected "+s+" as operand of "+op.String())
			}
			mode, v := operand(s)
			if mode == vm.ModeImmediate && n == op.Dst() {
				p.fail(p.pos(), "immediate destination operand for "+op.String()+": "+s)
			}
			modes[n] = mode
			p.write(p.value(v, p.pc))
			n++
			args--
			if args == 0 {
				p.i[start] = vm.Encode(op, modes[:n]...)
			}
			continue
		}
		switch s[0] {
		case ':':
			p.defineLabel(s[1:])
		case '.':
			p.directive(s)
		default:
			if o, ok := mnemonics[s]; ok {
				op, start, n, args = o, p.pc, 0, o.Params()
				modes = [vm.MaxParams]vm.Mode{}
				p.write(vm.Encode(op))
				break
			}
			p.write(p.value(s, p.pc))
		}
	}
	if args > 0 {
		p.fail(p.pos(), "missing operand for "+op.String())
	}

	// write labels
	names := make([]string, 0, len(p.labels))
	for n := range p.labels {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		l := p.labels[n]
		if l.address == -1 {
			p.fail(l.uses[0].pos, "undefined label "+n)
			continue
		}
		for _, u := range l.uses {
			p.i[u.address] = vm.Cell(l.address) + u.offset
		}
	}

	if len(p.errs) > 0 {
		return p.errs
	}
	return nil
}
