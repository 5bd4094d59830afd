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

package host

import (
	"io"

	"github.com/aegamesi/intcode/internal/errw"
	"github.com/aegamesi/intcode/vm"
	"github.com/pkg/errors"
)

// Point is a position on a grid. Y grows downwards.
type Point struct {
	X, Y int
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Left returns p, as a direction vector, rotated 90 degrees counterclockwise.
func (p Point) Left() Point {
	return Point{p.Y, -p.X}
}

// Right returns p, as a direction vector, rotated 90 degrees clockwise.
func (p Point) Right() Point {
	return Point{-p.Y, p.X}
}

// bounds returns the smallest rectangle containing all points in ps.
func bounds[V any](ps map[Point]V) (min, max Point) {
	first := true
	for p := range ps {
		if first {
			min, max, first = p, p, false
			continue
		}
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Grid is the hull painted by a robot. Panels holds every panel painted at
// least once and its current color.
type Grid struct {
	Start  vm.Cell // color of the origin until painted
	Panels map[Point]vm.Cell
}

// Color returns the color of the panel at p.
func (g *Grid) Color(p Point) vm.Cell {
	if c, ok := g.Panels[p]; ok {
		return c
	}
	if p == (Point{}) {
		return g.Start
	}
	return 0
}

// Count returns the number of panels painted at least once.
func (g *Grid) Count() int {
	return len(g.Panels)
}

// Bounds returns the top left and bottom right corners of the painted area.
func (g *Grid) Bounds() (min, max Point) {
	return bounds(g.Panels)
}

// Render draws the painted area, one line per row, with '#' for non-zero
// colors and '.' for black.
func (g *Grid) Render(w io.Writer) error {
	if len(g.Panels) == 0 {
		return nil
	}
	ew := errw.New(w)
	min, max := g.Bounds()
	line := make([]byte, 0, max.X-min.X+2)
	for y := min.Y; y <= max.Y; y++ {
		line = line[:0]
		for x := min.X; x <= max.X; x++ {
			c := byte('.')
			if g.Color(Point{x, y}) != 0 {
				c = '#'
			}
			line = append(line, c)
		}
		line = append(line, '\n')
		if _, err := ew.Write(line); err != nil {
			break
		}
	}
	return ew.Err
}

// Paint runs a painting robot program. The robot starts at the origin, facing
// up, on a black hull where the origin panel has color start.
//
// Each time the program asks for input, it is given the color of the panel
// under the robot. It must then output two values: the color to paint the
// panel with, and the direction to turn, 0 for left and 1 for right, after
// which the robot moves one panel forward. Painting stops when the program
// halts.
func Paint(p vm.Program, start vm.Cell, opts ...vm.Option) (*Grid, error) {
	m, err := vm.New(p, opts...)
	if err != nil {
		return nil, err
	}
	g := &Grid{Start: start, Panels: make(map[Point]vm.Cell)}
	pos, dir := Point{}, Point{0, -1}
	for moves, fed := 0, false; ; fed = true {
		if err = run(m); err != nil {
			return g, errors.Wrapf(err, "paint: move %d", moves)
		}
		out := drain(m)
		switch {
		case len(out) == 2:
			g.Panels[pos] = out[0]
			switch out[1] {
			case 0:
				dir = dir.Left()
			case 1:
				dir = dir.Right()
			default:
				return g, errors.Wrapf(ErrProtocol, "paint: move %d: invalid turn %d", moves, out[1])
			}
			pos = pos.Add(dir)
			moves++
		case len(out) == 0 && (!fed || m.Status().State == vm.Finished):
		default:
			return g, errors.Wrapf(ErrProtocol, "paint: move %d: expected 2 outputs, got %d", moves, len(out))
		}
		if m.Status().State == vm.Finished {
			logger().Debugf("robot halted after %d move(s), %d panel(s) painted", moves, len(g.Panels))
			return g, nil
		}
		m.AddInput(g.Color(pos))
	}
}
