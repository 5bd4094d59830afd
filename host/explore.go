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
	"strconv"

	"github.com/aegamesi/intcode/internal/errw"
	"github.com/aegamesi/intcode/vm"
	"github.com/pkg/errors"
)

// Direction is a movement command sent to a droid.
type Direction vm.Cell

// Movement commands.
const (
	North Direction = 1 + iota
	South
	West
	East
)

var directions = [...]Direction{North, East, South, West}

var dirNames = [...]string{North: "north", South: "south", West: "west", East: "east"}

// Delta returns the grid offset of a move in direction d.
func (d Direction) Delta() Point {
	switch d {
	case North:
		return Point{0, -1}
	case South:
		return Point{0, 1}
	case West:
		return Point{-1, 0}
	case East:
		return Point{1, 0}
	}
	return Point{}
}

func (d Direction) String() string {
	if d >= North && d <= East {
		return dirNames[d]
	}
	return "direction(" + strconv.FormatInt(int64(d), 10) + ")"
}

// Tile is the kind of a maze location.
type Tile uint8

// Tile kinds. The numeric value of Wall, Open and Target minus one is the
// droid's reply code.
const (
	Unknown Tile = iota
	Wall
	Open
	Target
)

var tileRunes = [...]byte{Unknown: ' ', Wall: '#', Open: '.', Target: 'O'}

// Passable returns true for Open and Target tiles.
func (t Tile) Passable() bool {
	return t == Open || t == Target
}

// Strategy selects how Explore reaches the frontier of the explored area.
type Strategy int

const (
	// Replay probes each new location with a fresh machine, replaying the
	// whole path from the origin.
	Replay Strategy = iota
	// Clone keeps the machine that reached each location and probes its
	// neighbors with clones of it.
	Clone
)

// DefaultMaxTiles is the default limit on the number of locations probed by
// Explore.
const DefaultMaxTiles = 1 << 20

// ExploreOption configures Explore.
type ExploreOption func(*explorer)

// WithStrategy selects the exploration strategy. The default is Replay.
func WithStrategy(s Strategy) ExploreOption {
	return func(e *explorer) { e.strategy = s }
}

// WithMaxTiles sets the maximum number of locations to probe before giving
// up.
func WithMaxTiles(n int) ExploreOption {
	return func(e *explorer) { e.max = n }
}

// WithMachineOptions sets options for the machines created by Explore.
func WithMachineOptions(opts ...vm.Option) ExploreOption {
	return func(e *explorer) { e.opts = opts }
}

type step struct {
	from Point
	dir  Direction
}

// Maze is the map built by Explore. The droid starts at the origin.
type Maze struct {
	tiles  map[Point]Tile
	prev   map[Point]step
	probes int
	steps  int64
}

// Tile returns the kind of tile at p.
func (z *Maze) Tile(p Point) Tile {
	return z.tiles[p]
}

// Len returns the number of locations explored, walls included.
func (z *Maze) Len() int {
	return len(z.tiles)
}

// Find returns the location of a tile of the given kind. If there are more
// than one, the topmost, then leftmost one is returned.
func (z *Maze) Find(kind Tile) (Point, bool) {
	var (
		best  Point
		found bool
	)
	for p, t := range z.tiles {
		if t != kind {
			continue
		}
		if !found || p.Y < best.Y || (p.Y == best.Y && p.X < best.X) {
			best, found = p, true
		}
	}
	return best, found
}

// Path returns the directions of a shortest path from the origin to p, or nil
// if p is not a passable location.
func (z *Maze) Path(p Point) []Direction {
	if !z.tiles[p].Passable() {
		return nil
	}
	var path []Direction
	for p != (Point{}) {
		s := z.prev[p]
		path = append(path, s.dir)
		p = s.from
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Distances returns the distance in moves from location from to every
// reachable passable location.
func (z *Maze) Distances(from Point) map[Point]int {
	dist := make(map[Point]int)
	if !z.tiles[from].Passable() {
		return dist
	}
	dist[from] = 0
	queue := []Point{from}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range directions {
			q := p.Add(d.Delta())
			if _, ok := dist[q]; ok || !z.tiles[q].Passable() {
				continue
			}
			dist[q] = dist[p] + 1
			queue = append(queue, q)
		}
	}
	return dist
}

// Farthest returns the reachable location the farthest away from location
// from, and its distance. This is also the time needed to fill the maze from
// there.
func (z *Maze) Farthest(from Point) (Point, int) {
	var (
		far Point
		max = -1
	)
	for p, d := range z.Distances(from) {
		if d > max || (d == max && (p.Y < far.Y || (p.Y == far.Y && p.X < far.X))) {
			far, max = p, d
		}
	}
	return far, max
}

// Probes returns the number of machines used during exploration, clones
// included.
func (z *Maze) Probes() int {
	return z.probes
}

// Steps returns the total number of instructions executed during
// exploration.
func (z *Maze) Steps() int64 {
	return z.steps
}

// Render draws the explored area, with '#' for walls, '.' for open tiles, 'O'
// for targets and 'D' for the droid's starting point.
func (z *Maze) Render(w io.Writer) error {
	ew := errw.New(w)
	min, max := bounds(z.tiles)
	line := make([]byte, 0, max.X-min.X+2)
	for y := min.Y; y <= max.Y; y++ {
		line = line[:0]
		for x := min.X; x <= max.X; x++ {
			p := Point{x, y}
			c := tileRunes[z.tiles[p]]
			if p == (Point{}) {
				c = 'D'
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

type explorer struct {
	p        vm.Program
	strategy Strategy
	max      int
	opts     []vm.Option
	maze     *Maze
	machines map[Point]*vm.Machine // Clone strategy only
}

// Explore maps the maze of a repair droid program with a breadth first
// search.
//
// The program reads movement commands and replies with 0 if the droid hit a
// wall and did not move, 1 if it moved, or 2 if it moved onto the target.
func Explore(p vm.Program, opts ...ExploreOption) (*Maze, error) {
	e := &explorer{
		p:        p,
		strategy: Replay,
		max:      DefaultMaxTiles,
		maze: &Maze{
			tiles: map[Point]Tile{{}: Open},
			prev:  make(map[Point]step),
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.strategy == Clone {
		m, err := e.machine()
		if err != nil {
			return nil, err
		}
		e.machines = map[Point]*vm.Machine{{}: m}
	}
	z := e.maze
	queue := []Point{{}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range directions {
			next := cur.Add(d.Delta())
			if _, ok := z.tiles[next]; ok {
				continue
			}
			if len(z.tiles) >= e.max {
				return z, errors.Errorf("explore: more than %d locations", e.max)
			}
			t, m, err := e.probe(cur, d)
			if err != nil {
				return z, errors.Wrapf(err, "explore: probe %v of %v", d, cur)
			}
			z.tiles[next] = t
			if t.Passable() {
				z.prev[next] = step{cur, d}
				queue = append(queue, next)
				if m != nil {
					e.machines[next] = m
				}
			}
		}
		delete(e.machines, cur)
	}
	logger().Debugf("explored %d location(s) with %d probe(s), %d step(s)", len(z.tiles), z.probes, z.steps)
	return z, nil
}

func (e *explorer) machine() (*vm.Machine, error) {
	m, err := vm.New(e.p, e.opts...)
	if err != nil {
		return nil, err
	}
	e.maze.probes++
	if err = run(m); err != nil {
		return nil, err
	}
	e.maze.steps += m.Steps()
	return m, nil
}

// move sends one command to m and returns the tile it replies with.
func (e *explorer) move(m *vm.Machine, d Direction) (Tile, error) {
	steps := m.Steps()
	m.AddInput(vm.Cell(d))
	err := run(m)
	e.maze.steps += m.Steps() - steps
	if err != nil {
		return Unknown, err
	}
	out := drain(m)
	if len(out) != 1 {
		return Unknown, errors.Wrapf(ErrProtocol, "expected 1 reply, got %d", len(out))
	}
	if out[0] < 0 || out[0] > 2 {
		return Unknown, errors.Wrapf(ErrProtocol, "invalid reply %d", out[0])
	}
	return Tile(out[0] + 1), nil
}

// probe returns the tile found in direction d of location from. With the Clone
// strategy, it also returns the machine that made the move.
func (e *explorer) probe(from Point, d Direction) (Tile, *vm.Machine, error) {
	if e.strategy == Clone {
		m := e.machines[from].Clone()
		e.maze.probes++
		t, err := e.move(m, d)
		return t, m, err
	}
	m, err := e.machine()
	if err != nil {
		return Unknown, nil, err
	}
	path := append(e.maze.Path(from), d)
	for i, pd := range path {
		t, err := e.move(m, pd)
		if err != nil {
			return Unknown, nil, err
		}
		if i < len(path)-1 && !t.Passable() {
			return Unknown, nil, errors.Wrapf(ErrProtocol, "replay diverged at move %d", i+1)
		}
		if i == len(path)-1 {
			return t, nil, nil
		}
	}
	return Unknown, nil, nil
}
