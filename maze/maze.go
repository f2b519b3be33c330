// Package maze models the hex-tile board a program drives a robot across.
package maze

import (
	"errors"
	"fmt"
)

// Tile is what occupies one grid cell.
type Tile uint8

const (
	Void Tile = iota
	Open
	Wall
)

func (t Tile) String() string {
	switch t {
	case Open:
		return "open"
	case Wall:
		return "wall"
	default:
		return "void"
	}
}

var ErrMalformed = errors.New("maze: malformed map")

// Maze is an immutable hex board with a start, a goal and a starting heading.
type Maze struct {
	cols, rows int
	tiles      []Tile
	start      Coord
	goal       Coord
	facing     Heading
}

// Parse builds a maze from map rows. '.', 'S' and 'G' are open tiles, '#' is a
// wall, ' ' and '_' are void. Short rows are padded with void.
func Parse(rows []string, facing Heading) (*Maze, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformed)
	}
	cols := 0
	for _, r := range rows {
		if n := len([]rune(r)); n > cols {
			cols = n
		}
	}
	if cols == 0 {
		return nil, fmt.Errorf("%w: empty rows", ErrMalformed)
	}

	m := &Maze{cols: cols, rows: len(rows), tiles: make([]Tile, cols*len(rows)), facing: facing}
	var starts, goals int
	for y, r := range rows {
		for x, ch := range []rune(r) {
			c := Coord{Col: x, Row: y}
			switch ch {
			case '.':
				m.set(c, Open)
			case '#':
				m.set(c, Wall)
			case ' ', '_':
			case 'S':
				m.set(c, Open)
				m.start = c
				starts++
			case 'G':
				m.set(c, Open)
				m.goal = c
				goals++
			default:
				return nil, fmt.Errorf("%w: unknown tile %q at %v", ErrMalformed, ch, c)
			}
		}
	}
	if starts != 1 {
		return nil, fmt.Errorf("%w: want exactly one start, got %d", ErrMalformed, starts)
	}
	if goals != 1 {
		return nil, fmt.Errorf("%w: want exactly one goal, got %d", ErrMalformed, goals)
	}
	return m, nil
}

func (m *Maze) set(c Coord, t Tile) {
	m.tiles[c.Row*m.cols+c.Col] = t
}

func (m *Maze) Cols() int { return m.cols }

func (m *Maze) Rows() int { return m.rows }

func (m *Maze) Start() Coord { return m.start }

func (m *Maze) Goal() Coord { return m.goal }

func (m *Maze) Facing() Heading { return m.facing }

func (m *Maze) InBounds(c Coord) bool {
	return c.Col >= 0 && c.Row >= 0 && c.Col < m.cols && c.Row < m.rows
}

// At returns the tile at c; anything off the board is void.
func (m *Maze) At(c Coord) Tile {
	if !m.InBounds(c) {
		return Void
	}
	return m.tiles[c.Row*m.cols+c.Col]
}

// Open reports whether a robot may stand on c.
func (m *Maze) Open(c Coord) bool {
	return m.At(c) == Open
}

// Each calls fn for every non-void tile in row-major order.
func (m *Maze) Each(fn func(c Coord, t Tile)) {
	for y := 0; y < m.rows; y++ {
		for x := 0; x < m.cols; x++ {
			c := Coord{Col: x, Row: y}
			if t := m.At(c); t != Void {
				fn(c, t)
			}
		}
	}
}

// Extent is the board size in tile units (see Coord.Center).
func (m *Maze) Extent() (width, height float64) {
	width = float64(m.cols)
	if m.rows > 1 {
		width += 0.5
	}
	height = RowSpacing*float64(m.rows-1) + 2*HexRadius
	return width, height
}
