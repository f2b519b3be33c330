package maze

import (
	"fmt"
	"math"
	"strings"
)

// Coord is a tile position in odd-r offset layout: odd rows are shifted half
// a tile to the right.
type Coord struct {
	Col int
	Row int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Heading is one of the six directions a pointy-top hex tile touches,
// clockwise from East on a y-down screen.
type Heading int

const (
	East Heading = iota
	SouthEast
	SouthWest
	West
	NorthWest
	NorthEast
)

var headingNames = [...]string{"east", "southeast", "southwest", "west", "northwest", "northeast"}

func (h Heading) String() string {
	if h < 0 || int(h) >= len(headingNames) {
		return fmt.Sprintf("heading(%d)", int(h))
	}
	return headingNames[h]
}

// Right turns 60 degrees clockwise.
func (h Heading) Right() Heading {
	return (h + 1) % 6
}

// Left turns 60 degrees counter-clockwise.
func (h Heading) Left() Heading {
	return (h + 5) % 6
}

// Angle is the screen angle of h in radians (y-down, clockwise positive).
func (h Heading) Angle() float64 {
	return float64(h) * math.Pi / 3
}

// ParseHeading accepts the names String returns, plus short forms.
func ParseHeading(s string) (Heading, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "e", "east":
		return East, nil
	case "se", "southeast":
		return SouthEast, nil
	case "sw", "southwest":
		return SouthWest, nil
	case "w", "west":
		return West, nil
	case "nw", "northwest":
		return NorthWest, nil
	case "ne", "northeast":
		return NorthEast, nil
	}
	return East, fmt.Errorf("maze: unknown heading %q", s)
}

var (
	evenRowSteps = [6]Coord{{1, 0}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}}
	oddRowSteps  = [6]Coord{{1, 0}, {1, 1}, {0, 1}, {-1, 0}, {0, -1}, {1, -1}}
)

// Neighbor returns the tile one step away in direction h.
func (c Coord) Neighbor(h Heading) Coord {
	steps := evenRowSteps
	if c.Row&1 == 1 {
		steps = oddRowSteps
	}
	d := steps[((h%6)+6)%6]
	return Coord{Col: c.Col + d.Col, Row: c.Row + d.Row}
}

// Center returns the centre of c in tile units, where one unit is the
// horizontal distance between neighbouring tile centres.
func (c Coord) Center() (x, y float64) {
	x = float64(c.Col) + 0.5
	if c.Row&1 == 1 {
		x += 0.5
	}
	y = RowSpacing*float64(c.Row) + HexRadius
	return x, y
}

const (
	// HexRadius is the centre-to-corner distance of a tile in tile units.
	HexRadius = 0.57735026918962576 // 1/sqrt(3)
	// RowSpacing is the vertical distance between row centres in tile units.
	RowSpacing = 1.5 * HexRadius
)

// Corners returns the six corners of a hex of the given radius around (cx, cy),
// starting at the top and going clockwise on a y-down screen.
func Corners(cx, cy, radius float64) [6][2]float64 {
	var out [6][2]float64
	for i := range out {
		a := math.Pi/3*float64(i) - math.Pi/2
		out[i] = [2]float64{cx + radius*math.Cos(a), cy + radius*math.Sin(a)}
	}
	return out
}
