package render

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/hexpath/maze"
)

// Picker resolves points in tile units to tiles. Each non-void tile is a
// static hex polygon in a chipmunk space so picks use the same point queries
// the physics world does.
type Picker struct {
	space       *cp.Space
	shapeToTile map[*cp.Shape]maze.Coord
}

func NewPicker(m *maze.Maze) *Picker {
	p := &Picker{
		space:       cp.NewSpace(),
		shapeToTile: make(map[*cp.Shape]maze.Coord),
	}
	m.Each(func(c maze.Coord, _ maze.Tile) {
		cx, cy := c.Center()
		corners := maze.Corners(cx, cy, maze.HexRadius)
		verts := make([]cp.Vector, 0, len(corners))
		for _, pt := range corners {
			verts = append(verts, cp.Vector{X: pt[0], Y: pt[1]})
		}
		shape := cp.NewPolyShapeRaw(p.space.StaticBody, len(verts), verts, 0)
		p.space.AddShape(shape)
		p.shapeToTile[shape] = c
	})
	return p
}

// Pick returns the tile containing the point (x, y) in tile units.
func (p *Picker) Pick(x, y float64) (maze.Coord, bool) {
	if p == nil || p.space == nil {
		return maze.Coord{}, false
	}
	info := p.space.PointQueryNearest(cp.Vector{X: x, Y: y}, 0, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return maze.Coord{}, false
	}
	c, ok := p.shapeToTile[info.Shape]
	return c, ok
}
