package render

import "github.com/milk9111/hexpath/maze"

// Rect is a screen-space rectangle in pixels.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Viewport is where and how large the map is drawn.
type Viewport struct {
	Bounds Rect
	// TilePx is the distance between neighbouring tile centres in pixels.
	TilePx float64
	// Fill is the share of TilePx a tile covers; the rest is margin.
	Fill float64
}

// placement maps tile units onto the screen, centring the board in the viewport.
type placement struct {
	originX, originY float64
	scale            float64
}

func place(vp Viewport, m *maze.Maze) placement {
	w, h := m.Extent()
	return placement{
		originX: vp.Bounds.X + (vp.Bounds.W-w*vp.TilePx)/2,
		originY: vp.Bounds.Y + (vp.Bounds.H-h*vp.TilePx)/2,
		scale:   vp.TilePx,
	}
}

func (p placement) toScreen(x, y float64) (float64, float64) {
	return p.originX + x*p.scale, p.originY + y*p.scale
}

func (p placement) toUnits(sx, sy float64) (float64, float64) {
	return (sx - p.originX) / p.scale, (sy - p.originY) / p.scale
}
