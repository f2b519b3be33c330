package scene

import (
	"github.com/milk9111/hexpath/layout"
	"github.com/milk9111/hexpath/render"
)

// ViewportFor places the map for a layout frame. The viewport always starts
// at the left edge and spans the width the frame reserves for it: the full
// layout width beside or over the panel, the edge strip when the panel covers
// it in portrait mode, and nothing when the level has no map.
func ViewportFor(f layout.Frame, c layout.Constraints, screenHeight float64) render.Viewport {
	vp := render.Viewport{
		Bounds: render.Rect{W: f.Reserved, H: screenHeight},
		TilePx: f.UnitPx * c.TileOuterSize,
		Fill:   1,
	}
	if c.TileOuterSize > 0 {
		vp.Fill = c.TileSize / c.TileOuterSize
	}
	return vp
}
