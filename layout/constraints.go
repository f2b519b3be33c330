package layout

import (
	"errors"
	"fmt"
	"math"
)

const (
	// MinWindowSize is the floor applied to both window dimensions before any layout math.
	MinWindowSize = 320.0

	// emScale converts a tile size in pixels into the font-relative scale unit
	// consumed by surfaces. Changing it changes every rendered size.
	emScale = 10.0
)

var ErrInvalidConstraints = errors.New("layout: invalid constraints")

// Constraints are the fixed inputs of a layout engine. They are built once per
// level geometry and never mutated by the engine.
type Constraints struct {
	TileMarginFraction float64

	MaxTilesX float64
	MinTilesX float64
	MaxTilesY float64
	MinTilesY float64

	TileSize      float64
	TileMargin    float64
	TileOuterSize float64

	SidePanelMinWidth float64
	EdgeMinWidth      float64
}

// Geometry holds the level-independent part of the constraints.
type Geometry struct {
	TileSize           float64
	TileMarginFraction float64
	SidePanelMinWidth  float64
	EdgeMinWidth       float64
}

// DefaultGeometry matches the shipped configs/config.yaml.
func DefaultGeometry() Geometry {
	return Geometry{
		TileSize:           10,
		TileMarginFraction: 0.3,
		SidePanelMinWidth:  400,
		EdgeMinWidth:       40,
	}
}

// NewConstraints derives tile-count limits for a cols x rows grid.
func NewConstraints(g Geometry, cols, rows int) Constraints {
	f := g.TileMarginFraction
	margin := g.TileSize * f
	return Constraints{
		TileMarginFraction: f,
		MaxTilesX:          float64(cols) + 2*(1+f),
		MinTilesX:          float64(cols) - 1 + 1.5*f,
		MaxTilesY:          float64(rows) + 1 + 2*f,
		MinTilesY:          float64(rows) + 1 + f,
		TileSize:           g.TileSize,
		TileMargin:         margin,
		TileOuterSize:      g.TileSize + margin,
		SidePanelMinWidth:  g.SidePanelMinWidth,
		EdgeMinWidth:       g.EdgeMinWidth,
	}
}

// MinAspect is the narrowest viewport aspect ratio the level allows.
func (c Constraints) MinAspect() float64 {
	return c.MinTilesX / c.MaxTilesY
}

// MaxAspect is the widest viewport aspect ratio the level allows.
func (c Constraints) MaxAspect() float64 {
	return c.MaxTilesX / c.MinTilesY
}

// Validate reports constraint sets that could yield a non-positive width or
// scale for some window size.
func (c Constraints) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"max tiles x", c.MaxTilesX},
		{"min tiles x", c.MinTilesX},
		{"max tiles y", c.MaxTilesY},
		{"min tiles y", c.MinTilesY},
		{"tile outer size", c.TileOuterSize},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConstraints, f.name, f.v)
		}
	}
	if c.MinAspect() > c.MaxAspect() {
		return fmt.Errorf("%w: aspect range [%v, %v] is empty", ErrInvalidConstraints, c.MinAspect(), c.MaxAspect())
	}
	if c.SidePanelMinWidth < 0 {
		return fmt.Errorf("%w: side panel min width must not be negative", ErrInvalidConstraints)
	}
	// Portrait width is window - edge; the window floor keeps it positive only
	// while the edge stays below the floor.
	if c.EdgeMinWidth < 0 || c.EdgeMinWidth >= MinWindowSize {
		return fmt.Errorf("%w: edge min width must be in [0, %v), got %v", ErrInvalidConstraints, MinWindowSize, c.EdgeMinWidth)
	}
	return nil
}
