// Package layout decides how much of the window the gameplay viewport takes,
// how tiles scale inside it, and whether the game is in portrait mode.
//
// The engine is pure: it reads window sizes and a side-panel width and writes
// only its own cached Result. Pushing that result to anything on screen is the
// job of a Surface (see Apply).
package layout

import (
	"fmt"
	"math"
)

// WindowMetrics is a window size after the MinWindowSize floor.
type WindowMetrics struct {
	Width  float64
	Height float64
}

// NewWindowMetrics floors both dimensions at MinWindowSize. NaN and negative
// sizes are treated as the floor.
func NewWindowMetrics(width, height float64) WindowMetrics {
	return WindowMetrics{Width: floorDimension(width), Height: floorDimension(height)}
}

func floorDimension(v float64) float64 {
	// NaN fails every comparison, so it lands on the floor too.
	if !(v >= MinWindowSize) {
		return MinWindowSize
	}
	return v
}

// Result is the outcome of a layout pass.
type Result struct {
	Width      float64
	ScaleRatio float64
	Portrait   bool
}

// Engine caches the latest layout pass and the viewport visibility flags.
// It is not safe for concurrent use; drive it from the game loop.
type Engine struct {
	c Constraints

	result  Result
	metrics WindowMetrics
	primed  bool

	visible       bool
	portraitShown bool

	// aspectPasses counts full recomputations.
	aspectPasses int
}

// New builds an engine for c. The viewport starts hidden with the portrait
// overlay shown, and no layout until the first Recompute.
func New(c Constraints) (*Engine, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &Engine{c: c, portraitShown: true}, nil
}

// Constraints returns the engine's constraints.
func (e *Engine) Constraints() Constraints {
	return e.c
}

// Result returns the latest layout pass.
func (e *Engine) Result() Result {
	return e.result
}

// Metrics returns the window size used by the latest full pass.
func (e *Engine) Metrics() WindowMetrics {
	return e.metrics
}

// Recompute runs a layout pass for the given window size and side-panel
// demand. When force is false and the floored window size matches the
// previous pass, the cached result is returned untouched.
func (e *Engine) Recompute(windowWidth, windowHeight, sidePanelWidth float64, force bool) Result {
	m := NewWindowMetrics(windowWidth, windowHeight)
	if !force && e.primed && m == e.metrics {
		return e.result
	}

	aspect := e.aspectRatio(m)
	width := m.Height * aspect
	tilePx := math.Max(m.Height/e.c.MaxTilesY, width/e.c.MaxTilesX)

	if !(sidePanelWidth > 0) {
		sidePanelWidth = 0
	}
	workspace := m.Width - sidePanelWidth
	portrait := workspace-width < e.c.SidePanelMinWidth
	if portrait {
		width = m.Width - e.c.EdgeMinWidth
	}

	scale := tilePx / (e.c.TileOuterSize * emScale)
	assertPositive("width", width, e.c)
	assertPositive("scale ratio", scale, e.c)

	e.result.Width = width
	e.result.ScaleRatio = scale
	e.result.Portrait = portrait
	e.metrics = m
	e.primed = true
	return e.result
}

// aspectRatio is the half-window aspect clamped to what the level can show.
func (e *Engine) aspectRatio(m WindowMetrics) float64 {
	e.aspectPasses++
	ratio := (m.Width / 2) / m.Height
	return math.Min(math.Max(ratio, e.c.MinAspect()), e.c.MaxAspect())
}

// assertPositive panics on a layout that can only come from a broken
// Constraints value; Validate rejects every such value at construction.
func assertPositive(name string, v float64, c Constraints) {
	if v > 0 && !math.IsInf(v, 0) {
		return
	}
	panic(fmt.Sprintf("layout: degenerate %s %v for constraints %+v", name, v, c))
}
