package layout

// Frame is everything a surface needs from one layout pass.
type Frame struct {
	Result

	State State
	// Reserved is the horizontal space other panels must leave to the viewport.
	Reserved float64
	// UnitPx is the size of one tile unit in pixels (ScaleRatio * 10).
	UnitPx float64
}

// Frame snapshots the engine's current layout.
func (e *Engine) Frame() Frame {
	return Frame{
		Result:   e.result,
		State:    e.State(),
		Reserved: e.ViewportWidth(),
		UnitPx:   e.result.ScaleRatio * emScale,
	}
}

// Surface is anything that paints according to a layout: the viewport
// renderer, the side panel, a test recorder.
type Surface interface {
	ApplyLayout(f Frame)
}

// SurfaceFunc adapts a plain function to Surface.
type SurfaceFunc func(f Frame)

func (fn SurfaceFunc) ApplyLayout(f Frame) {
	fn(f)
}

// Apply pushes the engine's current frame to every non-nil surface.
func Apply(e *Engine, surfaces ...Surface) Frame {
	f := e.Frame()
	for _, s := range surfaces {
		if s == nil {
			continue
		}
		s.ApplyLayout(f)
	}
	return f
}
