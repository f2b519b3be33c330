package layout

// State is the combined viewport visibility and layout mode.
type State int

const (
	Hidden State = iota
	VisibleLandscape
	VisiblePortraitShown
	VisiblePortraitHidden
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case VisibleLandscape:
		return "landscape"
	case VisiblePortraitShown:
		return "portrait-shown"
	case VisiblePortraitHidden:
		return "portrait-hidden"
	default:
		return "unknown"
	}
}

// SetVisible shows or hides the viewport. Level selection drives this.
func (e *Engine) SetVisible(visible bool) {
	e.visible = visible
}

// Visible reports whether the active level uses the viewport.
func (e *Engine) Visible() bool {
	return e.visible
}

// ShowPortrait toggles the viewport overlay while in portrait mode. It never
// touches the cached layout; in landscape mode it only takes effect once a
// later pass flips into portrait.
func (e *Engine) ShowPortrait(show bool) {
	e.portraitShown = show
}

// PortraitShown reports the portrait overlay flag.
func (e *Engine) PortraitShown() bool {
	return e.portraitShown
}

// State derives the current state from the visibility flags and the latest pass.
func (e *Engine) State() State {
	switch {
	case !e.visible:
		return Hidden
	case !e.result.Portrait:
		return VisibleLandscape
	case e.portraitShown:
		return VisiblePortraitShown
	default:
		return VisiblePortraitHidden
	}
}

// ViewportWidth is the horizontal space the viewport currently claims: zero
// when hidden, the edge strip when toggled away in portrait mode, otherwise
// the cached width.
func (e *Engine) ViewportWidth() float64 {
	switch e.State() {
	case Hidden:
		return 0
	case VisiblePortraitHidden:
		return e.c.EdgeMinWidth
	default:
		return e.result.Width
	}
}
