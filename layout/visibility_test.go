package layout

import (
	"errors"
	"testing"
)

func TestViewportWidthByState(t *testing.T) {
	cases := []struct {
		name      string
		visible   bool
		shown     bool
		w, h      float64
		wantState State
		wantWidth func(r Result, c Constraints) float64
	}{
		{"hidden_landscape", false, true, 1600, 900, Hidden, func(Result, Constraints) float64 { return 0 }},
		{"hidden_portrait", false, false, 1200, 800, Hidden, func(Result, Constraints) float64 { return 0 }},
		{"landscape", true, true, 1600, 900, VisibleLandscape, func(r Result, _ Constraints) float64 { return r.Width }},
		{"landscape_ignores_toggle", true, false, 1600, 900, VisibleLandscape, func(r Result, _ Constraints) float64 { return r.Width }},
		{"portrait_shown", true, true, 1200, 800, VisiblePortraitShown, func(r Result, _ Constraints) float64 { return r.Width }},
		{"portrait_hidden", true, false, 1200, 800, VisiblePortraitHidden, func(_ Result, c Constraints) float64 { return c.EdgeMinWidth }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(t, testConstraints())
			e.SetVisible(tc.visible)
			e.ShowPortrait(tc.shown)
			r := e.Recompute(tc.w, tc.h, 300, false)

			if e.State() != tc.wantState {
				t.Fatalf("expected state %v, got %v", tc.wantState, e.State())
			}
			if want := tc.wantWidth(r, e.Constraints()); e.ViewportWidth() != want {
				t.Fatalf("expected viewport width %v, got %v", want, e.ViewportWidth())
			}
		})
	}
}

func TestShowPortraitLeavesLayoutAlone(t *testing.T) {
	e := newTestEngine(t, testConstraints())
	e.SetVisible(true)
	before := e.Recompute(1200, 800, 300, false)
	passes := e.aspectPasses

	e.ShowPortrait(false)
	if e.State() != VisiblePortraitHidden {
		t.Fatalf("expected %v, got %v", VisiblePortraitHidden, e.State())
	}
	e.ShowPortrait(true)
	if e.State() != VisiblePortraitShown {
		t.Fatalf("expected %v, got %v", VisiblePortraitShown, e.State())
	}

	if e.Result() != before {
		t.Fatalf("expected toggling to keep %+v, got %+v", before, e.Result())
	}
	if e.aspectPasses != passes {
		t.Fatalf("expected no layout pass from toggling")
	}
}

func TestHiddenToVisible(t *testing.T) {
	e := newTestEngine(t, testConstraints())
	e.Recompute(1600, 900, 250, true)
	if e.State() != Hidden {
		t.Fatalf("expected a new engine to start hidden, got %v", e.State())
	}
	e.SetVisible(true)
	if e.State() != VisibleLandscape {
		t.Fatalf("expected %v, got %v", VisibleLandscape, e.State())
	}
	e.SetVisible(false)
	if e.ViewportWidth() != 0 {
		t.Fatalf("expected hidden viewport to claim no width")
	}
}

func TestApplyPushesFrameToSurfaces(t *testing.T) {
	e := newTestEngine(t, testConstraints())
	e.SetVisible(true)
	e.ShowPortrait(false)
	e.Recompute(1200, 800, 300, false)

	var got []Frame
	rec := SurfaceFunc(func(f Frame) { got = append(got, f) })
	f := Apply(e, rec, nil, rec)

	if len(got) != 2 {
		t.Fatalf("expected 2 surface calls, got %d", len(got))
	}
	if got[0] != f || got[1] != f {
		t.Fatalf("expected every surface to see the returned frame")
	}
	if f.State != VisiblePortraitHidden || f.Reserved != e.Constraints().EdgeMinWidth {
		t.Fatalf("unexpected frame %+v", f)
	}
	if !approx(f.UnitPx, f.ScaleRatio*10) {
		t.Fatalf("expected unit px %v, got %v", f.ScaleRatio*10, f.UnitPx)
	}
}

func TestValidateRejectsBrokenConstraints(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Constraints)
	}{
		{"zero_max_tiles_y", func(c *Constraints) { c.MaxTilesY = 0 }},
		{"negative_min_tiles_x", func(c *Constraints) { c.MinTilesX = -1 }},
		{"empty_aspect_range", func(c *Constraints) { c.MinTilesX = 100 }},
		{"zero_outer_size", func(c *Constraints) { c.TileOuterSize = 0 }},
		{"edge_wider_than_floor", func(c *Constraints) { c.EdgeMinWidth = MinWindowSize }},
		{"negative_panel_min", func(c *Constraints) { c.SidePanelMinWidth = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := testConstraints()
			tc.mutate(&c)
			if _, err := New(c); !errors.Is(err, ErrInvalidConstraints) {
				t.Fatalf("expected ErrInvalidConstraints, got %v", err)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	if VisiblePortraitHidden.String() != "portrait-hidden" || State(42).String() != "unknown" {
		t.Fatalf("unexpected state names")
	}
}
