package render

import (
	"math"
	"testing"

	"github.com/milk9111/hexpath/maze"
)

func testMaze(t *testing.T) *maze.Maze {
	t.Helper()
	m, err := maze.Parse([]string{"S..#", " #.G"}, maze.East)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return m
}

func setupHexMap(t *testing.T) *HexMap {
	t.Helper()
	h := NewHexMap()
	if err := h.Setup(testMaze(t)); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	h.Update(Viewport{Bounds: Rect{X: 0, Y: 0, W: 800, H: 600}, TilePx: 100, Fill: 0.8})
	return h
}

func screenCenter(h *HexMap, c maze.Coord) (float64, float64) {
	return place(h.vp, h.m).toScreen(c.Center())
}

func TestPickerFindsEveryTile(t *testing.T) {
	m := testMaze(t)
	p := NewPicker(m)
	m.Each(func(c maze.Coord, _ maze.Tile) {
		x, y := c.Center()
		got, ok := p.Pick(x, y)
		if !ok || got != c {
			t.Fatalf("expected %v at its centre, got %v (%v)", c, got, ok)
		}
	})
	if _, ok := p.Pick(-5, -5); ok {
		t.Fatalf("expected no tile far outside the board")
	}
	// (0,1) is void, so nothing is registered there.
	x, y := maze.Coord{Col: 0, Row: 1}.Center()
	if _, ok := p.Pick(x, y); ok {
		t.Fatalf("expected void tile to be unpickable")
	}
}

func TestClickDispatchesPickEvents(t *testing.T) {
	h := setupHexMap(t)
	var got []PickEvent
	unsub := h.OnPick(func(ev PickEvent) { got = append(got, ev) })

	goal := maze.Coord{Col: 3, Row: 1}
	sx, sy := screenCenter(h, goal)
	if !h.Click(sx, sy) {
		t.Fatalf("expected click on the goal to hit a tile")
	}
	if len(got) != 1 || got[0].Coord != goal || got[0].Tile != maze.Open {
		t.Fatalf("unexpected pick events %+v", got)
	}

	unsub()
	h.Click(sx, sy)
	if len(got) != 1 {
		t.Fatalf("expected no events after unsubscribe")
	}
}

func TestClickOutsideViewport(t *testing.T) {
	h := setupHexMap(t)
	fired := false
	h.OnPick(func(PickEvent) { fired = true })
	if h.Click(900, 10) || fired {
		t.Fatalf("expected clicks outside the viewport to be ignored")
	}
}

func TestBoardIsCentred(t *testing.T) {
	h := setupHexMap(t)
	w, ht := h.m.Extent()
	pl := place(h.vp, h.m)
	left, top := pl.toScreen(0, 0)
	right, bottom := pl.toScreen(w, ht)
	if math.Abs(left-(800-right)) > 1e-9 || math.Abs(top-(600-bottom)) > 1e-9 {
		t.Fatalf("expected equal margins, got l=%v r=%v t=%v b=%v", left, 800-right, top, 600-bottom)
	}
}

func TestTeardownDropsMaze(t *testing.T) {
	h := setupHexMap(t)
	h.Teardown()
	if h.Ready() {
		t.Fatalf("expected renderer to be empty after teardown")
	}
	if _, ok := h.TileAt(400, 300); ok {
		t.Fatalf("expected no picks without a maze")
	}
	if err := h.Setup(nil); err == nil {
		t.Fatalf("expected error for nil maze")
	}
}

func TestPlayback(t *testing.T) {
	h := setupHexMap(t)
	steps := []maze.Step{
		{Action: maze.ActionMove, Pos: maze.Coord{Col: 1}, Heading: maze.East},
		{Action: maze.ActionMove, Pos: maze.Coord{Col: 1}, Heading: maze.East, Crashed: true},
	}
	h.Play(steps)
	if !h.Playing() {
		t.Fatalf("expected playback to start")
	}
	if pos, _, crashed := h.Robot(); pos != steps[0].Pos || crashed {
		t.Fatalf("expected first step pose")
	}

	for i := 0; i < stepFrames; i++ {
		h.Tick()
	}
	if _, _, crashed := h.Robot(); !crashed {
		t.Fatalf("expected the crash step after %d ticks", stepFrames)
	}
	for i := 0; i < stepFrames; i++ {
		h.Tick()
	}
	if h.Playing() {
		t.Fatalf("expected playback to finish")
	}
	if _, _, crashed := h.Robot(); !crashed {
		t.Fatalf("expected the last step to stay on screen")
	}

	h.Play(nil)
	if pos, heading, _ := h.Robot(); pos != h.m.Start() || heading != h.m.Facing() {
		t.Fatalf("expected reset to the start pose")
	}
}

func TestUpdateClampsFill(t *testing.T) {
	h := NewHexMap()
	h.Update(Viewport{Fill: 3})
	if h.Viewport().Fill != 1 {
		t.Fatalf("expected fill clamped to 1, got %v", h.Viewport().Fill)
	}
}

func TestRobotPoseEasesBetweenSteps(t *testing.T) {
	h := setupHexMap(t)
	next := maze.Coord{Col: 1}
	h.Play([]maze.Step{{Action: maze.ActionMove, Pos: next, Heading: maze.East}})

	sx, sy := h.m.Start().Center()
	x, y, _, _ := h.robotPose()
	if x != sx || y != sy {
		t.Fatalf("expected the first frame at the start tile, got %v,%v", x, y)
	}

	for i := 0; i < stepFrames/2; i++ {
		h.Tick()
	}
	nx, _ := next.Center()
	x, _, _, _ = h.robotPose()
	if math.Abs(x-(sx+nx)/2) > 1e-9 {
		t.Fatalf("expected halfway at %v, got %v", (sx+nx)/2, x)
	}

	for i := 0; i < stepFrames; i++ {
		h.Tick()
	}
	x, _, _, _ = h.robotPose()
	if x != nx {
		t.Fatalf("expected to rest on the last step, got %v", x)
	}
}

func TestLerpAngleTakesShortWay(t *testing.T) {
	// West (pi) to north-east (5pi/3) is a 120 degree clockwise turn.
	got := lerpAngle(math.Pi, 5*math.Pi/3, 0.5)
	if math.Abs(got-4*math.Pi/3) > 1e-9 {
		t.Fatalf("expected 4pi/3, got %v", got)
	}
	// East (0) to north-east (5pi/3) turns back through -pi/3.
	got = lerpAngle(0, 5*math.Pi/3, 1)
	if math.Abs(got+math.Pi/3) > 1e-9 {
		t.Fatalf("expected -pi/3, got %v", got)
	}
}
