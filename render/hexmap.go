// Package render draws the hex-tile map inside the gameplay viewport and
// turns clicks on it into pick events.
package render

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/hexpath/maze"
)

// PickEvent is a click on a tile.
type PickEvent struct {
	Coord maze.Coord
	Tile  maze.Tile
	// X and Y are the click position in screen pixels.
	X, Y float64
}

// HexMap renders one maze. Setup and Teardown bracket a level; Update is
// called after every layout pass.
type HexMap struct {
	m      *maze.Maze
	picker *Picker
	vp     Viewport
	play   *playback

	hover    maze.Coord
	hasHover bool

	nextID int
	subs   map[int]func(PickEvent)
}

func NewHexMap() *HexMap {
	return &HexMap{subs: make(map[int]func(PickEvent))}
}

// Setup prepares the renderer for m, replacing any previous maze.
func (h *HexMap) Setup(m *maze.Maze) error {
	if m == nil {
		return errors.New("render: nil maze")
	}
	h.Teardown()
	h.m = m
	h.picker = NewPicker(m)
	return nil
}

// Teardown drops the current maze. Pick subscriptions survive.
func (h *HexMap) Teardown() {
	h.m = nil
	h.picker = nil
	h.play = nil
	h.hasHover = false
}

// Ready reports whether a maze is set up.
func (h *HexMap) Ready() bool {
	return h.m != nil
}

// Update applies a new viewport placement.
func (h *HexMap) Update(vp Viewport) {
	if vp.Fill <= 0 || vp.Fill > 1 {
		vp.Fill = 1
	}
	h.vp = vp
}

// Viewport returns the placement from the last Update.
func (h *HexMap) Viewport() Viewport {
	return h.vp
}

// Tick advances playback by one frame.
func (h *HexMap) Tick() {
	h.play.tick()
}

// Play animates the robot along steps. An empty run resets the robot.
func (h *HexMap) Play(steps []maze.Step) {
	if len(steps) == 0 {
		h.play = nil
		return
	}
	h.play = &playback{steps: steps}
}

// Playing reports whether an animation is still running.
func (h *HexMap) Playing() bool {
	return !h.play.done()
}

// OnPick subscribes fn to tile clicks.
func (h *HexMap) OnPick(fn func(PickEvent)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	return func() { delete(h.subs, id) }
}

// TileAt resolves a screen position to a tile.
func (h *HexMap) TileAt(sx, sy float64) (maze.Coord, bool) {
	if h.m == nil || h.vp.TilePx <= 0 || !h.vp.Bounds.Contains(sx, sy) {
		return maze.Coord{}, false
	}
	ux, uy := place(h.vp, h.m).toUnits(sx, sy)
	return h.picker.Pick(ux, uy)
}

// Click sends a pick event for the tile under (sx, sy), if any.
func (h *HexMap) Click(sx, sy float64) bool {
	c, ok := h.TileAt(sx, sy)
	if !ok {
		return false
	}
	ev := PickEvent{Coord: c, Tile: h.m.At(c), X: sx, Y: sy}
	for id := 0; id < h.nextID; id++ {
		if fn, ok := h.subs[id]; ok {
			fn(ev)
		}
	}
	return true
}

// Hover highlights the tile under (sx, sy).
func (h *HexMap) Hover(sx, sy float64) {
	h.hover, h.hasHover = h.TileAt(sx, sy)
}

// Robot returns the pose currently shown.
func (h *HexMap) Robot() (maze.Coord, maze.Heading, bool) {
	if h.m == nil {
		return maze.Coord{}, 0, false
	}
	if s, ok := h.play.current(); ok {
		return s.Pos, s.Heading, s.Crashed
	}
	return h.m.Start(), h.m.Facing(), false
}

func (h *HexMap) Draw(screen *ebiten.Image) {
	if h.m == nil || h.vp.Bounds.Empty() || h.vp.TilePx <= 0 {
		return
	}
	b := h.vp.Bounds
	dst := screen.SubImage(image.Rect(int(b.X), int(b.Y), int(math.Ceil(b.X+b.W)), int(math.Ceil(b.Y+b.H)))).(*ebiten.Image)
	dst.Fill(colornames.Midnightblue)

	pl := place(h.vp, h.m)
	radius := maze.HexRadius * h.vp.TilePx * h.vp.Fill
	goal := h.m.Goal()

	h.m.Each(func(c maze.Coord, t maze.Tile) {
		cx, cy := pl.toScreen(c.Center())
		clr := tileColor(t)
		if h.hasHover && c == h.hover && t == maze.Open {
			clr = colornames.Lightsteelblue
		}
		corners := maze.Corners(cx, cy, radius)
		fillPolygon(dst, corners[:], clr)
		strokePolygon(dst, corners[:], colornames.Slategray)
		if c == goal {
			inner := maze.Corners(cx, cy, radius*0.5)
			fillPolygon(dst, inner[:], colornames.Gold)
		}
	})

	ux, uy, angle, crashed := h.robotPose()
	rx, ry := pl.toScreen(ux, uy)
	clr := color.Color(colornames.Limegreen)
	if crashed {
		clr = colornames.Crimson
	}
	fillPolygon(dst, robotShape(rx, ry, radius*0.6, angle), clr)
}

// robotPose is the animated robot position in tile units, eased from the
// previous step towards the current one.
func (h *HexMap) robotPose() (x, y, angle float64, crashed bool) {
	pos, heading, crashed := h.Robot()
	x, y = pos.Center()
	angle = heading.Angle()
	if h.play.done() {
		return x, y, angle, crashed
	}

	from, fromHeading := h.m.Start(), h.m.Facing()
	if prev, ok := h.play.previous(); ok {
		from, fromHeading = prev.Pos, prev.Heading
	}
	fx, fy := from.Center()
	t := h.play.progress()
	return lerp(fx, x, t), lerp(fy, y, t), lerpAngle(fromHeading.Angle(), angle, t), crashed
}

func tileColor(t maze.Tile) color.Color {
	switch t {
	case maze.Wall:
		return colornames.Dimgray
	default:
		return colornames.Whitesmoke
	}
}

func robotShape(cx, cy, r, angle float64) [][2]float64 {
	const spread = 2.4
	return [][2]float64{
		{cx + r*math.Cos(angle), cy + r*math.Sin(angle)},
		{cx + r*math.Cos(angle+spread), cy + r*math.Sin(angle+spread)},
		{cx + r*math.Cos(angle-spread), cy + r*math.Sin(angle-spread)},
	}
}

var whiteSubImage *ebiten.Image

func whitePixel() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// fillPolygon fills a convex polygon as a triangle fan.
func fillPolygon(dst *ebiten.Image, pts [][2]float64, clr color.Color) {
	if len(pts) < 3 {
		return
	}
	r, g, b, a := clr.RGBA()
	vs := make([]ebiten.Vertex, len(pts))
	for i, p := range pts {
		vs[i] = ebiten.Vertex{
			DstX:   float32(p[0]),
			DstY:   float32(p[1]),
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(r) / 0xffff,
			ColorG: float32(g) / 0xffff,
			ColorB: float32(b) / 0xffff,
			ColorA: float32(a) / 0xffff,
		}
	}
	is := make([]uint16, 0, (len(pts)-2)*3)
	for i := 1; i < len(pts)-1; i++ {
		is = append(is, 0, uint16(i), uint16(i+1))
	}
	dst.DrawTriangles(vs, is, whitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func strokePolygon(dst *ebiten.Image, pts [][2]float64, clr color.Color) {
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		vector.StrokeLine(dst, float32(a[0]), float32(a[1]), float32(b[0]), float32(b[1]), 1, clr, true)
	}
}
