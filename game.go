package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/image/colornames"

	"github.com/milk9111/hexpath/config"
	"github.com/milk9111/hexpath/host"
	"github.com/milk9111/hexpath/levels"
	"github.com/milk9111/hexpath/program"
	"github.com/milk9111/hexpath/render"
	"github.com/milk9111/hexpath/scene"
	"github.com/milk9111/hexpath/ui"
)

type Game struct {
	frames int
	debug  bool
	log    *log.Logger

	input   *Input
	window  *host.Window
	hexMap  *render.HexMap
	panel   *ui.Panel
	overlay *ui.Overlay
	ctrl    *scene.Controller
}

func NewGame(cfg config.Config, levelName string, watch, debug bool, logger *log.Logger) (*Game, error) {
	g := &Game{
		debug:  debug,
		log:    logger,
		input:  &Input{},
		window: host.NewWindow(),
		hexMap: render.NewHexMap(),
	}
	// The first LayoutF arrives after NewGame; start from the configured size.
	g.window.Observe(float64(cfg.Window.Width), float64(cfg.Window.Height))

	g.panel = ui.NewPanel(cfg.Layout.SidePanelWidth, ui.Handlers{
		Run:   g.run,
		Reset: func() {
			g.ctrl.Reset()
			g.overlay.Hide()
		},
		SelectLevel: func(name string) {
			if err := g.ctrl.SelectLevel(name); err != nil {
				g.log.Error("select level", "level", name, "err", err)
				g.panel.SetStatus(err.Error())
			}
		},
		ShowViewport: func(show bool) { g.ctrl.TogglePortrait(show, true) },
	})

	ctrl, err := scene.New(g.window, g.hexMap, g.panel, scene.Options{
		Geometry: cfg.Layout.Geometry(),
		Store:    &levels.Store{Dir: cfg.Levels.Dir},
		MaxSteps: cfg.Program.MaxSteps,
		Timeout:  cfg.Program.Timeout,
		Watch:    watch,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	g.ctrl = ctrl

	g.overlay = ui.NewOverlay(g.nextLevel)
	ctrl.AddPresenter(scene.PresenterFunc(func(r program.Result) {
		_, ok := g.ctrl.NextLevel()
		g.overlay.SetHasNext(ok)
		g.overlay.ShowResult(r)
	}))

	if levelName == "" {
		levelName = cfg.Levels.Start
	}
	if err := ctrl.SelectLevel(levelName); err != nil {
		_ = ctrl.Close()
		return nil, err
	}
	return g, nil
}

func (g *Game) run(src string) {
	if err := g.ctrl.Run(src); err != nil {
		g.panel.SetStatus(err.Error())
	}
}

func (g *Game) nextLevel() {
	name, ok := g.ctrl.NextLevel()
	if !ok {
		return
	}
	if err := g.ctrl.SelectLevel(name); err != nil {
		g.log.Error("select level", "level", name, "err", err)
		g.panel.SetStatus(err.Error())
	}
}

// modal reports whether the overlay owns input; it waits for playback to end.
func (g *Game) modal() bool {
	return g.overlay.Visible() && !g.hexMap.Playing()
}

func (g *Game) Update() error {
	g.frames++

	g.input.Update()
	if g.input.QuitPressed {
		return ebiten.Termination
	}

	g.ctrl.Update()
	g.hexMap.Tick()
	if g.modal() {
		g.overlay.Update()
		return nil
	}
	g.panel.Update()

	g.hexMap.Hover(g.input.CursorX, g.input.CursorY)
	if g.input.ClickPressed {
		g.hexMap.Click(g.input.CursorX, g.input.CursorY)
	}
	if g.input.RunPressed {
		g.run(g.panel.Program())
	}
	if g.input.ResetPressed {
		g.ctrl.Reset()
		g.overlay.Hide()
	}
	if g.input.TogglePressed {
		if e := g.ctrl.Engine(); e != nil {
			g.ctrl.TogglePortrait(!e.PortraitShown(), true)
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	g.hexMap.Draw(screen)
	g.panel.Draw(screen)
	if g.modal() {
		g.overlay.Draw(screen)
	}

	if g.debug {
		f := g.ctrl.Engine().Frame()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  %s  width=%.0f scale=%.3f", ebiten.ActualFPS(), f.State, f.Width, f.ScaleRatio))
	}
}

// LayoutF reports the outside size to the scene. Layout and drawing both
// work in device-independent pixels, so the panel keeps its size on HiDPI
// monitors and ebiten upscales the screen.
func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	g.window.Observe(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close releases the scene's watcher and subscriptions.
func (g *Game) Close() error {
	return g.ctrl.Close()
}
