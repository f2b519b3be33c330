// Package scene wires one game session together: it feeds window resizes
// into the layout engine, pushes each layout to the map renderer and the
// authoring panel, and routes programs through the runner.
package scene

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/milk9111/hexpath/host"
	"github.com/milk9111/hexpath/layout"
	"github.com/milk9111/hexpath/levels"
	"github.com/milk9111/hexpath/maze"
	"github.com/milk9111/hexpath/program"
	"github.com/milk9111/hexpath/render"
)

var ErrNoLevel = errors.New("scene: no level selected")

// Panel is what the controller needs from the authoring panel.
type Panel interface {
	layout.Surface
	SidePanelWidth() float64
	SetLevel(lvl *levels.Level, starter string)
	SetLevels(names []string, current string)
	SetProgram(src string)
	SetStatus(s string)
}

// Tutorial is told when the player has found the portrait toggle on their own.
type Tutorial interface {
	Dismiss()
}

// Presenter receives finished runs.
type Presenter interface {
	ShowResult(r program.Result)
}

// PresenterFunc adapts a plain function to Presenter.
type PresenterFunc func(r program.Result)

func (fn PresenterFunc) ShowResult(r program.Result) {
	fn(r)
}

// Renderer draws the maze inside the viewport.
type Renderer interface {
	Setup(m *maze.Maze) error
	Teardown()
	Update(vp render.Viewport)
	Play(steps []maze.Step)
}

type pickSource interface {
	OnPick(fn func(render.PickEvent)) (unsubscribe func())
}

type Options struct {
	Geometry layout.Geometry
	Store    *levels.Store
	MaxSteps int
	Timeout  time.Duration
	// Watch enables hot reload from Store.Dir.
	Watch  bool
	Logger *log.Logger
}

type runResult struct {
	id  int
	res program.Result
}

// Controller owns the layout engine and everything that reacts to it. All
// methods run on the game goroutine; only run results cross goroutines.
type Controller struct {
	opts Options
	log  *log.Logger

	host     host.Resizer
	renderer Renderer
	panel    Panel
	tutorial Tutorial

	presenters []Presenter
	engine     *layout.Engine
	level      *levels.Level
	runner     *program.Runner

	runID     int
	running   bool
	runCancel context.CancelFunc
	results   chan runResult

	ctx    context.Context
	cancel context.CancelFunc

	watcher     *levels.Watcher
	unsubResize func()
	unsubPick   func()
	closed      bool
}

// New subscribes a controller to h. Call SelectLevel before the first frame.
func New(h host.Resizer, renderer Renderer, panel Panel, opts Options) (*Controller, error) {
	if h == nil || renderer == nil || panel == nil {
		return nil, errors.New("scene: host, renderer and panel are required")
	}
	if opts.Store == nil {
		opts.Store = levels.DefaultStore
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		opts:     opts,
		log:      opts.Logger.WithPrefix("scene"),
		host:     h,
		renderer: renderer,
		panel:    panel,
		results:  make(chan runResult, 4),
		ctx:      ctx,
		cancel:   cancel,
	}
	if t, ok := panel.(Tutorial); ok {
		c.tutorial = t
	}
	if p, ok := panel.(Presenter); ok {
		c.presenters = append(c.presenters, p)
	}
	c.presenters = append(c.presenters, PresenterFunc(func(r program.Result) {
		c.renderer.Play(r.Steps)
	}))
	if ps, ok := renderer.(pickSource); ok {
		c.unsubPick = ps.OnPick(c.onPick)
	}

	if opts.Watch && opts.Store.Dir != "" {
		w, err := levels.NewWatcher(existingDirs(opts.Store.Dir, filepath.Join(opts.Store.Dir, "scripts"))...)
		if err != nil {
			c.log.Warn("hot reload disabled", "dir", opts.Store.Dir, "err", err)
		} else {
			c.watcher = w
		}
	}

	c.unsubResize = h.Subscribe(c.onResize)
	return c, nil
}

func existingDirs(dirs ...string) []string {
	var out []string
	for _, d := range dirs {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			out = append(out, d)
		}
	}
	return out
}

// AddPresenter registers another consumer of run results.
func (c *Controller) AddPresenter(p Presenter) {
	if p != nil {
		c.presenters = append(c.presenters, p)
	}
}

func (c *Controller) Engine() *layout.Engine {
	return c.engine
}

func (c *Controller) Level() *levels.Level {
	return c.level
}

// Running reports whether a program is executing.
func (c *Controller) Running() bool {
	return c.running
}

// SelectLevel loads name, rebuilds the layout engine for its grid and runs a
// forced layout pass.
func (c *Controller) SelectLevel(name string) error {
	lvl, err := c.opts.Store.Load(name)
	if err != nil {
		return err
	}
	m := lvl.Maze()
	engine, err := layout.New(layout.NewConstraints(c.opts.Geometry, m.Cols(), m.Rows()))
	if err != nil {
		return fmt.Errorf("scene: level %s: %w", lvl.Name, err)
	}
	if c.engine != nil {
		engine.ShowPortrait(c.engine.PortraitShown())
	}
	engine.SetVisible(lvl.UsesViewport())

	starter := ""
	if lvl.Starter != "" {
		src, err := c.opts.Store.LoadScript(lvl.Starter)
		if err != nil {
			c.log.Warn("starter program missing", "level", lvl.Name, "starter", lvl.Starter, "err", err)
		} else {
			starter = string(src)
		}
	}

	if lvl.UsesViewport() {
		if err := c.renderer.Setup(m); err != nil {
			return fmt.Errorf("scene: level %s: %w", lvl.Name, err)
		}
	} else {
		c.renderer.Teardown()
	}

	c.dropRun()
	c.level = lvl
	c.engine = engine
	c.runner = program.NewRunner(lvl, c.opts.MaxSteps, c.opts.Timeout)

	c.panel.SetLevel(lvl, starter)
	c.refreshLevelList()
	c.relayout()

	f := c.engine.Frame()
	c.log.Info("level loaded", "level", lvl.Name, "grid", fmt.Sprintf("%dx%d", m.Cols(), m.Rows()), "state", f.State, "width", f.Width)
	return nil
}

// TogglePortrait shows or hides the viewport overlay in portrait mode.
// userAction marks a toggle the player made, which also retires the tutorial.
func (c *Controller) TogglePortrait(show, userAction bool) {
	if c.engine == nil {
		return
	}
	c.engine.ShowPortrait(show)
	if userAction && c.tutorial != nil {
		c.tutorial.Dismiss()
	}
	c.apply()
}

// Run executes src against the current level. The result is delivered by a
// later Update.
func (c *Controller) Run(src string) error {
	if c.runner == nil {
		return ErrNoLevel
	}
	c.dropRun()
	id := c.runID
	ctx, cancel := context.WithCancel(c.ctx)
	c.runCancel = cancel
	c.running = true
	c.renderer.Play(nil)
	c.panel.SetStatus("Running...")

	c.runner.Execute(ctx, src, func(r program.Result) {
		select {
		case c.results <- runResult{id: id, res: r}:
		case <-c.ctx.Done():
		}
	})
	return nil
}

// Reset abandons any running program and puts the robot back on the start.
func (c *Controller) Reset() {
	c.dropRun()
	c.renderer.Play(nil)
	c.panel.SetStatus("")
}

// dropRun stops the current program and makes its result stale.
func (c *Controller) dropRun() {
	if c.runCancel != nil {
		c.runCancel()
		c.runCancel = nil
	}
	c.runID++
	c.running = false
}

// Update delivers finished runs and hot reloads. Call once per frame.
func (c *Controller) Update() {
	for {
		select {
		case rr := <-c.results:
			c.deliver(rr)
		default:
			c.pollWatcher()
			return
		}
	}
}

func (c *Controller) deliver(rr runResult) {
	if rr.id != c.runID {
		c.log.Debug("dropping stale run", "run", rr.id)
		return
	}
	c.running = false
	if c.runCancel != nil {
		c.runCancel()
		c.runCancel = nil
	}
	r := rr.res
	c.log.Info("run finished", "level", c.levelName(), "outcome", r.Outcome, "steps", len(r.Steps), "took", r.Duration)
	if r.Err != nil && r.Outcome == program.Failed {
		c.log.Debug("run error", "err", r.Err)
	}
	for _, p := range c.presenters {
		p.ShowResult(r)
	}
}

func (c *Controller) pollWatcher() {
	if c.watcher == nil {
		return
	}
	for {
		select {
		case file, ok := <-c.watcher.Events:
			if !ok {
				c.watcher = nil
				return
			}
			c.reload(file)
		case err, ok := <-c.watcher.Errors:
			if !ok {
				c.watcher = nil
				return
			}
			c.log.Error("watch", "err", err)
		default:
			return
		}
	}
}

func (c *Controller) reload(file string) {
	if c.level == nil {
		return
	}
	if name := levels.LevelName(file); name != "" {
		if name != c.level.Name {
			c.refreshLevelList()
			return
		}
		if err := c.SelectLevel(name); err != nil {
			c.log.Error("reload level", "level", name, "err", err)
			c.panel.SetStatus(err.Error())
		}
		return
	}
	base := filepath.Base(file)
	if c.level.Starter == "" || base != c.level.Starter+filepath.Ext(base) {
		return
	}
	src, err := c.opts.Store.LoadScript(c.level.Starter)
	if err != nil {
		c.log.Error("reload program", "starter", c.level.Starter, "err", err)
		return
	}
	c.log.Info("program reloaded", "starter", c.level.Starter)
	c.panel.SetProgram(string(src))
}

// NextLevel returns the level listed after the current one.
func (c *Controller) NextLevel() (string, bool) {
	names, err := c.opts.Store.List()
	if err != nil || c.level == nil {
		return "", false
	}
	for i, name := range names {
		if name == c.level.Name && i+1 < len(names) {
			return names[i+1], true
		}
	}
	return "", false
}

func (c *Controller) refreshLevelList() {
	names, err := c.opts.Store.List()
	if err != nil {
		c.log.Warn("list levels", "err", err)
		return
	}
	c.panel.SetLevels(names, c.levelName())
}

func (c *Controller) levelName() string {
	if c.level == nil {
		return ""
	}
	return c.level.Name
}

func (c *Controller) onResize(w, h float64) {
	if c.engine == nil {
		return
	}
	before := c.engine.State()
	c.engine.Recompute(w, h, c.panel.SidePanelWidth(), false)
	if after := c.engine.State(); after != before {
		c.log.Debug("layout mode changed", "from", before, "to", after, "window", fmt.Sprintf("%.0fx%.0f", w, h))
	}
	c.apply()
}

// relayout forces a pass at the current window size; a new engine has no cache.
func (c *Controller) relayout() {
	if c.engine == nil {
		return
	}
	w, h := c.host.Size()
	c.engine.Recompute(w, h, c.panel.SidePanelWidth(), true)
	c.apply()
}

func (c *Controller) apply() {
	_, h := c.host.Size()
	layout.Apply(c.engine, c.panel, layout.SurfaceFunc(func(f layout.Frame) {
		c.renderer.Update(ViewportFor(f, c.engine.Constraints(), h))
	}))
}

func (c *Controller) onPick(ev render.PickEvent) {
	c.log.Debug("tile picked", "tile", ev.Coord, "x", ev.X, "y", ev.Y)
	c.panel.SetStatus(fmt.Sprintf("Tile %s", ev.Coord))
}

// Close stops hot reload, abandons runs and detaches from the host.
func (c *Controller) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.cancel()
	if c.unsubResize != nil {
		c.unsubResize()
	}
	if c.unsubPick != nil {
		c.unsubPick()
	}
	if c.watcher != nil {
		err := c.watcher.Close()
		c.watcher = nil
		return err
	}
	return nil
}
