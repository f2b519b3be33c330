package ui

import (
	"errors"
	"image/color"
	"sync"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.design/x/clipboard"

	"github.com/milk9111/hexpath/layout"
	"github.com/milk9111/hexpath/levels"
	"github.com/milk9111/hexpath/program"
)

var ErrClipboard = errors.New("ui: clipboard unavailable")

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// Handlers are the scene callbacks behind the panel's controls.
type Handlers struct {
	Run         func(src string)
	Reset       func()
	SelectLevel func(name string)
	// ShowViewport is the user flipping the portrait toggle.
	ShowViewport func(show bool)
}

// Panel is the ebitenui side panel.
type Panel struct {
	Model

	width    float64
	handlers Handlers
	face     text.Face

	ui        *ebitenui.UI
	root      *widget.Container
	spacer    *widget.Container
	panel     *widget.Container
	body      *widget.Container
	toggleBtn *widget.Button
	title     *widget.Text
	hintBox   *widget.Container
	hint      *widget.Text
	levelList *widget.List
	toolbox   *widget.Container
	source    *widget.Text
	input     *widget.TextInput
	status    *widget.Text

	levelEntries   []any
	suppressEvents bool
}

// NewPanel builds the panel. width is the space it asks for beside the viewport.
func NewPanel(width float64, h Handlers) *Panel {
	p := &Panel{width: width, handlers: h, face: loadFace(14)}
	p.build()
	return p
}

func (p *Panel) build() {
	face := &p.face
	p.ui = &ebitenui.UI{PrimaryTheme: newPanelTheme(face)}
	theme := p.ui.PrimaryTheme

	p.root = widget.NewContainer(widget.ContainerOpts.Layout(widget.NewGridLayout(
		widget.GridLayoutOpts.Columns(2),
		widget.GridLayoutOpts.Stretch([]bool{false, true}, []bool{true}),
	)))
	p.spacer = widget.NewContainer()
	p.panel = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(theme.PanelTheme.BackgroundImage),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 8, Right: 8}),
		)),
	)
	p.root.AddChild(p.spacer)
	p.root.AddChild(p.panel)

	p.toggleBtn = p.newButton(LabelShowTools, func() {
		if p.handlers.ShowViewport != nil {
			p.handlers.ShowViewport(!p.Collapsed())
		}
	})
	p.toggleBtn.GetWidget().Visibility = widget.Visibility_Hide
	p.panel.AddChild(p.toggleBtn)

	p.body = widget.NewContainer(widget.ContainerOpts.Layout(widget.NewRowLayout(
		widget.RowLayoutOpts.Direction(widget.DirectionVertical),
		widget.RowLayoutOpts.Spacing(8),
	)))
	p.panel.AddChild(p.body)

	p.title = p.newText("", textColor)
	p.body.AddChild(p.title)

	p.hintBox = widget.NewContainer(widget.ContainerOpts.Layout(widget.NewRowLayout(
		widget.RowLayoutOpts.Direction(widget.DirectionVertical),
		widget.RowLayoutOpts.Spacing(4),
	)))
	p.hint = p.newText("", hintColor)
	p.hintBox.AddChild(p.hint)
	p.hintBox.AddChild(p.newButton("Got it", p.Dismiss))
	p.body.AddChild(p.hintBox)

	p.body.AddChild(p.newLabel("Levels"))
	p.levelList = widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.ContainerOpts(widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(int(p.width-16), 96))),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			name, _ := e.(string)
			return name
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			name, ok := args.Entry.(string)
			if !ok || p.suppressEvents {
				return
			}
			if p.handlers.SelectLevel != nil {
				p.handlers.SelectLevel(name)
			}
		}),
	)
	p.body.AddChild(p.levelList)

	p.body.AddChild(p.newLabel("Toolbox"))
	p.toolbox = widget.NewContainer(widget.ContainerOpts.Layout(widget.NewGridLayout(
		widget.GridLayoutOpts.Columns(2),
		widget.GridLayoutOpts.Spacing(4, 4),
	)))
	p.body.AddChild(p.toolbox)

	p.body.AddChild(p.newLabel("Program"))
	p.source = p.newText("", textColor)
	p.body.AddChild(p.source)
	p.input = widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(int(p.width-16), 28)),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     solidNineSlice(inputBackground),
			Disabled: solidNineSlice(color.RGBA{200, 200, 200, 255}),
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:     color.Black,
			Disabled: color.Gray{Y: 120},
			Caret:    color.Black,
		}),
		widget.TextInputOpts.Face(face),
		widget.TextInputOpts.SubmitOnEnter(true),
		widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
			if p.AppendLine(args.InputText) {
				p.input.SetText("")
				p.refresh()
			}
		}),
	)
	p.body.AddChild(p.input)

	buttons := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewRowLayout(
		widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
		widget.RowLayoutOpts.Spacing(6),
	)))
	buttons.AddChild(p.newButton("Run", func() {
		if p.handlers.Run != nil {
			p.handlers.Run(p.Program())
		}
	}))
	buttons.AddChild(p.newButton("Reset", func() {
		if p.handlers.Reset != nil {
			p.handlers.Reset()
		}
	}))
	buttons.AddChild(p.newButton("Undo", func() {
		if p.UndoLine() {
			p.refresh()
		}
	}))
	buttons.AddChild(p.newButton("Clear", func() {
		p.ClearProgram()
		p.refresh()
	}))
	buttons.AddChild(p.newButton("Copy", func() {
		if err := p.Copy(); err != nil {
			p.Status = err.Error()
		} else {
			p.Status = "Program copied."
		}
		p.refresh()
	}))
	p.body.AddChild(buttons)

	p.status = p.newText("", textColor)
	p.body.AddChild(p.status)

	p.ui.Container = p.root
}

func (p *Panel) newText(s string, clr color.Color) *widget.Text {
	return widget.NewText(widget.TextOpts.Text(s, &p.face, clr))
}

func (p *Panel) newLabel(s string) *widget.Label {
	return widget.NewLabel(
		widget.LabelOpts.Text(s, &p.face, &widget.LabelColor{Idle: color.Gray{Y: 200}, Disabled: color.Gray{Y: 140}}),
	)
}

func (p *Panel) newButton(label string, onClick func()) *widget.Button {
	theme := p.ui.PrimaryTheme.ButtonTheme
	return widget.NewButton(
		widget.ButtonOpts.Image(theme.Image),
		widget.ButtonOpts.Text(label, &p.face, theme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

// UI exposes the ebitenui root for the game loop.
func (p *Panel) UI() *ebitenui.UI {
	return p.ui
}

// SidePanelWidth is the width the panel asks for next to the viewport.
func (p *Panel) SidePanelWidth() float64 {
	return p.width
}

// SetLevels fills the level list and selects current without firing SelectLevel.
func (p *Panel) SetLevels(names []string, current string) {
	p.suppressEvents = true
	defer func() { p.suppressEvents = false }()

	p.levelEntries = make([]any, len(names))
	for i, name := range names {
		p.levelEntries[i] = name
	}
	p.levelList.SetEntries(p.levelEntries)
	for _, e := range p.levelEntries {
		if e == current {
			p.levelList.SetSelectedEntry(e)
		}
	}
}

// SetLevel shows a newly selected level and its starter program.
func (p *Panel) SetLevel(lvl *levels.Level, starter string) {
	p.Model.SetLevel(lvl, starter)

	p.toolbox.RemoveChildren()
	for _, cmd := range p.Toolbox {
		cmd := cmd
		p.toolbox.AddChild(p.newButton(cmd, func() {
			if p.UseCommand(cmd) {
				p.refresh()
			}
		}))
	}
	p.refresh()
}

// SetProgram replaces the program text, as after a hot reload.
func (p *Panel) SetProgram(src string) {
	p.Model.SetProgram(src)
	p.refresh()
}

func (p *Panel) SetStatus(s string) {
	p.Status = s
	p.refresh()
}

// ApplyLayout moves the panel beside the viewport and collapses it to the
// edge strip while the viewport overlays it.
func (p *Panel) ApplyLayout(f layout.Frame) {
	p.Model.ApplyLayout(f)
	p.spacer.GetWidget().MinWidth = int(f.Reserved)
	p.refresh()
}

// Dismiss hides the tutorial hint.
func (p *Panel) Dismiss() {
	p.Model.Dismiss()
	p.refresh()
}

// ShowResult presents a finished run.
func (p *Panel) ShowResult(r program.Result) {
	p.Model.ShowResult(r)
	p.refresh()
}

// Copy puts the program on the system clipboard.
func (p *Panel) Copy() error {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		return ErrClipboard
	}
	clipboard.Write(clipboard.FmtText, []byte(p.Program()))
	return nil
}

func (p *Panel) Update() {
	p.ui.Update()
}

func (p *Panel) Draw(screen *ebiten.Image) {
	p.ui.Draw(screen)
}

// refresh pushes the model into the widgets.
func (p *Panel) refresh() {
	p.title.Label = p.Title
	p.hint.Label = wrapText(p.Hint, p.wrapColumns())
	setVisible(p.hintBox, p.TutorialVisible())
	p.source.Label = p.Program()
	if p.source.Label == "" {
		p.source.Label = "(empty)"
	}
	p.status.Label = wrapText(p.Status, p.wrapColumns())

	setVisible(p.body, !p.Collapsed())
	if label := p.ToggleLabel(); label != "" {
		p.toggleBtn.Text().Label = label
		setVisible(p.toggleBtn, true)
	} else {
		setVisible(p.toggleBtn, false)
	}
	p.root.RequestRelayout()
}

// wrapColumns estimates how many characters fit on a panel line.
func (p *Panel) wrapColumns() int {
	return int((p.width - 16) / 8)
}

type visibilityTarget interface {
	GetWidget() *widget.Widget
}

func setVisible(w visibilityTarget, visible bool) {
	if visible {
		w.GetWidget().Visibility = widget.Visibility_Show
	} else {
		w.GetWidget().Visibility = widget.Visibility_Hide
	}
}
