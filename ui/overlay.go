package ui

import (
	"image/color"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/hexpath/program"
)

// Overlay is the centered "goal reached" banner. It uses the built-in basic
// font so it never waits on the panel's font source.
type Overlay struct {
	ui      *ebitenui.UI
	panel   *widget.Container
	detail  *widget.Text
	nextBtn *widget.Button
	visible bool
}

// NewOverlay builds a hidden overlay. onNext is called from the Next button.
func NewOverlay(onNext func()) *Overlay {
	o := &Overlay{}

	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	title := widget.NewText(
		widget.TextOpts.Text("Goal reached!", &face, white),
		widget.TextOpts.WidgetOpts(center),
	)
	o.detail = widget.NewText(
		widget.TextOpts.Text("", &face, white),
		widget.TextOpts.WidgetOpts(center),
	)
	o.nextBtn = widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Next level", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(center),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			o.Hide()
			if onNext != nil {
				onNext()
			}
		}),
	)
	stayBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Keep playing", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(center),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			o.Hide()
		}),
	)

	o.panel = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	o.panel.AddChild(title)
	o.panel.AddChild(o.detail)
	o.panel.AddChild(o.nextBtn)
	o.panel.AddChild(stayBtn)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(o.panel)
	o.ui = &ebitenui.UI{Container: root}
	return o
}

// SetHasNext shows or hides the Next button.
func (o *Overlay) SetHasNext(ok bool) {
	setVisible(o.nextBtn, ok)
}

// ShowResult opens the overlay for successful runs only.
func (o *Overlay) ShowResult(r program.Result) {
	if r.Outcome != program.Success {
		return
	}
	o.detail.Label = StatusText(r)
	o.visible = true
}

func (o *Overlay) Hide() {
	o.visible = false
}

func (o *Overlay) Visible() bool {
	return o.visible
}

func (o *Overlay) Update() {
	if o.visible {
		o.ui.Update()
	}
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.visible {
		o.ui.Draw(screen)
	}
}
