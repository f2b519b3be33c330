package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input holds the per-frame input the game reacts to outside the panel.
type Input struct {
	// CursorX/Y are the cursor position in screen pixels.
	CursorX float64
	CursorY float64
	// ClickPressed is true on the frame the left mouse button was pressed.
	ClickPressed bool
	// RunPressed is true on the frame F5 or the gamepad primary button was pressed.
	RunPressed bool
	// ResetPressed is true on the frame F6 or the gamepad secondary button was pressed.
	ResetPressed bool
	// TogglePressed flips the portrait overlay (Tab or the gamepad select button).
	TogglePressed bool
	// QuitPressed is true on the frame F12 was pressed.
	QuitPressed bool
}

// Update polls mouse, keyboard and the first gamepad.
func (i *Input) Update() {
	mx, my := ebiten.CursorPosition()
	i.CursorX = float64(mx)
	i.CursorY = float64(my)

	i.ClickPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	i.RunPressed = inpututil.IsKeyJustPressed(ebiten.KeyF5)
	i.ResetPressed = inpututil.IsKeyJustPressed(ebiten.KeyF6)
	i.TogglePressed = inpututil.IsKeyJustPressed(ebiten.KeyTab)
	i.QuitPressed = inpututil.IsKeyJustPressed(ebiten.KeyF12)

	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		id := ids[0]
		i.RunPressed = i.RunPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		i.ResetPressed = i.ResetPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight)
		i.TogglePressed = i.TogglePressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterLeft)
	}
}
