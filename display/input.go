package display

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/sandtick/engine/camera"
	"github.com/sandtick/engine/material"
)

// brushCycle is the ordered set of materials the player can paint
// with; Empty acts as an eraser.
var brushCycle = []material.ID{
	material.Empty, material.Sand, material.Water, material.Stone,
	material.Wood, material.Soil, material.Ice, material.Acid, material.Fire,
}

// Brush returns the currently selected paint material.
func (d *Display) Brush() material.ID { return d.brush }

// Poll gathers one frame's worth of mouse/keyboard input into a
// Commands batch, grounded on game/input.go's handleInput and
// handleCameraInput: left-drag paints a stroke in grid coordinates
// (via the camera's screen-to-world conversion), space toggles pause,
// period steps once, C clears the world, the bracket keys cycle the
// brush material, wheel/+/- zoom the camera, and arrow keys/right-drag
// pan it. Camera mutation happens here (mirroring how the teacher's
// handleCameraInput owns g.camera directly) so Poll is the single
// place input affects the view.
func (d *Display) Poll(cam *camera.Camera) Commands {
	var cmds Commands

	if rl.IsKeyPressed(rl.KeySpace) {
		cmds.TogglePause = true
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		cmds.StepOnce = true
	}
	if rl.IsKeyPressed(rl.KeyC) {
		cmds.ClearWorld = true
	}
	if rl.IsKeyPressed(rl.KeyLeftBracket) {
		cmds.CycleBrush = -1
	}
	if rl.IsKeyPressed(rl.KeyRightBracket) {
		cmds.CycleBrush = 1
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		cmds.Quit = true
	}
	d.applyBrushCycle(cmds.CycleBrush)

	if cam != nil {
		d.handleCamera(cam)
		d.handlePaint(cam, &cmds)
	}

	return cmds
}

// applyBrushCycle advances the selected brush by delta positions in
// brushCycle, wrapping at either end.
func (d *Display) applyBrushCycle(delta int) {
	if delta == 0 {
		return
	}
	idx := 0
	for i, m := range brushCycle {
		if m == d.brush {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(brushCycle)) % len(brushCycle)
	d.brush = brushCycle[idx]
}

// handleCamera applies pan/zoom/reset controls directly to cam.
func (d *Display) handleCamera(cam *camera.Camera) {
	panSpeed := float32(8.0) / cam.Zoom
	if rl.IsKeyDown(rl.KeyRight) {
		cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		cam.Pan(0, -panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		cam.ZoomBy(1.0 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		cam.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		cam.Reset()
	}

	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		cam.Pan(-delta.X, -delta.Y)
	}
}

// handlePaint converts a left-mouse drag into a PaintCommand spanning
// the previous and current grid-cell positions under the cursor.
func (d *Display) handlePaint(cam *camera.Camera, cmds *Commands) {
	pos := rl.GetMousePosition()
	mx, my := int32(pos.X), int32(pos.Y)

	if !rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		d.dragging = false
		d.lastMouseX, d.lastMouseY = mx, my
		return
	}

	wx, wy := cam.ScreenToWorld(pos.X, pos.Y)
	if !d.dragging {
		d.dragging = true
		d.lastMouseX, d.lastMouseY = mx, my
	}
	pwx, pwy := cam.ScreenToWorld(float32(d.lastMouseX), float32(d.lastMouseY))

	cmds.Paints = append(cmds.Paints, PaintCommand{
		PrevX: int(pwx), PrevY: int(pwy),
		CurrX: int(wx), CurrY: int(wy),
		Radius:   d.brushRadius,
		Material: d.brush,
	})

	d.lastMouseX, d.lastMouseY = mx, my
}
