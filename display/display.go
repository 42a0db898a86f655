// Package display provides the raylib-backed frame sink and input
// source for the sandbox command — the "renderer"/"input" side the
// spec treats as an external collaborator, kept separate from the
// engine so the core simulation never imports a windowing library.
package display

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/sandtick/engine/camera"
	"github.com/sandtick/engine/grid"
	"github.com/sandtick/engine/material"
)

// FrameSink draws one frame of the grid's read-only snapshot. Any
// renderer satisfying this interface can sit behind the sandbox
// command in place of Display.
type FrameSink interface {
	// Draw renders one frame of g using mat for cell colors, with the
	// camera determining which part of the grid is visible.
	Draw(g *grid.Grid, mat *material.Table, cam *camera.Camera)
	// Close releases any GPU resources held by the sink.
	Close()
}

// PaintCommand is one paint stroke gesture captured by an InputSource
// between two polls, in grid cell coordinates (spec.md §6
// paint_stroke(prev_xy, curr_xy, radius, material)).
type PaintCommand struct {
	PrevX, PrevY int
	CurrX, CurrY int
	Radius       int
	Material     material.ID
}

// Commands is the set of external-collaborator requests an
// InputSource can emit in a single poll (spec.md §6's paint_stroke,
// clear_world, set_paused/step_once, plus a brush-material cycle and
// an overlay cycle left for the frame sink to interpret).
type Commands struct {
	Paints       []PaintCommand
	ClearWorld   bool
	TogglePause  bool
	StepOnce     bool
	CycleBrush   int // +1 / -1 / 0
	CycleOverlay int // +1 / -1 / 0
	Quit         bool
}

// InputSource polls for the next batch of external-collaborator
// commands. Display implements this by polling raylib's event queue;
// a test double can implement it by replaying a scripted command
// sequence.
type InputSource interface {
	Poll(cam *camera.Camera) Commands
	ShouldClose() bool
}

// Display is the default FrameSink/InputSource: a single raylib
// window whose grid texture is rebuilt from the material/color-seed
// fields once per frame and blitted scaled to the window (grounded on
// renderer/resource_fog.go's GenImageColor-once/UpdateTexture-per-
// frame pattern), with keyboard/mouse polling grounded on
// game/input.go's handleInput/handleCameraInput.
type Display struct {
	tex          rl.Texture2D
	pixels       []color.RGBA
	gridW, gridH int
	initialized  bool

	lastMouseX, lastMouseY int32
	dragging               bool

	brush       material.ID
	brushRadius int
}

// New creates an uninitialized Display; Init must be called once a
// raylib window exists (via rl.InitWindow) and the grid's dimensions
// are known.
func New() *Display {
	return &Display{brush: material.Sand, brushRadius: 3}
}

// Init allocates the GPU texture and CPU pixel buffer sized to the
// grid. Safe to call once; later calls are no-ops.
func (d *Display) Init(gridW, gridH int) {
	if d.initialized {
		return
	}
	d.gridW, d.gridH = gridW, gridH
	d.pixels = make([]color.RGBA, gridW*gridH)

	img := rl.GenImageColor(gridW, gridH, rl.Black)
	d.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	// Point filtering keeps cell edges crisp when scaled up, matching
	// the blocky look of a per-cell simulation rather than smoothing
	// it into a blur.
	rl.SetTextureFilter(d.tex, rl.FilterPoint)

	d.initialized = true
}

// Draw rebuilds the pixel buffer from g's material/color-seed fields
// and uploads it to the GPU texture, then blits it scaled to fill the
// current window.
func (d *Display) Draw(g *grid.Grid, mat *material.Table, cam *camera.Camera) {
	w, h := g.Dimensions()
	if !d.initialized {
		d.Init(w, h)
	}
	if w != d.gridW || h != d.gridH {
		// Grid dimensions changed under us (a new scenario); rebuild.
		d.unloadTexture()
		d.Init(w, h)
	}

	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			r, gr, b, a := g.GetCellColor(x, y, mat)
			d.pixels[row+x] = color.RGBA{R: r, G: gr, B: b, A: a}
		}
	}
	rl.UpdateTexture(d.tex, d.pixels)

	screenW := float32(rl.GetScreenWidth())
	screenH := float32(rl.GetScreenHeight())
	if cam != nil {
		cam.Resize(screenW, screenH)
	}

	srcRect := rl.Rectangle{Width: float32(w), Height: float32(h)}
	dstRect := rl.Rectangle{Width: screenW, Height: screenH}
	rl.DrawTexturePro(d.tex, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
}

// Close unloads the GPU texture.
func (d *Display) Close() {
	d.unloadTexture()
}

func (d *Display) unloadTexture() {
	if !d.initialized {
		return
	}
	rl.UnloadTexture(d.tex)
	d.initialized = false
}

// ShouldClose reports whether the raylib window has been asked to
// close (window X button or raylib's default exit key, Escape).
func (d *Display) ShouldClose() bool {
	return rl.WindowShouldClose()
}
