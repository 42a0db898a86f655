// Command terrainpreview is an interactive tuner for the scenario
// package's fractal-noise parameters, rendering the raw heightmap live
// as sliders move, grounded on the teacher's potential-field preview
// tool (same raylib+raygui slider-panel layout, same live-texture
// regeneration loop) but tuning scenario.NoiseConfig instead of a
// resource-field potential.
//
// Usage: go run ./cmd/terrainpreview
package main

import (
	"fmt"
	"image/color"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/sandtick/engine/scenario"
)

const (
	windowWidth  = 1000
	windowHeight = 640
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Terrain Noise Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	cfg := scenario.DefaultNoiseConfig()
	seed := int64(1)
	gen := scenario.NewGenerator(seed)

	gridSize := 256
	heights := make([]float64, gridSize*gridSize)

	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			sampleHeightmap(gen, cfg, heights, gridSize)
			updateTexture(texture, heights, gridSize)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(gridSize), Height: float32(gridSize)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0}, 0, rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		var minVal, maxVal, total float64 = 1, 0, 0
		for _, v := range heights {
			total += v
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Min: %.3f  Max: %.3f  Avg: %.3f", minVal, maxVal, total/float64(len(heights))),
			15, statsY, 16, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)
		rl.DrawText("Noise Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		newScale := labeledSlider(panelX, &panelY, "Scale (base frequency)", float32(cfg.Scale), 0.002, 0.08, "%.4f")
		if float64(newScale) != cfg.Scale {
			cfg.Scale = float64(newScale)
			needsRegen = true
		}

		newOctaves := labeledSlider(panelX, &panelY, "Octaves (FBM detail)", float32(cfg.Octaves), 1, 8, "%.0f")
		if int(newOctaves) != cfg.Octaves {
			cfg.Octaves = int(newOctaves)
			needsRegen = true
		}

		newLacunarity := labeledSlider(panelX, &panelY, "Lacunarity (frequency mult.)", float32(cfg.Lacunarity), 1.2, 4.0, "%.2f")
		if float64(newLacunarity) != cfg.Lacunarity {
			cfg.Lacunarity = float64(newLacunarity)
			needsRegen = true
		}

		newGain := labeledSlider(panelX, &panelY, "Gain (amplitude mult.)", float32(cfg.Gain), 0.2, 0.9, "%.2f")
		if float64(newGain) != cfg.Gain {
			cfg.Gain = float64(newGain)
			needsRegen = true
		}

		panelY += 10
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 150, Height: 30}, "Random Seed") {
			seed = int64(rl.GetRandomValue(0, 99999))
			gen = scenario.NewGenerator(seed)
			needsRegen = true
		}
		panelY += 40

		rl.DrawText(fmt.Sprintf("Seed: %d", seed), int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 25

		rl.DrawText("YAML:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 22
		for _, line := range []string{
			"noise:",
			fmt.Sprintf("  octaves: %d", cfg.Octaves),
			fmt.Sprintf("  scale: %.4f", cfg.Scale),
			fmt.Sprintf("  lacunarity: %.2f", cfg.Lacunarity),
			fmt.Sprintf("  gain: %.2f", cfg.Gain),
		} {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.EndDrawing()
	}
}

// labeledSlider draws a label above a raygui slider bar and advances
// *y past both, returning the slider's current value.
func labeledSlider(x float32, y *float32, label string, value, min, max float32, format string) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf(format, min), fmt.Sprintf(format, max), value, min, max,
	)
	rl.DrawText(fmt.Sprintf(format, v), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return v
}

// sampleHeightmap fills heights with gen's noise field sampled on a
// gridSize x gridSize lattice, each axis scaled to the full world
// coordinate range Terrain would use on a grid that size.
func sampleHeightmap(gen *scenario.Generator, cfg scenario.NoiseConfig, heights []float64, gridSize int) {
	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			heights[y*gridSize+x] = gen.SampleHeight(float64(x), float64(y), cfg)
		}
	}
}

// updateTexture maps heights in [0,1] to a dark-blue -> cyan ->
// yellow -> white gradient and uploads it to texture, the same
// gradient shape as the teacher's potential-field preview.
func updateTexture(texture rl.Texture2D, heights []float64, size int) {
	pixels := make([]color.RGBA, size*size)
	for i, v := range heights {
		var r, g, b uint8
		switch {
		case v < 0.25:
			t := v / 0.25
			r, g, b = uint8(10+t*30), uint8(20+t*60), uint8(60+t*100)
		case v < 0.5:
			t := (v - 0.25) / 0.25
			r, g, b = uint8(40+t*20), uint8(80+t*120), uint8(160+t*40)
		case v < 0.75:
			t := (v - 0.5) / 0.25
			r, g, b = uint8(60+t*140), uint8(200-t*40), uint8(200-t*150)
		default:
			t := (v - 0.75) / 0.25
			r, g, b = uint8(200+t*55), uint8(160+t*95), uint8(50+t*205)
		}
		pixels[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}
