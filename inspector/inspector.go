// Package inspector renders a panel for one selected fish using reflection
// over its components' inspect tags.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/shoal/camera"
	"github.com/pthm-cable/shoal/game"
	"github.com/pthm-cable/shoal/renderer"
)

// Panel dimensions
const (
	PanelWidth   = 320
	PanelPadding = 10
	HeaderHeight = 30

	// Max screen distance in pixels for a click to select a fish
	PickRadius = 14
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
	ColorViewRange   = rl.Color{R: 120, G: 200, B: 255, A: 70}
	ColorMinRange    = rl.Color{R: 255, G: 140, B: 90, A: 90}
)

// Inspector manages fish selection and panel rendering.
type Inspector struct {
	selected     uint32
	hasSelected  bool
	panelX       int32
	panelY       int32
	screenWidth  int32
	screenHeight int32
}

// NewInspector creates a new inspector instance.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	ins := &Inspector{}
	ins.Resize(screenWidth, screenHeight)
	return ins
}

// Resize moves the panel to the right edge of the new screen size.
func (ins *Inspector) Resize(screenWidth, screenHeight int32) {
	ins.screenWidth = screenWidth
	ins.screenHeight = screenHeight
	ins.panelX = screenWidth - PanelWidth - 10
	ins.panelY = 10
}

// HandleInput processes click detection for fish selection.
func (ins *Inspector) HandleInput(mouseX, mouseY float32, cam *camera.Camera, g *game.Game) {
	// Right click or Escape to deselect
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return
	}

	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	if ins.hasSelected {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		if int32(mouseX) >= closeX && int32(mouseX) <= closeX+20 &&
			int32(mouseY) >= closeY && int32(mouseY) <= closeY+20 {
			ins.Deselect()
			return
		}

		// Clicks inside the panel never select
		if int32(mouseX) >= ins.panelX && int32(mouseX) <= ins.panelX+PanelWidth &&
			int32(mouseY) >= ins.panelY {
			return
		}
	}

	if id, ok := Pick(mouseX, mouseY, cam, g); ok {
		ins.Select(id)
	}
}

// Pick returns the fish whose projection is nearest the screen point,
// preferring fish closer to the camera when several fall within PickRadius.
func Pick(sx, sy float32, cam *camera.Camera, g *game.Game) (uint32, bool) {
	var best uint32
	bestScore := float32(-1)
	eye := cam.Eye()

	g.EachFish(func(f game.FishState) {
		px, py, ok := cam.WorldToScreen(f.Pos)
		if !ok {
			return
		}
		dx, dy := px-sx, py-sy
		d2 := dx*dx + dy*dy
		if d2 > PickRadius*PickRadius {
			return
		}
		score := d2 + f.Pos.Sub(eye).LenSqr()
		if bestScore < 0 || score < bestScore {
			best = f.ID
			bestScore = score
		}
	})

	return best, bestScore >= 0
}

// Select marks a fish as selected.
func (ins *Inspector) Select(id uint32) {
	ins.selected = id
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the currently selected fish ID.
func (ins *Inspector) Selected() (uint32, bool) {
	return ins.selected, ins.hasSelected
}

// Draw renders the inspector panel if a fish is selected.
func (ins *Inspector) Draw(g *game.Game) {
	if !ins.hasSelected {
		return
	}

	fish, ok := g.Fish(ins.selected)
	if !ok {
		// Fish was despawned
		ins.Deselect()
		return
	}
	speed, wander, flock, _ := g.FishComponents(ins.selected)

	sections := []struct {
		title     string
		component any
	}{
		{"SPEED", speed},
		{"WANDER", wander},
		{"PERCEPTION", flock},
	}

	panelHeight := ins.calculatePanelHeight(len(sections))

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(panelHeight)},
		1,
		ColorPanelBorder,
	)

	// Header
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("INSPECTOR", ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	y := ins.panelY + HeaderHeight + PanelPadding
	x := ins.panelX + PanelPadding

	rl.DrawText(fmt.Sprintf("Fish #%d", fish.ID), x, y, 14, ColorHeaderText)
	y += 22

	rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
	y += 8

	y += DrawVec(x, y, "Position", fish.Pos, map[string]string{"max": "50"})
	y += DrawVec(x, y, "Velocity", fish.Vel, map[string]string{"max": "6"})
	y += DrawLabel(x, y, "Speed", fish.Vel.Len(), nil)

	for _, sec := range sections {
		y += 4
		rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
		y += 8

		ins.drawSectionHeader(x, y, sec.title)
		y += 20

		for _, field := range ExtractFields(sec.component) {
			y += DrawField(x, y, field)
		}
	}
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

// calculatePanelHeight computes the dynamic panel height.
func (ins *Inspector) calculatePanelHeight(sections int) int32 {
	height := HeaderHeight + PanelPadding // header
	height += 22                           // ID line
	height += 8                            // separator
	height += 32 * 2                       // position and velocity
	height += 20                           // speed
	height += sections * (12 + 20)         // separators and headers
	height += 20 * 4                       // speed fields
	height += 44*2 + 20*4                  // wander fields
	height += 44 + 20*2                    // perception fields
	height += PanelPadding

	if limit := int(ins.screenHeight) - 20; limit > 0 && height > limit {
		height = limit
	}
	return int32(height)
}

// DrawSelectionHighlight draws the selected fish's perception ranges.
// Must be called between rl.BeginMode3D and rl.EndMode3D.
func (ins *Inspector) DrawSelectionHighlight(g *game.Game) {
	if !ins.hasSelected {
		return
	}

	fish, ok := g.Fish(ins.selected)
	if !ok {
		return
	}
	_, _, flock, _ := g.FishComponents(ins.selected)

	center := renderer.V3(fish.Pos)
	rl.DrawSphereWires(center, flock.ViewDistance, 8, 12, ColorViewRange)
	rl.DrawSphereWires(center, flock.MinDistance, 6, 8, ColorMinRange)
	rl.DrawLine3D(center, renderer.V3(fish.Pos.Add(fish.Vel)), rl.Yellow)
}
