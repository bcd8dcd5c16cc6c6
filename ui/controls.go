package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsPanel renders the overlay toggle list.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Draw renders the controls panel and returns the Y below it.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	categories := overlays.Categories()
	totalItems := 0
	for _, cat := range categories {
		totalItems += len(overlays.ByCategory(cat)) + 1 // +1 for category header
	}
	panelHeight := int32(totalItems)*lineHeight + int32(len(categories))*4 + padding*2 + lineHeight + 4

	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding
	rl.DrawText("Overlays", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	for _, category := range categories {
		rl.DrawText(categoryLabel(category), c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}

		y += 4
	}

	return c.y + panelHeight
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 140, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "visual":
		return "Visual"
	case "camera":
		return "Camera"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}

// SimState is the simulation state shown by the sim controls.
type SimState struct {
	Paused         bool
	StepsPerUpdate int
	FishCount      int
}

// SimActions are the requests made through the sim controls this frame.
type SimActions struct {
	TogglePause    bool
	Step           bool
	StepsPerUpdate int // new value, equal to the current one when unchanged
	Spawn          int
	Despawn        int
	ResetCamera    bool
}

// SimControls renders pause, step, speed and population controls with raygui.
type SimControls struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewSimControls creates the sim control strip.
func NewSimControls(x, y, width int32) *SimControls {
	return &SimControls{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (s *SimControls) SetPosition(x, y int32) {
	s.x = x
	s.y = y
}

// Height returns the panel height.
func (s *SimControls) Height() int32 {
	return 2*s.renderer.Theme.Padding + 28*3 + 16
}

// Contains reports whether the screen point lies over the panel.
func (s *SimControls) Contains(px, py float32) bool {
	return px >= float32(s.x) && px <= float32(s.x+s.width) &&
		py >= float32(s.y) && py <= float32(s.y+s.Height())
}

// Draw renders the controls and returns what the user asked for.
func (s *SimControls) Draw(state SimState) SimActions {
	r := s.renderer
	padding := float32(r.Theme.Padding)
	r.DrawPanel(s.x, s.y, s.width, s.Height())

	actions := SimActions{StepsPerUpdate: state.StepsPerUpdate}

	x := float32(s.x) + padding
	y := float32(s.y) + padding
	inner := float32(s.width) - 2*padding
	buttonW := (inner - 8) / 3

	pauseText := "Pause"
	if state.Paused {
		pauseText = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: buttonW, Height: 24}, pauseText) {
		actions.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + buttonW + 4, Y: y, Width: buttonW, Height: 24}, "Step") {
		actions.Step = true
	}
	if gui.Button(rl.Rectangle{X: x + 2*(buttonW+4), Y: y, Width: buttonW, Height: 24}, "Camera") {
		actions.ResetCamera = true
	}
	y += 28

	rl.DrawText(fmt.Sprintf("Speed %dx", state.StepsPerUpdate), int32(x), int32(y)+4, r.Theme.FontSize, r.Theme.LabelColor)
	newSpeed := gui.SliderBar(
		rl.Rectangle{X: x + 70, Y: y, Width: inner - 90, Height: 20},
		"", "",
		float32(state.StepsPerUpdate), 1, 10,
	)
	actions.StepsPerUpdate = int(newSpeed + 0.5)
	y += 28

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: buttonW, Height: 24}, "+50 fish") {
		actions.Spawn = 50
	}
	if gui.Button(rl.Rectangle{X: x + buttonW + 4, Y: y, Width: buttonW, Height: 24}, "-50 fish") {
		actions.Despawn = min(50, state.FishCount)
	}
	rl.DrawText(fmt.Sprintf("%d", state.FishCount), int32(x+2*(buttonW+4)+6), int32(y)+6, r.Theme.FontSize, r.Theme.ValueColor)

	return actions
}
