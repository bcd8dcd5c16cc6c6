// Package viewer runs the interactive raylib window around a game.
package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/shoal/camera"
	"github.com/pthm-cable/shoal/config"
	"github.com/pthm-cable/shoal/game"
	"github.com/pthm-cable/shoal/inspector"
	"github.com/pthm-cable/shoal/renderer"
	"github.com/pthm-cable/shoal/ui"
)

// ViewerCounter reports how many observer clients are connected.
type ViewerCounter interface {
	ClientCount() int
}

// Viewer owns the window-side state: camera, renderers and panels.
type Viewer struct {
	g   *game.Game
	cfg *config.Config

	screenWidth, screenHeight float32

	camera     *camera.Camera
	background *renderer.BackgroundRenderer
	school     *renderer.SchoolRenderer
	inspector  *inspector.Inspector

	overlays    *ui.OverlayRegistry
	hud         *ui.HUD
	controls    *ui.ControlsPanel
	simControls *ui.SimControls
	perfPanel   *ui.PerfPanel
	schoolPanel *ui.SchoolPanel

	viewers ViewerCounter
}

// New creates a viewer for g. The raylib window must already be open.
func New(g *game.Game, cfg *config.Config, viewers ViewerCounter) *Viewer {
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())

	v := &Viewer{
		g:            g,
		cfg:          cfg,
		screenWidth:  w,
		screenHeight: h,
		camera:       camera.New(w, h),
		background:   renderer.NewBackgroundRenderer(int32(w), int32(h), 14, 52, 84),
		school:       renderer.NewSchoolRenderer(),
		inspector:    inspector.NewInspector(int32(w), int32(h)),
		overlays:     ui.NewOverlayRegistry(),
		hud:          ui.NewHUD(),
		controls:     ui.NewControlsPanel(10, 100, 220),
		simControls:  ui.NewSimControls(10, 100, 260),
		perfPanel:    ui.NewPerfPanel(10, 0),
		schoolPanel:  ui.NewSchoolPanel(0, 0, 260),
		viewers:      viewers,
	}
	v.layout()
	v.camera.Target = g.Centroid()

	// Escape clears the selection instead of closing the window
	rl.SetExitKey(rl.KeyNull)
	return v
}

// Run drives update and draw until the window closes or maxTicks is reached (0 = unlimited).
func (v *Viewer) Run(maxTicks int) {
	for !rl.WindowShouldClose() {
		v.handleInput()
		v.g.Update(rl.GetFrameTime())
		v.Draw()

		if maxTicks > 0 && int(v.g.Tick()) >= maxTicks {
			return
		}
	}
}

// Unload frees renderer resources.
func (v *Viewer) Unload() {
	v.background.Unload()
	v.school.Unload()
}

// layout positions panels for the current screen size.
func (v *Viewer) layout() {
	h := int32(v.screenHeight)
	w := int32(v.screenWidth)
	v.simControls.SetPosition(10, 100)
	v.controls.SetPosition(10, 100+v.simControls.Height()+10)
	v.perfPanel.SetPosition(10, h-260)
	v.schoolPanel.SetPosition(w-270, h-330)
}
