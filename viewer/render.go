package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/shoal/renderer"
	"github.com/pthm-cable/shoal/ui"
)

const controlsLegend = "Space pause | ,/. speed | Arrows/MMB orbit | WASD/QE pan | Wheel zoom | Home reset | O overlays | Click select"

// Draw renders one frame.
func (v *Viewer) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	v.background.Draw(v.camera.Pitch)

	rl.BeginMode3D(renderer.Camera3D(v.camera))
	v.school.Draw(v.camera, v.g, v.schoolOptions())
	if v.overlays.IsEnabled(ui.OverlayPerception) {
		v.inspector.DrawSelectionHighlight(v.g)
	}
	rl.EndMode3D()

	v.drawUI()

	rl.EndDrawing()
}

// schoolOptions maps overlay state to renderer options.
func (v *Viewer) schoolOptions() renderer.SchoolOptions {
	opts := renderer.SchoolOptions{
		Upper:        float32(v.cfg.Boundary.Upper),
		Lower:        float32(v.cfg.Boundary.Lower),
		ShowBand:     v.overlays.IsEnabled(ui.OverlayDepthBand),
		ShowVelocity: v.overlays.IsEnabled(ui.OverlayVelocity),
		Mode:         renderer.ColorByDepth,
	}
	if v.overlays.IsEnabled(ui.OverlaySpeedColors) {
		opts.Mode = renderer.ColorBySpeed
	}
	if v.overlays.IsEnabled(ui.OverlayContainment) && v.cfg.Containment.Enabled {
		opts.ContainmentRadius = float32(v.cfg.Containment.Radius)
	}
	return opts
}

// drawUI renders HUD and panels on top of the scene.
func (v *Viewer) drawUI() {
	selected, hasSelected := v.inspector.Selected()
	viewers := 0
	if v.viewers != nil {
		viewers = v.viewers.ClientCount()
	}

	v.hud.Draw(ui.HUDData{
		Title:       "Shoal",
		FishCount:   v.g.FishCount(),
		Tick:        v.g.Tick(),
		Speed:       v.g.StepsPerUpdate(),
		FPS:         rl.GetFPS(),
		Paused:      v.g.Paused(),
		Viewers:     viewers,
		SelectedID:  selected,
		HasSelected: hasSelected,
	})

	actions := v.simControls.Draw(ui.SimState{
		Paused:         v.g.Paused(),
		StepsPerUpdate: v.g.StepsPerUpdate(),
		FishCount:      v.g.FishCount(),
	})
	v.applyActions(actions)

	v.controls.Draw(v.overlays)

	if v.overlays.IsEnabled(ui.OverlayPassTimings) {
		v.perfPanel.Draw(v.g.PerfStats(), v.g.Passes())
	}
	if v.overlays.IsEnabled(ui.OverlaySchoolMetrics) {
		v.schoolPanel.Draw(v.g.LastStats())
	}

	v.inspector.Draw(v.g)

	v.hud.DrawControls(int32(v.screenHeight), controlsLegend)
}
