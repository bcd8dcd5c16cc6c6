package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/shoal/ui"
)

const (
	orbitSpeed  = 1.6  // radians per second
	panSpeed    = 0.6  // fraction of orbit distance per second
	dragOrbit   = 0.01 // radians per dragged pixel
	followRate  = 0.05 // fraction of the way to the centroid per frame
	wheelZoom   = 0.1
	keyZoomStep = 1.25
)

// handleInput processes keyboard and mouse input.
func (v *Viewer) handleInput() {
	v.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		v.g.SetPaused(!v.g.Paused())
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		v.g.SetStepsPerUpdate(v.g.StepsPerUpdate() - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		v.g.SetStepsPerUpdate(v.g.StepsPerUpdate() + 1)
	}

	if rl.IsKeyPressed(rl.KeyO) {
		v.controls.Toggle()
	}
	for _, key := range v.overlays.Keys() {
		if rl.IsKeyPressed(key) {
			v.overlays.HandleKeyPress(key)
		}
	}

	v.handleCameraInput()

	mouse := rl.GetMousePosition()
	if !v.simControls.Contains(mouse.X, mouse.Y) {
		v.inspector.HandleInput(mouse.X, mouse.Y, v.camera, v.g)
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (v *Viewer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == v.screenWidth && h == v.screenHeight {
		return
	}
	v.screenWidth = w
	v.screenHeight = h

	v.camera.Resize(w, h)
	v.background.Resize(int32(w), int32(h))
	v.inspector.Resize(int32(w), int32(h))
	v.layout()
}

// handleCameraInput processes orbit, pan, and zoom controls.
func (v *Viewer) handleCameraInput() {
	dt := rl.GetFrameTime()
	cam := v.camera

	// Arrow keys orbit
	if rl.IsKeyDown(rl.KeyLeft) {
		cam.Orbit(-orbitSpeed*dt, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		cam.Orbit(orbitSpeed*dt, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		cam.Orbit(0, orbitSpeed*dt)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		cam.Orbit(0, -orbitSpeed*dt)
	}

	// WASD pans, Q/E lifts; any manual move stops following
	step := cam.Distance * panSpeed * dt
	moved := false
	if rl.IsKeyDown(rl.KeyW) {
		cam.Pan(0, step)
		moved = true
	}
	if rl.IsKeyDown(rl.KeyS) {
		cam.Pan(0, -step)
		moved = true
	}
	if rl.IsKeyDown(rl.KeyA) {
		cam.Pan(-step, 0)
		moved = true
	}
	if rl.IsKeyDown(rl.KeyD) {
		cam.Pan(step, 0)
		moved = true
	}
	if rl.IsKeyDown(rl.KeyE) {
		cam.Lift(step)
		moved = true
	}
	if rl.IsKeyDown(rl.KeyQ) {
		cam.Lift(-step)
		moved = true
	}
	if moved {
		v.overlays.SetEnabled(ui.OverlayFollowSchool, false)
	}

	// Middle drag orbits
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		d := rl.GetMouseDelta()
		cam.Orbit(d.X*dragOrbit, d.Y*dragOrbit)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		cam.ZoomBy(1 + wheel*wheelZoom)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		cam.ZoomBy(keyZoomStep)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		cam.ZoomBy(1 / keyZoomStep)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		v.resetCamera()
	}

	if v.overlays.IsEnabled(ui.OverlayFollowSchool) && v.g.FishCount() > 0 {
		cam.Follow(v.g.Centroid(), followRate)
	}
}

// resetCamera restores the default orbit around the school and resumes following.
func (v *Viewer) resetCamera() {
	v.camera.Reset()
	v.camera.Target = v.g.Centroid()
	v.overlays.SetEnabled(ui.OverlayFollowSchool, true)
}

// applyActions applies what the sim controls asked for this frame.
func (v *Viewer) applyActions(a ui.SimActions) {
	if a.TogglePause {
		v.g.SetPaused(!v.g.Paused())
	}
	if a.Step && v.g.Paused() {
		v.g.Step(v.cfg.Derived.DT32)
	}
	if a.StepsPerUpdate != v.g.StepsPerUpdate() {
		v.g.SetStepsPerUpdate(a.StepsPerUpdate)
	}
	if a.Spawn > 0 {
		v.g.Spawn(a.Spawn)
	}
	if a.Despawn > 0 {
		v.g.DespawnRandom(a.Despawn)
	}
	if a.ResetCamera {
		v.resetCamera()
	}
}
