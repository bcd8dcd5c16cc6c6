package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNew(t *testing.T) {
	cam := New(1280, 720)

	if cam.Distance != defaultDistance {
		t.Errorf("expected distance %d, got %f", defaultDistance, cam.Distance)
	}
	eyeDist := cam.Eye().Sub(cam.Target).Len()
	if math.Abs(float64(eyeDist-cam.Distance)) > 1e-3 {
		t.Errorf("eye should be %f from target, got %f", cam.Distance, eyeDist)
	}
}

func TestTargetProjectsToScreenCenter(t *testing.T) {
	cam := New(1280, 720)

	sx, sy, ok := cam.WorldToScreen(cam.Target)
	if !ok {
		t.Fatal("target should be in front of the camera")
	}
	if math.Abs(float64(sx-640)) > 0.5 || math.Abs(float64(sy-360)) > 0.5 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestHigherPointProjectsHigherOnScreen(t *testing.T) {
	cam := New(1280, 720)

	_, centerY, _ := cam.WorldToScreen(cam.Target)
	_, upY, ok := cam.WorldToScreen(cam.Target.Add(mgl32.Vec3{0, 2, 0}))
	if !ok {
		t.Fatal("point should be in front of the camera")
	}
	if upY >= centerY {
		t.Errorf("point above target should have smaller screen y: %f >= %f", upY, centerY)
	}
}

func TestBehindCamera(t *testing.T) {
	cam := New(1280, 720)

	behind := cam.Eye().Sub(cam.Forward().Mul(10))
	if _, _, ok := cam.WorldToScreen(behind); ok {
		t.Error("point behind eye should not project")
	}
	if cam.IsVisible(behind, 1) {
		t.Error("point behind eye should not be visible")
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720)

	if !cam.IsVisible(cam.Target, 1) {
		t.Error("target should be visible")
	}

	// Far to the side of the view axis
	side := cam.Forward().Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	if cam.IsVisible(cam.Target.Add(side.Mul(500)), 1) {
		t.Error("far side point should not be visible")
	}

	// Eye inside the sphere
	if !cam.IsVisible(cam.Eye(), 2) {
		t.Error("sphere containing the eye should be visible")
	}
}

func TestOrbitClampsPitchAndWrapsYaw(t *testing.T) {
	cam := New(1280, 720)

	cam.Orbit(0, 10)
	if cam.Pitch != cam.MaxPitch {
		t.Errorf("expected pitch clamped to %f, got %f", cam.MaxPitch, cam.Pitch)
	}
	cam.Orbit(0, -20)
	if cam.Pitch != -cam.MaxPitch {
		t.Errorf("expected pitch clamped to %f, got %f", -cam.MaxPitch, cam.Pitch)
	}

	cam.Yaw = 0
	cam.Orbit(-0.5, 0)
	if cam.Yaw < 0 || cam.Yaw >= 2*math.Pi {
		t.Errorf("yaw should wrap into [0, 2π), got %f", cam.Yaw)
	}
}

func TestDistanceClamp(t *testing.T) {
	cam := New(1280, 720)

	cam.SetDistance(0.1)
	if cam.Distance != cam.MinDistance {
		t.Errorf("expected distance clamped to %f, got %f", cam.MinDistance, cam.Distance)
	}
	cam.SetDistance(1e6)
	if cam.Distance != cam.MaxDistance {
		t.Errorf("expected distance clamped to %f, got %f", cam.MaxDistance, cam.Distance)
	}

	cam.SetDistance(100)
	cam.ZoomBy(2)
	if cam.Distance != 50 {
		t.Errorf("expected zooming in to halve distance, got %f", cam.Distance)
	}
	cam.ZoomBy(0)
	if cam.Distance != 50 {
		t.Errorf("zero factor should be ignored, got %f", cam.Distance)
	}
}

func TestPanStaysHorizontal(t *testing.T) {
	cam := New(1280, 720)
	start := cam.Target

	cam.Pan(3, 4)
	moved := cam.Target.Sub(start)
	if moved.Y() != 0 {
		t.Errorf("pan should not change depth, got %v", moved)
	}
	if math.Abs(float64(moved.Len()-5)) > 1e-4 {
		t.Errorf("expected pan distance 5, got %f", moved.Len())
	}

	// Forward pan moves toward where the camera looks
	cam.Target = start
	cam.Pan(0, 1)
	fwd := cam.Forward()
	if cam.Target.Sub(start).Dot(mgl32.Vec3{fwd.X(), 0, fwd.Z()}) <= 0 {
		t.Error("forward pan should move along the view direction")
	}
}

func TestFollow(t *testing.T) {
	cam := New(1280, 720)
	cam.Target = mgl32.Vec3{}

	cam.Follow(mgl32.Vec3{10, 0, 0}, 0.5)
	if cam.Target != (mgl32.Vec3{5, 0, 0}) {
		t.Errorf("expected halfway target, got %v", cam.Target)
	}
	cam.Follow(mgl32.Vec3{10, 0, 0}, 3)
	if cam.Target != (mgl32.Vec3{10, 0, 0}) {
		t.Errorf("rate above 1 should snap to target, got %v", cam.Target)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720)
	cam.Target = mgl32.Vec3{50, 0, 50}
	cam.Yaw = 2
	cam.SetDistance(200)

	cam.Reset()

	if cam.Target != (mgl32.Vec3{0, -10, 0}) {
		t.Errorf("expected default target, got %v", cam.Target)
	}
	if cam.Yaw != defaultYaw || cam.Distance != defaultDistance {
		t.Errorf("expected default orbit, got yaw=%f distance=%f", cam.Yaw, cam.Distance)
	}
}
