package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const twoPi = 2 * math.Pi

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// abs32 returns the absolute value of v.
func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// sign32 returns -1, 0 or 1.
func sign32(v float32) float32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// direction returns the unit vector of v. A zero vector has no direction.
func direction(v mgl32.Vec3) (mgl32.Vec3, bool) {
	l := v.Len()
	if l == 0 {
		return mgl32.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// acos32 is acos with the argument clamped to [-1, 1] so rounding never yields NaN.
func acos32(c float32) float32 {
	return float32(math.Acos(float64(clampFloat(c, -1, 1))))
}
