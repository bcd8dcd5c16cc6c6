package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Widget colors
var (
	ColorBarBg       = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill     = rl.Color{R: 100, G: 180, B: 100, A: 255}
	ColorBarLow      = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorText        = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorAngleBg     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorAngleNeedle = rl.Color{R: 255, G: 200, B: 100, A: 255}
	ColorVecX        = rl.Color{R: 230, G: 110, B: 110, A: 255}
	ColorVecY        = rl.Color{R: 110, G: 210, B: 120, A: 255}
	ColorVecZ        = rl.Color{R: 110, G: 150, B: 240, A: 255}
)

// DrawLabel renders a text value.
func DrawLabel(x, y int32, name string, value any, options map[string]string) int32 {
	fmtStr := options["fmt"]
	text := FormatValue(value, fmtStr)
	rl.DrawText(fmt.Sprintf("%s: %s", name, text), x, y, 16, ColorText)
	return 20
}

// DrawBar renders a horizontal progress bar.
func DrawBar(x, y int32, name string, value float32, options map[string]string) int32 {
	maxVal := GetMax(options)
	ratio := value / maxVal
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}

	barWidth := int32(120)
	barHeight := int32(14)

	// Label
	rl.DrawText(name, x, y, 14, ColorTextDim)

	// Bar background
	barX := x + 80
	rl.DrawRectangle(barX, y, barWidth, barHeight, ColorBarBg)

	// Bar fill
	fillWidth := int32(float32(barWidth) * ratio)
	fillColor := ColorBarFill
	if ratio < 0.3 {
		fillColor = ColorBarLow
	}
	rl.DrawRectangle(barX, y, fillWidth, barHeight, fillColor)

	// Value text
	valueStr := fmt.Sprintf("%.2f", value)
	rl.DrawText(valueStr, barX+barWidth+5, y, 14, ColorTextDim)

	return 18
}

// DrawAngle renders a compass-style angle indicator.
func DrawAngle(x, y int32, name string, radians float32, options map[string]string) int32 {
	size := int32(40)
	centerX := x + 60 + size/2
	centerY := y + size/2

	// Label
	rl.DrawText(name, x, y+size/2-7, 14, ColorTextDim)

	// Circle background
	rl.DrawCircle(centerX, centerY, float32(size/2), ColorAngleBg)
	rl.DrawCircleLines(centerX, centerY, float32(size/2), ColorTextDim)

	// Needle
	needleLen := float32(size/2 - 4)
	endX := float32(centerX) + needleLen*float32(math.Cos(float64(radians)))
	endY := float32(centerY) + needleLen*float32(math.Sin(float64(radians)))
	rl.DrawLineEx(
		rl.Vector2{X: float32(centerX), Y: float32(centerY)},
		rl.Vector2{X: endX, Y: endY},
		2,
		ColorAngleNeedle,
	)

	// Angles are never wrapped, show the equivalent in [0, 360)
	degrees := float32(math.Mod(float64(radians)*180/math.Pi, 360))
	if degrees < 0 {
		degrees += 360
	}
	rl.DrawText(fmt.Sprintf("%.0f deg", degrees), x+60+size+5, y+size/2-7, 14, ColorTextDim)

	return size + 4
}

// DrawVec renders a vector as three signed bars scaled by the max option.
func DrawVec(x, y int32, name string, v mgl32.Vec3, options map[string]string) int32 {
	maxVal := GetMax(options)
	barWidth := int32(60)
	barHeight := int32(8)

	rl.DrawText(name, x, y, 14, ColorTextDim)
	rl.DrawText(FormatValue(v, ""), x+80, y, 14, ColorText)
	y += 18

	colors := [3]rl.Color{ColorVecX, ColorVecY, ColorVecZ}
	for i := 0; i < 3; i++ {
		bx := x + 80 + int32(i)*(barWidth+6)
		rl.DrawRectangle(bx, y, barWidth, barHeight, ColorBarBg)
		ratio := v[i] / maxVal
		if ratio > 1 {
			ratio = 1
		}
		if ratio < -1 {
			ratio = -1
		}
		half := barWidth / 2
		fill := int32(float32(half) * ratio)
		if fill >= 0 {
			rl.DrawRectangle(bx+half, y, fill, barHeight, colors[i])
		} else {
			rl.DrawRectangle(bx+half+fill, y, -fill, barHeight, colors[i])
		}
	}
	return 18 + barHeight + 6
}

// DrawField renders a field using its widget type.
func DrawField(x, y int32, field Field) int32 {
	switch field.Widget {
	case WidgetBar:
		if v, ok := GetFloatValue(field.Value); ok {
			return DrawBar(x, y, field.Name, v, field.Options)
		}
		return DrawLabel(x, y, field.Name, field.Value, field.Options)

	case WidgetAngle:
		if v, ok := GetFloatValue(field.Value); ok {
			return DrawAngle(x, y, field.Name, v, field.Options)
		}
		return DrawLabel(x, y, field.Name, field.Value, field.Options)

	case WidgetVec:
		if v, ok := field.Value.(mgl32.Vec3); ok {
			return DrawVec(x, y, field.Name, v, field.Options)
		}
		return DrawLabel(x, y, field.Name, field.Value, field.Options)

	default:
		return DrawLabel(x, y, field.Name, field.Value, field.Options)
	}
}

