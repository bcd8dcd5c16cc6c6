package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a progress bar for value within rng.
func (r *Renderer) DrawBar(x, y int32, label string, value float32, rng FieldRange, width int32) int32 {
	ratio := normalize(value, rng)

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)

	fillColor := r.Theme.BarFill
	if ratio < 0.3 {
		fillColor = r.Theme.BarFillLow
	} else if ratio > 0.8 {
		fillColor = r.Theme.BarFillHigh
	}
	fillWidth := int32(float32(barWidth) * ratio)
	rl.DrawRectangle(barX, y+2, fillWidth, r.Theme.BarHeight, fillColor)

	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// DrawCenteredBar draws a bar growing from the middle of rng.
func (r *Renderer) DrawCenteredBar(x, y int32, label string, value float32, rng FieldRange, width int32) int32 {
	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)

	centerX := barX + barWidth/2
	rl.DrawLine(centerX, y+2, centerX, y+2+r.Theme.BarHeight, rl.Color{R: 80, G: 80, B: 80, A: 255})

	// Offset of value from the middle, in [-1, 1]
	offset := normalize(value, rng)*2 - 1
	fillWidth := int32(float32(barWidth/2) * offset)

	fillX := centerX
	barColor := r.Theme.BarFillPositive
	if fillWidth < 0 {
		fillX = centerX + fillWidth
		fillWidth = -fillWidth
		barColor = r.Theme.BarFillNegative
	}
	rl.DrawRectangle(fillX, y+2, fillWidth, r.Theme.BarHeight, barColor)

	rl.DrawText(fmt.Sprintf("%+.2f", value), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// DrawField renders a field based on its descriptor.
func (r *Renderer) DrawField(x, y int32, fd FieldDescriptor, data any, width int32) int32 {
	switch fd.Widget {
	case WidgetText:
		var text string
		if fd.TextGetter != nil {
			text = fd.TextGetter(data)
		} else if fd.Getter != nil {
			text = fmt.Sprintf(fd.Format, fd.Getter(data))
		}
		return r.DrawLabelValue(x, y, fd.Label, text)

	case WidgetBar:
		value := float32(0)
		if fd.Getter != nil {
			value = fd.Getter(data)
		}
		return r.DrawBar(x, y, fd.Label, value, fd.Range, width)

	case WidgetCenteredBar:
		value := float32(0)
		if fd.Getter != nil {
			value = fd.Getter(data)
		}
		return r.DrawCenteredBar(x, y, fd.Label, value, fd.Range, width)

	case WidgetSection:
		return r.DrawSectionHeader(x, y, fd.Label)

	case WidgetSpacer:
		return y + 6
	}

	return y
}

// DrawSection renders a section with header and fields.
func (r *Renderer) DrawSection(x, y int32, sd SectionDescriptor, data any, width int32) int32 {
	if sd.Visible != nil && !sd.Visible(data) {
		return y
	}

	if sd.Title != "" {
		y = r.DrawSectionHeader(x, y, sd.Title)
	}

	for _, fd := range sd.Fields {
		if fd.Visible != nil && !fd.Visible(data) {
			continue
		}
		y = r.DrawField(x, y, fd, data, width)
	}

	return y + 4 // Small gap after section
}

// normalize maps value into [0, 1] over rng.
func normalize(value float32, rng FieldRange) float32 {
	span := rng.Max - rng.Min
	if span <= 0 {
		return 0
	}
	t := (value - rng.Min) / span
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
