// Package ui provides a descriptor-driven UI system for the simulation.
// Panels are described by field metadata so new statistics only need a
// descriptor, not new drawing code.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText        WidgetType = iota // Plain text with format string
	WidgetBar                           // Progress bar over Range
	WidgetCenteredBar                   // Bar growing from the middle of Range
	WidgetSection                       // Section header
	WidgetSpacer                        // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float32
	Max float32
}

// DefaultRange returns a [0, 1] range.
func DefaultRange() FieldRange {
	return FieldRange{Min: 0, Max: 1}
}

// CenteredRange returns a [-1, +1] range.
func CenteredRange() FieldRange {
	return FieldRange{Min: -1, Max: 1}
}

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	ID         string            // Unique identifier for the field
	Label      string            // Display label
	Widget     WidgetType        // How to render
	Format     string            // Printf format for text (e.g., "%.2f")
	Range      FieldRange        // Value range for bars
	Visible    func(any) bool    // Optional visibility check (nil = always visible)
	Getter     func(any) float32 // Value extractor (for numeric fields)
	TextGetter func(any) string  // Value extractor (for text fields)
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID      string            // Unique identifier
	Title   string            // Section header text
	Fields  []FieldDescriptor // Fields in this section
	Visible func(any) bool    // Optional visibility check for entire section
}

// Height returns the vertical space the section takes when every field is visible.
func (s SectionDescriptor) Height(t Theme) int32 {
	h := int32(4)
	if s.Title != "" {
		h += t.LineHeight
	}
	for _, f := range s.Fields {
		switch f.Widget {
		case WidgetBar, WidgetCenteredBar:
			h += t.LineHeight + 2
		case WidgetSpacer:
			h += 6
		default:
			h += t.LineHeight
		}
	}
	return h
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg         rl.Color
	PanelBorder     rl.Color
	SectionHeader   rl.Color
	LabelColor      rl.Color
	ValueColor      rl.Color
	BarBg           rl.Color
	BarFill         rl.Color
	BarFillLow      rl.Color
	BarFillHigh     rl.Color
	BarFillNegative rl.Color
	BarFillPositive rl.Color
	Padding         int32
	LineHeight      int32
	LabelWidth      int32
	BarHeight       int32
	FontSize        int32
	HeaderFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:         rl.Color{R: 15, G: 25, B: 35, A: 235},
		PanelBorder:     rl.Color{R: 60, G: 80, B: 95, A: 255},
		SectionHeader:   rl.Color{R: 140, G: 210, B: 235, A: 255},
		LabelColor:      rl.LightGray,
		ValueColor:      rl.LightGray,
		BarBg:           rl.Color{R: 35, G: 40, B: 45, A: 255},
		BarFill:         rl.Color{R: 100, G: 160, B: 210, A: 255},
		BarFillLow:      rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillHigh:     rl.Color{R: 100, G: 200, B: 140, A: 255},
		BarFillNegative: rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillPositive: rl.Color{R: 100, G: 200, B: 140, A: 255},
		Padding:         10,
		LineHeight:      16,
		LabelWidth:      90,
		BarHeight:       12,
		FontSize:        12,
		HeaderFontSize:  14,
	}
}
