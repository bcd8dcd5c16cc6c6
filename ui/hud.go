package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/shoal/systems"
	"github.com/pthm-cable/shoal/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title       string
	FishCount   int
	Tick        int32
	Speed       int
	FPS         int32
	Paused      bool
	Viewers     int
	SelectedID  uint32
	HasSelected bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Fish: %d | Tick: %d | Speed: %dx | FPS: %d", data.FishCount, data.Tick, data.Speed, data.FPS),
		10, 35, 16, rl.LightGray,
	)

	info := "No selection"
	if data.HasSelected {
		info = fmt.Sprintf("Selected: #%d", data.SelectedID)
	}
	if data.Viewers > 0 {
		info += fmt.Sprintf(" | Viewers: %d", data.Viewers)
	}
	rl.DrawText(info, 10, 55, 16, rl.LightGray)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders average time per steering pass.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel. Passes appear in tick order.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, passes *systems.PassRegistry) {
	x := p.x
	y := p.y

	rl.DrawText("Steering Passes", x, y, 16, rl.White)
	y += 20

	rl.DrawText(
		fmt.Sprintf("Tick: %s (%.0f/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond),
		x, y, 14, rl.Yellow,
	)
	y += 16

	steering := stats.PhaseAvg[telemetry.PhaseSteering]
	for _, info := range passes.All() {
		avg, ok := stats.PassAvg[info.ID]
		if !ok {
			continue
		}
		pct := float64(0)
		if steering > 0 {
			pct = float64(avg) / float64(steering) * 100
		}

		color := rl.LightGray
		if pct > 30 {
			color = rl.Red
		} else if pct > 15 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-18s %8s %5.1f%%", info.Name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// SchoolPanel renders the most recent telemetry window.
type SchoolPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	sections []SectionDescriptor
}

// NewSchoolPanel creates a school metrics panel.
func NewSchoolPanel(x, y, width int32) *SchoolPanel {
	return &SchoolPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		sections: SchoolSections(),
	}
}

// SetPosition updates the panel position.
func (s *SchoolPanel) SetPosition(x, y int32) {
	s.x = x
	s.y = y
}

// Draw renders the panel. Nothing is drawn before the first window flushes.
func (s *SchoolPanel) Draw(stats telemetry.WindowStats) {
	if stats.WindowEndTick == 0 {
		return
	}

	r := s.renderer
	padding := r.Theme.Padding

	height := padding*2 + r.Theme.LineHeight + 4
	for _, sec := range s.sections {
		height += sec.Height(r.Theme)
	}
	r.DrawPanel(s.x, s.y, s.width, height)

	y := s.y + padding
	rl.DrawText(fmt.Sprintf("School @ %.0fs", stats.SimTimeSec), s.x+padding, y, 14, rl.White)
	y += r.Theme.LineHeight + 4

	for _, sec := range s.sections {
		y = r.DrawSection(s.x+padding, y, sec, stats, s.width-padding*2)
	}
}

// SchoolSections describes the fields shown by the school panel.
func SchoolSections() []SectionDescriptor {
	get := func(f func(telemetry.WindowStats) float64) func(any) float32 {
		return func(d any) float32 {
			st, ok := d.(telemetry.WindowStats)
			if !ok {
				return 0
			}
			return float32(f(st))
		}
	}

	return []SectionDescriptor{
		{
			ID:    "shape",
			Title: "Shape",
			Fields: []FieldDescriptor{
				{ID: "fish", Label: "Fish", Widget: WidgetText, Format: "%.0f",
					Getter: get(func(s telemetry.WindowStats) float64 { return float64(s.FishCount) })},
				{ID: "polarization", Label: "Polarization", Widget: WidgetBar, Range: DefaultRange(),
					Getter: get(func(s telemetry.WindowStats) float64 { return s.Polarization })},
				{ID: "nearest", Label: "Nearest", Widget: WidgetText, Format: "%.2f",
					Getter: get(func(s telemetry.WindowStats) float64 { return s.NearestMean })},
				{ID: "spread", Label: "Spread", Widget: WidgetText, Format: "%.1f",
					Getter: get(func(s telemetry.WindowStats) float64 { return s.Spread })},
			},
		},
		{
			ID:    "speed",
			Title: "Speed",
			Fields: []FieldDescriptor{
				{ID: "speed_mean", Label: "Mean", Widget: WidgetText, Format: "%.2f",
					Getter: get(func(s telemetry.WindowStats) float64 { return s.SpeedMean })},
				{ID: "speed_p10_p90", Label: "P10-P90", Widget: WidgetText,
					TextGetter: func(d any) string {
						st, _ := d.(telemetry.WindowStats)
						return fmt.Sprintf("%.2f - %.2f", st.SpeedP10, st.SpeedP90)
					}},
				{ID: "active_speed", Label: "Target", Widget: WidgetText, Format: "%.2f",
					Getter: get(func(s telemetry.WindowStats) float64 { return s.ActiveSpeedMean })},
				{ID: "stalled", Label: "Stalled", Widget: WidgetText, Format: "%.0f",
					Visible: func(d any) bool {
						st, _ := d.(telemetry.WindowStats)
						return st.Stalled > 0
					},
					Getter: get(func(s telemetry.WindowStats) float64 { return float64(s.Stalled) })},
			},
		},
		{
			ID:    "depth",
			Title: "Depth",
			Fields: []FieldDescriptor{
				{ID: "depth_mean", Label: "Mean", Widget: WidgetText, Format: "%.1f",
					Getter: get(func(s telemetry.WindowStats) float64 { return s.DepthMean })},
				{ID: "depth_range", Label: "Range", Widget: WidgetText,
					TextGetter: func(d any) string {
						st, _ := d.(telemetry.WindowStats)
						return fmt.Sprintf("%.1f .. %.1f", st.DepthMin, st.DepthMax)
					}},
				{ID: "out_of_band", Label: "Out of band", Widget: WidgetText,
					TextGetter: func(d any) string {
						st, _ := d.(telemetry.WindowStats)
						return fmt.Sprintf("%d above, %d below", st.AboveBand, st.BelowBand)
					}},
			},
		},
	}
}
