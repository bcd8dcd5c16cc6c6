package inspector

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/shoal/components"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag        string
		wantWidget Widget
		wantOpts   map[string]string
	}{
		{"", WidgetAuto, map[string]string{}},
		{"bar,max:6", WidgetBar, map[string]string{"max": "6"}},
		{"angle", WidgetAngle, map[string]string{}},
		{"label, fmt:%.3f", WidgetLabel, map[string]string{"fmt": "%.3f"}},
		{"skip", WidgetSkip, map[string]string{}},
		{"mystery", WidgetAuto, map[string]string{}},
	}

	for _, tt := range tests {
		widget, opts := ParseTag(tt.tag)
		if widget != tt.wantWidget {
			t.Errorf("ParseTag(%q) widget = %v, want %v", tt.tag, widget, tt.wantWidget)
		}
		if len(opts) != len(tt.wantOpts) {
			t.Errorf("ParseTag(%q) options = %v, want %v", tt.tag, opts, tt.wantOpts)
			continue
		}
		for k, v := range tt.wantOpts {
			if opts[k] != v {
				t.Errorf("ParseTag(%q) option %s = %q, want %q", tt.tag, k, opts[k], v)
			}
		}
	}
}

func TestExtractFieldsFromComponents(t *testing.T) {
	flock := components.Flocking{ViewAngle: 3, ViewDistance: 5, MinDistance: 1.2}
	fields := ExtractFields(&flock)
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	if fields[0].Name != "ViewAngle" || fields[0].Widget != WidgetAngle {
		t.Errorf("unexpected first field: %+v", fields[0])
	}
	if fields[1].Options["fmt"] != "%.2f" {
		t.Errorf("expected fmt option on ViewDistance, got %v", fields[1].Options)
	}

	speed := components.MoveSpeed{Base: 3, Active: 2.5}
	for _, f := range ExtractFields(speed) {
		if f.Name == "Active" {
			if f.Widget != WidgetBar || GetMax(f.Options) != 6 {
				t.Errorf("Active should be a bar with max 6, got %+v", f)
			}
		}
	}
}

func TestExtractFieldsSkipsAndDetects(t *testing.T) {
	type sample struct {
		Pos    mgl32.Vec3
		Hidden float32 `inspect:"skip"`
		Count  int
		secret int
	}
	fields := ExtractFields(sample{Pos: mgl32.Vec3{1, 2, 3}, Count: 4, secret: 1})
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d: %+v", len(fields), fields)
	}
	if fields[0].Widget != WidgetVec {
		t.Errorf("Vec3 should auto-detect as vec widget, got %v", fields[0].Widget)
	}
	if fields[1].Widget != WidgetLabel {
		t.Errorf("int should auto-detect as label, got %v", fields[1].Widget)
	}

	if ExtractFields(3) != nil {
		t.Error("non-struct should yield no fields")
	}
	var nilFlock *components.Flocking
	if ExtractFields(nilFlock) != nil {
		t.Error("nil pointer should yield no fields")
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value any
		fmt   string
		want  string
	}{
		{float32(1.234), "", "1.23"},
		{float32(1.2344), "%.3f", "1.234"},
		{mgl32.Vec3{1, -2.5, 3}, "", "(1.0, -2.5, 3.0)"},
		{uint32(7), "", "7"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.value, tt.fmt); got != tt.want {
			t.Errorf("FormatValue(%v, %q) = %q, want %q", tt.value, tt.fmt, got, tt.want)
		}
	}
}

func TestGetMax(t *testing.T) {
	if GetMax(nil) != 1 {
		t.Error("missing max should default to 1")
	}
	if GetMax(map[string]string{"max": "abc"}) != 1 {
		t.Error("invalid max should default to 1")
	}
	if GetMax(map[string]string{"max": "0"}) != 1 {
		t.Error("zero max should default to 1")
	}
	if GetMax(map[string]string{"max": "200"}) != 200 {
		t.Error("expected parsed max 200")
	}
}
