package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayDepthColors   OverlayID = "depth_colors"
	OverlaySpeedColors   OverlayID = "speed_colors"
	OverlayDepthBand     OverlayID = "depth_band"
	OverlayContainment   OverlayID = "containment"
	OverlayVelocity      OverlayID = "velocity"
	OverlayPerception    OverlayID = "perception"
	OverlayFollowSchool  OverlayID = "follow_school"
	OverlayPassTimings   OverlayID = "pass_timings"
	OverlaySchoolMetrics OverlayID = "school_metrics"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID   // Unique identifier
	Name        string      // Display name
	Description string      // What this overlay shows
	Key         int32       // Keyboard key to toggle (0 = no key)
	KeyLabel    string      // Key label for display (e.g., "S", "V")
	Category    string      // Grouping (e.g., "visual", "debug")
	Exclusive   []OverlayID // Other overlays to disable when this is enabled
	Default     bool        // Enabled at startup
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
	order       []OverlayID // Maintains insertion order for display
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds standard overlays.
func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayDepthColors,
		Name:        "Depth Colors",
		Description: "Shade fish by depth within the band",
		Key:         rl.KeyC,
		KeyLabel:    "C",
		Category:    "visual",
		Exclusive:   []OverlayID{OverlaySpeedColors},
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlaySpeedColors,
		Name:        "Speed Colors",
		Description: "Shade fish by speed relative to their target",
		Key:         rl.KeyX,
		KeyLabel:    "X",
		Category:    "visual",
		Exclusive:   []OverlayID{OverlayDepthColors},
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayDepthBand,
		Name:        "Depth Band",
		Description: "Show the upper and lower band planes",
		Key:         rl.KeyB,
		KeyLabel:    "B",
		Category:    "visual",
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayContainment,
		Name:        "Containment",
		Description: "Show the horizontal containment radius",
		Key:         rl.KeyN,
		KeyLabel:    "N",
		Category:    "visual",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayFollowSchool,
		Name:        "Follow School",
		Description: "Keep the camera centred on the school",
		Key:         rl.KeyF,
		KeyLabel:    "F",
		Category:    "camera",
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayVelocity,
		Name:        "Velocity",
		Description: "Draw each fish's velocity vector",
		Key:         rl.KeyV,
		KeyLabel:    "V",
		Category:    "debug",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayPerception,
		Name:        "Perception",
		Description: "Show view and separation ranges of the selected fish",
		Key:         rl.KeyP,
		KeyLabel:    "P",
		Category:    "debug",
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlaySchoolMetrics,
		Name:        "School Metrics",
		Description: "Show the last telemetry window",
		Key:         rl.KeyM,
		KeyLabel:    "M",
		Category:    "debug",
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayPassTimings,
		Name:        "Pass Timings",
		Description: "Show average time per steering pass",
		Key:         rl.KeyT,
		KeyLabel:    "T",
		Category:    "debug",
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.order = append(r.order, desc.ID)
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and handles exclusivity.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	newState := !r.enabled[id]
	r.SetEnabled(id, newState)
	return newState
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}

	r.enabled[id] = enabled

	// If enabling, disable exclusive overlays
	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeyPress checks if a key corresponds to an overlay toggle.
// Returns the overlay ID and new state if a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			newState := r.Toggle(desc.ID)
			return desc.ID, newState, true
		}
	}
	return "", false, false
}

// Keys returns every key bound to an overlay.
func (r *OverlayRegistry) Keys() []int32 {
	var keys []int32
	for _, desc := range r.descriptors {
		if desc.Key != 0 {
			keys = append(keys, desc.Key)
		}
	}
	return keys
}
