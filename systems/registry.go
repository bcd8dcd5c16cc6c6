package systems

// Pass identifiers. They name scheduled jobs and perf rows.
const (
	PassFluctuate   = "fluctuate"
	PassWanderH     = "wanderH"
	PassWanderV     = "wanderV"
	PassSteerH      = "steerH"
	PassSteerV      = "steerV"
	PassCohesion    = "cohesion"
	PassAlignment   = "alignment"
	PassSeparation  = "separation"
	PassRegulate    = "regulate"
	PassBoundary    = "boundary"
	PassContainment = "containment"
	PassOrient      = "orient"
	PassIntegrate   = "integrate"
)

// PassInfo describes a steering pass for UI display.
type PassInfo struct {
	ID          string // Job name and perf key
	Name        string // Display name
	Description string
	Category    string // Grouping (e.g., "wander", "flocking")
}

// PassRegistry holds metadata about all passes in tick order.
// The HUD and the perf collector both read names from here.
type PassRegistry struct {
	passes []PassInfo
	byID   map[string]PassInfo
}

// NewPassRegistry creates a registry with all known passes.
func NewPassRegistry() *PassRegistry {
	reg := &PassRegistry{
		byID: make(map[string]PassInfo),
	}
	reg.registerDefaults()
	return reg
}

func (r *PassRegistry) registerDefaults() {
	r.Register(PassInfo{ID: PassFluctuate, Name: "Fluctuate", Description: "Draws this tick's active speed", Category: "speed"})

	r.Register(PassInfo{ID: PassWanderH, Name: "Wander H", Description: "Advances horizontal wander angle", Category: "wander"})
	r.Register(PassInfo{ID: PassWanderV, Name: "Wander V", Description: "Advances vertical wander angle", Category: "wander"})
	r.Register(PassInfo{ID: PassSteerH, Name: "Steer H", Description: "Pulls toward horizontal wander target", Category: "wander"})
	r.Register(PassInfo{ID: PassSteerV, Name: "Steer V", Description: "Pulls toward vertical wander target", Category: "wander"})

	r.Register(PassInfo{ID: PassCohesion, Name: "Cohesion", Description: "Steers toward visible neighbours", Category: "flocking"})
	r.Register(PassInfo{ID: PassAlignment, Name: "Alignment", Description: "Matches visible neighbours' heading", Category: "flocking"})
	r.Register(PassInfo{ID: PassSeparation, Name: "Separation", Description: "Pushes away from neighbours", Category: "flocking"})

	r.Register(PassInfo{ID: PassRegulate, Name: "Regulate", Description: "Corrects speed toward active speed", Category: "speed"})
	r.Register(PassInfo{ID: PassBoundary, Name: "Boundary", Description: "Keeps fish inside the depth band", Category: "bounds"})
	r.Register(PassInfo{ID: PassContainment, Name: "Containment", Description: "Pulls stragglers back toward the origin", Category: "bounds"})

	r.Register(PassInfo{ID: PassOrient, Name: "Orient", Description: "Faces fish along velocity", Category: "motion"})
	r.Register(PassInfo{ID: PassIntegrate, Name: "Integrate", Description: "Moves fish by velocity", Category: "motion"})
}

// Register adds a pass to the registry.
func (r *PassRegistry) Register(info PassInfo) {
	r.passes = append(r.passes, info)
	r.byID[info.ID] = info
}

// Get returns pass info by ID.
func (r *PassRegistry) Get(id string) (PassInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a pass ID.
// Falls back to the ID itself if not found.
func (r *PassRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered passes.
func (r *PassRegistry) All() []PassInfo {
	return r.passes
}

// ByCategory returns passes filtered by category.
func (r *PassRegistry) ByCategory(category string) []PassInfo {
	var result []PassInfo
	for _, info := range r.passes {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// IDs returns all pass IDs in registration order.
func (r *PassRegistry) IDs() []string {
	ids := make([]string, len(r.passes))
	for i, info := range r.passes {
		ids[i] = info.ID
	}
	return ids
}
