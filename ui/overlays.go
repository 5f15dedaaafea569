package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Viewer overlay IDs.
const (
	OverlayLightColors OverlayID = "light_colors"
	OverlayDepthColors OverlayID = "depth_colors"
	OverlayMarked      OverlayID = "marked"
	OverlayCurves      OverlayID = "curves"
	OverlayGrid        OverlayID = "grid"
	OverlayPerf        OverlayID = "perf"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID        OverlayID
	Name      string
	Key       int32  // 0 = no key
	KeyLabel  string // e.g. "L"
	Category  string
	Exclusive []OverlayID // disabled when this one is enabled
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the viewer overlays. Light
// colouring and the ground grid start enabled.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	reg.SetEnabled(OverlayLightColors, true)
	reg.SetEnabled(OverlayGrid, true)
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:        OverlayLightColors,
		Name:      "Light Exposure",
		Key:       rl.KeyL,
		KeyLabel:  "L",
		Category:  "color",
		Exclusive: []OverlayID{OverlayDepthColors},
	})
	r.Register(OverlayDescriptor{
		ID:        OverlayDepthColors,
		Name:      "Depth",
		Key:       rl.KeyD,
		KeyLabel:  "D",
		Category:  "color",
		Exclusive: []OverlayID{OverlayLightColors},
	})
	r.Register(OverlayDescriptor{
		ID:       OverlayMarked,
		Name:     "Prune Marks",
		Key:      rl.KeyM,
		KeyLabel: "M",
		Category: "resources",
	})
	r.Register(OverlayDescriptor{
		ID:       OverlayCurves,
		Name:     "Curve Lines",
		Key:      rl.KeyC,
		KeyLabel: "C",
		Category: "geometry",
	})
	r.Register(OverlayDescriptor{
		ID:       OverlayGrid,
		Name:     "Ground Grid",
		Key:      rl.KeyG,
		KeyLabel: "G",
		Category: "geometry",
	})
	r.Register(OverlayDescriptor{
		ID:       OverlayPerf,
		Name:     "Performance",
		Key:      rl.KeyF,
		KeyLabel: "F",
		Category: "debug",
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = false
}

// Toggle switches an overlay on/off and handles exclusivity.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.SetEnabled(id, !r.enabled[id])
	return r.enabled[id]
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}
	r.enabled[id] = enabled
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

// Categories returns all unique categories in registration order.
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

// HandleKeyPress toggles the overlay bound to key.
// Returns the overlay ID, its new state, and whether a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}
