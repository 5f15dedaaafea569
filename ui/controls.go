package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// GrowthParams are the generation parameters exposed as sliders.
type GrowthParams struct {
	AngleDegrees float32
	Variation    float32
	Iterations   int
	Seed         int64
}

// Action is a button the user pressed this frame.
type Action int

const (
	ActionNone Action = iota
	ActionRegenerate
	ActionStep
	ActionExport
)

// ControlsPanel renders the right-side sliders, buttons and overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Draw renders the panel, edits p in place and returns whether any slider
// moved along with the button pressed, if any.
func (c *ControlsPanel) Draw(p *GrowthParams, overlays *OverlayRegistry) (changed bool, action Action) {
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	totalItems := 0
	for _, cat := range overlays.Categories() {
		totalItems += len(overlays.ByCategory(cat)) + 1
	}
	panelHeight := 4*38 + 80 + int32(totalItems)*lineHeight + padding*3
	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	x := float32(c.x + padding)
	y := float32(c.y + padding)
	sliderWidth := float32(c.width - padding*2 - 50)

	slider := func(label, value string, v, lo, hi float32) float32 {
		rl.DrawText(label, int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
		y += 14
		nv := gui.SliderBar(rl.Rectangle{X: x, Y: y, Width: sliderWidth, Height: 16}, "", "", v, lo, hi)
		rl.DrawText(value, int32(x+sliderWidth+8), int32(y+2), r.Theme.FontSize, r.Theme.ValueColor)
		y += 24
		return nv
	}

	if v := slider("Branch angle", fmt.Sprintf("%.1f", p.AngleDegrees), p.AngleDegrees, 5, 60); v != p.AngleDegrees {
		p.AngleDegrees = v
		changed = true
	}
	if v := slider("Angle variation", fmt.Sprintf("%.1f", p.Variation), p.Variation, 0, 20); v != p.Variation {
		p.Variation = v
		changed = true
	}
	if v := int(slider("Iterations", fmt.Sprintf("%d", p.Iterations), float32(p.Iterations), 1, 6) + 0.5); v != p.Iterations {
		p.Iterations = v
		changed = true
	}
	if v := int64(slider("Seed", fmt.Sprintf("%d", p.Seed), float32(p.Seed), 0, 99999)); v != p.Seed {
		p.Seed = v
		changed = true
	}

	y += 4
	bw := (float32(c.width) - float32(padding)*2 - 10) / 2
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: bw, Height: 26}, "Regenerate") {
		action = ActionRegenerate
	}
	if gui.Button(rl.Rectangle{X: x + bw + 10, Y: y, Width: bw, Height: 26}, "Step") {
		action = ActionStep
	}
	y += 32
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: bw*2 + 10, Height: 26}, "Export USDA") {
		action = ActionExport
	}
	y += 40

	c.drawOverlays(int32(x), int32(y), overlays)
	return changed, action
}

func (c *ControlsPanel) drawOverlays(x, y int32, overlays *OverlayRegistry) {
	r := c.renderer
	width := c.width - r.Theme.Padding*2
	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += r.Theme.LineHeight
		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(x, y, desc, overlays.IsEnabled(desc.ID), width)
			y += r.Theme.LineHeight
		}
	}
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "color":
		return "Colour"
	case "resources":
		return "Resources"
	case "geometry":
		return "Geometry"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
