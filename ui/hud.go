package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/plantgrow/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title    string
	Species  string
	Seed     int64
	Branches int
	Cycle    int
	MaxDepth int
	Pruned   int // removed in the last cycle
	Strategy string
	FPS      int32
	Status   string // transient message, e.g. an export path
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("%s | seed %d | FPS: %d", data.Species, data.Seed, data.FPS),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Branches: %d | Depth: %d | Cycle: %d | Pruned: %d", data.Branches, data.MaxDepth, data.Cycle, data.Pruned),
		10, 55, 16, rl.LightGray,
	)
	if data.Strategy != "" {
		rl.DrawText("Light: "+data.Strategy, 10, 75, 16, rl.Gray)
	}
	if data.Status != "" {
		rl.DrawText(data.Status, 10, 95, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase timing breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x, y := p.x, p.y
	r := p.renderer
	r.DrawPanel(x-6, y-6, 250, int32(len(telemetry.Phases))*14+50)

	rl.DrawText("Cycle Performance", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("Avg: %s  Max: %s", stats.AvgCycleDuration, stats.MaxCycleDuration), x, y, 12, rl.Yellow)
	y += 16

	for _, phase := range telemetry.Phases {
		pct := stats.PhasePct[phase]
		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %10s %5.1f%%", phase, stats.PhaseAvg[phase], pct),
			x, y, 12, color,
		)
		y += 14
	}
}
