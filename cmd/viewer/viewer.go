package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/plantgrow/camera"
	"github.com/pthm-cable/plantgrow/config"
	"github.com/pthm-cable/plantgrow/export"
	"github.com/pthm-cable/plantgrow/growth"
	"github.com/pthm-cable/plantgrow/telemetry"
	"github.com/pthm-cable/plantgrow/ui"
)

const (
	panelWidth = 260

	// A press that moves less than this many pixels is a click.
	clickSlop = 4

	statusSeconds = 4
)

const controlsLegend = "Drag: orbit | Shift/Middle drag: pan | Wheel: zoom | Click: select | Space: regenerate | P: step | R: reset camera | U: toggle UI"

// Viewer owns the simulation, the camera and the UI state.
type Viewer struct {
	cfg    *config.Config
	logger *slog.Logger
	sim    *growth.Simulation
	cam    *camera.Orbit

	params    ui.GrowthParams
	overlays  *ui.OverlayRegistry
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	inspector *ui.Inspector
	perfPanel *ui.PerfPanel

	showUI    bool
	selected  int
	last      telemetry.CycleStats
	status    string
	statusTTL float32

	screenWidth  int32
	screenHeight int32

	dragging bool
	dragDist float32
}

// NewViewer generates the first tree and frames it.
func NewViewer(cfg *config.Config, logger *slog.Logger) *Viewer {
	v := &Viewer{
		cfg:          cfg,
		logger:       logger,
		cam:          camera.New(),
		overlays:     ui.NewOverlayRegistry(),
		hud:          ui.NewHUD(),
		inspector:    ui.NewInspector(10, 120, panelWidth),
		perfPanel:    ui.NewPerfPanel(16, 0),
		showUI:       true,
		selected:     -1,
		screenWidth:  int32(rl.GetScreenWidth()),
		screenHeight: int32(rl.GetScreenHeight()),
		params: ui.GrowthParams{
			AngleDegrees: float32(cfg.Branching.BaseAngleDegrees),
			Variation:    float32(cfg.Branching.AngleVariation),
			Iterations:   cfg.LSystem.Iterations,
			Seed:         cfg.Growth.RandomSeed,
		},
	}
	v.controls = ui.NewControlsPanel(v.screenWidth-panelWidth-10, 10, panelWidth)
	v.sim = growth.New(cfg, logger)
	v.regenerate()
	v.frameTree()
	return v
}

// regenerate applies the slider values and grows a fresh tree.
func (v *Viewer) regenerate() {
	v.cfg.Branching.BaseAngleDegrees = float64(v.params.AngleDegrees)
	v.cfg.Branching.AngleVariation = float64(v.params.Variation)
	v.cfg.LSystem.Iterations = v.params.Iterations
	v.cfg.Growth.RandomSeed = v.params.Seed

	v.sim.Generate()
	v.selected = -1
	v.last = telemetry.CycleStats{Branches: v.sim.Tree().Len()}
}

// step runs one resource and prune cycle.
func (v *Viewer) step() {
	v.last = v.sim.Step()
	v.selected = -1
	if v.last.Pruned > 0 {
		v.setStatus(fmt.Sprintf("cycle %d pruned %d branches", v.last.Cycle, v.last.Pruned))
	}
}

func (v *Viewer) exportUSDA() {
	dir := v.cfg.Output.Dir
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.fail("export failed", err)
		return
	}
	name := fmt.Sprintf("tree_seed%d_cycle%d.usda", v.cfg.Growth.RandomSeed, v.sim.Cycle())
	path := filepath.Join(dir, name)
	if err := export.ExportUSDA(path, v.sim.Tree()); err != nil {
		v.fail("export failed", err)
		return
	}
	v.logger.Info("exported tree", "path", path, "branches", v.sim.Tree().Len())
	v.setStatus("exported " + path)
}

func (v *Viewer) fail(msg string, err error) {
	v.logger.Error(msg, "error", err)
	v.setStatus(msg + ": " + err.Error())
}

func (v *Viewer) setStatus(s string) {
	v.status = s
	v.statusTTL = statusSeconds
}

func (v *Viewer) frameTree() {
	center, radius := camera.Bounds(v.sim.Tree())
	v.cam.Frame(center, radius)
}

// Update handles input for one frame.
func (v *Viewer) Update() {
	v.sim.Perf().RecordFrame()
	v.handleResize()

	if v.statusTTL > 0 {
		v.statusTTL -= rl.GetFrameTime()
		if v.statusTTL <= 0 {
			v.status = ""
		}
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		v.regenerate()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		v.step()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		v.frameTree()
	}
	if rl.IsKeyPressed(rl.KeyU) {
		v.showUI = !v.showUI
	}
	if key := rl.GetKeyPressed(); key != 0 {
		v.overlays.HandleKeyPress(key)
	}

	v.handleCameraInput()
}

func (v *Viewer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	v.screenWidth = int32(rl.GetScreenWidth())
	v.screenHeight = int32(rl.GetScreenHeight())
	v.controls.SetPosition(v.screenWidth-panelWidth-10, 10)
}

// overUI reports whether the mouse is over the controls panel.
func (v *Viewer) overUI(mouse rl.Vector2) bool {
	if !v.showUI {
		return false
	}
	return mouse.X >= float32(v.screenWidth-panelWidth-10)
}

func (v *Viewer) handleCameraInput() {
	mouse := rl.GetMousePosition()

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !v.overUI(mouse) {
		v.cam.Zoom(float64(wheel) * v.cam.Distance * 0.1)
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !v.overUI(mouse) {
		v.dragging = true
		v.dragDist = 0
	}

	delta := rl.GetMouseDelta()
	pan := rl.IsMouseButtonDown(rl.MouseButtonMiddle) ||
		(v.dragging && rl.IsKeyDown(rl.KeyLeftShift))
	switch {
	case pan:
		v.cam.Pan(float64(delta.X), float64(delta.Y))
	case v.dragging && rl.IsMouseButtonDown(rl.MouseButtonLeft):
		v.cam.Rotate(float64(delta.X), float64(-delta.Y))
	}
	if v.dragging {
		v.dragDist += abs32(delta.X) + abs32(delta.Y)
	}

	if v.dragging && rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		v.dragging = false
		if v.dragDist < clickSlop {
			v.pick(mouse)
		}
	}
}

// pick selects the branch under the mouse, or clears the selection.
func (v *Viewer) pick(mouse rl.Vector2) {
	w, h := float64(v.screenWidth), float64(v.screenHeight)
	x := 2*float64(mouse.X)/w - 1
	y := 1 - 2*float64(mouse.Y)/h
	ray := v.cam.Ray(x, y, w/h)
	v.selected = camera.Pick(v.sim.Tree(), ray, 0.05*v.cam.Distance/camera.DefaultDistance)
}

// branchView returns the inspector data for the selection, or nil.
func (v *Viewer) branchView() *ui.BranchView {
	t := v.sim.Tree()
	if v.selected < 0 || v.selected >= t.Len() {
		return nil
	}
	bv := &ui.BranchView{Index: v.selected, Branch: *t.Branch(v.selected)}
	if v.cfg.Resources.Enabled && len(v.sim.Resources().States()) == t.Len() {
		bv.State = v.sim.Resources().State(v.selected)
		bv.HasState = true
	}
	return bv
}

// Draw renders one frame.
func (v *Viewer) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 24, G: 28, B: 34, A: 255})

	rl.BeginMode3D(toCamera3D(v.cam))
	if v.overlays.IsEnabled(ui.OverlayGrid) {
		rl.DrawGrid(40, 1)
	}
	v.drawTree()
	rl.EndMode3D()

	if v.showUI {
		v.drawUI()
	}
	rl.EndDrawing()
}

func (v *Viewer) drawUI() {
	summary := v.sim.Resources().Summary()
	v.hud.Draw(ui.HUDData{
		Title:    "plantgrow",
		Species:  v.cfg.Species,
		Seed:     v.cfg.Growth.RandomSeed,
		Branches: v.sim.Tree().Len(),
		Cycle:    v.sim.Cycle(),
		MaxDepth: v.last.MaxDepth,
		Pruned:   v.last.Pruned,
		Strategy: summary.Strategy,
		FPS:      rl.GetFPS(),
		Status:   v.status,
	})
	v.hud.DrawControls(v.screenHeight, controlsLegend)

	changed, action := v.controls.Draw(&v.params, v.overlays)
	switch {
	case action == ui.ActionRegenerate || changed:
		v.regenerate()
	case action == ui.ActionStep:
		v.step()
	case action == ui.ActionExport:
		v.exportUSDA()
	}

	y := int32(120)
	if bv := v.branchView(); bv != nil {
		v.inspector.SetPosition(10, y)
		y = v.inspector.Draw(bv) + 10
	}
	if v.overlays.IsEnabled(ui.OverlayPerf) {
		v.perfPanel.SetPosition(16, y+6)
		v.perfPanel.Draw(v.sim.Perf().Stats())
	}
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
