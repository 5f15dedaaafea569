package main

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/plantgrow/camera"
	"github.com/pthm-cable/plantgrow/export"
	"github.com/pthm-cable/plantgrow/tree"
	"github.com/pthm-cable/plantgrow/ui"
)

const (
	cylinderSides = 8
	// Tip radius relative to the base, matching the exported widths.
	tipTaper = 0.8
)

var (
	shadeColor    = rl.Color{R: 60, G: 45, B: 30, A: 255}
	sunColor      = rl.Color{R: 150, G: 210, B: 70, A: 255}
	markedColor   = rl.Color{R: 220, G: 60, B: 50, A: 255}
	selectedColor = rl.Color{R: 255, G: 230, B: 80, A: 255}
	curveColor    = rl.Color{R: 200, G: 200, B: 255, A: 255}
)

func vec3(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func toCamera3D(o *camera.Orbit) rl.Camera3D {
	return rl.Camera3D{
		Position:   vec3(o.Position()),
		Target:     vec3(o.Target),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       float32(o.FOV),
		Projection: rl.CameraPerspective,
	}
}

// lightColor blends from bark brown in shade to leaf green in full light.
func lightColor(exposure float64) rl.Color {
	t := float32(exposure)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	lerp := func(a, b uint8) uint8 { return uint8(float32(a) + (float32(b)-float32(a))*t) }
	return rl.Color{
		R: lerp(shadeColor.R, sunColor.R),
		G: lerp(shadeColor.G, sunColor.G),
		B: lerp(shadeColor.B, sunColor.B),
		A: 255,
	}
}

func depthColor(depth int) rl.Color {
	r, g, b := export.DepthColor(depth)
	return rl.Color{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 255}
}

func (v *Viewer) branchColor(i int, b *tree.Branch) rl.Color {
	if i == v.selected {
		return selectedColor
	}
	if v.overlays.IsEnabled(ui.OverlayMarked) && v.cfg.Resources.Enabled {
		if st := v.sim.Resources().State(i); st.MarkedForPruning {
			return markedColor
		}
	}
	if v.overlays.IsEnabled(ui.OverlayDepthColors) {
		return depthColor(b.Depth)
	}
	if v.overlays.IsEnabled(ui.OverlayLightColors) {
		return lightColor(b.LightExposure)
	}
	return depthColor(0)
}

// drawTree draws every branch as tapered cylinders along its path.
func (v *Viewer) drawTree() {
	t := v.sim.Tree()
	curves := v.overlays.IsEnabled(ui.OverlayCurves)
	for i := range t.Branches() {
		b := t.Branch(i)
		color := v.branchColor(i, b)
		pts := b.PathPoints(1)
		n := len(pts) - 1
		for k := 0; k < n; k++ {
			r0 := b.Radius * (1 - (1-tipTaper)*float64(k)/float64(n))
			r1 := b.Radius * (1 - (1-tipTaper)*float64(k+1)/float64(n))
			rl.DrawCylinderEx(vec3(pts[k]), vec3(pts[k+1]), float32(r0), float32(r1), cylinderSides, color)
			if curves {
				rl.DrawLine3D(vec3(pts[k]), vec3(pts[k+1]), curveColor)
			}
		}
	}
}
