package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/plantgrow/resources"
	"github.com/pthm-cable/plantgrow/tree"
)

// BranchView is the data shown for the selected branch.
type BranchView struct {
	Index    int
	Branch   tree.Branch
	State    resources.State
	HasState bool // false when resources are disabled
}

func view(data any) *BranchView { return data.(*BranchView) }

// BranchSections describes the inspector layout.
var BranchSections = []SectionDescriptor{
	{
		Title: "Geometry",
		Fields: []FieldDescriptor{
			{Label: "Index", Widget: WidgetText, TextGetter: func(d any) string { return fmt.Sprintf("%d", view(d).Index) }},
			{Label: "Parent", Widget: WidgetText, TextGetter: func(d any) string { return fmt.Sprintf("%d", view(d).Branch.Parent) }},
			{Label: "Depth", Widget: WidgetText, TextGetter: func(d any) string { return fmt.Sprintf("%d", view(d).Branch.Depth) }},
			{Label: "Age", Widget: WidgetText, TextGetter: func(d any) string { return fmt.Sprintf("%d", view(d).Branch.Age) }},
			{Label: "Children", Widget: WidgetText, TextGetter: func(d any) string { return fmt.Sprintf("%d", len(view(d).Branch.Children)) }},
			{Label: "Length", Widget: WidgetText, Format: "%.3f", Getter: func(d any) float32 { return float32(view(d).Branch.Length) }},
			{Label: "Radius", Widget: WidgetText, Format: "%.3f", Getter: func(d any) float32 { return float32(view(d).Branch.Radius) }},
			{Label: "Curve pts", Widget: WidgetText, TextGetter: func(d any) string { return fmt.Sprintf("%d", len(view(d).Branch.Curve)) }},
		},
	},
	{
		Title: "Resources",
		Fields: []FieldDescriptor{
			{Label: "Light", Widget: WidgetBar, Getter: func(d any) float32 { return float32(view(d).Branch.LightExposure) }},
			{Label: "Balance", Widget: WidgetCenteredBar, Range: FieldRange{Min: -2, Max: 2},
				Visible: func(d any) bool { return view(d).HasState },
				Getter:  func(d any) float32 { return float32(view(d).State.ResourceBalance) }},
			{Label: "Deficit", Widget: WidgetText, Format: "%.3f",
				Visible: func(d any) bool { return view(d).HasState },
				Getter:  func(d any) float32 { return float32(view(d).State.AccumulatedDeficit) }},
			{Label: "In deficit", Widget: WidgetText,
				Visible:    func(d any) bool { return view(d).HasState },
				TextGetter: func(d any) string { return fmt.Sprintf("%d cycles", view(d).State.DeficitDuration) }},
			{Label: "Marked", Widget: WidgetColorSwatch,
				Visible: func(d any) bool { return view(d).HasState },
				ColorGetter: func(d any) rl.Color {
					if view(d).State.MarkedForPruning {
						return rl.Red
					}
					return rl.DarkGray
				}},
		},
	},
}

// Inspector renders the selected-branch panel.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel and returns the Y below it.
func (ins *Inspector) Draw(v *BranchView) int32 {
	r := ins.renderer
	padding := r.Theme.Padding

	height := padding*2 + r.Theme.LineHeight
	for _, sd := range BranchSections {
		height += r.SectionHeight(sd, v)
	}
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	y := ins.y + padding
	rl.DrawText(fmt.Sprintf("Branch #%d", v.Index), ins.x+padding, y, 16, rl.White)
	y += r.Theme.LineHeight

	for _, sd := range BranchSections {
		y = r.DrawSection(ins.x+padding, y, sd, v, ins.width-padding*2)
	}
	return ins.y + height
}
