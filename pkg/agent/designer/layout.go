package designer

import "github.com/slidesmith/slidesmith/pkg/models"

// layoutSlot names a placed region within a layout.
type layoutSlot struct {
	kind     string
	position models.Position
}

// layoutTable maps each layout to its region plan on the unit canvas.
// The headline band is common to all layouts; body regions differ.
var layoutTable = map[models.LayoutType][]layoutSlot{
	models.LayoutTitleSlide: {
		{kind: "headline", position: models.Position{X: 0.10, Y: 0.35, Width: 0.80, Height: 0.20}},
		{kind: "body", position: models.Position{X: 0.10, Y: 0.58, Width: 0.80, Height: 0.12}},
	},
	models.LayoutTitleAndContent: {
		{kind: "headline", position: models.Position{X: 0.06, Y: 0.06, Width: 0.88, Height: 0.14}},
		{kind: "bullets", position: models.Position{X: 0.06, Y: 0.24, Width: 0.88, Height: 0.68}},
	},
	models.LayoutThreeColumn: {
		{kind: "headline", position: models.Position{X: 0.06, Y: 0.06, Width: 0.88, Height: 0.14}},
		{kind: "column", position: models.Position{X: 0.06, Y: 0.24, Width: 0.27, Height: 0.68}},
		{kind: "column", position: models.Position{X: 0.37, Y: 0.24, Width: 0.27, Height: 0.68}},
		{kind: "column", position: models.Position{X: 0.68, Y: 0.24, Width: 0.27, Height: 0.68}},
	},
	models.LayoutMatrix: {
		{kind: "headline", position: models.Position{X: 0.06, Y: 0.06, Width: 0.88, Height: 0.14}},
		{kind: "cell", position: models.Position{X: 0.06, Y: 0.24, Width: 0.43, Height: 0.33}},
		{kind: "cell", position: models.Position{X: 0.52, Y: 0.24, Width: 0.43, Height: 0.33}},
		{kind: "cell", position: models.Position{X: 0.06, Y: 0.60, Width: 0.43, Height: 0.33}},
		{kind: "cell", position: models.Position{X: 0.52, Y: 0.60, Width: 0.43, Height: 0.33}},
	},
	models.LayoutSplitTextChart: {
		{kind: "headline", position: models.Position{X: 0.06, Y: 0.06, Width: 0.88, Height: 0.14}},
		{kind: "bullets", position: models.Position{X: 0.06, Y: 0.24, Width: 0.42, Height: 0.68}},
		{kind: "chart", position: models.Position{X: 0.52, Y: 0.24, Width: 0.42, Height: 0.68}},
	},
	models.LayoutSummarySlide: {
		{kind: "headline", position: models.Position{X: 0.06, Y: 0.06, Width: 0.88, Height: 0.14}},
		{kind: "bullets", position: models.Position{X: 0.10, Y: 0.26, Width: 0.80, Height: 0.62}},
	},
}

// slotsFor returns the region plan for a layout, defaulting to the plain
// title-and-content plan for anything unknown.
func slotsFor(layout models.LayoutType) []layoutSlot {
	if slots, ok := layoutTable[layout]; ok {
		return slots
	}
	return layoutTable[models.LayoutTitleAndContent]
}
