// Package designer turns the outline, analysis, and narrative into a
// StyledDeck. It is a pure transform over earlier artifacts: no LLM calls,
// and the Styler boundary lets an external design service replace the
// built-in house style.
package designer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/slidesmith/slidesmith/pkg/agent"
	"github.com/slidesmith/slidesmith/pkg/models"
)

// Styler is the external collaborator boundary: given the artifacts of the
// earlier stages it produces the finalized deck model.
type Styler interface {
	Style(outline *models.Outline, analyst *models.AnalystOutput, narrative *models.Narrative, language string) (*models.StyledDeck, error)
}

// Designer is the fourth pipeline stage. It delegates the actual transform
// to its Styler.
type Designer struct {
	styler Styler
}

// New creates a Designer using the built-in house style.
func New() *Designer { return &Designer{styler: HouseStyler{}} }

// NewWithStyler creates a Designer around a custom Styler.
func NewWithStyler(s Styler) *Designer { return &Designer{styler: s} }

// Name implements agent.Stage.
func (d *Designer) Name() string { return string(models.StageDesignApplication) }

// Run implements agent.Stage.
func (d *Designer) Run(_ context.Context, execCtx *agent.ExecutionContext) (*agent.StageResult, error) {
	log := slog.With("job_id", execCtx.JobID, "stage", d.Name())

	if execCtx.Artifacts.Outline == nil {
		return agent.Failed(fmt.Errorf("designer requires an outline")), nil
	}

	deck, err := d.styler.Style(
		execCtx.Artifacts.Outline,
		execCtx.Artifacts.Analyst,
		execCtx.Artifacts.Narrative,
		execCtx.Language(),
	)
	if err != nil {
		return agent.Failed(fmt.Errorf("styling: %w", err)), nil
	}

	execCtx.Artifacts.Deck = deck
	log.Info("Deck styled", "slides", len(deck.Slides))
	return agent.Completed(), nil
}

// HouseStyler is the built-in Styler.
type HouseStyler struct{}

// Style implements Styler. Charts are dealt to data-visualization slides in
// document order; narrative transitions attach to the slide they lead into.
func (HouseStyler) Style(
	outline *models.Outline,
	analyst *models.AnalystOutput,
	narrative *models.Narrative,
	language string,
) (*models.StyledDeck, error) {
	deck := &models.StyledDeck{
		Language: language,
		Theme:    defaultTheme(language),
	}
	if len(outline.Slides) > 0 {
		deck.Title = outline.Slides[0].Title
	}

	var charts []models.ChartSpec
	if analyst != nil {
		charts = analyst.Charts
	}
	nextChart := 0

	for i, spec := range outline.Slides {
		slide := models.StyledSlide{Spec: spec}

		for _, slot := range slotsFor(spec.LayoutType) {
			block := models.Block{Kind: slot.kind, Position: slot.position}
			switch slot.kind {
			case "headline":
				block.Text = spec.Headline
				if spec.LayoutType == models.LayoutTitleSlide {
					block.Text = spec.Title
				}
			case "body":
				block.Text = spec.Headline
			case "bullets":
				block.Bullets = spec.KeyPoints
			case "column", "cell":
				// Filled below once all slots of the kind are known.
			case "chart":
				if nextChart < len(charts) {
					c := charts[nextChart]
					nextChart++
					block.Chart = &c
				} else {
					block.Kind = "bullets"
					block.Bullets = spec.KeyPoints
				}
			}
			slide.Blocks = append(slide.Blocks, block)
		}

		dealPoints(&slide, spec.KeyPoints)

		if narrative != nil {
			if i > 0 && i-1 < len(narrative.Transitions) {
				slide.Transition = narrative.Transitions[i-1]
			}
			slide.SpeakerNote = noteText(narrative.SpeakerNotes, spec.Number)
		}

		deck.Slides = append(deck.Slides, slide)
	}
	return deck, nil
}

// dealPoints distributes key points across the slide's column or cell
// blocks in order, tagging matrix cells with their row and column.
func dealPoints(slide *models.StyledSlide, points []string) {
	var targets []int
	for i, b := range slide.Blocks {
		if b.Kind == "column" || b.Kind == "cell" {
			targets = append(targets, i)
		}
	}
	if len(targets) == 0 {
		return
	}

	for i, idx := range targets {
		b := &slide.Blocks[idx]
		if b.Kind == "cell" {
			b.Row = i/2 + 1
			b.Col = i%2 + 1
		}
		if i < len(points) {
			b.Text = points[i]
		}
	}

	// Leftover points join the last target so nothing planned is dropped.
	if len(points) > len(targets) {
		last := &slide.Blocks[targets[len(targets)-1]]
		extra := points[len(targets):]
		last.Text = strings.Join(append([]string{last.Text}, extra...), "; ")
	}
}

func noteText(notes []models.SpeakerNote, slideNumber int) string {
	for _, n := range notes {
		if n.Slide == slideNumber {
			return strings.Join(n.SpeakingPoints, "\n")
		}
	}
	return ""
}
