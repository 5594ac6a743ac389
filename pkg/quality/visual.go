package quality

import "github.com/slidesmith/slidesmith/pkg/models"

// Visual validator limits. Issues accumulate per slide; the visual
// sub-score is max(0, 1 - avg_issues_per_slide/10).
const (
	maxBulletsPerBlock = 7
	maxBlockTextRunes  = 220
	canvasMargin       = 0.02
	issueCeiling       = 10.0
)

// visualIssues counts layout problems on one slide: text overflow, crowded
// bullet lists, blocks breaching the canvas margins, and overlapping body
// blocks.
func visualIssues(slide models.StyledSlide) int {
	issues := 0
	for _, b := range slide.Blocks {
		if len([]rune(b.Text)) > maxBlockTextRunes {
			issues++
		}
		if len(b.Bullets) > maxBulletsPerBlock {
			issues++
		}
		if breachesMargins(b.Position) {
			issues++
		}
	}

	for i := 0; i < len(slide.Blocks); i++ {
		for j := i + 1; j < len(slide.Blocks); j++ {
			if overlaps(slide.Blocks[i].Position, slide.Blocks[j].Position) {
				issues++
			}
		}
	}
	return issues
}

func breachesMargins(p models.Position) bool {
	return p.X < canvasMargin || p.Y < canvasMargin ||
		p.X+p.Width > 1-canvasMargin || p.Y+p.Height > 1-canvasMargin
}

func overlaps(a, b models.Position) bool {
	return a.X < b.X+b.Width && b.X < a.X+a.Width &&
		a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
}

func visualScore(deck *models.StyledDeck) float64 {
	if len(deck.Slides) == 0 {
		return 0
	}
	total := 0
	for _, slide := range deck.Slides {
		total += visualIssues(slide)
	}
	avg := float64(total) / float64(len(deck.Slides))
	score := 1 - avg/issueCeiling
	if score < 0 {
		return 0
	}
	return score
}
