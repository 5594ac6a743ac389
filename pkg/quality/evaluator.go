// Package quality implements the deterministic deck reviewer. Scoring is a
// pure function of the styled deck, the analyst output, and the pyramid;
// two evaluations of the same artifacts always agree.
package quality

import (
	"fmt"
	"strings"

	"github.com/slidesmith/slidesmith/pkg/models"
)

// Criterion weights. They sum to 1.
const (
	WeightClarity       = 0.20
	WeightInsight       = 0.25
	WeightStructure     = 0.20
	WeightVisual        = 0.15
	WeightActionability = 0.20
)

// Hint thresholds: below hintThreshold a criterion earns a hint, below
// highPriorityThreshold the hint is high priority.
const (
	hintThreshold         = 0.7
	highPriorityThreshold = 0.5
)

// DefaultTarget is the pass bar when no target is configured.
const DefaultTarget = 0.85

// Evaluator scores finished decks against a quality target.
type Evaluator struct {
	target float64
}

// NewEvaluator creates an evaluator. A non-positive target falls back to
// DefaultTarget.
func NewEvaluator(target float64) *Evaluator {
	if target <= 0 {
		target = DefaultTarget
	}
	return &Evaluator{target: target}
}

// Target returns the configured pass bar.
func (e *Evaluator) Target() float64 { return e.target }

// Evaluate scores the deck on the five criteria and derives improvement
// hints for every criterion under the hint threshold.
func (e *Evaluator) Evaluate(
	deck *models.StyledDeck,
	analyst *models.AnalystOutput,
	pyramid *models.Pyramid,
) *models.QualityScore {
	score := &models.QualityScore{
		Clarity:       clarityScore(deck),
		Insight:       insightScore(deck, analyst),
		Structure:     structureScore(deck, pyramid),
		Visual:        visualScore(deck),
		Actionability: actionabilityScore(deck),
	}
	score.Total = WeightClarity*score.Clarity +
		WeightInsight*score.Insight +
		WeightStructure*score.Structure +
		WeightVisual*score.Visual +
		WeightActionability*score.Actionability
	score.Passed = score.Total >= e.target
	score.Hints = buildHints(score)
	return score
}

// slideText flattens everything readable on a slide for keyword scoring.
func slideText(slide models.StyledSlide) string {
	var b strings.Builder
	b.WriteString(slide.Spec.Title)
	b.WriteByte(' ')
	b.WriteString(slide.Spec.Headline)
	for _, p := range slide.Spec.KeyPoints {
		b.WriteByte(' ')
		b.WriteString(p)
	}
	for _, block := range slide.Blocks {
		b.WriteByte(' ')
		b.WriteString(block.Text)
		for _, bullet := range block.Bullets {
			b.WriteByte(' ')
			b.WriteString(bullet)
		}
	}
	return b.String()
}

// soWhatPass is the clarity gate for one headline: an action verb, a
// number, an implication keyword, and enough length to say something.
func soWhatPass(headline string) bool {
	return len([]rune(headline)) >= 20 &&
		containsDigit(headline) &&
		containsAny(headline, actionVerbs) &&
		containsAny(headline, implicationWords)
}

func clarityScore(deck *models.StyledDeck) float64 {
	if len(deck.Slides) == 0 {
		return 0
	}

	var soWhat, headline, consistency, terminology float64
	for _, slide := range deck.Slides {
		if soWhatPass(slide.Spec.Headline) {
			soWhat++
		}
		if n := len([]rune(slide.Spec.Headline)); n >= 10 && n <= 120 {
			headline++
		}
		if titleEchoedInBody(slide) {
			consistency++
		}
		if containsAny(slideText(slide), businessTerms) {
			terminology++
		}
	}

	n := float64(len(deck.Slides))
	return 0.4*(soWhat/n) + 0.3*(headline/n) + 0.2*(consistency/n) + 0.1*(terminology/n)
}

// titleEchoedInBody reports whether any significant title word reappears in
// the slide body.
func titleEchoedInBody(slide models.StyledSlide) bool {
	body := strings.ToLower(slideText(slide))
	title := strings.ToLower(slide.Spec.Title)
	bodyWithoutTitle := strings.Replace(body, title, "", 1)
	for _, word := range strings.Fields(title) {
		if len([]rune(word)) >= 3 && strings.Contains(bodyWithoutTitle, word) {
			return true
		}
	}
	return false
}

func insightScore(deck *models.StyledDeck, analyst *models.AnalystOutput) float64 {
	if len(deck.Slides) == 0 {
		return 0
	}

	ladder := ladderDepth(analyst)

	var sum float64
	for _, slide := range deck.Slides {
		text := slideText(slide)
		s := 0.4 * (float64(ladder) / 4)
		if containsDigit(text) {
			s += 0.3
		}
		if containsAny(text, comparisonWords) {
			s += 0.2
		}
		if containsAny(text, strategyWords) {
			s += 0.1
		}
		sum += s
	}
	return sum / float64(len(deck.Slides))
}

// ladderDepth returns the deepest populated insight level across the
// analyst output: 4 when actions are present, down to 0 with no insights.
func ladderDepth(analyst *models.AnalystOutput) int {
	if analyst == nil || len(analyst.Insights) == 0 {
		return 0
	}
	depth := 0
	for _, ins := range analyst.Insights {
		d := 0
		switch {
		case ins.Action != "":
			d = 4
		case ins.Implication != "":
			d = 3
		case ins.Comparison != "":
			d = 2
		case ins.Observation != "":
			d = 1
		}
		if d > depth {
			depth = d
		}
	}
	return depth
}

func structureScore(deck *models.StyledDeck, pyramid *models.Pyramid) float64 {
	return 0.40*meceScore(deck, pyramid) +
		0.35*logicalFlowScore(deck) +
		0.25*pyramidScore(deck, pyramid)
}

// meceScore is the fraction of pyramid categories covered by at least one
// slide's segment assignment.
func meceScore(deck *models.StyledDeck, pyramid *models.Pyramid) float64 {
	if pyramid == nil || len(pyramid.SupportingArguments) == 0 {
		return 0.5
	}

	covered := make(map[string]bool)
	for _, slide := range deck.Slides {
		if slide.Spec.MECESegment != "" {
			covered[slide.Spec.MECESegment] = true
		}
	}

	hits := 0
	for _, arg := range pyramid.SupportingArguments {
		if covered[arg.Category] {
			hits++
		}
	}
	return float64(hits) / float64(len(pyramid.SupportingArguments))
}

// logicalFlowScore checks the structural positions: title opens, executive
// summary follows, next steps or recommendations close.
func logicalFlowScore(deck *models.StyledDeck) float64 {
	if len(deck.Slides) < 3 {
		return 0
	}
	checks := 0
	if deck.Slides[0].Spec.Type == models.SlideTypeTitle {
		checks++
	}
	if deck.Slides[1].Spec.Type == models.SlideTypeExecutiveSummary {
		checks++
	}
	last := deck.Slides[len(deck.Slides)-1].Spec.Type
	if last == models.SlideTypeNextSteps || last == models.SlideTypeRecommendations {
		checks++
	}
	return float64(checks) / 3
}

// pyramidScore checks conclusion-first delivery and layered support: the
// top message surfaces within the first two slides and every supporting
// argument is echoed somewhere in the deck.
func pyramidScore(deck *models.StyledDeck, pyramid *models.Pyramid) float64 {
	if pyramid == nil || len(deck.Slides) == 0 {
		return 0.5
	}

	score := 0.0
	opening := slideText(deck.Slides[0])
	if len(deck.Slides) > 1 {
		opening += " " + slideText(deck.Slides[1])
	}
	if echoes(opening, pyramid.TopMessage) {
		score += 0.5
	}

	if len(pyramid.SupportingArguments) > 0 {
		full := deckText(deck)
		echoed := 0
		for _, arg := range pyramid.SupportingArguments {
			if echoes(full, arg.Argument) || containsAny(full, []string{strings.ToLower(arg.Category)}) {
				echoed++
			}
		}
		score += 0.5 * float64(echoed) / float64(len(pyramid.SupportingArguments))
	} else {
		score += 0.25
	}
	return score
}

func deckText(deck *models.StyledDeck) string {
	var b strings.Builder
	for _, slide := range deck.Slides {
		b.WriteString(slideText(slide))
		b.WriteByte(' ')
	}
	return b.String()
}

// echoes reports whether at least half of the significant words of msg
// appear in text.
func echoes(text, msg string) bool {
	words := strings.Fields(strings.ToLower(msg))
	if len(words) == 0 {
		return false
	}
	lower := strings.ToLower(text)
	hits := 0
	significant := 0
	for _, w := range words {
		if len([]rune(w)) < 3 {
			continue
		}
		significant++
		if strings.Contains(lower, w) {
			hits++
		}
	}
	if significant == 0 {
		return false
	}
	return float64(hits)/float64(significant) >= 0.5
}

func actionabilityScore(deck *models.StyledDeck) float64 {
	if len(deck.Slides) == 0 {
		return 0
	}

	var actionable, quantified, prioritized float64
	for _, slide := range deck.Slides {
		text := slideText(slide)
		if containsAny(text, actionableWords) {
			actionable++
		}
		if containsDigit(text) {
			quantified++
		}
		if containsAny(text, priorityMarkers) {
			prioritized++
		}
	}

	n := float64(len(deck.Slides))
	return 0.5*(actionable/n) + 0.3*(quantified/n) + 0.2*(prioritized/n)
}

var hintSuggestions = map[models.Criterion]string{
	models.CriterionClarity:       "Rewrite headlines as quantified action statements that pass the so-what test",
	models.CriterionInsight:       "Deepen the analysis: add comparisons and implications behind each number",
	models.CriterionStructure:     "Align slides to the framework categories and lead with the conclusion",
	models.CriterionVisual:        "Reduce per-slide content and keep blocks inside the canvas margins",
	models.CriterionActionability: "State concrete next steps with owners, numbers, and priorities",
}

func buildHints(score *models.QualityScore) []models.ImprovementHint {
	var hints []models.ImprovementHint
	for _, c := range []models.Criterion{
		models.CriterionClarity,
		models.CriterionInsight,
		models.CriterionStructure,
		models.CriterionVisual,
		models.CriterionActionability,
	} {
		sub := score.SubScore(c)
		if sub >= hintThreshold {
			continue
		}
		priority := models.HintPriorityMedium
		if sub < highPriorityThreshold {
			priority = models.HintPriorityHigh
		}
		hints = append(hints, models.ImprovementHint{
			Criterion:  c,
			Priority:   priority,
			Suggestion: fmt.Sprintf("%s (scored %.2f)", hintSuggestions[c], sub),
		})
	}
	return hints
}
