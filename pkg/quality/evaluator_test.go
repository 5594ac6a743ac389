package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidesmith/slidesmith/pkg/models"
)

func strongDeck() *models.StyledDeck {
	slides := []models.StyledSlide{
		{Spec: models.SlideSpec{
			Number: 1, Type: models.SlideTypeTitle,
			Title:    "Growth Strategy 2026",
			Headline: "Invest 120억원 now to capture the growth opportunity",
		}},
		{Spec: models.SlideSpec{
			Number: 2, Type: models.SlideTypeExecutiveSummary,
			Title:    "Executive Summary",
			Headline: "Invest now: revenue up 32% means we should expand first",
			KeyPoints: []string{
				"Revenue up 32% YoY vs industry average",
				"Priority 1: launch the new market strategy",
				"Summary of three strategic moves",
			},
		}},
		{Spec: models.SlideSpec{
			Number: 3, Type: models.SlideTypeContent,
			Title:       "Revenue Analysis",
			Headline:    "Expand sales coverage: revenue grew 32% and should accelerate",
			MECESegment: "Company",
			KeyPoints:   []string{"Revenue 120억원, up 32% vs prior year", "Margin holds at 18%"},
		}},
		{Spec: models.SlideSpec{
			Number: 4, Type: models.SlideTypeContent,
			Title:       "Market Position",
			Headline:    "Defend share first: market gap of 5pt requires immediate action",
			MECESegment: "Competitor",
			KeyPoints:   []string{"Market share 23% vs benchmark 20%", "Two entrants priced 10% below"},
		}},
		{Spec: models.SlideSpec{
			Number: 5, Type: models.SlideTypeContent,
			Title:       "Customer Demand",
			Headline:    "Capture demand now to unlock the 40% larger customer pipeline",
			MECESegment: "Customer",
			KeyPoints:   []string{"Pipeline 40% larger YoY", "Churn down to 3%"},
		}},
		{Spec: models.SlideSpec{
			Number: 6, Type: models.SlideTypeNextSteps,
			Title:     "Next Steps",
			Headline:  "Approve the plan: we must decide by week 40 and launch phase 1",
			KeyPoints: []string{"First: approve budget of 30억원", "Then launch the roadmap next month"},
		}},
	}
	return &models.StyledDeck{Title: "Growth Strategy 2026", Language: "ko", Slides: slides}
}

func strongAnalyst() *models.AnalystOutput {
	return &models.AnalystOutput{
		Insights: []models.Insight{{
			DataPointID: "data_001",
			Observation: "2025 revenue is 120억원",
			Comparison:  "Up 32% YoY",
			Implication: "Growth reflects market expansion and product strength",
			Action:      "Scale the initiatives behind revenue while momentum holds",
			Confidence:  0.9,
		}},
	}
}

func strongPyramid() *models.Pyramid {
	return &models.Pyramid{
		TopMessage: "Invest now to capture growth",
		SupportingArguments: []models.SupportingArgument{
			{Category: "Customer", Argument: "Customer demand pipeline is up 40%"},
			{Category: "Competitor", Argument: "Market entrants pressure share"},
			{Category: "Company", Argument: "Revenue grew 32% with stable margin"},
		},
	}
}

func TestEvaluate_TotalIsWeightedSum(t *testing.T) {
	score := NewEvaluator(0.85).Evaluate(strongDeck(), strongAnalyst(), strongPyramid())

	want := 0.20*score.Clarity + 0.25*score.Insight + 0.20*score.Structure +
		0.15*score.Visual + 0.20*score.Actionability
	assert.InDelta(t, want, score.Total, 1e-9)

	for _, sub := range []float64{score.Clarity, score.Insight, score.Structure, score.Visual, score.Actionability} {
		assert.GreaterOrEqual(t, sub, 0.0)
		assert.LessOrEqual(t, sub, 1.0)
	}
}

func TestEvaluate_StrongDeckPasses(t *testing.T) {
	score := NewEvaluator(0.85).Evaluate(strongDeck(), strongAnalyst(), strongPyramid())

	assert.True(t, score.Passed, "total=%.3f clarity=%.2f insight=%.2f structure=%.2f visual=%.2f actionability=%.2f",
		score.Total, score.Clarity, score.Insight, score.Structure, score.Visual, score.Actionability)
	assert.Empty(t, score.Hints)
}

func TestEvaluate_WeakDeckGetsHighPriorityHints(t *testing.T) {
	deck := &models.StyledDeck{Slides: []models.StyledSlide{
		{Spec: models.SlideSpec{Number: 1, Title: "Intro", Headline: "Intro"}},
		{Spec: models.SlideSpec{Number: 2, Title: "Stuff", Headline: "Stuff"}},
		{Spec: models.SlideSpec{Number: 3, Title: "End", Headline: "End"}},
	}}

	score := NewEvaluator(0.85).Evaluate(deck, nil, nil)
	assert.False(t, score.Passed)
	require.NotEmpty(t, score.Hints)

	byCriterion := map[models.Criterion]models.ImprovementHint{}
	for _, h := range score.Hints {
		byCriterion[h.Criterion] = h
		sub := score.SubScore(h.Criterion)
		assert.Less(t, sub, 0.7)
		if sub < 0.5 {
			assert.Equal(t, models.HintPriorityHigh, h.Priority)
		} else {
			assert.Equal(t, models.HintPriorityMedium, h.Priority)
		}
	}
	require.Contains(t, byCriterion, models.CriterionClarity)
	assert.Equal(t, models.HintPriorityHigh, byCriterion[models.CriterionClarity].Priority)
}

func TestEvaluate_Deterministic(t *testing.T) {
	e := NewEvaluator(0.85)
	deck, analyst, pyramid := strongDeck(), strongAnalyst(), strongPyramid()
	first := e.Evaluate(deck, analyst, pyramid)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, e.Evaluate(deck, analyst, pyramid))
	}
}

func TestSoWhatPass(t *testing.T) {
	tests := []struct {
		name     string
		headline string
		want     bool
	}{
		{"full pass", "Invest 30억원 now to capture the growth opportunity", true},
		{"too short", "Invest 30억원 now", false},
		{"no number", "Invest heavily to capture the growth opportunity ahead", false},
		{"no action verb", "Revenue was 120억원 in the period under review therefore", false},
		{"no implication", "Invest 30억원 in the program over the coming period", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, soWhatPass(tt.headline))
		})
	}
}

func TestVisualIssues(t *testing.T) {
	clean := models.StyledSlide{Blocks: []models.Block{
		{Kind: "headline", Position: models.Position{X: 0.06, Y: 0.06, Width: 0.88, Height: 0.14}},
		{Kind: "bullets", Bullets: []string{"a", "b"}, Position: models.Position{X: 0.06, Y: 0.24, Width: 0.88, Height: 0.68}},
	}}
	assert.Zero(t, visualIssues(clean))

	crowded := models.StyledSlide{Blocks: []models.Block{
		{Kind: "bullets", Bullets: []string{"1", "2", "3", "4", "5", "6", "7", "8"},
			Position: models.Position{X: 0.06, Y: 0.24, Width: 0.88, Height: 0.68}},
	}}
	assert.Equal(t, 1, visualIssues(crowded))

	offCanvas := models.StyledSlide{Blocks: []models.Block{
		{Kind: "body", Position: models.Position{X: 0.5, Y: 0.5, Width: 0.6, Height: 0.3}},
	}}
	assert.Equal(t, 1, visualIssues(offCanvas))

	overlapping := models.StyledSlide{Blocks: []models.Block{
		{Kind: "body", Position: models.Position{X: 0.10, Y: 0.10, Width: 0.40, Height: 0.40}},
		{Kind: "body", Position: models.Position{X: 0.30, Y: 0.30, Width: 0.40, Height: 0.40}},
	}}
	assert.Equal(t, 1, visualIssues(overlapping))
}

func TestVisualScore_Floor(t *testing.T) {
	// A slide with far more issues than the ceiling still floors at zero.
	blocks := make([]models.Block, 12)
	for i := range blocks {
		blocks[i] = models.Block{Kind: "body", Position: models.Position{X: 0.5, Y: 0.5, Width: 0.6, Height: 0.6}}
	}
	deck := &models.StyledDeck{Slides: []models.StyledSlide{{Blocks: blocks}}}
	assert.Equal(t, 0.0, visualScore(deck))
}

func TestLogicalFlowScore(t *testing.T) {
	deck := strongDeck()
	assert.InDelta(t, 1.0, logicalFlowScore(deck), 1e-9)

	deck.Slides[0].Spec.Type = models.SlideTypeContent
	assert.InDelta(t, 2.0/3, logicalFlowScore(deck), 1e-9)
}

func TestMECEScore_CoverageFraction(t *testing.T) {
	pyramid := strongPyramid()
	deck := strongDeck()
	assert.InDelta(t, 1.0, meceScore(deck, pyramid), 1e-9)

	deck.Slides[4].Spec.MECESegment = ""
	assert.InDelta(t, 2.0/3, meceScore(deck, pyramid), 1e-9)
}
