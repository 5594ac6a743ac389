package strategist

import (
	"fmt"
	"strings"

	"github.com/slidesmith/slidesmith/pkg/models"
)

// buildAnalysisPrompt asks for the structured document analysis.
func buildAnalysisPrompt(doc string, audience, purpose, language string) string {
	var b strings.Builder
	b.WriteString("You are a strategy consultant analyzing a business document for a presentation.\n")
	fmt.Fprintf(&b, "Write all content in language %q.\n", language)
	if audience != "" {
		fmt.Fprintf(&b, "Target audience: %s.\n", audience)
	}
	if purpose != "" {
		fmt.Fprintf(&b, "Presentation purpose: %s.\n", purpose)
	}
	b.WriteString(`
Return ONLY a JSON object with this exact shape, no commentary:
{
  "key_message": "one-sentence synthesis of the document",
  "data_points": ["salient quantitative claim", "..."],
  "audience": "classification tag",
  "purpose": "classification tag",
  "industry": "classification tag",
  "context": "classification tag"
}

DOCUMENT:
`)
	b.WriteString(doc)
	return b.String()
}

// buildPyramidPrompt asks for exactly one supporting argument per category.
func buildPyramidPrompt(analysis *models.Analysis, fw *models.Framework, language string) string {
	var b strings.Builder
	b.WriteString("Build a pyramid-principle argument structure for a presentation.\n")
	fmt.Fprintf(&b, "Write all content in language %q.\n", language)
	fmt.Fprintf(&b, "Key message: %s\n", analysis.KeyMessage)
	fmt.Fprintf(&b, "Framework: %s (%s)\n", fw.Name, fw.Description)
	fmt.Fprintf(&b, "Categories (use EXACTLY these, one argument per category, no extras): %s\n",
		strings.Join(fw.Categories, ", "))
	b.WriteString(`
Return ONLY a JSON object:
{
  "top_message": "key message restated as an action-oriented statement",
  "supporting_arguments": [
    {"category": "<category name verbatim>", "argument": "one sentence", "evidence": ["claim 1", "claim 2"]}
  ]
}
Each argument needs 2-4 evidence entries grounded in the document analysis.
Known data points:
`)
	for _, dp := range analysis.DataPoints {
		b.WriteString("- " + dp + "\n")
	}
	return b.String()
}

// buildOutlinePrompt asks for the full slide plan.
func buildOutlinePrompt(pyramid *models.Pyramid, fw *models.Framework, slideCount int, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan a %d-slide presentation outline.\n", slideCount)
	fmt.Fprintf(&b, "Write all content in language %q.\n", language)
	fmt.Fprintf(&b, "Top message: %s\n", pyramid.TopMessage)
	fmt.Fprintf(&b, "MECE segments: %s\n", strings.Join(fw.Categories, ", "))
	b.WriteString(`Structural rules:
- Slide 1: title slide.
- Slide 2: executive summary.
- Final slide: next steps / recommendations.
- Every MECE segment gets at least one content slide; set "mece_segment" on those.
- Every headline is a so-what action statement, not a neutral label.

Return ONLY a JSON array of exactly the requested length:
[
  {"number": 1, "type": "title", "title": "...", "headline": "...",
   "content_type": "text", "layout_type": "title_slide",
   "key_points": ["..."], "mece_segment": ""}
]
Valid type values: title, executive_summary, content, recommendations, next_steps.
Valid content_type values: text, bullets, comparison, matrix, data_visualization, summary.
Valid layout_type values: title_slide, title_and_content, three_column, matrix, split_text_chart, summary_slide.
Arguments per segment:
`)
	for _, arg := range pyramid.SupportingArguments {
		fmt.Fprintf(&b, "- [%s] %s\n", arg.Category, arg.Argument)
	}
	return b.String()
}
