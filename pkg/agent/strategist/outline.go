package strategist

import (
	"fmt"
	"strings"

	"github.com/slidesmith/slidesmith/pkg/models"
)

// maxLengthDrift is how far the LLM's outline length may deviate from the
// requested slide count before the mismatch is fatal. Within the drift the
// outline is repaired by truncation or padding.
const maxLengthDrift = 2

// normalizeOutline enforces the structural rules of the slide plan:
// sequential numbering, fixed positional slide types, heuristic fill-in of
// missing content/layout types, and at least one content slide per MECE
// segment.
func normalizeOutline(slides []models.SlideSpec, fw *models.Framework, slideCount int) (*models.Outline, error) {
	if len(slides) != slideCount {
		drift := len(slides) - slideCount
		if drift < -maxLengthDrift || drift > maxLengthDrift {
			return nil, fmt.Errorf("outline length mismatch: got %d slides, want %d", len(slides), slideCount)
		}
		slides = repairLength(slides, slideCount)
	}

	for i := range slides {
		slides[i].Number = i + 1
	}

	// Fixed structural positions.
	slides[0].Type = models.SlideTypeTitle
	slides[0].LayoutType = models.LayoutTitleSlide
	if slides[0].ContentType == "" {
		slides[0].ContentType = models.ContentTypeText
	}
	slides[1].Type = models.SlideTypeExecutiveSummary
	if slides[1].ContentType == "" {
		slides[1].ContentType = models.ContentTypeSummary
	}
	if slides[1].LayoutType == "" {
		slides[1].LayoutType = models.LayoutSummarySlide
	}
	last := len(slides) - 1
	if slides[last].Type != models.SlideTypeRecommendations {
		slides[last].Type = models.SlideTypeNextSteps
	}
	for i := 2; i < last; i++ {
		if slides[i].Type == "" {
			slides[i].Type = models.SlideTypeContent
		}
	}

	for i := range slides {
		applyLayoutHeuristics(&slides[i])
	}

	assignSegments(slides, fw)

	return &models.Outline{Slides: slides}, nil
}

// applyLayoutHeuristics fills missing content_type/layout_type from title
// keywords. Korean keywords are part of the heuristic because decks are
// commonly authored in Korean.
func applyLayoutHeuristics(s *models.SlideSpec) {
	if s.ContentType != "" && s.LayoutType != "" {
		return
	}
	title := strings.ToLower(s.Title)

	var ct models.ContentType
	var lt models.LayoutType
	switch {
	case containsAny(title, "comparison", "비교", "pros/cons"):
		ct, lt = models.ContentTypeComparison, models.LayoutThreeColumn
	case containsAny(title, "matrix", "2x2", "3x3"):
		ct, lt = models.ContentTypeMatrix, models.LayoutMatrix
	case containsAny(title, "roi", "chart", "data", "분석"):
		ct, lt = models.ContentTypeChart, models.LayoutSplitTextChart
	case s.Number == 1 || containsAny(title, "summary", "executive"):
		ct, lt = models.ContentTypeSummary, models.LayoutTitleSlide
	default:
		ct, lt = models.ContentTypeText, models.LayoutTitleAndContent
	}

	if s.ContentType == "" {
		s.ContentType = ct
	}
	if s.LayoutType == "" {
		s.LayoutType = lt
	}
}

// assignSegments guarantees at least one interior content slide per MECE
// segment: slides that already reference a valid segment keep it, then
// uncovered segments are assigned to unclaimed content slides in order.
func assignSegments(slides []models.SlideSpec, fw *models.Framework) {
	valid := make(map[string]bool, len(fw.Categories))
	for _, c := range fw.Categories {
		valid[c] = true
	}

	covered := make(map[string]bool)
	for i := range slides {
		if valid[slides[i].MECESegment] {
			covered[slides[i].MECESegment] = true
		} else {
			slides[i].MECESegment = ""
		}
	}

	var missing []string
	for _, c := range fw.Categories {
		if !covered[c] {
			missing = append(missing, c)
		}
	}

	for i := 2; i < len(slides)-1 && len(missing) > 0; i++ {
		if slides[i].MECESegment == "" {
			slides[i].MECESegment = missing[0]
			missing = missing[1:]
		}
	}
	// More segments than interior slides: double up on the earliest ones.
	for i := 2; i < len(slides)-1 && len(missing) > 0; i++ {
		slides[i].MECESegment = missing[0]
		missing = missing[1:]
	}
}

// repairLength truncates or pads the slide list to the requested count.
// Padding inserts content slides before the final (next-steps) slide.
func repairLength(slides []models.SlideSpec, want int) []models.SlideSpec {
	if len(slides) > want {
		// Keep the final slide; drop excess interior slides.
		tail := slides[len(slides)-1]
		slides = append(slides[:want-1], tail)
		return slides
	}
	for len(slides) < want {
		filler := models.SlideSpec{
			Type:        models.SlideTypeContent,
			Title:       "Supporting Detail",
			Headline:    "Additional evidence reinforces the recommendation",
			ContentType: models.ContentTypeBullets,
			LayoutType:  models.LayoutTitleAndContent,
		}
		last := slides[len(slides)-1]
		slides = append(slides[:len(slides)-1], filler, last)
	}
	return slides
}
