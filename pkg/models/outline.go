package models

// SlideType tags a slide's structural role in the deck.
type SlideType string

const (
	SlideTypeTitle            SlideType = "title"
	SlideTypeExecutiveSummary SlideType = "executive_summary"
	SlideTypeContent          SlideType = "content"
	SlideTypeRecommendations  SlideType = "recommendations"
	SlideTypeNextSteps        SlideType = "next_steps"
)

// ContentType describes how a slide's body is rendered.
type ContentType string

const (
	ContentTypeText       ContentType = "text"
	ContentTypeBullets    ContentType = "bullets"
	ContentTypeComparison ContentType = "comparison"
	ContentTypeMatrix     ContentType = "matrix"
	ContentTypeChart      ContentType = "data_visualization"
	ContentTypeSummary    ContentType = "summary"
)

// LayoutType selects a slide layout from the closed layout set.
type LayoutType string

const (
	LayoutTitleSlide      LayoutType = "title_slide"
	LayoutTitleAndContent LayoutType = "title_and_content"
	LayoutThreeColumn     LayoutType = "three_column"
	LayoutMatrix          LayoutType = "matrix"
	LayoutSplitTextChart  LayoutType = "split_text_chart"
	LayoutSummarySlide    LayoutType = "summary_slide"
)

// SlideSpec is one planned slide in the outline.
type SlideSpec struct {
	Number      int         `json:"number"`
	Type        SlideType   `json:"type"`
	Title       string      `json:"title"`
	Headline    string      `json:"headline"`
	ContentType ContentType `json:"content_type"`
	LayoutType  LayoutType  `json:"layout_type"`
	KeyPoints   []string    `json:"key_points,omitempty"`
	MECESegment string      `json:"mece_segment,omitempty"`
}

// Outline is the ordered slide plan. Structural positions are fixed:
// slide 1 is the title, slide 2 the executive summary, the final slide
// next steps, and every framework category gets at least one content slide.
type Outline struct {
	Slides []SlideSpec `json:"slides"`
}

// SlideCount returns the number of planned slides.
func (o *Outline) SlideCount() int { return len(o.Slides) }
