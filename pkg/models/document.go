// Package models defines the typed artifacts that flow through the
// slide-generation pipeline. Each artifact is produced by exactly one stage,
// consumed by later stages, and is immutable after creation.
package models

// DefaultSlideCount is used when a request does not specify num_slides.
const DefaultSlideCount = 15

// MinSlideCount is the smallest deck the pipeline will produce
// (title + executive summary + next steps).
const MinSlideCount = 3

// DocumentInput is the job submission payload: the source document plus
// generation parameters.
type DocumentInput struct {
	Document       string `json:"document"`
	NumSlides      int    `json:"num_slides"`
	Language       string `json:"language"`
	TargetAudience string `json:"target_audience,omitempty"`
	Purpose        string `json:"purpose,omitempty"`
}

// Normalized returns a copy with defaults applied.
func (d DocumentInput) Normalized() DocumentInput {
	if d.NumSlides == 0 {
		d.NumSlides = DefaultSlideCount
	}
	if d.Language == "" {
		d.Language = "ko"
	}
	return d
}
