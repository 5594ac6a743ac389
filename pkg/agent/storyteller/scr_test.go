package storyteller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidesmith/slidesmith/pkg/models"
)

func TestFallbackSCR_BoundaryTable(t *testing.T) {
	tests := []struct {
		slideCount      int
		situationEnd    int
		complicationEnd int
	}{
		{3, 1, 2},
		{4, 2, 3},
		{5, 2, 4},
		{6, 2, 4},
		{10, 2, 4},
		{11, 3, 5},
		{15, 3, 5},
		{16, 4, 7},
		{30, 4, 7},
	}
	for _, tt := range tests {
		scr := fallbackSCR(tt.slideCount)

		require.NotEmpty(t, scr.SituationSlides, "slides=%d", tt.slideCount)
		assert.Equal(t, tt.situationEnd, scr.SituationSlides[len(scr.SituationSlides)-1],
			"situation end for %d slides", tt.slideCount)
		assert.Equal(t, tt.complicationEnd, scr.ComplicationSlides[len(scr.ComplicationSlides)-1],
			"complication end for %d slides", tt.slideCount)

		require.NoError(t, validateSCR(scr, tt.slideCount), "slides=%d", tt.slideCount)
	}
}

func TestValidateSCR(t *testing.T) {
	tests := []struct {
		name    string
		scr     models.SCRStructure
		slides  int
		wantErr string
	}{
		{
			name: "valid partition",
			scr: models.SCRStructure{
				SituationSlides:    []int{1, 2},
				ComplicationSlides: []int{3, 4},
				ResolutionSlides:   []int{5, 6},
			},
			slides: 6,
		},
		{
			name: "duplicate slide",
			scr: models.SCRStructure{
				SituationSlides:    []int{1, 2},
				ComplicationSlides: []int{2, 3},
				ResolutionSlides:   []int{4, 5, 6},
			},
			slides:  6,
			wantErr: "assigned to both",
		},
		{
			name: "missing slide",
			scr: models.SCRStructure{
				SituationSlides:    []int{1, 2},
				ComplicationSlides: []int{3},
				ResolutionSlides:   []int{5, 6},
			},
			slides:  6,
			wantErr: "covers 5 of 6",
		},
		{
			name: "out of range",
			scr: models.SCRStructure{
				SituationSlides:    []int{1, 2},
				ComplicationSlides: []int{3, 4},
				ResolutionSlides:   []int{5, 7},
			},
			slides:  6,
			wantErr: "out of range",
		},
		{
			name: "slide one not in situation",
			scr: models.SCRStructure{
				SituationSlides:    []int{2, 3},
				ComplicationSlides: []int{1, 4},
				ResolutionSlides:   []int{5, 6},
			},
			slides:  6,
			wantErr: "slide 1 must open",
		},
		{
			name: "last slide not in resolution",
			scr: models.SCRStructure{
				SituationSlides:    []int{1, 2},
				ComplicationSlides: []int{3, 6},
				ResolutionSlides:   []int{4, 5},
			},
			slides:  6,
			wantErr: "must close the resolution",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSCR(tt.scr, tt.slides)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
