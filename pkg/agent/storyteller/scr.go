package storyteller

import (
	"fmt"
	"sort"

	"github.com/slidesmith/slidesmith/pkg/models"
)

// scrBoundary is one row of the deterministic partition table.
type scrBoundary struct {
	maxSlides       int
	situationEnd    int
	complicationEnd int
}

// Partition boundaries by deck size. Resolution always runs from
// complication end + 1 through the last slide.
var scrBoundaries = []scrBoundary{
	{maxSlides: 10, situationEnd: 2, complicationEnd: 4},
	{maxSlides: 15, situationEnd: 3, complicationEnd: 5},
	{maxSlides: 1 << 30, situationEnd: 4, complicationEnd: 7},
}

// fallbackSCR produces the deterministic situation / complication /
// resolution partition for a deck of the given size.
func fallbackSCR(slideCount int) models.SCRStructure {
	var b scrBoundary
	for _, row := range scrBoundaries {
		if slideCount <= row.maxSlides {
			b = row
			break
		}
	}

	// Small decks overrun the table: the last slide must stay in the
	// resolution and slide 1 in the situation.
	if b.complicationEnd > slideCount-1 {
		b.complicationEnd = slideCount - 1
	}
	if b.situationEnd >= b.complicationEnd {
		b.situationEnd = b.complicationEnd - 1
	}

	scr := models.SCRStructure{}
	for n := 1; n <= slideCount; n++ {
		switch {
		case n <= b.situationEnd:
			scr.SituationSlides = append(scr.SituationSlides, n)
		case n <= b.complicationEnd:
			scr.ComplicationSlides = append(scr.ComplicationSlides, n)
		default:
			scr.ResolutionSlides = append(scr.ResolutionSlides, n)
		}
	}
	return scr
}

// validateSCR checks the partition invariant: the three sets are pairwise
// disjoint and their union is exactly {1..slideCount}, with slide 1 in
// situation and the last slide in resolution.
func validateSCR(scr models.SCRStructure, slideCount int) error {
	seen := make(map[int]string, slideCount)
	record := func(part string, slides []int) error {
		for _, n := range slides {
			if n < 1 || n > slideCount {
				return fmt.Errorf("slide %d out of range 1..%d", n, slideCount)
			}
			if prev, dup := seen[n]; dup {
				return fmt.Errorf("slide %d assigned to both %s and %s", n, prev, part)
			}
			seen[n] = part
		}
		return nil
	}

	if err := record("situation", scr.SituationSlides); err != nil {
		return err
	}
	if err := record("complication", scr.ComplicationSlides); err != nil {
		return err
	}
	if err := record("resolution", scr.ResolutionSlides); err != nil {
		return err
	}

	if len(seen) != slideCount {
		return fmt.Errorf("partition covers %d of %d slides", len(seen), slideCount)
	}
	if seen[1] != "situation" {
		return fmt.Errorf("slide 1 must open the situation")
	}
	if seen[slideCount] != "resolution" {
		return fmt.Errorf("slide %d must close the resolution", slideCount)
	}
	return nil
}

// normalizeSCR sorts each part ascending so downstream consumers can rely
// on ordered slide lists regardless of how the LLM emitted them.
func normalizeSCR(scr *models.SCRStructure) {
	sort.Ints(scr.SituationSlides)
	sort.Ints(scr.ComplicationSlides)
	sort.Ints(scr.ResolutionSlides)
}
