package storyteller

import (
	"fmt"
	"strings"

	"github.com/slidesmith/slidesmith/pkg/models"
)

func writeSlideList(b *strings.Builder, outline *models.Outline) {
	for _, s := range outline.Slides {
		fmt.Fprintf(b, "%d. %s - %s\n", s.Number, s.Title, s.Headline)
	}
}

func buildSCRPrompt(outline *models.Outline, pyramid *models.Pyramid, language string) string {
	var b strings.Builder
	b.WriteString("Partition the slides of this deck into a Situation / Complication / Resolution narrative arc.\n")
	b.WriteString("Respond with a JSON object only:\n")
	b.WriteString(`{"situation_slides": [int], "complication_slides": [int], "resolution_slides": [int]}` + "\n\n")
	b.WriteString("Rules: every slide number appears in exactly one list; slide 1 belongs to the situation; the final slide belongs to the resolution.\n\n")
	fmt.Fprintf(&b, "Core message: %s\n\nSlides:\n", pyramid.TopMessage)
	writeSlideList(&b, outline)
	fmt.Fprintf(&b, "\nThink in %s.", language)
	return b.String()
}

func buildTransitionsPrompt(outline *models.Outline, scr models.SCRStructure, language string) string {
	n := outline.SlideCount()
	var b strings.Builder
	fmt.Fprintf(&b, "Write the %d spoken transitions between consecutive slides of this deck, in %s.\n", n-1, language)
	b.WriteString("Respond with a JSON array of strings only, ordered: entry i bridges slide i to slide i+1.\n")
	b.WriteString("One sentence each, carrying the narrative forward.\n\n")
	fmt.Fprintf(&b, "Narrative arc: situation %v, complication %v, resolution %v.\n\nSlides:\n",
		scr.SituationSlides, scr.ComplicationSlides, scr.ResolutionSlides)
	writeSlideList(&b, outline)
	return b.String()
}

func buildPairTransitionPrompt(from, to models.SlideSpec, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write one spoken sentence, in %s, that bridges these two consecutive slides.\n", language)
	b.WriteString("Respond with a JSON object only: {\"transition\": string}\n\n")
	fmt.Fprintf(&b, "From slide %d: %s - %s\n", from.Number, from.Title, from.Headline)
	fmt.Fprintf(&b, "To slide %d: %s - %s\n", to.Number, to.Title, to.Headline)
	return b.String()
}

func buildNotesPrompt(outline *models.Outline, insights []models.Insight, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write presenter notes for every slide of this deck, in %s.\n", language)
	b.WriteString("Respond with a JSON array only, one element per slide:\n")
	b.WriteString(`{"slide": int, "speaking_points": [string], "emphasis": string, "anticipated_questions": [string]}` + "\n\n")
	b.WriteString("Slides:\n")
	writeSlideList(&b, outline)
	if len(insights) > 0 {
		b.WriteString("\nKey findings to weave in:\n")
		for _, ins := range insights {
			fmt.Fprintf(&b, "- %s (%s)\n", ins.Observation, ins.Implication)
		}
	}
	return b.String()
}

func buildSlideNotePrompt(slide models.SlideSpec, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write presenter notes for this single slide, in %s.\n", language)
	b.WriteString("Respond with a JSON object only:\n")
	b.WriteString(`{"slide": int, "speaking_points": [string], "emphasis": string, "anticipated_questions": [string]}` + "\n\n")
	fmt.Fprintf(&b, "Slide %d: %s - %s\n", slide.Number, slide.Title, slide.Headline)
	for _, p := range slide.KeyPoints {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	return b.String()
}
