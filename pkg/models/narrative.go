package models

// SCRStructure partitions slide numbers into the situation / complication /
// resolution narrative arc. The three sets are pairwise disjoint and their
// union covers {1..slide_count}: slide 1 is counted in situation and the
// final slide in resolution.
type SCRStructure struct {
	SituationSlides    []int `json:"situation_slides"`
	ComplicationSlides []int `json:"complication_slides"`
	ResolutionSlides   []int `json:"resolution_slides"`
}

// SpeakerNote carries the presenter-facing notes for one slide.
type SpeakerNote struct {
	Slide                int      `json:"slide"`
	SpeakingPoints       []string `json:"speaking_points"`
	Emphasis             string   `json:"emphasis,omitempty"`
	AnticipatedQuestions []string `json:"anticipated_questions,omitempty"`
}

// Narrative is the Storyteller's output: the SCR arc, one transition per
// consecutive slide pair (slide_count - 1 entries), and one speaker note
// per slide.
type Narrative struct {
	SCR          SCRStructure  `json:"scr_structure"`
	Transitions  []string      `json:"transitions"`
	SpeakerNotes []SpeakerNote `json:"speaker_notes"`
	// SCRFallback is set when all LLM attempts at the SCR assignment timed
	// out and the deterministic partition was applied instead.
	SCRFallback bool `json:"scr_fallback,omitempty"`
}
