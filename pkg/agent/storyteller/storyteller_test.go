package storyteller

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidesmith/slidesmith/pkg/agent"
	"github.com/slidesmith/slidesmith/pkg/config"
	"github.com/slidesmith/slidesmith/pkg/llm/llmtest"
	"github.com/slidesmith/slidesmith/pkg/models"
)

func testOutline(n int) *models.Outline {
	o := &models.Outline{}
	for i := 1; i <= n; i++ {
		o.Slides = append(o.Slides, models.SlideSpec{
			Number:   i,
			Title:    fmt.Sprintf("Slide %d", i),
			Headline: "Act on the finding",
		})
	}
	return o
}

func testExecCtx(client *llmtest.ScriptedClient, slides int) *agent.ExecutionContext {
	execCtx := &agent.ExecutionContext{
		JobID:    "job-test",
		Input:    models.DocumentInput{Document: "doc", Language: "en", NumSlides: slides},
		Pipeline: config.DefaultConfig().Pipeline,
		LLM:      client,
	}
	execCtx.Artifacts.Outline = testOutline(slides)
	execCtx.Artifacts.Pyramid = &models.Pyramid{TopMessage: "Invest now"}
	return execCtx
}

func scrReply(scr models.SCRStructure) string {
	raw, _ := json.Marshal(scr)
	return string(raw)
}

func transitionsReply(n int) string {
	ts := make([]string, n)
	for i := range ts {
		ts[i] = fmt.Sprintf("Which brings us to slide %d.", i+2)
	}
	raw, _ := json.Marshal(ts)
	return string(raw)
}

func notesReply(n int) string {
	notes := make([]models.SpeakerNote, n)
	for i := range notes {
		notes[i] = models.SpeakerNote{
			Slide:          i + 1,
			SpeakingPoints: []string{"point one", "point two"},
			Emphasis:       "the number",
		}
	}
	raw, _ := json.Marshal(notes)
	return string(raw)
}

func TestStoryteller_HappyPath(t *testing.T) {
	client := llmtest.NewScriptedClient()
	client.AddText(scrReply(models.SCRStructure{
		SituationSlides:    []int{1, 2},
		ComplicationSlides: []int{3, 4},
		ResolutionSlides:   []int{5, 6},
	}))
	client.AddText(transitionsReply(5))
	client.AddText(notesReply(6))

	execCtx := testExecCtx(client, 6)
	result, err := New().Run(context.Background(), execCtx)
	require.NoError(t, err)
	assert.Equal(t, agent.StatusCompleted, result.Status)

	n := execCtx.Artifacts.Narrative
	require.NotNil(t, n)
	assert.False(t, n.SCRFallback)
	assert.Len(t, n.Transitions, 5)
	assert.Len(t, n.SpeakerNotes, 6)
	assert.Equal(t, 3, client.CallCount())
}

func TestStoryteller_SCRExhaustionFallsBack(t *testing.T) {
	client := llmtest.NewScriptedClient()
	// Three invalid SCR replies, then valid transitions and notes.
	client.AddText("not json")
	client.AddText(`{"situation_slides": [1], "complication_slides": [1], "resolution_slides": [2]}`)
	client.AddText("not json either")
	client.AddText(transitionsReply(5))
	client.AddText(notesReply(6))

	execCtx := testExecCtx(client, 6)
	result, err := New().Run(context.Background(), execCtx)
	require.NoError(t, err)

	assert.Equal(t, agent.StatusDegraded, result.Status)
	assert.Equal(t, DegradedSCRPartition, result.DegradedReason)

	n := execCtx.Artifacts.Narrative
	require.NotNil(t, n)
	assert.True(t, n.SCRFallback)
	assert.Equal(t, []int{1, 2}, n.SCR.SituationSlides)
	assert.Equal(t, []int{3, 4}, n.SCR.ComplicationSlides)
	assert.Equal(t, []int{5, 6}, n.SCR.ResolutionSlides)
}

func TestStoryteller_ShortTransitionBatchFilledPerPair(t *testing.T) {
	client := llmtest.NewScriptedClient()
	client.AddText(scrReply(models.SCRStructure{
		SituationSlides:    []int{1, 2},
		ComplicationSlides: []int{3, 4},
		ResolutionSlides:   []int{5, 6},
	}))
	client.AddText(transitionsReply(3)) // two short of the required five
	client.AddRouted("bridges these two consecutive slides",
		llmtest.ScriptEntry{Text: `{"transition": "And that leads straight into the risk picture."}`})
	client.AddRouted("bridges these two consecutive slides",
		llmtest.ScriptEntry{Text: `{"transition": "So here is what we do about it."}`})
	client.AddText(notesReply(6))

	execCtx := testExecCtx(client, 6)
	result, err := New().Run(context.Background(), execCtx)
	require.NoError(t, err)
	assert.Equal(t, agent.StatusCompleted, result.Status)

	n := execCtx.Artifacts.Narrative
	require.Len(t, n.Transitions, 5)
	assert.Equal(t, "And that leads straight into the risk picture.", n.Transitions[3])
	assert.Equal(t, "So here is what we do about it.", n.Transitions[4])
}

func TestStoryteller_IrreparableTransitionsFail(t *testing.T) {
	client := llmtest.NewScriptedClient()
	client.AddText(scrReply(models.SCRStructure{
		SituationSlides:    []int{1, 2},
		ComplicationSlides: []int{3, 4},
		ResolutionSlides:   []int{5, 6},
	}))
	client.AddText("garbled batch reply")
	for i := 0; i < 5; i++ {
		client.AddRouted("bridges these two consecutive slides",
			llmtest.ScriptEntry{Text: "still not json"})
	}

	execCtx := testExecCtx(client, 6)
	result, err := New().Run(context.Background(), execCtx)
	require.NoError(t, err)

	assert.Equal(t, agent.StatusFailed, result.Status)
	assert.ErrorContains(t, result.Err, "transitions")
	assert.Nil(t, execCtx.Artifacts.Narrative)
}

func TestStoryteller_MissingNoteFilledPerSlide(t *testing.T) {
	client := llmtest.NewScriptedClient()
	client.AddText(scrReply(models.SCRStructure{
		SituationSlides:    []int{1, 2},
		ComplicationSlides: []int{3, 4},
		ResolutionSlides:   []int{5, 6},
	}))
	client.AddText(transitionsReply(5))
	client.AddText(notesReply(5)) // slide 6 missing
	client.AddRouted("notes for this single slide",
		llmtest.ScriptEntry{Text: `{"slide": 6, "speaking_points": ["close strong"]}`})

	execCtx := testExecCtx(client, 6)
	result, err := New().Run(context.Background(), execCtx)
	require.NoError(t, err)
	assert.Equal(t, agent.StatusCompleted, result.Status)

	n := execCtx.Artifacts.Narrative
	require.Len(t, n.SpeakerNotes, 6)
	assert.Equal(t, 6, n.SpeakerNotes[5].Slide)
	assert.Equal(t, []string{"close strong"}, n.SpeakerNotes[5].SpeakingPoints)
}

func TestNormalizeReply(t *testing.T) {
	in := "{\"speaking_points\": [\"first\nsecond\tthird\x01\"]}"
	out := normalizeReply(in)
	assert.Equal(t, `{"speaking_points": ["first\nsecond\tthird"]}`, out)

	var parsed struct {
		SpeakingPoints []string `json:"speaking_points"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	require.Len(t, parsed.SpeakingPoints, 1)
}
