package storyteller

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/slidesmith/slidesmith/pkg/agent"
	"github.com/slidesmith/slidesmith/pkg/llm"
	"github.com/slidesmith/slidesmith/pkg/models"
)

// buildSpeakerNotes produces one note per slide: a batched call with reply
// normalization, then per-slide calls for any slide the batch missed. A
// slide left without a note after both passes fails the stage.
func buildSpeakerNotes(
	ctx context.Context,
	execCtx *agent.ExecutionContext,
	outline *models.Outline,
	insights []models.Insight,
	log *slog.Logger,
) ([]models.SpeakerNote, error) {
	bySlide := make(map[int]models.SpeakerNote, outline.SlideCount())

	batch, err := batchSpeakerNotes(ctx, execCtx, outline, insights)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		log.Warn("Batched speaker notes failed, falling back to per-slide calls", "error", err)
	}
	for _, note := range batch {
		if note.Slide >= 1 && note.Slide <= outline.SlideCount() && len(note.SpeakingPoints) > 0 {
			bySlide[note.Slide] = note
		}
	}

	for _, slide := range outline.Slides {
		if _, ok := bySlide[slide.Number]; ok {
			continue
		}
		note, err := slideNote(ctx, execCtx, slide)
		if err != nil {
			return nil, fmt.Errorf("speaker note for slide %d: %w", slide.Number, err)
		}
		bySlide[slide.Number] = note
	}

	notes := make([]models.SpeakerNote, 0, len(bySlide))
	for _, note := range bySlide {
		notes = append(notes, note)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].Slide < notes[j].Slide })
	return notes, nil
}

func batchSpeakerNotes(
	ctx context.Context,
	execCtx *agent.ExecutionContext,
	outline *models.Outline,
	insights []models.Insight,
) ([]models.SpeakerNote, error) {
	prompt := buildNotesPrompt(outline, insights, execCtx.Language())
	reply, err := execCtx.LLM.Complete(ctx, prompt, llm.Options{})
	if err != nil {
		return nil, err
	}

	var notes []models.SpeakerNote
	if err := llm.Unmarshal(normalizeReply(reply), llm.ShapeArray, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func slideNote(
	ctx context.Context,
	execCtx *agent.ExecutionContext,
	slide models.SlideSpec,
) (models.SpeakerNote, error) {
	prompt := buildSlideNotePrompt(slide, execCtx.Language())
	reply, err := execCtx.LLM.Complete(ctx, prompt, llm.Options{})
	if err != nil {
		return models.SpeakerNote{}, err
	}

	var note models.SpeakerNote
	if err := llm.Unmarshal(normalizeReply(reply), llm.ShapeObject, &note); err != nil {
		return models.SpeakerNote{}, err
	}
	if len(note.SpeakingPoints) == 0 {
		return models.SpeakerNote{}, fmt.Errorf("no speaking points")
	}
	note.Slide = slide.Number
	return note, nil
}

// normalizeReply strips raw control characters and repairs the escape
// sequences models commonly mangle in long note replies. Newlines and tabs
// inside the JSON text are re-escaped rather than dropped.
func normalizeReply(reply string) string {
	var b strings.Builder
	b.Grow(len(reply))

	inString := false
	escaped := false
	for _, r := range reply {
		if inString {
			switch {
			case escaped:
				escaped = false
				b.WriteRune(r)
				continue
			case r == '\\':
				escaped = true
				b.WriteRune(r)
				continue
			case r == '"':
				inString = false
				b.WriteRune(r)
				continue
			case r == '\n':
				b.WriteString(`\n`)
				continue
			case r == '\t':
				b.WriteString(`\t`)
				continue
			case r == '\r':
				continue
			case r < 0x20:
				continue
			}
			b.WriteRune(r)
			continue
		}

		if r == '"' {
			inString = true
		}
		b.WriteRune(r)
	}
	return b.String()
}
