package storyteller

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/slidesmith/slidesmith/pkg/agent"
	"github.com/slidesmith/slidesmith/pkg/llm"
	"github.com/slidesmith/slidesmith/pkg/models"
)

// buildTransitions produces the slide_count - 1 transitions. One batched
// call first; a short array is completed with per-pair calls for the missing
// tail. A transition that cannot be obtained either way fails the stage:
// transitions are a visible product of the narrative and no heuristic
// substitute is acceptable.
func buildTransitions(
	ctx context.Context,
	execCtx *agent.ExecutionContext,
	outline *models.Outline,
	scr models.SCRStructure,
	log *slog.Logger,
) ([]string, error) {
	want := outline.SlideCount() - 1

	transitions, batchErr := batchTransitions(ctx, execCtx, outline, scr)
	if batchErr != nil {
		if ctx.Err() != nil {
			return nil, batchErr
		}
		log.Warn("Batched transitions failed, falling back to per-pair calls", "error", batchErr)
		transitions = nil
	}
	if len(transitions) > want {
		transitions = transitions[:want]
	}

	for i := len(transitions); i < want; i++ {
		t, err := pairTransition(ctx, execCtx, outline.Slides[i], outline.Slides[i+1])
		if err != nil {
			return nil, fmt.Errorf("transition %d->%d: %w", i+1, i+2, err)
		}
		transitions = append(transitions, t)
	}
	return transitions, nil
}

func batchTransitions(
	ctx context.Context,
	execCtx *agent.ExecutionContext,
	outline *models.Outline,
	scr models.SCRStructure,
) ([]string, error) {
	prompt := buildTransitionsPrompt(outline, scr, execCtx.Language())
	reply, err := execCtx.LLM.Complete(ctx, prompt, llm.Options{})
	if err != nil {
		return nil, err
	}

	var transitions []string
	if err := llm.Unmarshal(reply, llm.ShapeArray, &transitions); err != nil {
		return nil, err
	}

	// Blank entries poison the tail-fill index math, so reject them here
	// and let the per-pair path regenerate everything after the last good
	// entry.
	for i, t := range transitions {
		if strings.TrimSpace(t) == "" {
			return transitions[:i], nil
		}
	}
	return transitions, nil
}

func pairTransition(
	ctx context.Context,
	execCtx *agent.ExecutionContext,
	from, to models.SlideSpec,
) (string, error) {
	prompt := buildPairTransitionPrompt(from, to, execCtx.Language())
	reply, err := execCtx.LLM.Complete(ctx, prompt, llm.Options{})
	if err != nil {
		return "", err
	}

	var out struct {
		Transition string `json:"transition"`
	}
	if err := llm.Unmarshal(reply, llm.ShapeObject, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.Transition) == "" {
		return "", fmt.Errorf("empty transition")
	}
	return out.Transition, nil
}
