package strategist

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidesmith/slidesmith/pkg/agent"
	"github.com/slidesmith/slidesmith/pkg/config"
	"github.com/slidesmith/slidesmith/pkg/llm/llmtest"
	"github.com/slidesmith/slidesmith/pkg/models"
)

func testExecCtx(client *llmtest.ScriptedClient, numSlides int) *agent.ExecutionContext {
	return &agent.ExecutionContext{
		JobID: "job-test",
		Input: models.DocumentInput{
			Document:  "Revenue grew 32% to 120억원. Margin pressure from two competitors.",
			NumSlides: numSlides,
			Language:  "en",
			Purpose:   "board update",
		},
		Pipeline: config.DefaultConfig().Pipeline,
		LLM:      client,
	}
}

func analysisReply() string {
	raw, _ := json.Marshal(models.Analysis{
		KeyMessage: "Accelerate growth while defending margin",
		DataPoints: []string{"Revenue +32% YoY", "Two new competitors"},
		Audience:   "board",
		Purpose:    "approval",
		Industry:   "saas",
		Context:    "annual review",
	})
	return string(raw)
}

func pyramidReply(categories []string) string {
	p := models.Pyramid{TopMessage: "Invest now to lock in growth"}
	for _, c := range categories {
		p.SupportingArguments = append(p.SupportingArguments, models.SupportingArgument{
			Category: c,
			Argument: "Argument for " + c,
			Evidence: []string{"evidence a", "evidence b"},
		})
	}
	raw, _ := json.Marshal(p)
	return string(raw)
}

func outlineReply(n int) string {
	slides := make([]models.SlideSpec, n)
	for i := range slides {
		slides[i] = models.SlideSpec{
			Number:   i + 1,
			Title:    "Slide Title",
			Headline: "Act on the growth signal now",
		}
	}
	raw, _ := json.Marshal(slides)
	return string(raw)
}

func TestStrategist_HappyPath(t *testing.T) {
	client := llmtest.NewScriptedClient()
	client.AddText(analysisReply())
	client.AddText(pyramidReply(frameworkCatalog[models.FrameworkCustom].Categories))
	client.AddText("```json\n" + outlineReply(10) + "\n```")

	execCtx := testExecCtx(client, 10)
	result, err := New().Run(context.Background(), execCtx)
	require.NoError(t, err)
	require.Equal(t, agent.StatusCompleted, result.Status)

	require.NotNil(t, execCtx.Artifacts.Analysis)
	require.NotNil(t, execCtx.Artifacts.Framework)
	require.NotNil(t, execCtx.Artifacts.Pyramid)
	require.NotNil(t, execCtx.Artifacts.Outline)

	assert.Equal(t, models.FrameworkCustom, execCtx.Artifacts.Framework.Name)
	assert.Equal(t, 10, execCtx.Artifacts.Outline.SlideCount())
	assert.Equal(t, 3, client.CallCount())
}

func TestStrategist_AnalysisParseFailureIsFatal(t *testing.T) {
	client := llmtest.NewScriptedClient()
	client.AddText("I am unable to produce structured output, apologies.")

	execCtx := testExecCtx(client, 10)
	result, err := New().Run(context.Background(), execCtx)
	require.NoError(t, err)

	assert.Equal(t, agent.StatusFailed, result.Status)
	assert.ErrorContains(t, result.Err, "document analysis")
	assert.Nil(t, execCtx.Artifacts.Analysis)
	assert.Equal(t, 1, client.CallCount())
}

func TestStrategist_MECEViolationIsFatal(t *testing.T) {
	client := llmtest.NewScriptedClient()
	client.AddText(analysisReply())
	// 2 categories when the custom framework declares 3.
	client.AddText(pyramidReply([]string{"Current State", "Challenges"}))

	execCtx := testExecCtx(client, 10)
	result, err := New().Run(context.Background(), execCtx)
	require.NoError(t, err)

	assert.Equal(t, agent.StatusFailed, result.Status)
	assert.ErrorContains(t, result.Err, "MECE violation")
	// Outline step never runs after the pyramid invariant fails.
	assert.Equal(t, 2, client.CallCount())
	assert.Nil(t, execCtx.Artifacts.Outline)
}

func TestStrategist_MECEWrongCategoryIsFatal(t *testing.T) {
	client := llmtest.NewScriptedClient()
	client.AddText(analysisReply())
	client.AddText(pyramidReply([]string{"Current State", "Challenges", "Unrelated"}))

	execCtx := testExecCtx(client, 10)
	result, err := New().Run(context.Background(), execCtx)
	require.NoError(t, err)
	assert.Equal(t, agent.StatusFailed, result.Status)
	assert.ErrorContains(t, result.Err, "no supporting argument")
}

func TestStrategist_OutlineLengthMismatchBeyondDriftIsFatal(t *testing.T) {
	client := llmtest.NewScriptedClient()
	client.AddText(analysisReply())
	client.AddText(pyramidReply(frameworkCatalog[models.FrameworkCustom].Categories))
	client.AddText(outlineReply(4))

	execCtx := testExecCtx(client, 12)
	result, err := New().Run(context.Background(), execCtx)
	require.NoError(t, err)
	assert.Equal(t, agent.StatusFailed, result.Status)
	assert.ErrorContains(t, result.Err, "outline")
}
