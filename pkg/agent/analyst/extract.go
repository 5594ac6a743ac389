package analyst

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/slidesmith/slidesmith/pkg/agent"
	"github.com/slidesmith/slidesmith/pkg/llm"
	"github.com/slidesmith/slidesmith/pkg/models"
)

// candidate is the raw datum shape requested from the LLM. Value is left
// loosely typed because models return numbers both bare and quoted, often
// with separators or a unit glued on.
type candidate struct {
	Metric     string             `json:"metric"`
	Value      json.RawMessage    `json:"value"`
	Unit       string             `json:"unit"`
	Period     string             `json:"period"`
	Comparison *models.Comparison `json:"comparison,omitempty"`
	Context    string             `json:"context,omitempty"`
	Drivers    map[string]float64 `json:"drivers,omitempty"`
}

func buildExtractionPrompt(document, language string) string {
	var b strings.Builder
	b.WriteString("Extract every quantitative claim from the business document below.\n")
	b.WriteString("Respond with a JSON array only. Each element:\n")
	b.WriteString(`{"metric": string, "value": number, "unit": string, "period": string,` + "\n")
	b.WriteString(` "comparison": {"previous": number, "growth_rate": number, "benchmark": number} (optional),` + "\n")
	b.WriteString(` "context": string (optional), "drivers": {name: percent} (optional)}` + "\n\n")
	fmt.Fprintf(&b, "Write metric names in %s.\n\n", language)
	b.WriteString("Document:\n")
	b.WriteString(document)
	return b.String()
}

// extractDataPoints runs one LLM extraction call and validates the reply.
// Invalid candidates are dropped silently; the caller decides whether the
// survivors are enough.
func extractDataPoints(ctx context.Context, execCtx *agent.ExecutionContext) ([]models.DataPoint, error) {
	prompt := buildExtractionPrompt(execCtx.Input.Document, execCtx.Language())

	reply, err := execCtx.LLM.Complete(ctx, prompt, llm.Options{})
	if err != nil {
		return nil, err
	}

	var candidates []candidate
	if err := llm.Unmarshal(reply, llm.ShapeArray, &candidates); err != nil {
		return nil, err
	}

	points := make([]models.DataPoint, 0, len(candidates))
	for _, c := range candidates {
		value, ok := parseValue(c.Value)
		if !ok || strings.TrimSpace(c.Metric) == "" || strings.TrimSpace(c.Unit) == "" {
			continue
		}
		points = append(points, models.DataPoint{
			ID:         fmt.Sprintf("data_%03d", len(points)+1),
			Metric:     strings.TrimSpace(c.Metric),
			Value:      value,
			Unit:       strings.TrimSpace(c.Unit),
			Period:     strings.TrimSpace(c.Period),
			Comparison: c.Comparison,
			Context:    strings.TrimSpace(c.Context),
			Drivers:    c.Drivers,
		})
	}
	return points, nil
}

// parseValue accepts a bare JSON number or a quoted numeric string with
// thousands separators or a trailing % stripped.
func parseValue(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	num, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}
