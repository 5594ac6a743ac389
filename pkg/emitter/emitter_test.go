package emitter

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidesmith/slidesmith/pkg/models"
)

func TestJSONEmitter_WritesDeck(t *testing.T) {
	dir := t.TempDir()
	e := NewJSONEmitter(filepath.Join(dir, "output"))

	deck := &models.StyledDeck{
		Title:    "Growth Strategy",
		Language: "ko",
		Slides: []models.StyledSlide{
			{Spec: models.SlideSpec{Number: 1, Title: "Growth Strategy"}},
		},
	}

	path, err := e.Emit(context.Background(), "job-1", deck)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, "job-1.json", filepath.Base(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var got models.StyledDeck
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Growth Strategy", got.Title)
	require.Len(t, got.Slides, 1)
}

func TestJSONEmitter_CancelledContext(t *testing.T) {
	e := NewJSONEmitter(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Emit(ctx, "job-1", &models.StyledDeck{})
	assert.ErrorIs(t, err, context.Canceled)
}
