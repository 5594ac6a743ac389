// Package emitter writes finalized decks to disk. The slide-file renderer
// is an external collaborator; this package owns only the handoff format
// and the output location.
package emitter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/slidesmith/slidesmith/pkg/models"
)

// Emitter persists a styled deck and returns the absolute path of the
// written file.
type Emitter interface {
	Emit(ctx context.Context, jobID string, deck *models.StyledDeck) (string, error)
}

// JSONEmitter writes one pretty-printed JSON file per job into a fixed
// output directory.
type JSONEmitter struct {
	outputDir string
}

// NewJSONEmitter creates an emitter rooted at outputDir. The directory is
// created on first emit.
func NewJSONEmitter(outputDir string) *JSONEmitter {
	return &JSONEmitter{outputDir: outputDir}
}

// Emit implements Emitter.
func (e *JSONEmitter) Emit(ctx context.Context, jobID string, deck *models.StyledDeck) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	raw, err := json.MarshalIndent(deck, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding deck for %s: %w", jobID, err)
	}

	path := filepath.Join(e.outputDir, jobID+".json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("writing deck for %s: %w", jobID, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving deck path for %s: %w", jobID, err)
	}
	return abs, nil
}
