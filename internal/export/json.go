package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"SRPulse/internal/domain/models"
)

// JSONWriter exports the analysis document as a JSON file.
type JSONWriter struct {
	dir  string
	name string
}

func NewJSONWriter(dir, name string) *JSONWriter {
	return &JSONWriter{dir: dir, name: name}
}

func (w *JSONWriter) Export(doc map[string]any, _ *models.AnalysisResult) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode analysis: %w", err)
	}

	path := filepath.Join(w.dir, w.name)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
