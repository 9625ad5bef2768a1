package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"SRPulse/internal/domain/models"
)

// FileCollector loads a raw batch from a JSON file in the feed's
// {"products": [...]} shape.
type FileCollector struct {
	path string
}

func NewFileCollector(path string) *FileCollector {
	return &FileCollector{path: path}
}

func (c *FileCollector) Collect(_ context.Context) ([]models.RawRecord, error) {
	b, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}

	var doc feedResponse
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", c.path, err)
	}
	return doc.Products, nil
}

// SaveRecords writes a raw batch back to disk in the same feed shape, so a
// collected batch can be re-analyzed later without hitting the API again.
func SaveRecords(path string, records []models.RawRecord) error {
	doc := map[string]any{
		"products": records,
		"metadata": map[string]any{
			"total_count": len(records),
		},
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
