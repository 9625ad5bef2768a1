package repository

import (
	"context"

	"SRPulse/internal/domain/models"
)

// RecordSource yields one finite batch of raw records for normalization.
// Implementations cover the API feed, JSON files, and the sample generator.
type RecordSource interface {
	Collect(ctx context.Context) ([]models.RawRecord, error)
}

// Exporter writes one rendition of an analysis run to the output directory.
type Exporter interface {
	Export(doc map[string]any, res *models.AnalysisResult) (path string, err error)
}

type Metrics interface {
	RecordNormalized(outcome string)
	RecordAnalysis(scope string)
	SetProductsLoaded(n int)
	RecordLatency(op string, seconds float64)
}
