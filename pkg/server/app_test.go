package server

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"SRPulse/internal/service/collector"
	"SRPulse/internal/service/sample"
	"SRPulse/pkg/config"
	xlogger "SRPulse/pkg/logger"
)

func testApp(t *testing.T, outputDir string) *App {
	t.Helper()
	cfg := &config.Config{Environment: "test"}
	cfg.Analysis.TopIssuers = 10
	cfg.Export.OutputDir = outputDir
	cfg.Export.ProductsFile = "products.json"
	cfg.Export.AnalysisFile = "analysis.json"
	cfg.Export.ReportFile = "report.html"
	cfg.Export.WorkbookFile = "analysis.xlsx"

	logger, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)

	return New(cfg, logger, sample.New(25, sample.WithSeed(3)), nil, nil)
}

func readAnalysis(t *testing.T, path string) map[string]any {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	return doc
}

func TestRunWorkflowExportsArtifacts(t *testing.T) {
	dir := t.TempDir()
	app := testApp(t, dir)

	require.NoError(t, app.RunWorkflow(context.Background()))

	require.FileExists(t, filepath.Join(dir, "products.json"))
	require.FileExists(t, filepath.Join(dir, "report.html"))
	require.FileExists(t, filepath.Join(dir, "analysis.xlsx"))

	doc := readAnalysis(t, filepath.Join(dir, "analysis.json"))
	require.Equal(t, 25.0, doc["total_products"])
	require.NotEmpty(t, doc["by_country"])
}

// A saved batch re-analyzed from disk must reproduce the original run's
// figures; this is the workflow behind the analyze-only CLI mode.
func TestSavedBatchReanalysis(t *testing.T) {
	dir := t.TempDir()
	app := testApp(t, dir)
	require.NoError(t, app.RunWorkflow(context.Background()))
	first := readAnalysis(t, filepath.Join(dir, "analysis.json"))

	app.SetSource(collector.NewFileCollector(filepath.Join(dir, "products.json")))
	require.NoError(t, app.RunWorkflow(context.Background()))
	second := readAnalysis(t, filepath.Join(dir, "analysis.json"))

	for _, key := range []string{"total_products", "total_value", "average_value", "by_country", "top_issuers", "monthly_trend"} {
		require.Equal(t, first[key], second[key], "field %s", key)
	}
}

func TestCollectSavesRawBatch(t *testing.T) {
	dir := t.TempDir()
	app := testApp(t, dir)

	records, err := app.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 25)

	saved, err := collector.NewFileCollector(filepath.Join(dir, "products.json")).Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, saved, 25)
}
