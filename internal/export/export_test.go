package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"SRPulse/internal/domain/models"
	"SRPulse/internal/usecase"
)

func analysisFixture() *models.AnalysisResult {
	issued := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	products := []models.Product{
		{ID: "SRP_1", Name: "Note CAC 40", Issuer: "BNP Paribas", Country: models.CountryFR, Currency: models.CurrencyEUR, IssueDate: issued, NominalValue: 10000, ProductType: models.TypeNote, RiskLevel: models.RiskMedium},
		{ID: "SRP_2", Name: "Bond BEL 20", Issuer: "KBC", Country: models.CountryBE, Currency: models.CurrencyUSD, IssueDate: issued.AddDate(0, 1, 0), NominalValue: 25000, ProductType: models.TypeBond, RiskLevel: models.RiskVeryLow},
	}
	return usecase.NewAnalyzer().Analyze(products)
}

func TestJSONWriterExport(t *testing.T) {
	dir := t.TempDir()
	res := analysisFixture()
	doc := usecase.NewReportBuilder().Document(res)

	path, err := NewJSONWriter(dir, "analysis.json").Export(doc, res)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "analysis.json"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, 2.0, decoded["total_products"])
	require.Equal(t, 35000.0, decoded["total_value"])
}

func TestJSONWriterCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	res := analysisFixture()
	doc := usecase.NewReportBuilder().Document(res)

	path, err := NewJSONWriter(dir, "analysis.json").Export(doc, res)
	require.NoError(t, err)
	require.FileExists(t, path)
}

func TestHTMLReportExport(t *testing.T) {
	dir := t.TempDir()
	res := analysisFixture()

	path, err := NewHTMLReport(dir, "report.html").Export(nil, res)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(b)
	require.Contains(t, html, "SRP Analysis Report")
	require.Contains(t, html, "BNP Paribas")
	require.Contains(t, html, "Level 1 - Very low")
	require.Contains(t, html, "2024-03")
	require.Contains(t, html, "35,000")
}

func TestHTMLReportRenderEmptyResult(t *testing.T) {
	res := usecase.NewAnalyzer().Analyze(nil)

	html, err := NewHTMLReport(t.TempDir(), "report.html").Render(res)
	require.NoError(t, err)
	require.Contains(t, html, "SRP Analysis Report")
	require.NotContains(t, html, "By country")
}

func TestMoneyFormatting(t *testing.T) {
	require.Equal(t, "0", money(0))
	require.Equal(t, "999", money(999))
	require.Equal(t, "1,000", money(1000))
	require.Equal(t, "1,234,568", money(1234567.9))
}

func TestExcelWorkbookExport(t *testing.T) {
	dir := t.TempDir()
	res := analysisFixture()
	doc := usecase.NewReportBuilder().Document(res)

	path, err := NewExcelWorkbook(dir, "analysis.xlsx").Export(doc, res)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Contains(t, sheets, "Summary")
	require.Contains(t, sheets, "Breakdowns")
	require.Contains(t, sheets, "Top Issuers")
	require.Contains(t, sheets, "Monthly Trend")

	rows, err := f.GetRows("Top Issuers")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3) // header + two issuers
	require.Equal(t, "KBC", rows[1][0])
}
