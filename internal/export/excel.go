package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"SRPulse/internal/domain/models"
)

// ExcelWorkbook exports the analysis as an XLSX workbook with one sheet per
// section, for the analysts who live in spreadsheets.
type ExcelWorkbook struct {
	dir  string
	name string
}

func NewExcelWorkbook(dir, name string) *ExcelWorkbook {
	return &ExcelWorkbook{dir: dir, name: name}
}

func (w *ExcelWorkbook) Export(_ map[string]any, res *models.AnalysisResult) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeSummary(f, res); err != nil {
		return "", err
	}
	if err := w.writeBreakdowns(f, res); err != nil {
		return "", err
	}
	if err := w.writeIssuers(f, res); err != nil {
		return "", err
	}
	if err := w.writeTrend(f, res); err != nil {
		return "", err
	}

	path := filepath.Join(w.dir, w.name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}

func (w *ExcelWorkbook) writeSummary(f *excelize.File, res *models.AnalysisResult) error {
	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}
	rows := [][]any{
		{"Total products", res.TotalProducts},
		{"Total value", res.TotalValue},
		{"Average value", res.AverageValue},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("summary row: %w", err)
		}
	}
	return nil
}

func (w *ExcelWorkbook) writeBreakdowns(f *excelize.File, res *models.AnalysisResult) error {
	const sheet = "Breakdowns"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("breakdowns sheet: %w", err)
	}

	rows := [][]any{{"Dimension", "Category", "Count", "Total value", "Average value"}}
	for _, cat := range sortedCategories(res.ByCountry) {
		s := res.ByCountry[models.Country(cat)]
		rows = append(rows, []any{"country", cat, s.Count, s.TotalValue, s.AverageValue})
	}
	for _, cat := range sortedCategories(res.ByCurrency) {
		s := res.ByCurrency[models.Currency(cat)]
		rows = append(rows, []any{"currency", cat, s.Count, s.TotalValue, s.AverageValue})
	}
	for _, cat := range sortedCategories(res.ByProductType) {
		s := res.ByProductType[models.ProductType(cat)]
		rows = append(rows, []any{"product_type", cat, s.Count, s.TotalValue, s.AverageValue})
	}
	for level := models.RiskVeryLow; level <= models.RiskVeryHigh; level++ {
		if s, ok := res.ByRiskLevel[level]; ok {
			rows = append(rows, []any{"risk_level", level.String(), s.Count, s.TotalValue, s.AverageValue})
		}
	}

	return writeRows(f, sheet, rows)
}

func (w *ExcelWorkbook) writeIssuers(f *excelize.File, res *models.AnalysisResult) error {
	const sheet = "Top Issuers"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("issuers sheet: %w", err)
	}
	rows := [][]any{{"Issuer", "Count", "Total value", "Average value"}}
	for _, s := range res.TopIssuers {
		rows = append(rows, []any{s.Issuer, s.Count, s.TotalValue, s.AverageValue})
	}
	return writeRows(f, sheet, rows)
}

func (w *ExcelWorkbook) writeTrend(f *excelize.File, res *models.AnalysisResult) error {
	const sheet = "Monthly Trend"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("trend sheet: %w", err)
	}
	rows := [][]any{{"Month", "Count", "Total value", "Average value"}}
	for _, b := range res.MonthlyTrend {
		rows = append(rows, []any{b.Month, b.Count, b.TotalValue, b.AverageValue})
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func sortedCategories[K ~string](m map[K]models.GroupStat) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}
