package export

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"SRPulse/internal/domain/models"
)

var riskLabels = map[string]string{
	"1": "Very low",
	"2": "Low",
	"3": "Medium",
	"4": "High",
	"5": "Very high",
}

// HTMLReport renders the human-readable report. It consumes the same
// AnalysisResult the JSON document was built from; nothing is recomputed.
type HTMLReport struct {
	dir  string
	name string
	tmpl *template.Template
	now  func() time.Time
}

func NewHTMLReport(dir, name string) *HTMLReport {
	return &HTMLReport{
		dir:  dir,
		name: name,
		tmpl: template.Must(template.New("report").Funcs(template.FuncMap{"money": money}).Parse(reportTemplate)),
		now:  time.Now,
	}
}

func (r *HTMLReport) Export(_ map[string]any, res *models.AnalysisResult) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(r.dir, r.name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := r.tmpl.Execute(f, newReportView(res, r.now())); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return path, nil
}

// Render produces the report as a string, for serving over HTTP.
func (r *HTMLReport) Render(res *models.AnalysisResult) (string, error) {
	var sb strings.Builder
	if err := r.tmpl.Execute(&sb, newReportView(res, r.now())); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return sb.String(), nil
}

type breakdownRow struct {
	Label string
	Stat  models.GroupStat
}

type reportView struct {
	GeneratedAt string
	Result      *models.AnalysisResult
	ByCountry   []breakdownRow
	ByCurrency  []breakdownRow
	ByRisk      []breakdownRow
}

// newReportView flattens the breakdown maps into sorted rows so the rendered
// sections are stable across runs.
func newReportView(res *models.AnalysisResult, now time.Time) reportView {
	v := reportView{
		GeneratedAt: now.Format("02/01/2006 15:04"),
		Result:      res,
	}
	for c, s := range res.ByCountry {
		v.ByCountry = append(v.ByCountry, breakdownRow{Label: string(c), Stat: s})
	}
	for c, s := range res.ByCurrency {
		v.ByCurrency = append(v.ByCurrency, breakdownRow{Label: string(c), Stat: s})
	}
	for r, s := range res.ByRiskLevel {
		label := fmt.Sprintf("Level %s - %s", r.String(), riskLabels[r.String()])
		v.ByRisk = append(v.ByRisk, breakdownRow{Label: label, Stat: s})
	}
	sortRows(v.ByCountry)
	sortRows(v.ByCurrency)
	sortRows(v.ByRisk)
	return v
}

func sortRows(rows []breakdownRow) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].Label < rows[j].Label })
}

// money renders a non-negative amount with thousand separators.
func money(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i := 0; i < len(s); i++ {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return string(out)
}

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>SRP Analysis Report</title>
<style>
body { font-family: Arial, sans-serif; margin: 20px; }
.header { background-color: #f0f0f0; padding: 20px; border-radius: 5px; }
.section { margin: 20px 0; padding: 15px; border: 1px solid #ddd; border-radius: 5px; }
.stats { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 15px; }
.stat-card { background-color: #f9f9f9; padding: 15px; border-radius: 5px; text-align: center; }
.stat-value { font-size: 24px; font-weight: bold; color: #2c5aa0; }
.stat-label { color: #666; margin-top: 5px; }
table { width: 100%; border-collapse: collapse; margin: 10px 0; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #f2f2f2; }
</style>
</head>
<body>
<div class="header">
  <h1>SRP Analysis Report</h1>
  <p>Generated {{.GeneratedAt}}</p>
</div>

<div class="section">
  <h2>Overview</h2>
  <div class="stats">
    <div class="stat-card"><div class="stat-value">{{.Result.TotalProducts}}</div><div class="stat-label">Products</div></div>
    <div class="stat-card"><div class="stat-value">{{money .Result.TotalValue}}</div><div class="stat-label">Total value</div></div>
    <div class="stat-card"><div class="stat-value">{{money .Result.AverageValue}}</div><div class="stat-label">Average value</div></div>
  </div>
</div>

{{if .ByCountry}}
<div class="section">
  <h2>By country</h2>
  <table>
    <thead><tr><th>Country</th><th>Products</th><th>Total value</th><th>Average value</th></tr></thead>
    <tbody>
    {{range .ByCountry}}<tr><td>{{.Label}}</td><td>{{.Stat.Count}}</td><td>{{money .Stat.TotalValue}}</td><td>{{money .Stat.AverageValue}}</td></tr>
    {{end}}</tbody>
  </table>
</div>
{{end}}

{{if .ByCurrency}}
<div class="section">
  <h2>By currency</h2>
  <table>
    <thead><tr><th>Currency</th><th>Products</th><th>Total value</th><th>Average value</th></tr></thead>
    <tbody>
    {{range .ByCurrency}}<tr><td>{{.Label}}</td><td>{{.Stat.Count}}</td><td>{{money .Stat.TotalValue}}</td><td>{{money .Stat.AverageValue}}</td></tr>
    {{end}}</tbody>
  </table>
</div>
{{end}}

{{if .ByRisk}}
<div class="section">
  <h2>By risk level</h2>
  <table>
    <thead><tr><th>Risk</th><th>Products</th><th>Total value</th><th>Average value</th></tr></thead>
    <tbody>
    {{range .ByRisk}}<tr><td>{{.Label}}</td><td>{{.Stat.Count}}</td><td>{{money .Stat.TotalValue}}</td><td>{{money .Stat.AverageValue}}</td></tr>
    {{end}}</tbody>
  </table>
</div>
{{end}}

{{if .Result.TopIssuers}}
<div class="section">
  <h2>Top issuers</h2>
  <table>
    <thead><tr><th>Issuer</th><th>Products</th><th>Total value</th><th>Average value</th></tr></thead>
    <tbody>
    {{range .Result.TopIssuers}}<tr><td>{{.Issuer}}</td><td>{{.Count}}</td><td>{{money .TotalValue}}</td><td>{{money .AverageValue}}</td></tr>
    {{end}}</tbody>
  </table>
</div>
{{end}}

{{if .Result.MonthlyTrend}}
<div class="section">
  <h2>Monthly issuance</h2>
  <table>
    <thead><tr><th>Month</th><th>Products</th><th>Total value</th></tr></thead>
    <tbody>
    {{range .Result.MonthlyTrend}}<tr><td>{{.Month}}</td><td>{{.Count}}</td><td>{{money .TotalValue}}</td></tr>
    {{end}}</tbody>
  </table>
</div>
{{end}}

</body>
</html>
`
