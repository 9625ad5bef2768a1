package usecase

import (
	"time"

	"SRPulse/internal/domain/models"
)

// ReportBuilder shapes an AnalysisResult into its serializable document form.
// It is presentation-only: no number is recomputed here, so every rendering
// produced from the same result carries the same figures.
type ReportBuilder struct {
	now func() time.Time
}

func NewReportBuilder() *ReportBuilder {
	return &ReportBuilder{now: time.Now}
}

// Document maps the analysis onto plain key/value data suitable for JSON
// encoding. Field names match the exported analysis schema; dates are
// ISO-8601 strings.
func (b *ReportBuilder) Document(res *models.AnalysisResult) map[string]any {
	doc := map[string]any{
		"generated_at":    b.now().UTC().Format(time.RFC3339),
		"total_products":  res.TotalProducts,
		"total_value":     res.TotalValue,
		"average_value":   res.AverageValue,
		"by_country":      groupDoc(res.ByCountry),
		"by_currency":     groupDoc(res.ByCurrency),
		"by_product_type": groupDoc(res.ByProductType),
		"by_risk_level":   riskDoc(res.ByRiskLevel),
		"top_issuers":     issuerDoc(res.TopIssuers),
		"monthly_trend":   trendDoc(res.MonthlyTrend),
	}
	return doc
}

func groupDoc[K ~string](groups map[K]models.GroupStat) map[string]any {
	out := make(map[string]any, len(groups))
	for k, v := range groups {
		out[string(k)] = statDoc(v)
	}
	return out
}

func riskDoc(groups map[models.RiskLevel]models.GroupStat) map[string]any {
	out := make(map[string]any, len(groups))
	for k, v := range groups {
		out[k.String()] = statDoc(v)
	}
	return out
}

func statDoc(s models.GroupStat) map[string]any {
	return map[string]any{
		"count":         s.Count,
		"total_value":   s.TotalValue,
		"average_value": s.AverageValue,
	}
}

func issuerDoc(issuers []models.IssuerStat) []map[string]any {
	out := make([]map[string]any, 0, len(issuers))
	for _, s := range issuers {
		out = append(out, map[string]any{
			"issuer":        s.Issuer,
			"count":         s.Count,
			"total_value":   s.TotalValue,
			"average_value": s.AverageValue,
		})
	}
	return out
}

func trendDoc(trend []models.MonthBucket) []map[string]any {
	out := make([]map[string]any, 0, len(trend))
	for _, b := range trend {
		out = append(out, map[string]any{
			"month":         b.Month,
			"count":         b.Count,
			"total_value":   b.TotalValue,
			"average_value": b.AverageValue,
		})
	}
	return out
}
