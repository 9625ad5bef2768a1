package models

// RawRecord is the loosely-typed ingest shape handed over by the collector:
// string keys mapped to JSON primitives (string, number, bool, nil).
type RawRecord map[string]any

// GroupStat is the per-category slice of one breakdown.
type GroupStat struct {
	Count        int     `json:"count"`
	TotalValue   float64 `json:"total_value"`
	AverageValue float64 `json:"average_value"`
}

// IssuerStat is one row of the top-issuer ranking.
type IssuerStat struct {
	Issuer       string  `json:"issuer"`
	Count        int     `json:"count"`
	TotalValue   float64 `json:"total_value"`
	AverageValue float64 `json:"average_value"`
}

// MonthBucket is one chronological slice of the issuance trend.
// Month uses the "YYYY-MM" form.
type MonthBucket struct {
	Month        string  `json:"month"`
	Count        int     `json:"count"`
	TotalValue   float64 `json:"total_value"`
	AverageValue float64 `json:"average_value"`
}

// AnalysisResult is the derived view over one product collection. It is a pure
// function of its input: built fresh by the analyzer, never mutated afterwards,
// and safe for concurrent reads. Breakdowns contain only categories actually
// present in the input; absent categories are omitted, not zero-filled.
type AnalysisResult struct {
	TotalProducts int     `json:"total_products"`
	TotalValue    float64 `json:"total_value"`
	AverageValue  float64 `json:"average_value"`

	ByCountry     map[Country]GroupStat     `json:"by_country"`
	ByCurrency    map[Currency]GroupStat    `json:"by_currency"`
	ByProductType map[ProductType]GroupStat `json:"by_product_type"`
	ByRiskLevel   map[RiskLevel]GroupStat   `json:"by_risk_level"`

	TopIssuers   []IssuerStat  `json:"top_issuers"`
	MonthlyTrend []MonthBucket `json:"monthly_trend"`
}

// CollectionSummary is the lightweight overview of a loaded collection.
type CollectionSummary struct {
	TotalCount   int      `json:"total_count"`
	DateStart    string   `json:"date_start,omitempty"`
	DateEnd      string   `json:"date_end,omitempty"`
	Countries    []string `json:"countries"`
	Currencies   []string `json:"currencies"`
	ProductTypes []string `json:"product_types"`
	RiskLevels   []string `json:"risk_levels"`
	TotalValue   float64  `json:"total_value"`
	AverageValue float64  `json:"average_value"`
}
