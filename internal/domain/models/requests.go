package models

// Requests for analysis HTTP endpoints. Defined in domain for consistency and reuse.

type AnalyzeRequest struct {
	Criteria map[string]any `json:"criteria"`
	TopN     int            `json:"top_n" default:"10" validate:"gte=1,lte=100"`
}

type FilterRequest struct {
	Criteria map[string]any `json:"criteria" validate:"required"`
}
