package usecase

import (
	"strings"

	"SRPulse/internal/domain/models"
)

// Filter returns the ordered subsequence of products matching every supplied
// criterion. Absent criteria impose no constraint; min > max yields an empty
// result by definition, not an error. Input order is preserved and the input
// slice is never mutated.
func Filter(products []models.Product, c models.FilterCriteria) []models.Product {
	if c.Empty() {
		return products
	}

	out := make([]models.Product, 0, len(products))
	for i := range products {
		if matches(&products[i], c) {
			out = append(out, products[i])
		}
	}
	return out
}

func matches(p *models.Product, c models.FilterCriteria) bool {
	if c.Country != nil && p.Country != *c.Country {
		return false
	}
	if c.Currency != nil && p.Currency != *c.Currency {
		return false
	}
	if c.ProductType != nil && p.ProductType != *c.ProductType {
		return false
	}
	if c.RiskLevel != nil && p.RiskLevel != *c.RiskLevel {
		return false
	}
	if c.MinNominalValue != nil && p.NominalValue < *c.MinNominalValue {
		return false
	}
	if c.MaxNominalValue != nil && p.NominalValue > *c.MaxNominalValue {
		return false
	}
	if c.Issuer != nil && !strings.Contains(strings.ToLower(p.Issuer), strings.ToLower(*c.Issuer)) {
		return false
	}
	return true
}
