package models

import (
	"fmt"
	"net/url"
	"sort"
)

// FilterCriteria is a conjunctive set of optional predicates over a product
// collection. A nil field imposes no constraint.
type FilterCriteria struct {
	Country         *Country     `json:"country,omitempty"`
	Currency        *Currency    `json:"currency,omitempty"`
	ProductType     *ProductType `json:"product_type,omitempty"`
	RiskLevel       *RiskLevel   `json:"risk_level,omitempty"`
	MinNominalValue *float64     `json:"min_nominal_value,omitempty"`
	MaxNominalValue *float64     `json:"max_nominal_value,omitempty"`
	Issuer          *string      `json:"issuer,omitempty"`
}

// Empty reports whether no predicate is set.
func (c FilterCriteria) Empty() bool {
	return c.Country == nil && c.Currency == nil && c.ProductType == nil &&
		c.RiskLevel == nil && c.MinNominalValue == nil && c.MaxNominalValue == nil &&
		c.Issuer == nil
}

// CacheKey returns a stable string identifying the criteria, used to key the
// analysis cache. Supplied predicates appear in fixed order. The issuer value
// is the only free-form input, so it is escaped to keep distinct criteria
// from sharing a key.
func (c FilterCriteria) CacheKey() string {
	parts := make([]string, 0, 7)
	if c.Country != nil {
		parts = append(parts, "country="+string(*c.Country))
	}
	if c.Currency != nil {
		parts = append(parts, "currency="+string(*c.Currency))
	}
	if c.ProductType != nil {
		parts = append(parts, "product_type="+string(*c.ProductType))
	}
	if c.RiskLevel != nil {
		parts = append(parts, "risk_level="+c.RiskLevel.String())
	}
	if c.MinNominalValue != nil {
		parts = append(parts, fmt.Sprintf("min=%g", *c.MinNominalValue))
	}
	if c.MaxNominalValue != nil {
		parts = append(parts, fmt.Sprintf("max=%g", *c.MaxNominalValue))
	}
	if c.Issuer != nil {
		parts = append(parts, "issuer="+url.QueryEscape(*c.Issuer))
	}
	sort.Strings(parts)
	key := ""
	for i, p := range parts {
		if i > 0 {
			key += "&"
		}
		key += p
	}
	return key
}

// CriteriaFromMap decodes the loosely-typed criteria shape used on the wire.
// Unknown keys fail fast with a *ValidationError rather than being silently
// ignored, so a typo never filters the wrong subset.
func CriteriaFromMap(raw map[string]any) (FilterCriteria, error) {
	var c FilterCriteria
	for key, val := range raw {
		if val == nil {
			continue
		}
		switch key {
		case "country":
			s, err := criteriaString(key, val)
			if err != nil {
				return FilterCriteria{}, err
			}
			country, verr := ParseCountry(s)
			if verr != nil {
				return FilterCriteria{}, verr
			}
			c.Country = &country
		case "currency":
			s, err := criteriaString(key, val)
			if err != nil {
				return FilterCriteria{}, err
			}
			currency, verr := ParseCurrency(s)
			if verr != nil {
				return FilterCriteria{}, verr
			}
			c.Currency = &currency
		case "product_type":
			s, err := criteriaString(key, val)
			if err != nil {
				return FilterCriteria{}, err
			}
			pt, verr := ParseProductType(s)
			if verr != nil {
				return FilterCriteria{}, verr
			}
			c.ProductType = &pt
		case "risk_level":
			rl, err := criteriaRisk(val)
			if err != nil {
				return FilterCriteria{}, err
			}
			c.RiskLevel = &rl
		case "min_nominal_value":
			v, err := criteriaNumber(key, val)
			if err != nil {
				return FilterCriteria{}, err
			}
			c.MinNominalValue = &v
		case "max_nominal_value":
			v, err := criteriaNumber(key, val)
			if err != nil {
				return FilterCriteria{}, err
			}
			c.MaxNominalValue = &v
		case "issuer":
			s, err := criteriaString(key, val)
			if err != nil {
				return FilterCriteria{}, err
			}
			c.Issuer = &s
		default:
			return FilterCriteria{}, NewValidationError(key, "unknown filter criterion")
		}
	}
	return c, nil
}

func criteriaString(key string, val any) (string, error) {
	s, ok := val.(string)
	if !ok {
		return "", NewValidationError(key, fmt.Sprintf("expected string, got %T", val))
	}
	return s, nil
}

func criteriaNumber(key string, val any) (float64, error) {
	switch v := val.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	}
	return 0, NewValidationError(key, fmt.Sprintf("expected number, got %T", val))
}

func criteriaRisk(val any) (RiskLevel, error) {
	switch v := val.(type) {
	case string:
		rl, verr := ParseRiskLevel(v)
		if verr != nil {
			return 0, NewValidationError("risk_level", verr.Reason)
		}
		return rl, nil
	case float64:
		rl := RiskLevel(int(v))
		if float64(int(v)) != v || !rl.Valid() {
			return 0, NewValidationError("risk_level", fmt.Sprintf("risk level must be 1..5, got %v", v))
		}
		return rl, nil
	case int:
		rl := RiskLevel(v)
		if !rl.Valid() {
			return 0, NewValidationError("risk_level", fmt.Sprintf("risk level must be 1..5, got %d", v))
		}
		return rl, nil
	}
	return 0, NewValidationError("risk_level", fmt.Sprintf("expected string or number, got %T", val))
}
