package models

import (
	"fmt"
	"time"
)

// RiskLevel is the 1..5 ordinal risk scale (1 = lowest risk).
type RiskLevel int

const (
	RiskVeryLow  RiskLevel = 1
	RiskLow      RiskLevel = 2
	RiskMedium   RiskLevel = 3
	RiskHigh     RiskLevel = 4
	RiskVeryHigh RiskLevel = 5
)

func (r RiskLevel) Valid() bool { return r >= RiskVeryLow && r <= RiskVeryHigh }

func (r RiskLevel) String() string { return fmt.Sprintf("%d", int(r)) }

// ParseRiskLevel accepts the wire form "1".."5".
func ParseRiskLevel(s string) (RiskLevel, *ValidationError) {
	switch s {
	case "1", "2", "3", "4", "5":
		return RiskLevel(s[0] - '0'), nil
	}
	return 0, NewValidationError("risk", fmt.Sprintf("risk level must be 1..5, got %q", s))
}

// ProductType enumerates the supported structured product categories.
type ProductType string

const (
	TypeBond        ProductType = "bond"
	TypeNote        ProductType = "note"
	TypeCertificate ProductType = "certificate"
	TypeWarrant     ProductType = "warrant"
	TypeOption      ProductType = "option"
	TypeFuture      ProductType = "future"
	TypeSwap        ProductType = "swap"
	TypeOther       ProductType = "other"
)

func (t ProductType) Valid() bool {
	switch t {
	case TypeBond, TypeNote, TypeCertificate, TypeWarrant, TypeOption, TypeFuture, TypeSwap, TypeOther:
		return true
	}
	return false
}

func ParseProductType(s string) (ProductType, *ValidationError) {
	t := ProductType(s)
	if !t.Valid() {
		return "", NewValidationError("type", fmt.Sprintf("unknown product type %q", s))
	}
	return t, nil
}

// Currency enumerates the supported issue currencies.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
	CurrencyCHF Currency = "CHF"
	CurrencyJPY Currency = "JPY"
)

func (c Currency) Valid() bool {
	switch c {
	case CurrencyEUR, CurrencyUSD, CurrencyGBP, CurrencyCHF, CurrencyJPY:
		return true
	}
	return false
}

func ParseCurrency(s string) (Currency, *ValidationError) {
	c := Currency(s)
	if !c.Valid() {
		return "", NewValidationError("currency", fmt.Sprintf("unknown currency %q", s))
	}
	return c, nil
}

// Country enumerates the covered issuance markets.
type Country string

const (
	CountryFR Country = "FR"
	CountryBE Country = "BE"
)

func (c Country) Valid() bool { return c == CountryFR || c == CountryBE }

func ParseCountry(s string) (Country, *ValidationError) {
	c := Country(s)
	if !c.Valid() {
		return "", NewValidationError("country", fmt.Sprintf("unknown country code %q", s))
	}
	return c, nil
}

// Product is the canonical, validated representation of a structured retail
// product. Instances are built once by the normalizer and never mutated;
// aggregation and filtering only read them, so a loaded collection is safe to
// share across goroutines.
type Product struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Issuer          string      `json:"issuer"`
	Country         Country     `json:"country"`
	Currency        Currency    `json:"currency"`
	IssueDate       time.Time   `json:"issue_date"`
	MaturityDate    *time.Time  `json:"maturity_date,omitempty"`
	NominalValue    float64     `json:"nominal_value"`
	CouponRate      *float64    `json:"coupon_rate,omitempty"`
	ProductType     ProductType `json:"type"`
	UnderlyingAsset string      `json:"underlying,omitempty"`
	RiskLevel       RiskLevel   `json:"risk"`
	Rating          string      `json:"rating,omitempty"`

	// Optional descriptive extras carried through from the source feed.
	ISIN          string   `json:"isin,omitempty"`
	MinInvestment *float64 `json:"min_investment,omitempty"`
	MaxInvestment *float64 `json:"max_investment,omitempty"`
	Fees          *float64 `json:"fees,omitempty"`
}

// Validate checks every field invariant. The first violation is returned as a
// *ValidationError naming the offending field.
func (p *Product) Validate() error {
	if p.ID == "" {
		return NewValidationError("id", "id is required")
	}
	if p.Name == "" {
		return NewValidationError("name", "name is required")
	}
	if p.Issuer == "" {
		return NewValidationError("issuer", "issuer is required")
	}
	if !p.Country.Valid() {
		return NewValidationError("country", fmt.Sprintf("unknown country code %q", string(p.Country)))
	}
	if !p.Currency.Valid() {
		return NewValidationError("currency", fmt.Sprintf("unknown currency %q", string(p.Currency)))
	}
	if p.IssueDate.IsZero() {
		return NewValidationError("issue_date", "issue_date is required")
	}
	if p.MaturityDate != nil && p.MaturityDate.Before(p.IssueDate) {
		return NewValidationError("maturity_date", "maturity_date must not be earlier than issue_date")
	}
	if p.NominalValue < 0 {
		return NewValidationError("nominal_value", "nominal_value must be non-negative")
	}
	if p.CouponRate != nil && (*p.CouponRate < 0 || *p.CouponRate > 100) {
		return NewValidationError("coupon_rate", "coupon_rate must be between 0 and 100")
	}
	if !p.ProductType.Valid() {
		return NewValidationError("type", fmt.Sprintf("unknown product type %q", string(p.ProductType)))
	}
	if !p.RiskLevel.Valid() {
		return NewValidationError("risk", fmt.Sprintf("risk level must be 1..5, got %d", int(p.RiskLevel)))
	}
	return nil
}

// IssueMonth returns the "YYYY-MM" bucket key used by the monthly trend.
func (p *Product) IssueMonth() string {
	return p.IssueDate.Format("2006-01")
}
