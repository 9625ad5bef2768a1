package usecase

import (
	"fmt"
	"strconv"
	"time"

	"SRPulse/internal/domain/models"
	"SRPulse/pkg/util"
)

// Normalizer converts loosely-typed raw records into canonical products.
// Records that fail coercion or validation are collected as per-record
// failures; the batch keeps going unless Strict is set.
type Normalizer struct {
	strict bool
}

type NormalizerOption func(*Normalizer)

// WithStrict makes the first bad record abort the whole batch.
func WithStrict(strict bool) NormalizerOption {
	return func(n *Normalizer) { n.strict = strict }
}

func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize maps each raw record onto a validated Product, preserving input
// order. It returns the successes together with the per-record failures.
// In strict mode the first failure is returned as an error instead.
func (n *Normalizer) Normalize(records []models.RawRecord) ([]models.Product, []models.RecordFailure, error) {
	products := make([]models.Product, 0, len(records))
	var failures []models.RecordFailure
	seen := make(map[string]int, len(records))

	for i, rec := range records {
		p, ferr := normalizeRecord(rec)
		if ferr == nil {
			if prev, dup := seen[p.ID]; dup {
				ferr = models.NewValidationError("id", fmt.Sprintf("duplicate id %q (first seen at record %d)", p.ID, prev))
			}
		}
		if ferr != nil {
			f := models.RecordFailure{Index: i, Field: ferr.Field, Reason: ferr.Reason}
			if n.strict {
				return nil, nil, f
			}
			failures = append(failures, f)
			continue
		}
		seen[p.ID] = i
		products = append(products, *p)
	}
	return products, failures, nil
}

func normalizeRecord(rec models.RawRecord) (*models.Product, *models.ValidationError) {
	var p models.Product
	var verr *models.ValidationError

	if p.ID, verr = requiredString(rec, "id"); verr != nil {
		return nil, verr
	}
	if p.Name, verr = requiredString(rec, "name"); verr != nil {
		return nil, verr
	}
	if p.Issuer, verr = requiredString(rec, "issuer"); verr != nil {
		return nil, verr
	}

	country, verr := requiredString(rec, "country")
	if verr != nil {
		return nil, verr
	}
	if p.Country, verr = models.ParseCountry(country); verr != nil {
		return nil, verr
	}

	currency, verr := requiredString(rec, "currency")
	if verr != nil {
		return nil, verr
	}
	if p.Currency, verr = models.ParseCurrency(currency); verr != nil {
		return nil, verr
	}

	if p.IssueDate, verr = requiredDate(rec, "issue_date"); verr != nil {
		return nil, verr
	}
	if p.MaturityDate, verr = optionalDate(rec, "maturity_date"); verr != nil {
		return nil, verr
	}

	nominal, verr := requiredNumber(rec, "nominal_value")
	if verr != nil {
		return nil, verr
	}
	p.NominalValue = nominal

	if p.CouponRate, verr = optionalNumber(rec, "coupon_rate"); verr != nil {
		return nil, verr
	}

	typ, verr := requiredString(rec, "type")
	if verr != nil {
		return nil, verr
	}
	if p.ProductType, verr = models.ParseProductType(typ); verr != nil {
		return nil, verr
	}

	risk, verr := requiredString(rec, "risk")
	if verr != nil {
		return nil, verr
	}
	if p.RiskLevel, verr = models.ParseRiskLevel(risk); verr != nil {
		return nil, verr
	}

	if p.UnderlyingAsset, verr = optionalString(rec, "underlying"); verr != nil {
		return nil, verr
	}
	if p.Rating, verr = optionalString(rec, "rating"); verr != nil {
		return nil, verr
	}
	if p.ISIN, verr = optionalString(rec, "isin"); verr != nil {
		return nil, verr
	}
	if p.MinInvestment, verr = optionalNumber(rec, "min_investment"); verr != nil {
		return nil, verr
	}
	if p.MaxInvestment, verr = optionalNumber(rec, "max_investment"); verr != nil {
		return nil, verr
	}
	if p.Fees, verr = optionalNumber(rec, "fees"); verr != nil {
		return nil, verr
	}

	if err := p.Validate(); err != nil {
		return nil, err.(*models.ValidationError)
	}
	return &p, nil
}

func requiredString(rec models.RawRecord, key string) (string, *models.ValidationError) {
	val, ok := rec[key]
	if !ok || val == nil {
		return "", models.NewValidationError(key, key+" is required")
	}
	s, ok := val.(string)
	if !ok {
		return "", models.NewValidationError(key, fmt.Sprintf("expected string, got %T", val))
	}
	if s == "" {
		return "", models.NewValidationError(key, key+" is required")
	}
	return s, nil
}

func optionalString(rec models.RawRecord, key string) (string, *models.ValidationError) {
	val, ok := rec[key]
	if !ok || val == nil {
		return "", nil
	}
	s, ok := val.(string)
	if !ok {
		return "", models.NewValidationError(key, fmt.Sprintf("expected string, got %T", val))
	}
	return s, nil
}

// coerceNumber accepts JSON numbers and numeric strings. Raw batches arrive
// both from encoding/json (float64) and from hand-built fixtures (int).
func coerceNumber(key string, val any) (float64, *models.ValidationError) {
	switch v := val.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, models.NewValidationError(key, fmt.Sprintf("cannot parse %q as number", v))
		}
		return f, nil
	}
	return 0, models.NewValidationError(key, fmt.Sprintf("expected number, got %T", val))
}

func requiredNumber(rec models.RawRecord, key string) (float64, *models.ValidationError) {
	val, ok := rec[key]
	if !ok || val == nil {
		return 0, models.NewValidationError(key, key+" is required")
	}
	return coerceNumber(key, val)
}

func optionalNumber(rec models.RawRecord, key string) (*float64, *models.ValidationError) {
	val, ok := rec[key]
	if !ok || val == nil {
		return nil, nil
	}
	f, verr := coerceNumber(key, val)
	if verr != nil {
		return nil, verr
	}
	return &f, nil
}

func requiredDate(rec models.RawRecord, key string) (time.Time, *models.ValidationError) {
	val, ok := rec[key]
	if !ok || val == nil {
		return time.Time{}, models.NewValidationError(key, key+" is required")
	}
	s, ok := val.(string)
	if !ok {
		return time.Time{}, models.NewValidationError(key, fmt.Sprintf("expected date string, got %T", val))
	}
	t, parsed := util.ParseDate(s)
	if !parsed {
		return time.Time{}, models.NewValidationError(key, fmt.Sprintf("cannot parse %q as YYYY-MM-DD date", s))
	}
	return t, nil
}

func optionalDate(rec models.RawRecord, key string) (*time.Time, *models.ValidationError) {
	val, ok := rec[key]
	if !ok || val == nil {
		return nil, nil
	}
	s, ok := val.(string)
	if !ok {
		return nil, models.NewValidationError(key, fmt.Sprintf("expected date string, got %T", val))
	}
	t, parsed := util.ParseDate(s)
	if !parsed {
		return nil, models.NewValidationError(key, fmt.Sprintf("cannot parse %q as YYYY-MM-DD date", s))
	}
	return &t, nil
}
